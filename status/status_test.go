package status

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/temoto/macropad/hardware/glyph"
	"github.com/temoto/macropad/hardware/oled"
	"github.com/temoto/macropad/layer"
	"github.com/temoto/macropad/log2"
)

type mockScreen struct {
	calls []string
}

func (self *mockScreen) Clear() { self.calls = append(self.calls, "clear") }
func (self *mockScreen) SetCursor(row, col uint8) bool {
	self.calls = append(self.calls, fmt.Sprintf("cursor %d,%d", row, col))
	return true
}
func (self *mockScreen) Write(b []byte) { self.calls = append(self.calls, "write "+string(b)) }
func (self *mockScreen) DrawText(x, y int, s string) int {
	self.calls = append(self.calls, fmt.Sprintf("text %d,%d %s", x, y, s))
	return x + len(s)*glyph.Advance
}

type mockOverlay struct{ renders []bool }

func (self *mockOverlay) Render(cleared bool) { self.renders = append(self.renders, cleared) }

func TestRedrawOnChange(t *testing.T) {
	t.Parallel()

	layers := layer.NewController(layer.Count)
	screen := &mockScreen{}
	overlay := &mockOverlay{}
	task := NewTask(log2.NewTest(t, log2.LDebug), layers, &layer.Default, screen, overlay)

	assert.False(t, task.OnTick())
	assert.Equal(t, []string{
		"clear",
		"cursor 0,0",
		"write Layer:Base",
		"text 0,12 KNOB SCROLL",
	}, screen.calls)
	assert.Equal(t, 1, task.Redraws())

	screen.calls = nil
	assert.False(t, task.OnTick())
	assert.Empty(t, screen.calls)
	assert.Equal(t, 1, task.Redraws())
	assert.Equal(t, []bool{true, false}, overlay.renders)

	layers.CycleNext()
	layers.CycleNext()
	task.OnTick()
	assert.Equal(t, []string{
		"clear",
		"cursor 0,0",
		"write Layer:Vim",
		"text 0,12 KNOB VOLUME",
	}, screen.calls)
	assert.Equal(t, 2, task.Redraws())
}

func TestCycleRedraws(t *testing.T) {
	t.Parallel()

	layers := layer.NewController(layer.Count)
	task := NewTask(log2.NewTest(t, log2.LDebug), layers, &layer.Default, &mockScreen{}, nil)
	task.OnTick()
	base := task.Redraws()
	for i := 1; i <= layer.Count; i++ {
		layers.CycleNext()
		assert.False(t, task.OnTick())
		assert.Equal(t, base+i, task.Redraws())
	}
	assert.Equal(t, layer.Index(0), layers.Current())
	task.OnTick()
	assert.Equal(t, base+layer.Count, task.Redraws())

	task.Invalidate()
	task.OnTick()
	assert.Equal(t, base+layer.Count+1, task.Redraws())
}

func TestMissedTicks(t *testing.T) {
	t.Parallel()

	layers := layer.NewController(layer.Count)
	task := NewTask(log2.NewTest(t, log2.LDebug), layers, &layer.Default, &mockScreen{}, nil)
	task.OnTick()
	// full cycle between ticks is invisible
	for i := 0; i < layer.Count; i++ {
		layers.CycleNext()
	}
	task.OnTick()
	assert.Equal(t, 1, task.Redraws())
}

func TestConsoleScreen(t *testing.T) {
	t.Parallel()

	fb := oled.NewFramebuffer(oled.DefaultWidth, oled.DefaultHeight)
	layers := layer.NewController(layer.Count)
	task := NewTask(log2.NewTest(t, log2.LDebug), layers, &layer.Default, oled.NewConsole(fb), nil)
	task.OnTick()
	// "L" in first cell
	assert.Equal(t, byte(0x7f), fb.Page(0, 0))
	// "K" of purpose at y=12
	assert.Equal(t, byte(0xf0), fb.Page(1, PurposeX))
	assert.Equal(t, byte(0x07), fb.Page(2, PurposeX))
	// nothing beyond text region
	for c := 96; c < oled.DefaultWidth; c++ {
		for page := 0; page < fb.Pages(); page++ {
			assert.Equal(t, byte(0), fb.Page(page, c), "column=%d page=%d", c, page)
		}
	}
}

type mockFeed struct {
	line    string
	version uint64
}

func (self *mockFeed) Line() (string, uint64) { return self.line, self.version }

func TestFeedLine(t *testing.T) {
	t.Parallel()

	layers := layer.NewController(layer.Count)
	screen := &mockScreen{}
	feed := &mockFeed{line: "LIVE | No Media"}
	task := NewTask(log2.NewTest(t, log2.LDebug), layers, &layer.Default, screen, nil)
	task.SetFeed(feed)

	task.OnTick()
	assert.Equal(t, []string{
		"clear",
		"cursor 0,0",
		"write Layer:Base",
		"text 0,12 KNOB SCROLL",
		"cursor 3,0",
		"write LIVE | No Media ",
	}, screen.calls)
	assert.Equal(t, 1, task.FeedWrites())

	// unchanged feed, no writes
	screen.calls = nil
	task.OnTick()
	assert.Empty(t, screen.calls)

	// new record without layer change rewrites only feed row
	feed.line, feed.version = "MUTED | Señor Song", 1
	task.OnTick()
	assert.Equal(t, []string{"cursor 3,0", "write MUTED | Se?or So"}, screen.calls)
	assert.Equal(t, 1, task.Redraws())

	// other layers do not show feed
	screen.calls = nil
	layers.CycleNext()
	feed.version = 2
	task.OnTick()
	assert.NotContains(t, screen.calls, "cursor 3,0")
	assert.Equal(t, 2, task.FeedWrites())

	// back on base layer after full clear
	for i := 1; i < layer.Count; i++ {
		layers.CycleNext()
	}
	screen.calls = nil
	task.OnTick()
	assert.Contains(t, screen.calls, "write MUTED | Se?or So")
	assert.Equal(t, 3, task.FeedWrites())
}

func TestFeedOnConsole(t *testing.T) {
	t.Parallel()

	type Case struct {
		name   string
		height int
		expect int
	}
	cases := []Case{
		{"four-rows", 32, 1},
		{"two-rows", 16, 0},
	}
	for _, c := range cases {
		fb := oled.NewFramebuffer(oled.DefaultWidth, c.height)
		task := NewTask(log2.NewTest(t, log2.LDebug), layer.NewController(layer.Count), &layer.Default, oled.NewConsole(fb), nil)
		task.SetFeed(&mockFeed{line: "LIVE | No Media"})
		task.OnTick()
		assert.Equal(t, c.expect, task.FeedWrites(), c.name)
		if c.expect != 0 {
			// "L" at row 3 column 0
			assert.True(t, fb.Pixel(0, 24), c.name)
			// text region stays left of overlay
			assert.False(t, fb.Pixel(96, 30), c.name)
		}
	}
}
