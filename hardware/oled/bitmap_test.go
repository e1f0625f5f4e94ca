package oled

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/temoto/macropad/hardware/glyph"
)

type pageWrite struct {
	page, column int
	b            byte
}

func (self pageWrite) String() string {
	return fmt.Sprintf("(%d,%d)=%02x", self.page, self.column, self.b)
}

type mockPager struct {
	width, height int
	writes        []pageWrite
}

func (self *mockPager) Width() int  { return self.width }
func (self *mockPager) Height() int { return self.height }
func (self *mockPager) WritePage(page, column int, b byte) {
	self.writes = append(self.writes, pageWrite{page, column, b})
}

func TestWriteBitmap(t *testing.T) {
	t.Parallel()

	type Case struct {
		name   string
		x, y   int
		cols   []byte
		expect []pageWrite
	}
	cases := []Case{
		{"aligned", 0, 0, []byte{0x7f, 0x01},
			[]pageWrite{{0, 0, 0x7f}, {0, 1, 0x01}}},
		{"aligned-page1", 3, 8, []byte{0x41},
			[]pageWrite{{1, 3, 0x41}}},
		{"mask-bit7", 0, 0, []byte{0xff, 0x80},
			[]pageWrite{{0, 0, 0x7f}, {0, 1, 0x00}}},
		{"shift3", 10, 3, []byte{0x7f},
			[]pageWrite{{0, 10, 0xf8}, {1, 10, 0x03}}},
		{"shift1", 0, 1, []byte{0x7f},
			[]pageWrite{{0, 0, 0xfe}, {1, 0, 0x00}}},
		{"shift7", 0, 7, []byte{0x7f, 0x01},
			[]pageWrite{{0, 0, 0x80}, {1, 0, 0x3f}, {0, 1, 0x80}, {1, 1, 0x00}}},
		{"last-page-no-overflow", 0, 28, []byte{0x7f},
			[]pageWrite{{3, 0, 0xf0}}},
		{"clip-right", 126, 0, []byte{1, 2, 3, 4, 5},
			[]pageWrite{{0, 126, 1}, {0, 127, 2}}},
		{"x-at-width", 128, 0, []byte{0x7f}, nil},
		{"y-at-height", 0, 32, []byte{0x7f}, nil},
		{"negative-x", -1, 0, []byte{0x7f}, nil},
		{"negative-y", 0, -8, []byte{0x7f}, nil},
		{"empty", 0, 0, nil, nil},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			p := &mockPager{width: 128, height: 32}
			WriteBitmap(p, c.x, c.y, c.cols)
			assert.Equal(t, c.expect, p.writes)
		})
	}
}

func TestWriteGlyphShiftBytes(t *testing.T) {
	t.Parallel()

	g := glyph.For('A')
	for y := 0; y < 24; y++ {
		p := &mockPager{width: 128, height: 32}
		WriteGlyph(p, 0, y, g)
		page, shift := y/8, uint(y%8)
		expect := make([]pageWrite, 0, 2*glyph.Width)
		for i, col := range g {
			expect = append(expect, pageWrite{page, i, byte(col << shift)})
			if shift != 0 {
				expect = append(expect, pageWrite{page + 1, i, col >> (8 - shift)})
			}
		}
		assert.Equal(t, expect, p.writes, "y=%d", y)
	}
}

func TestDrawText(t *testing.T) {
	t.Parallel()

	type Case struct {
		s      string
		x      int
		expect int
	}
	cases := []Case{
		{"", 0, 0},
		{"A", 0, 6},
		{"KNOB VOLUME", 0, 66},
		{"a 1!", 10, 34},
		{"ЖЖ", 0, 12},
		{"FAR OFF SCREEN TEXT WILL STILL ADVANCE", 100, 100 + 6*38},
	}
	for _, c := range cases {
		p := &mockPager{width: 128, height: 32}
		assert.Equal(t, c.expect, DrawText(p, c.x, 12, c.s), c.s)
		assert.Equal(t, c.expect-c.x, TextWidth(c.s), c.s)
	}
}

func TestDrawTextBlankOverwrites(t *testing.T) {
	t.Parallel()

	fb := NewFramebuffer(DefaultWidth, DefaultHeight)
	DrawText(fb, 0, 0, "MM")
	assert.NotEqual(t, byte(0), fb.Page(0, 6))
	DrawText(fb, 0, 0, "M ")
	for i := 0; i < glyph.Width; i++ {
		assert.Equal(t, byte(0), fb.Page(0, 6+i), "column=%d", 6+i)
	}
	assert.Equal(t, byte(0x7f), fb.Page(0, 0))
}
