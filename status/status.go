// Package status keeps OLED status screen in sync with active layer.
package status

import (
	"github.com/temoto/macropad/layer"
	"github.com/temoto/macropad/log2"
)

const (
	LayerPrefix = "Layer:"
	PurposeX    = 0
	PurposeY    = 12

	// Host feed line is shown on base layer at console row below purpose.
	FeedLayer layer.Index = 0
	FeedRow               = 3
	// Console columns left of overlay region.
	TextCols = 16
)

// Screen is text output of OLED: character grid plus pixel positioned
// status font text.
type Screen interface {
	Clear()
	SetCursor(row, col uint8) bool
	Write(b []byte)
	DrawText(x, y int, s string) int
}

// Overlay owns part of screen outside text region.
type Overlay interface {
	Render(cleared bool)
}

// Feed provides host status line and its change counter.
type Feed interface {
	Line() (string, uint64)
}

const noLayer = -1

type Task struct {
	Log     *log2.Log
	layers  *layer.Controller
	table   *layer.Table
	screen  Screen
	overlay Overlay
	last    int
	redraws int

	feed        Feed
	feedVersion uint64
	feedWrites  int
}

// overlay may be nil.
func NewTask(log *log2.Log, layers *layer.Controller, table *layer.Table, screen Screen, overlay Overlay) *Task {
	return &Task{
		Log:     log,
		layers:  layers,
		table:   table,
		screen:  screen,
		overlay: overlay,
		last:    noLayer,
	}
}

// OnTick redraws layer text when active layer changed since last tick.
// Returns false: host still owns flushing framebuffer to device.
func (self *Task) OnTick() bool {
	current := self.layers.Current()
	cleared := false
	if int(current) != self.last {
		l := self.table.Get(current)
		self.screen.Clear()
		self.screen.SetCursor(0, 0)
		self.screen.Write([]byte(LayerPrefix + l.Label))
		self.screen.DrawText(PurposeX, PurposeY, l.Purpose)
		self.last = int(current)
		self.redraws++
		cleared = true
		self.Log.Debugf("status layer=%d label=%s", current, l.Label)
	}
	if self.feed != nil && current == FeedLayer {
		line, version := self.feed.Line()
		if cleared || version != self.feedVersion {
			self.writeFeed(line)
			self.feedVersion = version
		}
	}
	if self.overlay != nil {
		self.overlay.Render(cleared)
	}
	return false
}

// SetFeed enables host status line, nil disables.
func (self *Task) SetFeed(f Feed) {
	self.feed = f
	self.Invalidate()
}

// FeedWrites counts host status line draws.
func (self *Task) FeedWrites() int { return self.feedWrites }

// writeFeed draws ASCII line padded to TextCols, overwriting previous one.
func (self *Task) writeFeed(line string) {
	if !self.screen.SetCursor(FeedRow, 0) {
		return
	}
	b := make([]byte, 0, TextCols)
	for _, r := range line {
		if len(b) == TextCols {
			break
		}
		if r < 0x20 || r > 0x7e {
			r = '?'
		}
		b = append(b, byte(r))
	}
	for len(b) < TextCols {
		b = append(b, ' ')
	}
	self.screen.Write(b)
	self.feedWrites++
}

func (self *Task) Redraws() int { return self.redraws }

// Invalidate forces full redraw on next tick.
func (self *Task) Invalidate() { self.last = noLayer }
