// Package mascot draws small cat at the right side of status screen.
// Paws hit the table while keys are being pressed.
package mascot

import (
	"image/color"
	"time"

	"github.com/temoto/macropad/helpers/atomic_clock"
	"github.com/temoto/macropad/keycode"
	"github.com/temoto/macropad/log2"
	"tinygo.org/x/drivers"
)

const (
	Size        = 32
	DefaultHold = 150 * time.Millisecond
)

// DefaultOrigin is top-left corner right after text region.
var DefaultOrigin = struct{ X, Y int16 }{96, 0}

// Frame is Size x Size bitmap, bit x of row y is pixel (x, y).
type Frame [Size]uint32

func (self *Frame) set(x, y int, on bool) {
	if on {
		self[y] |= 1 << uint(x)
	} else {
		self[y] &^= 1 << uint(x)
	}
}

func (self *Frame) On(x, y int) bool {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return false
	}
	return self[y]&(1<<uint(x)) != 0
}

var (
	PawsUp   = drawCat(false)
	PawsDown = drawCat(true)
)

func drawCat(down bool) Frame {
	var f Frame
	fill := func(x0, x1, y0, y1 int, on bool) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				f.set(x, y, on)
			}
		}
	}
	fill(4, 28, 10, 25, true) // head
	for x := 4; x < 10; x++ {
		f.set(x, 9, true)
		f.set(x+1, 8, true)
	}
	for x := 22; x < 28; x++ {
		f.set(x, 9, true)
		f.set(x-1, 8, true)
	}
	fill(10, 12, 15, 16, false) // eyes
	fill(20, 22, 15, 16, false)
	fill(0, Size, 25, 26, true) // table
	if down {
		fill(8, 14, 26, 28, true)
		fill(18, 24, 26, 28, true)
	} else {
		fill(6, 12, 18, 20, true)
		fill(20, 26, 18, 20, true)
	}
	return f
}

const (
	shownNone = iota
	shownUp
	shownDown
)

// Paws is status screen overlay. Pulse may be called from any goroutine,
// Render only from display owner.
type Paws struct {
	Log     *log2.Log
	display drivers.Displayer
	x, y    int16
	hold    time.Duration
	last    atomic_clock.Clock
	shown   int
	renders int

	now func() time.Time
}

func NewPaws(log *log2.Log, display drivers.Displayer, hold time.Duration) *Paws {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Paws{
		Log:     log,
		display: display,
		x:       DefaultOrigin.X,
		y:       DefaultOrigin.Y,
		hold:    hold,
		now:     time.Now,
	}
}

// Pulse registers physical key activity.
func (self *Paws) Pulse(c keycode.Code) {
	self.last.SetTime(self.now())
}

// Typing reports whether there was activity within hold period.
func (self *Paws) Typing() bool {
	return self.last.Age(self.now()) < self.hold
}

func (self *Paws) Frame() *Frame {
	if self.Typing() {
		return &PawsDown
	}
	return &PawsUp
}

// Render draws current frame when it changed or screen was cleared.
func (self *Paws) Render(cleared bool) {
	want := shownUp
	if self.Typing() {
		want = shownDown
	}
	if !cleared && want == self.shown {
		return
	}
	f := &PawsUp
	if want == shownDown {
		f = &PawsDown
	}
	self.draw(f)
	self.shown = want
	self.renders++
	self.Log.Debugf("mascot frame=%d cleared=%t", want, cleared)
}

// Renders counts frame draws.
func (self *Paws) Renders() int { return self.renders }

func (self *Paws) draw(f *Frame) {
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			c := color.RGBA{A: 0xff}
			if f.On(x, y) {
				c = color.RGBA{0xff, 0xff, 0xff, 0xff}
			}
			self.display.SetPixel(self.x+int16(x), self.y+int16(y), c)
		}
	}
}
