// Package keyproc intercepts custom key codes before default key handling.
package keyproc

import (
	"fmt"

	"github.com/temoto/macropad/hardware/hid"
	"github.com/temoto/macropad/keycode"
	"github.com/temoto/macropad/layer"
	"github.com/temoto/macropad/log2"
)

type Event struct {
	Code    keycode.Code
	Pressed bool
	Layer   layer.Index
}

func (self Event) String() string {
	action := "release"
	if self.Pressed {
		action = "press"
	}
	return fmt.Sprintf("%s %s layer=%d", action, self.Code, self.Layer)
}

type Result uint8

const (
	// NotHandled lets default processing deliver the key.
	NotHandled Result = iota
	Handled
)

func (self Result) String() string {
	switch self {
	case NotHandled:
		return "not-handled"
	case Handled:
		return "handled"
	}
	return fmt.Sprintf("Result(%d)", uint8(self))
}

// Pulser is told about every physical key press.
type Pulser interface {
	Pulse(c keycode.Code)
}

var (
	copySequence  = [...]keycode.Code{keycode.Escape, keycode.DoubleQuote, keycode.Asterisk, keycode.Y}
	pasteSequence = [...]keycode.Code{keycode.Escape, keycode.DoubleQuote, keycode.Asterisk, keycode.P}
)

type Dispatcher struct {
	Log      *log2.Log
	layers   *layer.Controller
	out      hid.Reporter
	activity Pulser
}

// activity may be nil.
func NewDispatcher(log *log2.Log, layers *layer.Controller, out hid.Reporter, activity Pulser) *Dispatcher {
	return &Dispatcher{
		Log:      log,
		layers:   layers,
		out:      out,
		activity: activity,
	}
}

func (self *Dispatcher) Process(e Event) Result {
	if !e.Pressed {
		return NotHandled
	}
	if self.activity != nil && !keycode.IsEncoderSynthesized(e.Code) {
		self.activity.Pulse(e.Code)
	}

	switch e.Code {
	case keycode.LayerCycle:
		self.layers.CycleNext()
		self.Log.Debugf("layer cycle %d -> %d", e.Layer, self.layers.Current())
		return Handled

	case keycode.VimCopy:
		self.Log.Debugf("vim copy to system clipboard")
		self.tapAll(copySequence[:])
		return Handled

	case keycode.VimPaste:
		self.Log.Debugf("vim paste from system clipboard")
		self.tapAll(pasteSequence[:])
		return Handled
	}
	return NotHandled
}

func (self *Dispatcher) tapAll(cs []keycode.Code) {
	for _, c := range cs {
		hid.Tap(self.out, c)
	}
}
