// Package pad glues input events, keymap and key processing together.
package pad

import (
	"sync"

	"github.com/temoto/macropad/hardware/hid"
	"github.com/temoto/macropad/hardware/input"
	"github.com/temoto/macropad/keycode"
	"github.com/temoto/macropad/keymap"
	"github.com/temoto/macropad/keyproc"
	"github.com/temoto/macropad/layer"
	"github.com/temoto/macropad/log2"
)

type Host struct {
	Log    *log2.Log
	mu     sync.Mutex
	keymap *keymap.Keymap
	layers *layer.Controller
	proc   *keyproc.Dispatcher
	out    hid.Reporter
	held   map[input.Key]keycode.Code
}

func NewHost(log *log2.Log, km *keymap.Keymap, layers *layer.Controller, proc *keyproc.Dispatcher, out hid.Reporter) *Host {
	return &Host{
		Log:    log,
		keymap: km,
		layers: layers,
		proc:   proc,
		out:    out,
		held:   make(map[input.Key]keycode.Code, keymap.Positions),
	}
}

// Handle is input.EventFunc.
func (self *Host) Handle(e input.Event) {
	self.mu.Lock()
	defer self.mu.Unlock()

	if e.Key.IsEncoder() {
		if e.Up {
			return
		}
		l := self.layers.Current()
		c := self.keymap.Encoder(l, e.Key == input.EncoderCW)
		self.process(c, true, l)
		self.process(c, false, l)
		return
	}

	l := self.layers.Current()
	var c keycode.Code
	if e.Up {
		var ok bool
		if c, ok = self.held[e.Key]; !ok {
			self.Log.Debugf("release without press %s", e)
			return
		}
		delete(self.held, e.Key)
	} else {
		c = self.keymap.Resolve(l, int(e.Key))
		if c == keycode.No {
			self.Log.Debugf("unmapped %s layer=%d", e, l)
			return
		}
		self.held[e.Key] = c
	}
	self.process(c, !e.Up, l)
}

// Tap delivers code as if a switch mapped to it on current layer was pressed and released.
func (self *Host) Tap(c keycode.Code) {
	self.mu.Lock()
	defer self.mu.Unlock()

	l := self.layers.Current()
	self.process(c, true, l)
	self.process(c, false, l)
}

func (self *Host) process(c keycode.Code, pressed bool, l layer.Index) {
	ke := keyproc.Event{Code: c, Pressed: pressed, Layer: l}
	r := self.proc.Process(ke)
	self.Log.Debugf("%s %s", ke, r)
	if r == keyproc.NotHandled && !c.IsCustom() {
		if pressed {
			self.out.Press(c)
		} else {
			self.out.Release(c)
		}
	}
}
