package hid

import (
	"io"
	"os"
	"sync"

	"github.com/juju/errors"
	"github.com/temoto/macropad/keycode"
	"github.com/temoto/macropad/log2"
)

const (
	ReportLength = 8
	rollover     = 6
)

// Gadget writes boot keyboard reports to Linux USB gadget HID function,
// usually /dev/hidg0. Media, brightness and mouse wheel usages are not part
// of boot keyboard report and skipped.
type Gadget struct {
	Log *log2.Log

	mu   sync.Mutex
	w    io.Writer
	mods byte
	keys [rollover]byte
}

var _ Reporter = &Gadget{}

func NewGadget(log *log2.Log, w io.Writer) *Gadget {
	return &Gadget{Log: log, w: w}
}

func OpenGadget(log *log2.Log, path string) (*Gadget, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, errors.Annotatef(err, "hid gadget open %s", path)
	}
	return NewGadget(log, f), nil
}

func (self *Gadget) Press(c keycode.Code) {
	if !c.IsKeyboard() {
		self.Log.Debugf("hid skip non keyboard usage %s", c)
		return
	}
	self.mu.Lock()
	defer self.mu.Unlock()
	b := byte(c.Basic())
	if c.IsModifier() {
		self.mods |= modBit(b)
	} else {
		self.mods |= c.Mods()
		if !self.addKey(b) {
			self.Log.Errorf("hid rollover, dropped %s", c)
		}
	}
	self.send()
}

func (self *Gadget) Release(c keycode.Code) {
	if !c.IsKeyboard() {
		return
	}
	self.mu.Lock()
	defer self.mu.Unlock()
	b := byte(c.Basic())
	if c.IsModifier() {
		self.mods &^= modBit(b)
	} else {
		self.mods &^= c.Mods()
		self.removeKey(b)
	}
	self.send()
}

// Report returns current 8 byte report: modifiers, reserved, 6 keys.
func (self *Gadget) Report() [ReportLength]byte {
	self.mu.Lock()
	defer self.mu.Unlock()
	return self.report()
}

func (self *Gadget) Close() error {
	if c, ok := self.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (self *Gadget) report() [ReportLength]byte {
	r := [ReportLength]byte{self.mods}
	copy(r[2:], self.keys[:])
	return r
}

func (self *Gadget) send() {
	r := self.report()
	if _, err := self.w.Write(r[:]); err != nil {
		self.Log.Error(errors.Annotate(err, "hid write"))
	}
}

func (self *Gadget) addKey(b byte) bool {
	for _, k := range self.keys {
		if k == b {
			return true
		}
	}
	for i, k := range self.keys {
		if k == 0 {
			self.keys[i] = b
			return true
		}
	}
	return false
}

func (self *Gadget) removeKey(b byte) {
	for i, k := range self.keys {
		if k == b {
			copy(self.keys[i:], self.keys[i+1:])
			self.keys[rollover-1] = 0
			return
		}
	}
}

func modBit(usage byte) byte {
	return 1 << (usage - byte(keycode.LeftCtrl))
}
