// Package hid delivers key codes to host computer.
package hid

import (
	"fmt"
	"strings"
	"sync"

	"github.com/temoto/macropad/keycode"
	"github.com/temoto/macropad/log2"
)

type Reporter interface {
	Press(c keycode.Code)
	Release(c keycode.Code)
}

// Tap is press immediately followed by release.
func Tap(r Reporter, c keycode.Code) {
	r.Press(c)
	r.Release(c)
}

type Entry struct {
	Code    keycode.Code
	Pressed bool
}

func (self Entry) String() string {
	if self.Pressed {
		return "+" + self.Code.String()
	}
	return "-" + self.Code.String()
}

// Recorder keeps everything reported, in order.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

var _ Reporter = &Recorder{}

func (self *Recorder) Press(c keycode.Code)   { self.add(Entry{Code: c, Pressed: true}) }
func (self *Recorder) Release(c keycode.Code) { self.add(Entry{Code: c}) }

func (self *Recorder) add(e Entry) {
	self.mu.Lock()
	self.entries = append(self.entries, e)
	self.mu.Unlock()
}

func (self *Recorder) Entries() []Entry {
	self.mu.Lock()
	defer self.mu.Unlock()
	return append([]Entry(nil), self.entries...)
}

// Taps returns codes of press+release pairs. Error if anything else was
// recorded.
func (self *Recorder) Taps() ([]keycode.Code, error) {
	es := self.Entries()
	if len(es)%2 != 0 {
		return nil, fmt.Errorf("odd entries=%d", len(es))
	}
	taps := make([]keycode.Code, 0, len(es)/2)
	for i := 0; i < len(es); i += 2 {
		p, r := es[i], es[i+1]
		if !p.Pressed || r.Pressed || p.Code != r.Code {
			return nil, fmt.Errorf("not a tap at %d: %s %s", i, p, r)
		}
		taps = append(taps, p.Code)
	}
	return taps, nil
}

func (self *Recorder) Reset() {
	self.mu.Lock()
	self.entries = nil
	self.mu.Unlock()
}

func (self *Recorder) String() string {
	es := self.Entries()
	ss := make([]string, len(es))
	for i, e := range es {
		ss[i] = e.String()
	}
	return strings.Join(ss, " ")
}

type LogReporter struct{ Log *log2.Log }

func (self LogReporter) Press(c keycode.Code)   { self.Log.Debugf("hid press %s", c) }
func (self LogReporter) Release(c keycode.Code) { self.Log.Debugf("hid release %s", c) }

// Multi fans out reports to all members.
type Multi []Reporter

func (self Multi) Press(c keycode.Code) {
	for _, r := range self {
		r.Press(c)
	}
}

func (self Multi) Release(c keycode.Code) {
	for _, r := range self {
		r.Release(c)
	}
}
