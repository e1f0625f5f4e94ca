package input

import (
	"io"
	"os"

	"github.com/juju/errors"
	"github.com/temoto/inputevent-go"
)

const DevInputEventTag = "dev-input-event"

// DevInputEventSource reads Linux evdev key events, e.g. USB keypad or
// gpio-keys. Only configured scan codes produce events, position is index
// in keys list. Autorepeat is skipped.
type DevInputEventSource struct {
	f    io.ReadCloser
	keys map[uint16]Key
}

// compile-time interface compliance test
var _ Source = new(DevInputEventSource)

func (self *DevInputEventSource) String() string { return DevInputEventTag }

func NewDevInputEventSource(device string, keys []uint16) (*DevInputEventSource, error) {
	f, err := os.Open(device)
	if err != nil {
		return nil, errors.Annotate(err, DevInputEventTag)
	}
	return NewDevInputEventReader(f, keys), nil
}

func NewDevInputEventReader(r io.ReadCloser, keys []uint16) *DevInputEventSource {
	self := &DevInputEventSource{
		f:    r,
		keys: make(map[uint16]Key, len(keys)),
	}
	for i, code := range keys {
		self.keys[code] = Key(i)
	}
	return self
}

func (self *DevInputEventSource) Close() error { return self.f.Close() }

func (self *DevInputEventSource) Read() (Event, error) {
	for {
		ie, err := inputevent.ReadOne(self.f)
		if err != nil {
			return Event{}, err
		}
		if ie.Type != inputevent.EV_KEY || ie.Value == int32(inputevent.KeyStateHold) {
			continue
		}
		key, ok := self.keys[ie.Code]
		if !ok {
			continue
		}
		ev := Event{
			Source: DevInputEventTag,
			Key:    key,
			Up:     ie.Value == int32(inputevent.KeyStateUp),
		}
		return ev, nil
	}
}
