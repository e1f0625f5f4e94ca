package input

import (
	"time"

	"github.com/juju/errors"
	"github.com/temoto/gpio-cdev-go"
	"github.com/temoto/macropad/log2"
)

const EncoderTag = "encoder"

const encoderWait = time.Second

type EncoderConfig struct {
	Chip       string
	PinA       uint32
	PinB       uint32
	Resolution int // edges of A per step
}

// EncoderSource decodes quadrature rotary encoder. Every edge on line A
// samples line B: A != B is clockwise.
type EncoderSource struct {
	Log        *log2.Log
	chip       gpio.Chiper
	a          gpio.Eventer
	b          gpio.Lineser
	resolution int
	count      int
}

var _ Source = new(EncoderSource)

func (self *EncoderSource) String() string { return EncoderTag }

func OpenEncoderSource(log *log2.Log, c EncoderConfig) (*EncoderSource, error) {
	chip, err := gpio.Open(c.Chip, "macropad")
	if err != nil {
		return nil, errors.Annotatef(err, "%s gpio open chip=%s", EncoderTag, c.Chip)
	}
	self, err := NewEncoderSource(log, chip, c)
	if err != nil {
		_ = chip.Close()
		return nil, err
	}
	self.chip = chip
	return self, nil
}

func NewEncoderSource(log *log2.Log, chip gpio.Chiper, c EncoderConfig) (*EncoderSource, error) {
	if c.Resolution <= 0 {
		c.Resolution = 1
	}
	a, err := chip.GetLineEvent(c.PinA, gpio.GPIOHANDLE_REQUEST_INPUT, gpio.GPIOEVENT_REQUEST_BOTH_EDGES, "macropad-encoder-a")
	if err != nil {
		return nil, errors.Annotatef(err, "%s gpio line event pin=%d", EncoderTag, c.PinA)
	}
	b, err := chip.OpenLines(gpio.GPIOHANDLE_REQUEST_INPUT, "macropad-encoder-b", c.PinB)
	if err != nil {
		_ = a.Close()
		return nil, errors.Annotatef(err, "%s gpio open lines pin=%d", EncoderTag, c.PinB)
	}
	return &EncoderSource{
		Log:        log,
		a:          a,
		b:          b,
		resolution: c.Resolution,
	}, nil
}

func (self *EncoderSource) Close() error {
	err1 := self.a.Close()
	err2 := self.b.Close()
	if self.chip != nil {
		_ = self.chip.Close()
	}
	if err1 != nil {
		return errors.Annotate(err1, EncoderTag)
	}
	return errors.Annotate(err2, EncoderTag)
}

// Read blocks until encoder moved one full step.
func (self *EncoderSource) Read() (Event, error) {
	for {
		edge, err := self.a.Wait(encoderWait)
		if gpio.IsTimeout(err) {
			continue
		}
		if err != nil {
			return Event{}, errors.Annotate(err, EncoderTag)
		}
		levels, err := self.b.Read()
		if err != nil {
			return Event{}, errors.Annotate(err, EncoderTag)
		}
		a := edge.ID == gpio.GPIOEVENT_EVENT_RISING_EDGE
		b := levels.Values[0] != 0
		if a != b {
			self.count++
		} else {
			self.count--
		}
		switch {
		case self.count >= self.resolution:
			self.count = 0
			return Event{Source: EncoderTag, Key: EncoderCW}, nil
		case self.count <= -self.resolution:
			self.count = 0
			return Event{Source: EncoderTag, Key: EncoderCCW}, nil
		}
		self.Log.Debugf("%s count=%d", EncoderTag, self.count)
	}
}
