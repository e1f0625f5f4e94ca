package oled

import (
	"github.com/juju/errors"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/devices/ssd1306"
	"periph.io/x/periph/host"
)

type Config struct {
	Bus     string // empty for first available I2C bus
	Width   int
	Height  int
	Rotated bool
}

// Device is SSD1306 on I2C bus. Write accepts full GDDRAM frame.
type Device struct {
	bus i2c.BusCloser
	dev *ssd1306.Dev
}

func OpenSSD1306(c Config) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Annotate(err, "periph/init")
	}
	bus, err := i2creg.Open(c.Bus)
	if err != nil {
		return nil, errors.Annotatef(err, "i2c open bus=%s", c.Bus)
	}
	dev, err := newSSD1306(bus, c)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	return &Device{bus: bus, dev: dev}, nil
}

func newSSD1306(bus i2c.Bus, c Config) (*ssd1306.Dev, error) {
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Height%PageHeight != 0 {
		return nil, errors.NotValidf("ssd1306 height=%d", c.Height)
	}
	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{W: c.Width, H: c.Height, Rotated: c.Rotated})
	if err != nil {
		return nil, errors.Annotatef(err, "ssd1306 init %dx%d", c.Width, c.Height)
	}
	return dev, nil
}

func (self *Device) Write(frame []byte) (int, error) {
	return self.dev.Write(frame)
}

func (self *Device) String() string { return self.dev.String() }

func (self *Device) Close() error {
	err := self.dev.Halt()
	if errClose := self.bus.Close(); err == nil {
		err = errClose
	}
	return errors.Annotate(err, "ssd1306 close")
}
