package state

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/temoto/macropad/hardware/input"
	"github.com/temoto/macropad/hardware/oled"
	"github.com/temoto/macropad/helpers"
	"github.com/temoto/macropad/log2"
	"github.com/temoto/macropad/mascot"
)

const (
	DefaultTickMs            = 50
	DefaultEncoderResolution = 2
)

type Config struct {
	// includeSeen contains absolute paths to prevent include loops
	includeSeen map[string]struct{}
	// only used for Unmarshal, do not access
	XXX_Include []ConfigSource `hcl:"include"`

	LogLevel string `hcl:"log_level"`
	TickMs   int    `hcl:"tick_ms"`

	Display struct {
		Enable  bool   `hcl:"enable"`
		I2CBus  string `hcl:"i2c_bus"`
		Width   int    `hcl:"width"`
		Height  int    `hcl:"height"`
		Rotated bool   `hcl:"rotated"`
	} `hcl:"display"`

	Input struct {
		DevInputEvent struct {
			Enable bool   `hcl:"enable"`
			Device string `hcl:"device"`
			// evdev key codes, index is switch position
			Keys []int `hcl:"keys"`
		} `hcl:"dev_input_event"`
		Encoder struct {
			Enable     bool   `hcl:"enable"`
			Chip       string `hcl:"chip"`
			PinA       int    `hcl:"pin_a"`
			PinB       int    `hcl:"pin_b"`
			Resolution int    `hcl:"resolution"`
		} `hcl:"encoder"`
	} `hcl:"input"`

	Hid struct {
		Device string `hcl:"device"`
	} `hcl:"hid"`

	Mascot struct {
		Enable bool `hcl:"enable"`
		HoldMs int  `hcl:"hold_ms"`
	} `hcl:"mascot"`

	// status records from PC companion program
	HostFeed struct {
		Enable bool `hcl:"enable"`
		// serial device or "-" for stdin
		Device string `hcl:"device"`
	} `hcl:"host_feed"`

	_copy_guard sync.Mutex //nolint:unused
}

type ConfigSource struct {
	Name     string `hcl:"name,key"`
	Optional bool   `hcl:"optional"`
}

func (c *Config) Tick() time.Duration {
	return helpers.IntMillisecondDefault(c.TickMs, DefaultTickMs*time.Millisecond)
}

func (c *Config) MascotHold() time.Duration {
	return helpers.IntMillisecondDefault(c.Mascot.HoldMs, mascot.DefaultHold)
}

func (c *Config) Level() log2.Level {
	l, _ := log2.ParseLevel(c.LogLevel)
	return l
}

func (c *Config) DisplayConfig() oled.Config {
	return oled.Config{
		Bus:     c.Display.I2CBus,
		Width:   c.Display.Width,
		Height:  c.Display.Height,
		Rotated: c.Display.Rotated,
	}
}

func (c *Config) EncoderConfig() input.EncoderConfig {
	e := &c.Input.Encoder
	return input.EncoderConfig{
		Chip:       e.Chip,
		PinA:       uint32(e.PinA),
		PinB:       uint32(e.PinB),
		Resolution: e.Resolution,
	}
}

func (c *Config) InputKeys() []uint16 {
	keys := make([]uint16, len(c.Input.DevInputEvent.Keys))
	for i, k := range c.Input.DevInputEvent.Keys {
		keys[i] = uint16(k)
	}
	return keys
}

// validate fills defaults and checks values.
func (c *Config) validate() []error {
	errs := make([]error, 0)
	if _, err := log2.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, errors.NotValidf("config: log_level=%s", c.LogLevel))
	}
	if c.TickMs == 0 {
		c.TickMs = DefaultTickMs
	} else if c.TickMs < 0 {
		errs = append(errs, errors.NotValidf("config: tick_ms=%d", c.TickMs))
	}

	if c.Display.Width == 0 {
		c.Display.Width = oled.DefaultWidth
	}
	if c.Display.Height == 0 {
		c.Display.Height = oled.DefaultHeight
	}
	if c.Display.Width < oled.CellWidth || c.Display.Width > oled.MaxWidth {
		errs = append(errs, errors.NotValidf("config: display.width=%d must be in %d..%d", c.Display.Width, oled.CellWidth, oled.MaxWidth))
	}
	if c.Display.Height < 0 || c.Display.Height > oled.MaxHeight || c.Display.Height%oled.PageHeight != 0 {
		errs = append(errs, errors.NotValidf("config: display.height=%d must be multiple of %d up to %d", c.Display.Height, oled.PageHeight, oled.MaxHeight))
	}

	if c.Input.DevInputEvent.Enable && c.Input.DevInputEvent.Device == "" {
		errs = append(errs, errors.NotValidf("config: input.dev_input_event.device=empty"))
	}
	for _, k := range c.Input.DevInputEvent.Keys {
		if k <= 0 || k > 0xffff {
			errs = append(errs, errors.NotValidf("config: input.dev_input_event.keys code=%d", k))
		}
	}
	if c.Input.Encoder.Resolution == 0 {
		c.Input.Encoder.Resolution = DefaultEncoderResolution
	}
	if c.Input.Encoder.Enable {
		e := &c.Input.Encoder
		if e.Chip == "" {
			errs = append(errs, errors.NotValidf("config: input.encoder.chip=empty"))
		}
		if e.PinA < 0 || e.PinB < 0 || e.PinA == e.PinB {
			errs = append(errs, errors.NotValidf("config: input.encoder pin_a=%d pin_b=%d", e.PinA, e.PinB))
		}
		if e.Resolution < 0 {
			errs = append(errs, errors.NotValidf("config: input.encoder.resolution=%d", e.Resolution))
		}
	}

	if c.HostFeed.Enable && c.HostFeed.Device == "" {
		errs = append(errs, errors.NotValidf("config: host_feed.device=empty"))
	}

	if c.Mascot.HoldMs == 0 {
		c.Mascot.HoldMs = int(mascot.DefaultHold / time.Millisecond)
	} else if c.Mascot.HoldMs < 0 {
		errs = append(errs, errors.NotValidf("config: mascot.hold_ms=%d", c.Mascot.HoldMs))
	}
	return errs
}

func (c *Config) read(log *log2.Log, fs FullReader, source ConfigSource, errs *[]error) {
	norm := fs.Normalize(source.Name)
	if _, ok := c.includeSeen[norm]; ok {
		log.Fatalf("config duplicate source=%s", source.Name)
	} else {
		log.Debugf("config reading source='%s' path=%s", source.Name, norm)
	}
	c.includeSeen[source.Name] = struct{}{}
	c.includeSeen[norm] = struct{}{}

	bs, err := fs.ReadAll(norm)
	if bs == nil && err == nil {
		if !source.Optional {
			err = errors.NotFoundf("config required name=%s path=%s", source.Name, norm)
			*errs = append(*errs, err)
			return
		}
	}
	if err != nil {
		*errs = append(*errs, errors.Annotatef(err, "config source=%s", source.Name))
		return
	}

	err = hcl.Unmarshal(bs, c)
	if err != nil {
		err = errors.Annotatef(err, "config unmarshal source=%s content='%s'", source.Name, string(bs))
		*errs = append(*errs, err)
		return
	}

	var includes []ConfigSource
	includes, c.XXX_Include = c.XXX_Include, nil
	for _, include := range includes {
		includeNorm := fs.Normalize(include.Name)
		if _, ok := c.includeSeen[includeNorm]; ok {
			err = errors.Errorf("config include loop: from=%s include=%s", source.Name, include.Name)
			*errs = append(*errs, err)
			continue
		}
		c.read(log, fs, include, errs)
	}
}

func ReadConfig(log *log2.Log, fs FullReader, names ...string) (*Config, error) {
	if len(names) == 0 {
		log.Fatal("code error [Must]ReadConfig() without names")
	}

	if osfs, ok := fs.(*OsFullReader); ok {
		dir, name := filepath.Split(names[0])
		osfs.SetBase(dir)
		names[0] = name
	}
	c := &Config{
		includeSeen: make(map[string]struct{}),
	}
	errs := make([]error, 0, 8)
	for _, name := range names {
		c.read(log, fs, ConfigSource{Name: name}, &errs)
	}
	if len(errs) == 0 {
		errs = c.validate()
	}
	return c, helpers.FoldErrors(errs)
}

func MustReadConfig(log *log2.Log, fs FullReader, names ...string) *Config {
	c, err := ReadConfig(log, fs, names...)
	if err != nil {
		log.Fatal(errors.ErrorStack(err))
	}
	return c
}
