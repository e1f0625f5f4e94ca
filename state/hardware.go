package state

import (
	"github.com/juju/errors"
	"github.com/temoto/macropad/hardware/hid"
	"github.com/temoto/macropad/hardware/input"
	"github.com/temoto/macropad/hardware/oled"
	"github.com/temoto/macropad/hostfeed"
)

func (g *Global) initDisplay() error {
	cfg := &g.Config.Display
	g.Hardware.Framebuffer = oled.NewFramebuffer(cfg.Width, cfg.Height)
	g.Hardware.Console = oled.NewConsole(g.Hardware.Framebuffer)
	if !cfg.Enable {
		g.Log.Infof("display disabled")
		return nil
	}

	dev, err := oled.OpenSSD1306(g.Config.DisplayConfig())
	if err != nil {
		return errors.Annotatef(err, "config: display=%#v", *cfg)
	}
	g.Log.Debugf("display %s", dev.String())
	g.Hardware.Framebuffer.Attach(dev)
	g.Hardware.Display = dev
	return nil
}

func (g *Global) initHID() error {
	// This may only be already set by tests.
	if g.Hardware.HID != nil {
		return nil
	}

	logger := hid.LogReporter{Log: g.Log.Component("hid")}
	path := g.Config.Hid.Device
	if path == "" {
		g.Log.Infof("hid device not configured, keys are only logged")
		g.Hardware.HID = logger
		return nil
	}
	gadget, err := hid.OpenGadget(g.Log.Component("hid"), path)
	if err != nil {
		g.Hardware.HID = logger
		return errors.Annotate(err, "config: hid.device")
	}
	g.Hardware.HID = hid.Multi{gadget, logger}
	g.Hardware.hidCloser = gadget
	return nil
}

func (g *Global) initHostFeed() error {
	cfg := &g.Config.HostFeed
	if !cfg.Enable {
		g.Log.Infof("%s disabled", hostfeed.Tag)
		return nil
	}
	r, err := hostfeed.Open(cfg.Device)
	if err != nil {
		return errors.Annotatef(err, "config: host_feed.device=%s", cfg.Device)
	}
	g.Hardware.feedReader = r
	g.HostFeed = hostfeed.New(g.Log.Component(hostfeed.Tag))
	g.Status.SetFeed(g.HostFeed)
	return nil
}

func (g *Global) initInput() []error {
	errs := make([]error, 0)
	g.Hardware.Input = input.NewDispatch(g.Log.Component("input"), g.Alive.StopChan())
	g.Hardware.Input.SubscribeFunc("pad", g.Host.Handle, g.Alive.StopChan())

	// support more input sources here
	sources := make([]input.Source, 0, 2)

	devInput := &g.Config.Input.DevInputEvent
	if !devInput.Enable {
		g.Log.Infof("input=%s disabled", input.DevInputEventTag)
	} else {
		src, err := input.NewDevInputEventSource(devInput.Device, g.Config.InputKeys())
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "input=%s device=%s", input.DevInputEventTag, devInput.Device))
		} else {
			sources = append(sources, src)
		}
	}

	if !g.Config.Input.Encoder.Enable {
		g.Log.Infof("input=%s disabled", input.EncoderTag)
	} else {
		src, err := input.OpenEncoderSource(g.Log.Component("encoder"), g.Config.EncoderConfig())
		if err != nil {
			errs = append(errs, errors.Annotatef(err, "config: %#v", g.Config.Input.Encoder))
		} else {
			sources = append(sources, src)
		}
	}

	g.Hardware.sources = sources
	return errs
}
