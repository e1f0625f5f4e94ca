package state

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/alive/v2"
	"github.com/temoto/macropad/hardware/hid"
	"github.com/temoto/macropad/hardware/input"
	"github.com/temoto/macropad/hardware/oled"
	"github.com/temoto/macropad/helpers"
	"github.com/temoto/macropad/hostfeed"
	"github.com/temoto/macropad/keymap"
	"github.com/temoto/macropad/keyproc"
	"github.com/temoto/macropad/layer"
	"github.com/temoto/macropad/log2"
	"github.com/temoto/macropad/mascot"
	"github.com/temoto/macropad/pad"
	"github.com/temoto/macropad/status"
)

type Global struct {
	Alive    *alive.Alive
	Config   *Config
	Hardware struct {
		Framebuffer *oled.Framebuffer
		Console     *oled.Console
		// nil when display is disabled
		Display io.WriteCloser
		// may be set before Init, e.g. hid.Recorder in tests
		HID   hid.Reporter
		Input *input.Dispatch

		hidCloser  io.Closer
		sources    []input.Source
		feedReader io.ReadCloser
	}
	Layers *layer.Controller
	Keymap *keymap.Keymap
	Keys   *keyproc.Dispatcher
	Host   *pad.Host
	// nil when host_feed is disabled
	HostFeed *hostfeed.Feed
	Log      *log2.Log
	Mascot   *mascot.Paws
	Status   *status.Task

	lk         sync.Mutex
	closeOnce  sync.Once
	errorCount uint32
}

func NewGlobal(log *log2.Log) *Global {
	if log == nil {
		panic("code error NewGlobal() log=nil")
	}
	return &Global{
		Alive: alive.NewAlive(),
		Log:   log,
	}
}

// If `Init` fails, consider `Global` is in broken state.
func (g *Global) Init(cfg *Config) error {
	g.lk.Lock()
	defer g.lk.Unlock()

	g.Config = cfg
	g.Log.SetLevel(cfg.Level())
	// before Component() calls, clones copy the hook
	g.Log.SetErrorFunc(func(error) { atomic.AddUint32(&g.errorCount, 1) })
	errs := make([]error, 0)

	g.Layers = layer.NewController(layer.Count)
	g.Keymap = &keymap.Default

	if err := g.initDisplay(); err != nil {
		errs = append(errs, err)
	}
	if err := g.initHID(); err != nil {
		errs = append(errs, err)
	}

	var pulser keyproc.Pulser
	var overlay status.Overlay
	if cfg.Mascot.Enable {
		g.Mascot = mascot.NewPaws(g.Log.Component("mascot"), g.Hardware.Framebuffer, cfg.MascotHold())
		pulser, overlay = g.Mascot, g.Mascot
	}
	g.Keys = keyproc.NewDispatcher(g.Log.Component("keys"), g.Layers, g.Hardware.HID, pulser)
	g.Host = pad.NewHost(g.Log.Component("pad"), g.Keymap, g.Layers, g.Keys, g.Hardware.HID)
	g.Status = status.NewTask(g.Log.Component("status"), g.Layers, &layer.Default, g.Hardware.Console, overlay)

	if err := g.initHostFeed(); err != nil {
		errs = append(errs, err)
	}
	errs = append(errs, g.initInput()...)
	return helpers.FoldErrors(errs)
}

func (g *Global) MustInit(cfg *Config) {
	err := g.Init(cfg)
	if err != nil {
		g.Log.Fatal(errors.ErrorStack(err))
	}
}

func (g *Global) Error(err error, args ...interface{}) {
	if err != nil {
		if len(args) != 0 {
			msg := args[0].(string)
			args = args[1:]
			err = errors.Annotatef(err, msg, args...)
		}
		g.Log.Errorf(errors.ErrorStack(err))
	}
}

// ErrorCount is number of errors logged by any component since Init.
func (g *Global) ErrorCount() uint32 { return atomic.LoadUint32(&g.errorCount) }

// Tick runs display task once and pushes frame to device.
func (g *Global) Tick() {
	if g.Status.OnTick() {
		return
	}
	g.Error(g.Hardware.Framebuffer.Flush())
}

// Run delivers input and ticks display until Alive is stopped.
func (g *Global) Run() {
	if g.Alive.Add(1) {
		go func() {
			defer g.Alive.Done()
			g.Hardware.Input.Run(g.Hardware.sources)
		}()
	}

	// not an Alive task, read from stdin can not be interrupted
	if g.HostFeed != nil {
		go func() {
			g.Error(g.HostFeed.Run(g.Hardware.feedReader, g.Alive.StopChan()))
		}()
	}

	tick := time.NewTicker(g.Config.Tick())
	defer tick.Stop()
	stopch := g.Alive.StopChan()
	g.Tick()
	for {
		select {
		case <-tick.C:
			g.Tick()
		case <-stopch:
			return
		}
	}
}

// Close releases devices. Display is cleared before release.
func (g *Global) Close() error {
	errs := make([]error, 0)
	g.closeOnce.Do(func() {
		for _, src := range g.Hardware.sources {
			if c, ok := src.(io.Closer); ok {
				if err := c.Close(); err != nil {
					errs = append(errs, errors.Annotatef(err, "input=%s", src.String()))
				}
			}
		}
		if g.Hardware.Display != nil {
			g.Hardware.Framebuffer.Clear()
			if err := g.Hardware.Framebuffer.Flush(); err != nil {
				errs = append(errs, err)
			}
			if err := g.Hardware.Display.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if g.Hardware.feedReader != nil {
			if err := g.Hardware.feedReader.Close(); err != nil {
				errs = append(errs, errors.Annotate(err, hostfeed.Tag))
			}
		}
		if g.Hardware.hidCloser != nil {
			if err := g.Hardware.hidCloser.Close(); err != nil {
				errs = append(errs, errors.Annotate(err, "hid"))
			}
		}
	})
	return helpers.FoldErrors(errs)
}
