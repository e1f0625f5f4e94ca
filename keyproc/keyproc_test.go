package keyproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/macropad/hardware/hid"
	"github.com/temoto/macropad/keycode"
	"github.com/temoto/macropad/layer"
	"github.com/temoto/macropad/log2"
)

type mockPulser struct {
	codes []keycode.Code
	// snapshot of reporter length at pulse time
	outLen []int
	out    *hid.Recorder
}

func (self *mockPulser) Pulse(c keycode.Code) {
	self.codes = append(self.codes, c)
	if self.out != nil {
		self.outLen = append(self.outLen, len(self.out.Entries()))
	}
}

func newTestDispatcher(t testing.TB) (*Dispatcher, *layer.Controller, *hid.Recorder, *mockPulser) {
	layers := layer.NewController(layer.Count)
	out := &hid.Recorder{}
	p := &mockPulser{out: out}
	return NewDispatcher(log2.NewTest(t, log2.LDebug), layers, out, p), layers, out, p
}

func TestLayerCycle(t *testing.T) {
	t.Parallel()

	d, layers, out, p := newTestDispatcher(t)
	for i := 1; i <= 2*layer.Count; i++ {
		r := d.Process(Event{Code: keycode.LayerCycle, Pressed: true, Layer: layers.Current()})
		assert.Equal(t, Handled, r)
		assert.Equal(t, layer.Index(i%layer.Count), layers.Current())
	}
	assert.Empty(t, out.Entries())
	assert.Len(t, p.codes, 2*layer.Count)
}

func TestMacros(t *testing.T) {
	t.Parallel()

	type Case struct {
		code   keycode.Code
		expect []keycode.Code
	}
	cases := []Case{
		{keycode.VimCopy, []keycode.Code{keycode.Escape, keycode.LShift(keycode.Quote), keycode.LShift(keycode.Eight), keycode.Y}},
		{keycode.VimPaste, []keycode.Code{keycode.Escape, keycode.LShift(keycode.Quote), keycode.LShift(keycode.Eight), keycode.P}},
	}
	for _, c := range cases {
		d, layers, out, p := newTestDispatcher(t)
		r := d.Process(Event{Code: c.code, Pressed: true, Layer: 2})
		assert.Equal(t, Handled, r, c.code.String())
		taps, err := out.Taps()
		require.NoError(t, err)
		assert.Equal(t, c.expect, taps, c.code.String())
		assert.Equal(t, []keycode.Code{c.code}, p.codes)
		assert.Equal(t, []int{0}, p.outLen, "pulse must fire before macro output")
		assert.Equal(t, layer.Index(0), layers.Current())
	}
}

func TestReleaseIgnored(t *testing.T) {
	t.Parallel()

	for _, c := range []keycode.Code{keycode.LayerCycle, keycode.VimCopy, keycode.VimPaste, keycode.A, keycode.VolumeUp} {
		d, layers, out, p := newTestDispatcher(t)
		assert.Equal(t, NotHandled, d.Process(Event{Code: c}), c.String())
		assert.Equal(t, layer.Index(0), layers.Current())
		assert.Empty(t, out.Entries())
		assert.Empty(t, p.codes)
	}
}

func TestDefaultCodes(t *testing.T) {
	t.Parallel()

	type Case struct {
		code  keycode.Code
		pulse bool
	}
	cases := []Case{
		{keycode.A, true},
		{keycode.LGui(keycode.L), true},
		{keycode.MediaPlay, true},
		{keycode.LCtrl(keycode.V), true},
		{keycode.User + 10, true},
		{keycode.VolumeUp, false},
		{keycode.VolumeDown, false},
		{keycode.BrightnessUp, false},
		{keycode.BrightnessDown, false},
		{keycode.WheelUp, false},
		{keycode.WheelDown, false},
	}
	for _, c := range cases {
		d, layers, out, p := newTestDispatcher(t)
		assert.Equal(t, NotHandled, d.Process(Event{Code: c.code, Pressed: true}), c.code.String())
		assert.Equal(t, c.pulse, len(p.codes) == 1, c.code.String())
		assert.Empty(t, out.Entries(), c.code.String())
		assert.Equal(t, layer.Index(0), layers.Current())
	}
}

func TestNilPulser(t *testing.T) {
	t.Parallel()

	out := &hid.Recorder{}
	d := NewDispatcher(nil, layer.NewController(layer.Count), out, nil)
	assert.Equal(t, Handled, d.Process(Event{Code: keycode.VimCopy, Pressed: true}))
	assert.Equal(t, NotHandled, d.Process(Event{Code: keycode.A, Pressed: true}))
	assert.Len(t, out.Entries(), 8)
}

func TestStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "press LYR_CYC layer=1", Event{Code: keycode.LayerCycle, Pressed: true, Layer: 1}.String())
	assert.Equal(t, "release KC_A layer=0", Event{Code: keycode.A}.String())
	assert.Equal(t, "handled", Handled.String())
	assert.Equal(t, "not-handled", NotHandled.String())
}
