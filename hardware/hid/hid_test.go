package hid

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/temoto/macropad/keycode"
	"github.com/temoto/macropad/log2"
)

func TestRecorderTaps(t *testing.T) {
	t.Parallel()

	r := &Recorder{}
	Tap(r, keycode.Escape)
	Tap(r, keycode.DoubleQuote)
	taps, err := r.Taps()
	require.NoError(t, err)
	assert.Equal(t, []keycode.Code{keycode.Escape, keycode.DoubleQuote}, taps)
	assert.Equal(t, "+KC_ESC -KC_ESC +S(KC_QUOT) -S(KC_QUOT)", r.String())

	r.Press(keycode.A)
	_, err = r.Taps()
	assert.Error(t, err)
	r.Release(keycode.B)
	_, err = r.Taps()
	assert.Error(t, err)

	r.Reset()
	assert.Empty(t, r.Entries())
}

func TestMulti(t *testing.T) {
	t.Parallel()

	r1, r2 := &Recorder{}, &Recorder{}
	m := Multi{r1, LogReporter{Log: log2.NewTest(t, log2.LDebug)}, r2}
	Tap(m, keycode.Y)
	assert.Equal(t, r1.Entries(), r2.Entries())
	assert.Len(t, r1.Entries(), 2)
}

type failWriter struct{ n int }

func (self *failWriter) Write(b []byte) (int, error) {
	self.n++
	return 0, fmt.Errorf("endpoint shutdown")
}

func TestGadgetReports(t *testing.T) {
	t.Parallel()

	buf := bytes.NewBuffer(nil)
	g := NewGadget(log2.NewTest(t, log2.LDebug), buf)

	type Case struct {
		press  bool
		code   keycode.Code
		expect [ReportLength]byte
	}
	cases := []Case{
		{true, keycode.A, [ReportLength]byte{0, 0, 0x04}},
		{true, keycode.DoubleQuote, [ReportLength]byte{0x02, 0, 0x04, 0x34}},
		{false, keycode.A, [ReportLength]byte{0x02, 0, 0x34}},
		{false, keycode.DoubleQuote, [ReportLength]byte{}},
		{true, keycode.LeftGui, [ReportLength]byte{0x08}},
		{true, keycode.L, [ReportLength]byte{0x08, 0, 0x0f}},
		{false, keycode.LeftGui, [ReportLength]byte{0, 0, 0x0f}},
		{false, keycode.L, [ReportLength]byte{}},
		{true, keycode.LCtrl(keycode.C), [ReportLength]byte{0x01, 0, 0x06}},
		{false, keycode.LCtrl(keycode.C), [ReportLength]byte{}},
	}
	for i, c := range cases {
		buf.Reset()
		if c.press {
			g.Press(c.code)
		} else {
			g.Release(c.code)
		}
		assert.Equal(t, c.expect[:], buf.Bytes(), "step=%d %s", i, c.code)
		assert.Equal(t, c.expect, g.Report(), "step=%d %s", i, c.code)
	}
}

func TestGadgetSkipNonKeyboard(t *testing.T) {
	t.Parallel()

	buf := bytes.NewBuffer(nil)
	g := NewGadget(log2.NewTest(t, log2.LDebug), buf)
	for _, c := range []keycode.Code{keycode.VolumeUp, keycode.WheelDown, keycode.MediaPlay, keycode.LayerCycle} {
		Tap(g, c)
	}
	assert.Equal(t, 0, buf.Len())
}

func TestGadgetRollover(t *testing.T) {
	t.Parallel()

	g := NewGadget(log2.NewTest(t, log2.LDebug), bytes.NewBuffer(nil))
	var errs []error
	g.Log.SetErrorFunc(func(e error) { errs = append(errs, e) })
	for c := keycode.A; c <= keycode.G; c++ {
		g.Press(c)
	}
	assert.Len(t, errs, 1)
	assert.Equal(t, [ReportLength]byte{0, 0, 4, 5, 6, 7, 8, 9}, g.Report())
	g.Press(keycode.A)
	assert.Len(t, errs, 1, "repeated press is not rollover")
}

func TestGadgetWriteError(t *testing.T) {
	t.Parallel()

	w := &failWriter{}
	g := NewGadget(log2.NewTest(t, log2.LDebug), w)
	var errs []error
	g.Log.SetErrorFunc(func(e error) { errs = append(errs, e) })
	Tap(g, keycode.Space)
	assert.Equal(t, 2, w.n)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "endpoint shutdown")
}
