package state

import (
	"testing"

	"github.com/temoto/macropad/hardware/hid"
	"github.com/temoto/macropad/log2"
)

// NewTestGlobal returns initialized Global with keys recorded instead of sent to host.
func NewTestGlobal(t testing.TB, confString string) (*Global, *hid.Recorder) {
	fs := NewMockFullReader(map[string]string{
		"test-inline": confString,
	})

	log := log2.NewTest(t, log2.LDebug)
	// log := log2.NewStderr(log2.LDebug) // useful with panics
	log.SetFlags(log2.LTestFlags)
	g := NewGlobal(log)
	rec := &hid.Recorder{}
	g.Hardware.HID = rec
	g.MustInit(MustReadConfig(log, fs, "test-inline"))
	return g, rec
}
