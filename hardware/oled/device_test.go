package oled

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/periph/conn/i2c/i2ctest"
)

func TestSSD1306Flush(t *testing.T) {
	t.Parallel()

	bus := &i2ctest.Record{}
	dev, err := newSSD1306(bus, Config{Rotated: true})
	require.NoError(t, err)
	initOps := len(bus.Ops)
	assert.NotZero(t, initOps)
	for _, op := range bus.Ops {
		assert.Equal(t, uint16(0x3c), op.Addr)
	}

	fb := NewFramebuffer(DefaultWidth, DefaultHeight)
	fb.Attach(&Device{dev: dev})
	DrawText(fb, 0, 0, "HELLO")
	require.NoError(t, fb.Flush())
	assert.True(t, len(bus.Ops) > initOps)
}

func TestSSD1306InvalidSize(t *testing.T) {
	t.Parallel()

	_, err := newSSD1306(&i2ctest.Record{}, Config{Width: 128, Height: 12})
	assert.Error(t, err)
}
