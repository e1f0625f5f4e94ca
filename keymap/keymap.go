// Package keymap is compiled in layout: what each switch position and
// encoder direction produces on each layer.
package keymap

import (
	"github.com/temoto/macropad/keycode"
	"github.com/temoto/macropad/layer"
)

// Positions is number of key switches.
const Positions = 10

type (
	Layer [Positions]keycode.Code
	Knob  [2]keycode.Code // counter-clockwise, clockwise
)

type Keymap struct {
	Keys  [layer.Count]Layer
	Knobs [layer.Count]Knob
}

var Default = Keymap{
	Keys: [layer.Count]Layer{
		// navigation
		{
			keycode.LayerCycle, keycode.LGui(keycode.L),
			keycode.Up, keycode.Down,
			keycode.PageUp, keycode.PageDown,
			keycode.Left, keycode.Right,
			keycode.Home, keycode.End,
		},
		// media + editing
		{
			keycode.Transparent, keycode.Transparent,
			keycode.MediaPrev, keycode.MediaPlay,
			keycode.MediaNext, keycode.LAlt(keycode.Space),
			keycode.LCtrl(keycode.C), keycode.LCtrl(keycode.V),
			keycode.LCtrl(keycode.X), keycode.LCtrl(keycode.Z),
		},
		// vim
		{
			keycode.Transparent, keycode.Transparent,
			keycode.MediaPrev, keycode.MediaPlay,
			keycode.MediaNext, keycode.LAlt(keycode.Space),
			keycode.J, keycode.K,
			keycode.VimPaste, keycode.VimCopy,
		},
		// tools
		{
			keycode.Transparent, keycode.Transparent,
			keycode.Transparent, keycode.Transparent,
			keycode.Transparent, keycode.Transparent,
			keycode.Transparent, keycode.Transparent,
			keycode.Transparent, keycode.Transparent,
		},
	},
	Knobs: [layer.Count]Knob{
		{keycode.WheelDown, keycode.WheelUp},
		{keycode.VolumeUp, keycode.VolumeDown},
		{keycode.VolumeUp, keycode.VolumeDown},
		{keycode.BrightnessUp, keycode.BrightnessDown},
	},
}

// Resolve returns code at position on layer.
// Transparent falls through to base layer.
func (self *Keymap) Resolve(l layer.Index, pos int) keycode.Code {
	if pos < 0 || pos >= Positions || int(l) >= len(self.Keys) {
		return keycode.No
	}
	c := self.Keys[l][pos]
	if c == keycode.Transparent {
		c = self.Keys[0][pos]
	}
	if c == keycode.Transparent {
		return keycode.No
	}
	return c
}

func (self *Keymap) Encoder(l layer.Index, clockwise bool) keycode.Code {
	if int(l) >= len(self.Knobs) {
		return keycode.No
	}
	if clockwise {
		return self.Knobs[l][1]
	}
	return self.Knobs[l][0]
}
