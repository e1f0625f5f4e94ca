// Package keycode defines 16-bit key codes used by the keymap.
//
// Low byte is HID keyboard usage (or a pseudo usage for media, brightness
// and mouse wheel), bits 8-11 are left modifiers applied together with the
// key. Codes from User upward are custom commands handled by keyproc.
package keycode

type Code uint16

const (
	modCtrl  Code = 0x0100
	modShift Code = 0x0200
	modAlt   Code = 0x0400
	modGui   Code = 0x0800
	modMask  Code = 0x0f00
)

const (
	No          Code = 0x0000
	Transparent Code = 0x0001
)

// HID keyboard page usages.
const (
	A Code = 0x04 + iota
	B
	C
	D
	E
	F
	G
	H
	I
	J
	K
	L
	M
	N
	O
	P
	Q
	R
	S
	T
	U
	V
	W
	X
	Y
	Z
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Zero
	Enter
	Escape
	Backspace
	Tab
	Space
)

const (
	Quote    Code = 0x34
	Home     Code = 0x4a
	PageUp   Code = 0x4b
	End      Code = 0x4d
	PageDown Code = 0x4e
	Right    Code = 0x4f
	Left     Code = 0x50
	Down     Code = 0x51
	Up       Code = 0x52

	LeftCtrl  Code = 0xe0
	LeftShift Code = 0xe1
	LeftAlt   Code = 0xe2
	LeftGui   Code = 0xe3
	RightGui  Code = 0xe7
)

// Pseudo usages, not on HID keyboard page.
const (
	AudioMute      Code = 0xa8
	VolumeUp       Code = 0xa9
	VolumeDown     Code = 0xaa
	MediaNext      Code = 0xab
	MediaPrev      Code = 0xac
	MediaStop      Code = 0xad
	MediaPlay      Code = 0xae
	BrightnessUp   Code = 0xbd
	BrightnessDown Code = 0xbe
	WheelUp        Code = 0xd9
	WheelDown      Code = 0xda
)

// User is first custom command code.
const User Code = 0x7e40

const (
	LayerCycle Code = User + iota
	VimCopy
	VimPaste
)

const (
	DoubleQuote = modShift | Quote
	Asterisk    = modShift | Eight
)

func LCtrl(c Code) Code  { return modCtrl | c }
func LShift(c Code) Code { return modShift | c }
func LAlt(c Code) Code   { return modAlt | c }
func LGui(c Code) Code   { return modGui | c }

// Basic strips modifiers.
func (c Code) Basic() Code { return c & 0xff }

// Mods returns HID modifier byte bits (ctrl=0x01 shift=0x02 alt=0x04 gui=0x08).
func (c Code) Mods() byte {
	if c.IsCustom() {
		return 0
	}
	return byte((c & modMask) >> 8)
}

func (c Code) IsCustom() bool { return c >= User }

// IsKeyboard reports whether basic part is a HID keyboard page usage.
func (c Code) IsKeyboard() bool {
	if c.IsCustom() {
		return false
	}
	b := c.Basic()
	return (b >= A && b < AudioMute) || c.IsModifier()
}

func (c Code) IsModifier() bool {
	b := c.Basic()
	return !c.IsCustom() && b >= LeftCtrl && b <= RightGui
}

// Codes the host synthesizes from encoder rotation. They share namespace
// with regular keys, but are not physical key presses.
var encoderSynthesized = [...]Code{
	VolumeUp,
	VolumeDown,
	BrightnessUp,
	BrightnessDown,
	WheelUp,
	WheelDown,
}

func IsEncoderSynthesized(c Code) bool {
	for _, x := range encoderSynthesized {
		if c == x {
			return true
		}
	}
	return false
}
