package keycode

import (
	"fmt"
	"strconv"
	"strings"
)

var names = map[Code]string{
	No:          "KC_NO",
	Transparent: "KC_TRNS",
	Enter:       "KC_ENT",
	Escape:      "KC_ESC",
	Backspace:   "KC_BSPC",
	Tab:         "KC_TAB",
	Space:       "KC_SPC",
	Quote:       "KC_QUOT",
	Home:        "KC_HOME",
	PageUp:      "KC_PGUP",
	End:         "KC_END",
	PageDown:    "KC_PGDN",
	Right:       "KC_RGHT",
	Left:        "KC_LEFT",
	Down:        "KC_DOWN",
	Up:          "KC_UP",
	LeftCtrl:    "KC_LCTL",
	LeftShift:   "KC_LSFT",
	LeftAlt:     "KC_LALT",
	LeftGui:     "KC_LGUI",
	RightGui:    "KC_RGUI",

	AudioMute:      "KC_MUTE",
	VolumeUp:       "KC_VOLU",
	VolumeDown:     "KC_VOLD",
	MediaNext:      "KC_MNXT",
	MediaPrev:      "KC_MPRV",
	MediaStop:      "KC_MSTP",
	MediaPlay:      "KC_MPLY",
	BrightnessUp:   "KC_BRIU",
	BrightnessDown: "KC_BRID",
	WheelUp:        "MS_WHLU",
	WheelDown:      "MS_WHLD",

	LayerCycle: "LYR_CYC",
	VimCopy:    "VIM_CPY",
	VimPaste:   "VIM_PST",
}

var modNames = [...]struct {
	bit  Code
	name string
}{
	{modCtrl, "C"},
	{modShift, "S"},
	{modAlt, "A"},
	{modGui, "G"},
}

var byName map[string]Code

func init() {
	byName = make(map[string]Code, len(names)+36)
	for c, n := range names {
		byName[n] = c
	}
	for c := A; c <= Z; c++ {
		byName[basicName(c)] = c
	}
	for c := One; c <= Zero; c++ {
		byName[basicName(c)] = c
	}
}

func basicName(c Code) string {
	if n, ok := names[c]; ok {
		return n
	}
	switch {
	case c >= A && c <= Z:
		return "KC_" + string(rune('A'+c-A))
	case c >= One && c <= Nine:
		return "KC_" + string(rune('1'+c-One))
	case c == Zero:
		return "KC_0"
	}
	return fmt.Sprintf("0x%04x", uint16(c))
}

// String formats code in QMK notation, e.g. KC_A, S(KC_QUOT), LYR_CYC.
func (c Code) String() string {
	if c.IsCustom() {
		if n, ok := names[c]; ok {
			return n
		}
		return fmt.Sprintf("USER%02d", uint16(c-User))
	}
	s := basicName(c.Basic())
	for i := len(modNames) - 1; i >= 0; i-- {
		if c&modNames[i].bit != 0 {
			s = modNames[i].name + "(" + s + ")"
		}
	}
	return s
}

// Parse accepts String() output and plain numbers.
func Parse(s string) (Code, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)
	if c, ok := byName[upper]; ok {
		return c, nil
	}
	if c, ok := byName["KC_"+upper]; ok {
		return c, nil
	}
	for _, m := range modNames {
		prefix := m.name + "("
		if strings.HasPrefix(upper, prefix) && strings.HasSuffix(upper, ")") {
			inner, err := Parse(s[len(prefix) : len(s)-1])
			if err != nil {
				return No, err
			}
			return m.bit | inner, nil
		}
	}
	if n, err := strconv.ParseUint(s, 0, 16); err == nil {
		return Code(n), nil
	}
	return No, fmt.Errorf("unknown keycode=%s", s)
}
