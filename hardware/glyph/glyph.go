// Package glyph is fixed pitch 5x7 bitmap font.
//
// Glyph is 5 columns, one byte per column, bit 0 is top row, bit 6 bottom.
// Bit 7 is never part of the glyph and masked off by renderers.
package glyph

const (
	Width   = 5
	Height  = 7
	Advance = Width + 1
	Mask    = 0x7f
)

type Glyph [Width]byte

// Blank is what space and every unsupported character renders as.
var Blank Glyph

// For returns status font glyph: letters only, case folded.
// Everything else is Blank.
func For(r rune) Glyph {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r >= 'A' && r <= 'Z' {
		return ascii[r-first]
	}
	return Blank
}

// ASCII returns glyph from full printable ASCII table, used by console.
func ASCII(r rune) (Glyph, bool) {
	if r < first || r > last {
		return Blank, false
	}
	return ascii[r-first], true
}

// Column returns column i masked to glyph height, 0 outside glyph.
func (g Glyph) Column(i int) byte {
	if i < 0 || i >= Width {
		return 0
	}
	return g[i] & Mask
}

// On reports pixel at column x, row y.
func (g Glyph) On(x, y int) bool {
	if y < 0 || y >= Height {
		return false
	}
	return g.Column(x)&(1<<uint(y)) != 0
}

func (g Glyph) String() string {
	buf := make([]byte, 0, Height*(Width+1))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if g.On(x, y) {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
