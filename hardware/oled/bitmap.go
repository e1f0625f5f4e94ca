// Package oled renders text and bitmaps into paged monochrome framebuffer
// of SSD1306 style OLED and pushes it to device.
//
// Page is 8 pixel rows. Byte at (page, column) bit k is pixel row page*8+k.
package oled

import (
	"unicode/utf8"

	"github.com/temoto/macropad/hardware/glyph"
)

const PageHeight = 8

// Pager is write-only capability over paged framebuffer.
// Height is a multiple of PageHeight.
type Pager interface {
	Width() int
	Height() int
	WritePage(page, column int, b byte)
}

// WriteBitmap places 7 pixel tall columns with top-left at (x, y).
// Target bytes are overwritten, not merged. Columns beyond right edge and
// rows beyond last page are clipped. Origin outside screen writes nothing.
func WriteBitmap(p Pager, x, y int, cols []byte) {
	width, height := p.Width(), p.Height()
	if x < 0 || y < 0 || x >= width || y >= height {
		return
	}
	page, shift := y/PageHeight, uint(y%PageHeight)
	pages := height / PageHeight
	for i, col := range cols {
		column := x + i
		if column >= width {
			break
		}
		src := col & glyph.Mask
		p.WritePage(page, column, src<<shift)
		if shift != 0 && page+1 < pages {
			p.WritePage(page+1, column, src>>(PageHeight-shift))
		}
	}
}

func WriteGlyph(p Pager, x, y int, g glyph.Glyph) {
	WriteBitmap(p, x, y, g[:])
}

// DrawText renders s left to right with fixed advance, no wrapping.
// Returns x after last character.
func DrawText(p Pager, x, y int, s string) int {
	for _, r := range s {
		WriteGlyph(p, x, y, glyph.For(r))
		x += glyph.Advance
	}
	return x
}

// TextWidth is horizontal space DrawText takes for s.
func TextWidth(s string) int {
	return utf8.RuneCountInString(s) * glyph.Advance
}
