package oled

import (
	"fmt"
	"image/color"

	"github.com/temoto/macropad/hardware/glyph"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	CellWidth  = glyph.Advance
	CellHeight = PageHeight
)

// Console is fixed character grid with cursor, like text mode of
// OLED firmware libraries. Each cell fully overwrites its 6x8 pixels.
type Console struct {
	fb   *Framebuffer
	rows uint8
	cols uint8
	row  uint8
	col  uint8
}

// NewConsole panics unless framebuffer fits 1..255 rows and columns.
func NewConsole(fb *Framebuffer) *Console {
	rows, cols := fb.Height()/CellHeight, fb.Width()/CellWidth
	if rows < 1 || rows > 0xff || cols < 1 || cols > 0xff {
		panic(fmt.Sprintf("code error oled.NewConsole framebuffer=%dx%d grid=%dx%d", fb.Width(), fb.Height(), cols, rows))
	}
	return &Console{
		fb:   fb,
		rows: uint8(rows),
		cols: uint8(cols),
	}
}

func (self *Console) Rows() uint8 { return self.rows }
func (self *Console) Cols() uint8 { return self.cols }

// Cursor returns current row, col.
func (self *Console) Cursor() (uint8, uint8) { return self.row, self.col }

func (self *Console) Clear() {
	self.fb.Clear()
	self.row, self.col = 0, 0
}

func (self *Console) SetCursor(row, col uint8) bool {
	if row >= self.rows || col >= self.cols {
		return false
	}
	self.row, self.col = row, col
	return true
}

// Write draws bytes at cursor. Newline moves to next row start.
// Cursor wraps to next row and from last row back to first.
func (self *Console) Write(b []byte) {
	for _, c := range b {
		if c == '\n' {
			for self.col != 0 {
				self.put(' ')
			}
			continue
		}
		self.put(rune(c))
	}
}

func (self *Console) WriteString(s string) { self.Write([]byte(s)) }

// DrawText renders status font text at pixel position, outside of grid.
func (self *Console) DrawText(x, y int, s string) int {
	return DrawText(self.fb, x, y, s)
}

func (self *Console) put(r rune) {
	x := int16(self.col) * CellWidth
	baseline := int16(self.row)*CellHeight + CellHeight - 1
	tinyfont.DrawChar(self.fb, consoleFont, x, baseline, r, On)
	self.col++
	if self.col >= self.cols {
		self.col = 0
		self.row = (self.row + 1) % self.rows
	}
}

var consoleFont tinyfont.Fonter = &asciiFont{}

// asciiFont draws whole 6x8 cell including background.
// Not safe for concurrent use due to glyph reuse.
type asciiFont struct {
	g cell
}

type cell struct {
	r rune
}

func (self *asciiFont) GetYAdvance() uint8 { return CellHeight }

func (self *asciiFont) GetGlyph(r rune) tinyfont.Glypher {
	self.g.r = r
	return &self.g
}

// Draw uses y as baseline, bottom row of cell.
func (self *cell) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	g, _ := glyph.ASCII(self.r)
	for row := int16(0); row < CellHeight; row++ {
		for col := int16(0); col < CellWidth; col++ {
			px := Off
			if g.On(int(col), int(row)) {
				px = c
			}
			display.SetPixel(x+col, y-(CellHeight-1-row), px)
		}
	}
}

func (self *cell) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     self.r,
		Width:    CellWidth,
		Height:   CellHeight,
		XAdvance: CellWidth,
		XOffset:  0,
		YOffset:  -(CellHeight - 1),
	}
}
