package oled

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/juju/errors"
	"periph.io/x/periph/devices/ssd1306/image1bit"
	"tinygo.org/x/drivers"
)

const (
	DefaultWidth  = 128
	DefaultHeight = 32
	// SSD1306 GDDRAM size
	MaxWidth  = 128
	MaxHeight = 64
)

var (
	On  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	Off = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

// Framebuffer is host side copy of OLED GDDRAM.
// Not safe for concurrent use, owner goroutine writes and flushes.
type Framebuffer struct {
	img   *image1bit.VerticalLSB
	dev   io.Writer
	dirty bool
}

var _ Pager = &Framebuffer{}
var _ drivers.Displayer = &Framebuffer{}

func NewFramebuffer(width, height int) *Framebuffer {
	if width <= 0 || height <= 0 || height%PageHeight != 0 {
		panic(fmt.Sprintf("code error oled.NewFramebuffer width=%d height=%d", width, height))
	}
	return &Framebuffer{
		img: image1bit.NewVerticalLSB(image.Rect(0, 0, width, height)),
	}
}

// Attach sets device receiving full frame on Flush.
func (self *Framebuffer) Attach(dev io.Writer) {
	self.dev = dev
	self.dirty = true
}

func (self *Framebuffer) Width() int  { return self.img.Rect.Dx() }
func (self *Framebuffer) Height() int { return self.img.Rect.Dy() }
func (self *Framebuffer) Pages() int  { return self.Height() / PageHeight }

func (self *Framebuffer) WritePage(page, column int, b byte) {
	if page < 0 || page >= self.Pages() || column < 0 || column >= self.Width() {
		return
	}
	self.img.Pix[page*self.img.Stride+column] = b
	self.dirty = true
}

// Page reads byte at (page, column), 0 outside.
func (self *Framebuffer) Page(page, column int) byte {
	if page < 0 || page >= self.Pages() || column < 0 || column >= self.Width() {
		return 0
	}
	return self.img.Pix[page*self.img.Stride+column]
}

func (self *Framebuffer) Pixel(x, y int) bool {
	return bool(self.img.BitAt(x, y))
}

func (self *Framebuffer) Clear() {
	for i := range self.img.Pix {
		self.img.Pix[i] = 0
	}
	self.dirty = true
}

func (self *Framebuffer) Dirty() bool { return self.dirty }

// Bytes is raw GDDRAM image, page major.
func (self *Framebuffer) Bytes() []byte { return self.img.Pix }

func (self *Framebuffer) Image() *image1bit.VerticalLSB { return self.img }

func (self *Framebuffer) Size() (int16, int16) {
	return int16(self.Width()), int16(self.Height())
}

// SetPixel treats any non-black color as lit pixel.
func (self *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	if !(image.Point{int(x), int(y)}).In(self.img.Rect) {
		return
	}
	self.img.SetBit(int(x), int(y), image1bit.Bit(c.R|c.G|c.B != 0))
	self.dirty = true
}

func (self *Framebuffer) Display() error { return self.Flush() }

// Flush sends frame to attached device if anything changed since last Flush.
func (self *Framebuffer) Flush() error {
	if self.dev == nil || !self.dirty {
		return nil
	}
	if _, err := self.dev.Write(self.img.Pix); err != nil {
		return errors.Annotate(err, "oled flush")
	}
	self.dirty = false
	return nil
}

func (self *Framebuffer) String() string {
	b := strings.Builder{}
	width, height := self.Width(), self.Height()
	b.Grow((width*2 + 1) * height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if self.Pixel(x, y) {
				b.WriteString("██")
			} else {
				b.WriteString("  ")
			}
		}
		b.WriteRune('\n')
	}
	return b.String()
}
