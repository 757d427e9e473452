// Package canvas implements an in-memory monochrome Surface. Backends present
// its image and screenshots are taken from it.
package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"starmap/pkg/game/renderer"
)

// Palette maps renderer.Paper and renderer.Ink to their colors
var Palette = color.Palette{
	renderer.Paper: color.White,
	renderer.Ink:   color.Black,
}

// Canvas is a renderer.Surface backed by an *image.Paletted
type Canvas struct {
	img   *image.Paletted
	color uint8
	face  font.Face
}

// New creates a blank w x h canvas
func New(w, h int) *Canvas {
	return &Canvas{
		img:   image.NewPaletted(image.Rect(0, 0, w, h), Palette),
		color: uint8(renderer.Ink),
		face:  basicfont.Face7x13,
	}
}

// Image returns the backing image. It is overwritten by later drawing.
func (c *Canvas) Image() *image.Paletted {
	return c.img
}

// Snapshot returns a copy of the current image
func (c *Canvas) Snapshot() *image.Paletted {
	cp := *c.img
	cp.Pix = append([]uint8(nil), c.img.Pix...)
	return &cp
}

// At returns the color at x, y, Paper outside the canvas
func (c *Canvas) At(x, y int) renderer.Color {
	if !(image.Point{x, y}).In(c.img.Rect) {
		return renderer.Paper
	}
	return renderer.Color(c.img.ColorIndexAt(x, y))
}

func (c *Canvas) Clear() {
	for i := range c.img.Pix {
		c.img.Pix[i] = uint8(renderer.Paper)
	}
}

func (c *Canvas) SetColor(col renderer.Color) {
	c.color = uint8(col)
}

func (c *Canvas) SetPixel(x, y int) {
	if !(image.Point{x, y}).In(c.img.Rect) {
		return
	}
	c.img.SetColorIndex(x, y, c.color)
}

func (c *Canvas) DrawFrame(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	for i := 0; i < w; i++ {
		c.SetPixel(x+i, y)
		c.SetPixel(x+i, y+h-1)
	}
	for j := 0; j < h; j++ {
		c.SetPixel(x, y+j)
		c.SetPixel(x+w-1, y+j)
	}
}

func (c *Canvas) DrawBox(x, y, w, h int) {
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Rect)
	for j := r.Min.Y; j < r.Max.Y; j++ {
		for i := r.Min.X; i < r.Max.X; i++ {
			c.img.SetColorIndex(i, j, c.color)
		}
	}
}

// DrawCircle uses the midpoint algorithm
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r < 0 {
		return
	}
	x, y := r, 0
	d := 1 - r
	for x >= y {
		c.SetPixel(cx+x, cy+y)
		c.SetPixel(cx-x, cy+y)
		c.SetPixel(cx+x, cy-y)
		c.SetPixel(cx-x, cy-y)
		c.SetPixel(cx+y, cy+x)
		c.SetPixel(cx-y, cy+x)
		c.SetPixel(cx+y, cy-x)
		c.SetPixel(cx-y, cy-x)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func (c *Canvas) DrawString(x, y int, s string) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(Palette[c.color]),
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func (c *Canvas) StringWidth(s string) int {
	return font.MeasureString(c.face, s).Ceil()
}

func (c *Canvas) FontMetrics() (ascent, descent int) {
	m := c.face.Metrics()
	return m.Ascent.Ceil(), m.Descent.Ceil()
}

func (c *Canvas) Size() (w, h int) {
	return c.img.Rect.Dx(), c.img.Rect.Dy()
}

var _ renderer.Surface = (*Canvas)(nil)
