package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"starmap/pkg/game/renderer"
)

func inkCount(c *Canvas) int {
	n := 0
	for _, p := range c.Image().Pix {
		if p == uint8(renderer.Ink) {
			n++
		}
	}
	return n
}

func TestCanvas_ClearAndClip(t *testing.T) {
	c := New(128, 64)
	c.SetColor(renderer.Ink)
	c.SetPixel(0, 0)
	c.SetPixel(127, 63)
	c.SetPixel(-1, 5)
	c.SetPixel(128, 5)
	c.SetPixel(5, 64)
	assert.Equal(t, 2, inkCount(c))
	assert.Equal(t, renderer.Ink, c.At(127, 63))
	assert.Equal(t, renderer.Paper, c.At(200, 200))

	c.Clear()
	assert.Zero(t, inkCount(c))
}

func TestCanvas_FrameAndBox(t *testing.T) {
	c := New(128, 64)
	c.DrawFrame(10, 10, 5, 4)
	// 2*5 + 2*4 - 4 corners
	assert.Equal(t, 14, inkCount(c))
	assert.Equal(t, renderer.Paper, c.At(12, 12))

	c.Clear()
	c.DrawBox(-2, -2, 4, 4)
	assert.Equal(t, 4, inkCount(c))

	c.SetColor(renderer.Paper)
	c.DrawBox(0, 0, 128, 64)
	assert.Zero(t, inkCount(c))
}

func TestCanvas_Circle(t *testing.T) {
	c := New(128, 64)
	c.DrawCircle(64, 32, 4)

	for _, p := range [][2]int{{68, 32}, {60, 32}, {64, 36}, {64, 28}, {67, 35}, {61, 29}} {
		assert.Equal(t, renderer.Ink, c.At(p[0], p[1]), "point %v", p)
	}
	assert.Equal(t, renderer.Paper, c.At(64, 32), "centre")
	assert.Equal(t, 24, inkCount(c))
}

func TestCanvas_Text(t *testing.T) {
	c := New(128, 64)
	ascent, descent := c.FontMetrics()
	assert.Equal(t, 11, ascent)
	assert.Equal(t, 2, descent)
	assert.Equal(t, 14, c.StringWidth("OK"))
	assert.Zero(t, c.StringWidth(""))

	c.DrawString(2, ascent, "Polaris")
	assert.NotZero(t, inkCount(c))

	// White text on a black box leaves paper pixels inside the box
	c.Clear()
	c.DrawBox(0, 0, c.StringWidth("Polaris")+4, ascent+descent+2)
	box := inkCount(c)
	c.SetColor(renderer.Paper)
	c.DrawString(2, ascent+1, "Polaris")
	assert.Less(t, inkCount(c), box)
}

func TestCanvas_SnapshotIsACopy(t *testing.T) {
	c := New(8, 8)
	snap := c.Snapshot()
	c.SetPixel(1, 1)
	assert.Equal(t, uint8(renderer.Paper), snap.ColorIndexAt(1, 1))
	assert.Equal(t, uint8(renderer.Ink), c.Image().ColorIndexAt(1, 1))
}
