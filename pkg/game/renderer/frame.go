// Package renderer draws viewer frames onto monochrome surfaces and defines
// the display backends that show them.
package renderer

import (
	"errors"
	"io"
	"log"
	"strconv"

	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"starmap/pkg/engine/bitmap"
	"starmap/pkg/engine/world"
	"starmap/pkg/game/state"
)

var errNoSource = errors.New("no tile source")

// Frame renders the visible part of the chart. Tiles are decoded from the
// source on every render; nothing is cached between frames.
type Frame struct {
	Tiles TileSource

	logger *log.Logger

	// Tiles whose last render failed, so each failure is logged once
	failed mapset.Set[int]
}

// NewFrame creates a frame renderer reading tiles from src
func NewFrame(src TileSource, logger *log.Logger) *Frame {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Frame{
		Tiles:  src,
		logger: logger,
		failed: mapset.New[int](),
	}
}

// Failed reports whether the last render of tile index used the placeholder
func (f *Frame) Failed(index int) bool {
	return f.failed.Has(index)
}

// Render draws one complete frame of v onto s: the visible tiles, the
// cursor and, when something is selected, the label banner.
func (f *Frame) Render(s Surface, v *state.Viewer) {
	s.Clear()

	grid := v.Camera.Grid()
	v.Camera.VisibleTileRange().Each(grid, func(index int) {
		sx, sy := v.Camera.ScreenOffset(index)
		if err := f.drawTile(s, index, sx, sy, grid.TileWidth, grid.TileHeight); err != nil {
			if !f.failed.Has(index) {
				f.logger.Printf("tile %02d: %v", index, err)
				f.failed.Put(index)
			}
			drawPlaceholder(s, index, sx, sy, grid.TileWidth, grid.TileHeight)
			return
		}
		f.failed.Remove(index)
	})

	w, h := s.Size()
	s.SetColor(Ink)
	s.DrawCircle(w/2, h/2, world.CursorRadius)

	if v.Selection.Found {
		drawBanner(s, v.Selection.Label)
	}
}

func (f *Frame) drawTile(s Surface, index, sx, sy, tw, th int) error {
	if f.Tiles == nil {
		return errNoSource
	}
	r, err := f.Tiles.Open(index)
	if err != nil {
		return err
	}
	defer r.Close()

	s.SetColor(Ink)
	return bitmap.Decode(r, tw, th, func(x, y int) {
		s.SetPixel(sx+x, sy+y)
	})
}

// drawPlaceholder stands in for a tile that could not be decoded. Pixels a
// failed decode already drew are wiped first.
func drawPlaceholder(s Surface, index, sx, sy, tw, th int) {
	s.SetColor(Paper)
	s.DrawBox(sx, sy, tw, th)

	ascent, _ := s.FontMetrics()
	s.SetColor(Ink)
	s.DrawFrame(sx, sy, tw, th)
	s.DrawString(sx+2, sy+ascent+1, strconv.Itoa(index))
}

// drawBanner draws label inverted in the top-left corner and the
// selectable indicator in the bottom-right one.
func drawBanner(s Surface, label string) {
	ascent, descent := s.FontMetrics()
	w, h := s.Size()

	s.SetColor(Ink)
	s.DrawBox(0, 0, s.StringWidth(label)+4, ascent+descent+2)
	s.SetColor(Paper)
	s.DrawString(2, ascent+1, label)

	ok := gotext.Get("OK")
	s.SetColor(Ink)
	s.DrawString(w-s.StringWidth(ok)-4, h-2, ok)
}
