package assets

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/ericpauley/go-quantize/quantize"

	"starmap/pkg/engine/bitmap"
	"starmap/pkg/engine/world"
)

// SliceOptions control how a chart image is cut into tiles
type SliceOptions struct {
	// Pattern names the tile files, DefaultPattern when empty
	Pattern string
	// Invert draws the lighter of the two colors, for white-on-black charts
	Invert bool
}

// reduce maps m onto two colors and returns the index of the ink color, or
// -1 when the image has a single color.
func reduce(m image.Image, invert bool) (*image.Paletted, int) {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, 2), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	if len(pm.Palette) < 2 {
		return pm, -1
	}

	y0 := color.GrayModel.Convert(pm.Palette[0]).(color.Gray).Y
	y1 := color.GrayModel.Convert(pm.Palette[1]).(color.Gray).Y
	darker := 0
	if y1 < y0 {
		darker = 1
	}
	if invert {
		return pm, 1 - darker
	}
	return pm, darker
}

// Slice cuts a full chart image into grid tiles and writes each to dir as a
// one bit per pixel bitmap. It returns the paths written.
func Slice(m image.Image, grid world.Grid, dir string, o *SliceOptions) ([]string, error) {
	b := m.Bounds()
	if b.Dx() != grid.Width() || b.Dy() != grid.Height() {
		return nil, errors.New("assets: image is wrong size")
	}
	pattern := DefaultPattern
	if o != nil && o.Pattern != "" {
		pattern = o.Pattern
	}

	pm, ink := reduce(m, o != nil && o.Invert)

	paths := make([]string, 0, grid.Count())
	tile := image.NewGray(image.Rect(0, 0, grid.TileWidth, grid.TileHeight))
	for index := 0; index < grid.Count(); index++ {
		ox, oy := grid.TileOriginOf(index)
		for y := 0; y < grid.TileHeight; y++ {
			for x := 0; x < grid.TileWidth; x++ {
				v := uint8(0xff)
				if int(pm.ColorIndexAt(b.Min.X+ox+x, b.Min.Y+oy+y)) == ink {
					v = 0
				}
				tile.SetGray(x, y, color.Gray{Y: v})
			}
		}

		path := filepath.Join(dir, fmt.Sprintf(pattern, index))
		if err := writeTile(path, tile); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeTile(path string, m image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := bitmap.Encode(f, m, nil); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
