package devtools

import (
	"fmt"
	"io"

	"starmap/pkg/engine/world"
	"starmap/pkg/game/annotation"
)

// TileStatus reports whether a tile decodes, for the dump legend
type TileStatus func(index int) error

// tileSymbol returns the single-character symbol for a tile
func tileSymbol(err error, visible bool) rune {
	switch {
	case err != nil:
		return '!'
	case visible:
		return '@'
	default:
		return '.'
	}
}

// DumpChart writes a debug dump of the chart to w: metadata, legend, the tile
// grid with the visible tiles and broken tiles marked, and the annotations
// per tile. Format is human-readable (sections, key: value).
func DumpChart(w io.Writer, cam *world.Camera, idx *annotation.Index, status TileStatus) {
	grid := cam.Grid()
	visible := make(map[int]bool)
	cam.VisibleTileRange().Each(grid, func(index int) {
		visible[index] = true
	})
	errs := make(map[int]error)
	if status != nil {
		for index := 0; index < grid.Count(); index++ {
			if err := status(index); err != nil {
				errs[index] = err
			}
		}
	}

	// --- Metadata ---
	fmt.Fprintln(w, "=== CHART DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "grid_rows: %d\n", grid.Rows)
	fmt.Fprintf(w, "grid_cols: %d\n", grid.Cols)
	fmt.Fprintf(w, "tile_size: %dx%d\n", grid.TileWidth, grid.TileHeight)
	fmt.Fprintf(w, "world_size: %dx%d\n", grid.Width(), grid.Height())
	fmt.Fprintf(w, "camera: %.0f,%.0f\n", cam.X, cam.Y)
	cx, cy := cam.Cursor()
	fmt.Fprintf(w, "cursor: %d,%d\n", cx, cy)
	fmt.Fprintf(w, "annotations: %d\n", idx.Len())
	fmt.Fprintf(w, "annotations_truncated: %t\n", idx.Truncated())
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintln(w, ". tile")
	fmt.Fprintln(w, "@ visible tile")
	fmt.Fprintln(w, "! tile that fails to decode")
	fmt.Fprintln(w, "")

	// --- Grid ---
	fmt.Fprintln(w, "--- Tiles ---")
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			index := grid.TileIndex(row, col)
			fmt.Fprintf(w, "%c", tileSymbol(errs[index], visible[index]))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, "")

	if status != nil {
		fmt.Fprintln(w, "--- Tile errors ---")
		for index := 0; index < grid.Count(); index++ {
			if err, ok := errs[index]; ok {
				fmt.Fprintf(w, "tile %02d: %v\n", index, err)
			}
		}
		fmt.Fprintln(w, "")
	}

	// --- Annotations ---
	fmt.Fprintln(w, "--- Annotations ---")
	idx.Each(func(a annotation.Annotation) {
		wx, wy := grid.TileOriginOf(a.Tile)
		fmt.Fprintf(w, "tile %02d local %d,%d world %d,%d: %s\n", a.Tile, a.X, a.Y, wx+a.X, wy+a.Y, a.Label)
	})
}
