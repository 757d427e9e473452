package gameplay

import (
	"starmap/pkg/engine/world"
	"starmap/pkg/game/annotation"
	"starmap/pkg/game/state"
)

// Evaluate returns the label under the cursor of cam, if any. A cursor off
// the grid finds nothing.
func Evaluate(cam *world.Camera, idx *annotation.Index) (string, bool) {
	if idx == nil {
		return "", false
	}
	grid := cam.Grid()
	row, col, lx, ly := grid.WorldToTile(cam.Cursor())
	if !grid.IsValidPosition(row, col) {
		return "", false
	}
	return idx.Lookup(grid.TileIndex(row, col), lx, ly, world.CursorRadius)
}

// Refresh recomputes the selection of v from scratch
func Refresh(v *state.Viewer) {
	label, ok := Evaluate(v.Camera, v.Annotations)
	v.Selection = state.Selection{Label: label, Found: ok}
}
