// Package world provides the tile grid addressing and the camera that pans
// across it.
package world

// Chart dimensions: a 640x640 chart cut into 5 columns by 10 rows of 128x64 tiles.
const (
	TileWidth  = 128
	TileHeight = 64
	ChartCols  = 5
	ChartRows  = 10
)

// StarChart is the fixed grid every tile and annotation is addressed against.
var StarChart = Grid{
	Cols:       ChartCols,
	Rows:       ChartRows,
	TileWidth:  TileWidth,
	TileHeight: TileHeight,
}

// Grid describes a rectangular grid of fixed-size tiles. Tiles are never
// materialized; they are addressed by a linear index.
type Grid struct {
	Cols       int
	Rows       int
	TileWidth  int
	TileHeight int
}

// Width returns the world width in pixels
func (g Grid) Width() int {
	return g.Cols * g.TileWidth
}

// Height returns the world height in pixels
func (g Grid) Height() int {
	return g.Rows * g.TileHeight
}

// Count returns the number of tiles in the grid
func (g Grid) Count() int {
	return g.Rows * g.Cols
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// IsValidIndex checks if a linear tile index addresses a tile of the grid
func (g Grid) IsValidIndex(index int) bool {
	return index >= 0 && index < g.Count()
}

// TileIndex returns the linear index of the tile at row/col.
// The caller guarantees row and col are non-negative.
func (g Grid) TileIndex(row, col int) int {
	return row*g.Cols + col
}

// RowCol is the inverse of TileIndex
func (g Grid) RowCol(index int) (row, col int) {
	return index / g.Cols, index % g.Cols
}

// TileOrigin returns the world position of the top-left pixel of a tile
func (g Grid) TileOrigin(row, col int) (wx, wy int) {
	return col * g.TileWidth, row * g.TileHeight
}

// TileOriginOf returns the world position of the top-left pixel of the tile
// with the given index
func (g Grid) TileOriginOf(index int) (wx, wy int) {
	return g.TileOrigin(g.RowCol(index))
}

// WorldToTile splits a world position into the tile row/col containing it
// and the position local to that tile.
//
// The result may lie outside the grid; callers check IsValidPosition and treat
// that case as "no tile". Negative inputs floor toward the previous tile rather
// than truncating toward zero, so the local position is always in range.
func (g Grid) WorldToTile(wx, wy int) (row, col, lx, ly int) {
	col, lx = floorDivMod(wx, g.TileWidth)
	row, ly = floorDivMod(wy, g.TileHeight)
	return row, col, lx, ly
}

func floorDivMod(a, b int) (q, r int) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}
