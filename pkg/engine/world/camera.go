package world

import "math"

// Screen dimensions of the display the chart is viewed on
const (
	ScreenWidth  = 128
	ScreenHeight = 64
)

// CursorRadius is the radius of the screen-centre cursor, which is also the
// distance within which it selects an annotation
const CursorRadius = 4

// Camera is the top-left corner of the viewport in world coordinates.
// Every mutation clamps it so that the viewport never leaves the world.
type Camera struct {
	X, Y float64

	grid    Grid
	screenW int
	screenH int
}

// TileRange is an inclusive range of tile rows and columns
type TileRange struct {
	RowMin, RowMax int
	ColMin, ColMax int
}

// NewCamera creates a camera at the world origin
func NewCamera(grid Grid, screenW, screenH int) *Camera {
	return &Camera{grid: grid, screenW: screenW, screenH: screenH}
}

// NewCenteredCamera creates a camera whose viewport is centered on the world
func NewCenteredCamera(grid Grid, screenW, screenH int) *Camera {
	c := NewCamera(grid, screenW, screenH)
	c.SetPosition(float64(grid.Width()-screenW)/2, float64(grid.Height()-screenH)/2)
	return c
}

// Grid returns the grid the camera pans across
func (c *Camera) Grid() Grid {
	return c.grid
}

// ScreenSize returns the viewport dimensions in pixels
func (c *Camera) ScreenSize() (w, h int) {
	return c.screenW, c.screenH
}

// MaxX returns the largest valid X position
func (c *Camera) MaxX() float64 {
	return math.Max(0, float64(c.grid.Width()-c.screenW))
}

// MaxY returns the largest valid Y position
func (c *Camera) MaxY() float64 {
	return math.Max(0, float64(c.grid.Height()-c.screenH))
}

// Move pans the camera by dx/dy and clamps each axis independently
func (c *Camera) Move(dx, dy float64) {
	c.SetPosition(c.X+dx, c.Y+dy)
}

// SetPosition places the camera, clamped to the world bounds
func (c *Camera) SetPosition(x, y float64) {
	c.X = clamp(x, 0, c.MaxX())
	c.Y = clamp(y, 0, c.MaxY())
}

// Cursor returns the world position under the screen center
func (c *Camera) Cursor() (wx, wy int) {
	return int(c.X + float64(c.screenW/2)), int(c.Y + float64(c.screenH/2))
}

// ScreenOffset returns where the top-left pixel of a tile lands on screen
func (c *Camera) ScreenOffset(index int) (sx, sy int) {
	wx, wy := c.grid.TileOriginOf(index)
	return int(float64(wx) - c.X), int(float64(wy) - c.Y)
}

// VisibleTileRange returns the tiles whose footprint intersects the screen.
// A screen edge that exactly meets a tile edge includes that tile.
func (c *Camera) VisibleTileRange() TileRange {
	tw, th := float64(c.grid.TileWidth), float64(c.grid.TileHeight)
	return TileRange{
		RowMin: clampInt(int(math.Floor(c.Y/th)), 0, c.grid.Rows-1),
		RowMax: clampInt(int(math.Floor((c.Y+float64(c.screenH))/th)), 0, c.grid.Rows-1),
		ColMin: clampInt(int(math.Floor(c.X/tw)), 0, c.grid.Cols-1),
		ColMax: clampInt(int(math.Floor((c.X+float64(c.screenW))/tw)), 0, c.grid.Cols-1),
	}
}

// Each calls fn with the linear index of every tile in the range, row by row
func (r TileRange) Each(grid Grid, fn func(index int)) {
	for row := r.RowMin; row <= r.RowMax; row++ {
		for col := r.ColMin; col <= r.ColMax; col++ {
			fn(grid.TileIndex(row, col))
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
