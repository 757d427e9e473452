package renderer

import (
	"image"
	"image/color"
	"io"

	engineinput "starmap/pkg/engine/input"
)

// Color is one of the two colors of a monochrome display
type Color int

const (
	// Paper is the background
	Paper Color = iota
	// Ink is the foreground
	Ink
)

// IsInk reports whether c is drawn as Ink on a monochrome display
func IsInk(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < 0x80
}

// Surface is a monochrome drawing target. Drawing outside the surface is
// clipped, never an error.
type Surface interface {
	// Clear fills the surface with Paper
	Clear()

	// SetColor selects the color used by the drawing calls that follow
	SetColor(c Color)

	SetPixel(x, y int)

	// DrawFrame outlines the w x h rectangle at x, y
	DrawFrame(x, y, w, h int)

	// DrawBox fills the w x h rectangle at x, y
	DrawBox(x, y, w, h int)

	// DrawCircle outlines the circle of radius r centred on cx, cy
	DrawCircle(cx, cy, r int)

	// DrawString draws s with its baseline at y
	DrawString(x, y int, s string)

	// StringWidth returns the advance of s in pixels
	StringWidth(s string) int

	// FontMetrics returns the ascent and descent of the font in pixels
	FontMetrics() (ascent, descent int)

	// Size returns the surface dimensions
	Size() (w, h int)
}

// TileSource opens the encoded image of a tile by index
type TileSource interface {
	Open(index int) (io.ReadSeekCloser, error)
}

// Backend is a display and input device. The event loop hands it finished
// frames and drains its intent queue.
type Backend interface {
	// Init prepares the device (window, terminal mode, etc.)
	Init() error

	// Present shows a finished frame. The backend must copy what it keeps.
	Present(frame image.Image)

	// Intents returns the queue the backend feeds
	Intents() *engineinput.Queue

	// Run calls loop until it returns and reports its error. Backends that
	// own the main thread run loop on another goroutine.
	Run(loop func() error) error

	// Close restores the device
	Close() error
}
