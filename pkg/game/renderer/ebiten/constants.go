// Package ebiten provides an Ebiten window backend for the star chart viewer.
package ebiten

import "image/color"

// Display colors. The chart is drawn in the two colors of a reflective LCD.
var (
	colorPaper = color.RGBA{0xfe, 0x8a, 0x2c, 0xff} // Backlit orange
	colorInk   = color.RGBA{0x00, 0x00, 0x00, 0xff}
)

const (
	keyRepeatInitialDelay = 500 // Initial delay before first repeat (milliseconds)
	keyRepeatInterval     = 100 // Interval between repeat events (milliseconds)
)

// Window title shown by the backend
const windowTitle = "Star Map"
