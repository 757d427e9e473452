package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if the size cannot be determined.
func GetSize() (width, height int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// CellsFor returns the terminal cells needed to show a w x h pixel image
// using one half-block glyph per two vertical pixels.
func CellsFor(w, h int) (cols, rows int) {
	return w, (h + 1) / 2
}
