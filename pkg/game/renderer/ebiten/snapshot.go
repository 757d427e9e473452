package ebiten

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"starmap/pkg/game/renderer"
)

// Present converts frame to the display colors for the next Draw call
func (e *EbitenRenderer) Present(frame image.Image) {
	b := frame.Bounds()
	pix := make([]byte, 4*e.width*e.height)
	for y := 0; y < e.height && y < b.Dy(); y++ {
		for x := 0; x < e.width && x < b.Dx(); x++ {
			c := colorPaper
			if renderer.IsInk(frame.At(b.Min.X+x, b.Min.Y+y)) {
				c = colorInk
			}
			i := 4 * (y*e.width + x)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
		}
	}

	e.snapshotMutex.Lock()
	e.snapshot = pix
	e.snapshotMutex.Unlock()
}

// Draw copies the last presented frame to the screen (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	e.snapshotMutex.RLock()
	pix := e.snapshot
	e.snapshotMutex.RUnlock()

	if pix == nil {
		screen.Fill(colorPaper)
		return
	}
	screen.WritePixels(pix)
}
