package gameplay

import (
	"log"
	"time"

	"github.com/leonelquinteros/gotext"

	engineinput "starmap/pkg/engine/input"
	"starmap/pkg/game/devtools"
	"starmap/pkg/game/renderer"
	"starmap/pkg/game/renderer/canvas"
	"starmap/pkg/game/state"
)

// PollInterval bounds how long the loop waits for an intent
const PollInterval = 100 * time.Millisecond

// Options tune the event loop
type Options struct {
	// ScreenshotDir receives screenshots, the working directory when empty
	ScreenshotDir string

	// PollInterval overrides the default intent wait
	PollInterval time.Duration
}

// statusSetter is implemented by backends with a status line
type statusSetter interface {
	SetStatus(s string)
}

// Run shows v on b until the exit intent is processed. Each intent is applied
// in arrival order and followed by one complete frame.
func Run(v *state.Viewer, b renderer.Backend, f *renderer.Frame, o Options) error {
	if o.PollInterval <= 0 {
		o.PollInterval = PollInterval
	}
	if o.ScreenshotDir == "" {
		o.ScreenshotDir = "."
	}

	w, h := v.Camera.ScreenSize()
	c := canvas.New(w, h)
	Refresh(v)

	present := func() {
		f.Render(c, v)
		if s, ok := b.(statusSetter); ok {
			s.SetStatus(v.LastMessage())
		}
		b.Present(c.Image())
	}

	return b.Run(func() error {
		present()
		q := b.Intents()
		for !v.Done {
			intent, ok := q.Poll(o.PollInterval)
			if !ok {
				continue
			}
			if intent.Action == engineinput.ActionScreenshot {
				screenshot(v, c, o.ScreenshotDir)
			}
			ProcessIntent(v, intent)
			if v.Done {
				break
			}
			present()
		}
		log.Printf("viewer: exit at camera %.0f,%.0f", v.Camera.X, v.Camera.Y)
		return nil
	})
}

// screenshot saves the last presented frame
func screenshot(v *state.Viewer, c *canvas.Canvas, dir string) {
	path, err := devtools.SaveScreenshotPNG(c.Snapshot(), dir)
	if err != nil {
		log.Printf("screenshot: %v", err)
		logMessage(v, gotext.Get("Screenshot failed: %v", err))
		return
	}
	logMessage(v, gotext.Get("Screenshot saved to %s", path))
}
