package ebiten

import (
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	engineinput "starmap/pkg/engine/input"
	"starmap/pkg/engine/world"
	"starmap/pkg/game/config"
	"starmap/pkg/game/renderer"
)

type keyRepeatInfo struct {
	firstPressed int64
	lastRepeat   int64
}

// EbitenRenderer shows frames in a window scaled up from the 128x64 display
// and turns keyboard and gamepad input into intents.
type EbitenRenderer struct {
	width  int
	height int
	scale  int

	queue *engineinput.Queue

	keyRepeatState      map[string]keyRepeatInfo
	keyRepeatStateMutex sync.Mutex

	// Last presented frame as RGBA pixels, swapped in by Present and read
	// by Draw
	snapshot      []byte
	snapshotMutex sync.RWMutex

	done    chan struct{}
	loopErr error

	windowOpenedLogged bool
	closeRequested     bool
}

// New creates a window backend for a display of the given size
func New(width, height int) *EbitenRenderer {
	return &EbitenRenderer{
		width:          width,
		height:         height,
		scale:          config.Current().Scale(),
		queue:          engineinput.NewQueue(),
		keyRepeatState: make(map[string]keyRepeatInfo),
		done:           make(chan struct{}),
	}
}

// NewDefault creates a window backend for the standard display
func NewDefault() *EbitenRenderer {
	return New(world.ScreenWidth, world.ScreenHeight)
}

// Init sets up the window
func (e *EbitenRenderer) Init() error {
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(e.width*e.scale, e.height*e.scale)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(60)
	return nil
}

// Intents returns the queue fed from Update
func (e *EbitenRenderer) Intents() *engineinput.Queue {
	return e.queue
}

// Run runs loop on its own goroutine while Ebiten owns the calling one. The
// window stays open until loop returns.
func (e *EbitenRenderer) Run(loop func() error) error {
	go func() {
		defer close(e.done)
		e.loopErr = loop()
	}()

	if err := ebiten.RunGame(e); err != nil {
		return err
	}

	// RunGame only ends on Termination, which Update returns once the loop
	// is done
	<-e.done
	return e.loopErr
}

// Close releases nothing; the window closes when Run returns
func (e *EbitenRenderer) Close() error {
	return nil
}

// Update handles input (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	select {
	case <-e.done:
		return ebiten.Termination
	default:
	}

	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("Main window opened successfully (%dx%d)", w, h)
	}

	// Closing the window is the same as pressing back
	if ebiten.IsWindowBeingClosed() && !e.closeRequested {
		e.closeRequested = e.queue.Push(engineinput.Intent{Action: engineinput.ActionExit})
		return nil
	}

	e.handleZoom()

	// Check for gamepad input first, then fall back to keyboard (raw layer)
	if intent := e.checkGamepadInput(); intent.Action != engineinput.ActionNone {
		e.queue.Push(intent)
	} else if intent := e.checkInput(); intent.Action != engineinput.ActionNone {
		e.queue.Push(intent)
	}

	return nil
}

// Layout keeps the logical screen at the display size; Ebiten scales it to
// the window.
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.width, e.height
}

var _ renderer.Backend = (*EbitenRenderer)(nil)
