package gameplay

import (
	"fmt"
	"log"

	"github.com/leonelquinteros/gotext"

	engineinput "starmap/pkg/engine/input"
	"starmap/pkg/game/state"
)

// ProcessIntent applies one intent to v and recomputes the selection.
// Intents handled by the loop or the backend (screenshot, zoom) only trigger
// the recompute here.
func ProcessIntent(v *state.Viewer, intent engineinput.Intent) {
	switch intent.Action {
	case engineinput.ActionNone:
		return

	case engineinput.ActionMoveUp, engineinput.ActionMoveDown,
		engineinput.ActionMoveLeft, engineinput.ActionMoveRight:
		v.Camera.Move(moveDelta(intent.Action))

	case engineinput.ActionConfirm:
		if v.Selection.Found {
			log.Printf("Selected: %s", v.Selection.Label)
			logMessage(v, gotext.Get("Selected: %s", v.Selection.Label))
		}

	case engineinput.ActionExit:
		v.Done = true
	}

	Refresh(v)
}

// logMessage adds a formatted message to the viewer's message log
func logMessage(v *state.Viewer, msg string, a ...any) {
	if len(a) > 0 {
		msg = fmt.Sprintf(msg, a...)
	}
	v.AddMessage(msg)
}
