// Package gameplay turns intents into camera movement and keeps the cursor
// selection current.
package gameplay

import (
	engineinput "starmap/pkg/engine/input"
)

// MoveStep is how far one move intent pans the camera, in world pixels
const MoveStep = 4

// moveDelta returns the camera delta of a move action
func moveDelta(a engineinput.Action) (dx, dy float64) {
	switch a {
	case engineinput.ActionMoveUp:
		return 0, -MoveStep
	case engineinput.ActionMoveDown:
		return 0, MoveStep
	case engineinput.ActionMoveLeft:
		return -MoveStep, 0
	case engineinput.ActionMoveRight:
		return MoveStep, 0
	}
	return 0, 0
}
