package ebiten

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineinput "starmap/pkg/engine/input"
	"starmap/pkg/game/config"
)

type keyBinding struct {
	key  ebiten.Key
	code string
}

// Keys that pan and repeat while held
var repeatKeys = []keyBinding{
	{ebiten.KeyArrowUp, "arrow_up"},
	{ebiten.KeyArrowDown, "arrow_down"},
	{ebiten.KeyArrowLeft, "arrow_left"},
	{ebiten.KeyArrowRight, "arrow_right"},
	{ebiten.KeyW, "w"},
	{ebiten.KeyS, "s"},
	{ebiten.KeyA, "a"},
	{ebiten.KeyD, "d"},
	{ebiten.KeyK, "k"},
	{ebiten.KeyJ, "j"},
	{ebiten.KeyH, "h"},
	{ebiten.KeyL, "l"},
}

// Keys that fire once per press
var pressKeys = []keyBinding{
	{ebiten.KeyEnter, "enter"},
	{ebiten.KeyNumpadEnter, "enter"},
	{ebiten.KeyE, "e"},
	{ebiten.KeyEscape, "escape"},
	{ebiten.KeyQ, "q"},
	{ebiten.KeyBackspace, "backspace"},
	{ebiten.KeyP, "p"},
}

// handleZoom handles =/- for window scale adjustment
func (e *EbitenRenderer) handleZoom() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		e.setScale(e.scale + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		e.setScale(e.scale - 1)
	case inpututil.IsKeyJustPressed(ebiten.Key0) || inpututil.IsKeyJustPressed(ebiten.KeyNumpad0):
		e.setScale(config.DefaultScale)
	}
}

func (e *EbitenRenderer) setScale(scale int) {
	if scale < config.MinScale || scale > config.MaxScale || scale == e.scale {
		return
	}
	e.scale = scale
	ebiten.SetWindowSize(e.width*e.scale, e.height*e.scale)
	e.saveZoomPreference()
}

// saveZoomPreference saves the current scale to preferences
func (e *EbitenRenderer) saveZoomPreference() {
	if err := config.Current().SetScale(e.scale); err != nil {
		// Not critical
		fmt.Fprintf(os.Stderr, "Warning: could not save preferences: %v\n", err)
	}
}

// shouldRepeatKey checks if a key/button should trigger (initial press or repeat).
// repeat is true when the trigger comes from holding the key.
func (e *EbitenRenderer) shouldRepeatKey(pressed bool, code string) (trigger, repeat bool) {
	now := time.Now().UnixMilli()

	e.keyRepeatStateMutex.Lock()
	defer e.keyRepeatStateMutex.Unlock()

	state, exists := e.keyRepeatState[code]

	if !pressed {
		// Key released - clean up state
		delete(e.keyRepeatState, code)
		return false, false
	}

	if !exists {
		// First press - record it and trigger immediately
		e.keyRepeatState[code] = keyRepeatInfo{
			firstPressed: now,
			lastRepeat:   now,
		}
		return true, false
	}

	// Key is held - check if we should repeat
	if now-state.firstPressed >= keyRepeatInitialDelay && now-state.lastRepeat >= keyRepeatInterval {
		state.lastRepeat = now
		e.keyRepeatState[code] = state
		return true, true
	}
	return false, false
}

// checkGamepadInput checks standard-layout gamepads and returns the
// corresponding Intent.
func (e *EbitenRenderer) checkGamepadInput() engineinput.Intent {
	var ids []ebiten.GamepadID
	ids = ebiten.AppendGamepadIDs(ids[:0])

	for _, id := range ids {
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			continue
		}

		// Left stick, with a dead zone to avoid drift
		const deadZone = 0.5
		stickX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		stickY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)

		dirs := []struct {
			pressed bool
			code    string
		}{
			{ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) || stickY < -deadZone, "gamepad_dpad_up"},
			{ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) || stickY > deadZone, "gamepad_dpad_down"},
			{ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) || stickX < -deadZone, "gamepad_dpad_left"},
			{ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) || stickX > deadZone, "gamepad_dpad_right"},
		}
		for _, d := range dirs {
			if ok, repeat := e.shouldRepeatKey(d.pressed, fmt.Sprintf("gamepad_%d_%s", id, d.code)); ok {
				return engineinput.IntentFor(engineinput.DeviceGamepad, d.code, repeat)
			}
		}

		// A / Cross confirms, B / Circle goes back
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			return engineinput.IntentFor(engineinput.DeviceGamepad, "gamepad_a", false)
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight) {
			return engineinput.IntentFor(engineinput.DeviceGamepad, "gamepad_b", false)
		}
	}

	return engineinput.Intent{Action: engineinput.ActionNone}
}

// checkInput checks for keyboard input and returns the corresponding Intent.
func (e *EbitenRenderer) checkInput() engineinput.Intent {
	for _, k := range repeatKeys {
		if ok, repeat := e.shouldRepeatKey(ebiten.IsKeyPressed(k.key), "key_"+k.code); ok {
			return engineinput.IntentFor(engineinput.DeviceKeyboard, k.code, repeat)
		}
	}
	for _, k := range pressKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			return engineinput.IntentFor(engineinput.DeviceKeyboard, k.code, false)
		}
	}
	return engineinput.Intent{Action: engineinput.ActionNone}
}
