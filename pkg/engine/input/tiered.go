package input

import (
	"sort"
	"time"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
	DeviceTerminal
)

// Action represents a high‑level intent of the viewer.
type Action int

const (
	ActionNone Action = iota

	// Panning
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// Meta / UI
	ActionConfirm // Select the label under the cursor (OK / Enter / A)
	ActionExit
	ActionScreenshot
	ActionZoomIn  // Enlarge the window (backend only)
	ActionZoomOut // Shrink the window (backend only)
)

// Intent is the 4th‑layer, high‑level description of what the user wants to do.
// Repeat is set when the intent was generated by a held key.
type Intent struct {
	Action Action
	Repeat bool
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "arrow_up", "gamepad_dpad_up").
type RawInput struct {
	Device    Device
	Code      string
	Repeat    bool
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Key repeat is already handled by the backends, so this is a thin wrapper.
type DebouncedInput struct {
	Device Device
	Code   string
	Repeat bool
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
		Repeat: raw.Repeat,
	}
}

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Panning (arrows, WASD, Vim)
	"arrow_up":    ActionMoveUp,
	"w":           ActionMoveUp,
	"k":           ActionMoveUp,
	"arrow_down":  ActionMoveDown,
	"s":           ActionMoveDown,
	"j":           ActionMoveDown,
	"arrow_left":  ActionMoveLeft,
	"a":           ActionMoveLeft,
	"h":           ActionMoveLeft,
	"arrow_right": ActionMoveRight,
	"d":           ActionMoveRight,
	"l":           ActionMoveRight,

	// Confirm
	"enter": ActionConfirm,
	"ok":    ActionConfirm,
	"e":     ActionConfirm,

	// Exit (the handheld's back button)
	"back":      ActionExit,
	"escape":    ActionExit,
	"q":         ActionExit,
	"backspace": ActionExit,

	"p":          ActionScreenshot,
	"screenshot": ActionScreenshot,

	"=":               ActionZoomIn,
	"+":               ActionZoomIn,
	"numpad_add":      ActionZoomIn,
	"-":               ActionZoomOut,
	"numpad_subtract": ActionZoomOut,

	// Controller/gamepad specific bindings
	"gamepad_dpad_up":    ActionMoveUp,
	"gamepad_dpad_down":  ActionMoveDown,
	"gamepad_dpad_left":  ActionMoveLeft,
	"gamepad_dpad_right": ActionMoveRight,
	"gamepad_a":          ActionConfirm, // A button / Cross
	"gamepad_b":          ActionExit,    // B button / Circle
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act, Repeat: ev.Repeat}
	}
	return Intent{Action: ActionNone}
}

// IntentFor runs a raw code through every layer
func IntentFor(device Device, code string, repeat bool) Intent {
	return MapToIntent(NewDebouncedInput(RawInput{
		Device:    device,
		Code:      code,
		Repeat:    repeat,
		Timestamp: time.Now(),
	}))
}

// IsMove reports whether the action pans the camera
func (a Action) IsMove() bool {
	return a >= ActionMoveUp && a <= ActionMoveRight
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveUp:
		return "Move Up"
	case ActionMoveDown:
		return "Move Down"
	case ActionMoveLeft:
		return "Move Left"
	case ActionMoveRight:
		return "Move Right"
	case ActionConfirm:
		return "Confirm"
	case ActionExit:
		return "Exit"
	case ActionScreenshot:
		return "Screenshot"
	case ActionZoomIn:
		return "Zoom In"
	case ActionZoomOut:
		return "Zoom Out"
	default:
		return "None"
	}
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't change between runs.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}
