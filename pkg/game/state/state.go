package state

import (
	"starmap/pkg/engine/world"
	"starmap/pkg/game/annotation"
)

// Selection is the result of the last hit-test
type Selection struct {
	Label string
	Found bool
}

// Viewer is the state of one viewing session. It is owned by the event loop
// and never shared.
type Viewer struct {
	Grid world.Grid

	Camera *world.Camera

	Annotations *annotation.Index

	Selection Selection

	Messages []string

	// Done is set once the exit intent has been processed
	Done bool
}

// NewViewer creates a viewer with the camera centred on the chart
func NewViewer(grid world.Grid, idx *annotation.Index) *Viewer {
	if idx == nil {
		idx = annotation.NewIndex(grid)
	}
	return &Viewer{
		Grid:        grid,
		Camera:      world.NewCenteredCamera(grid, world.ScreenWidth, world.ScreenHeight),
		Annotations: idx,
		Messages:    make([]string, 0),
	}
}

// AddMessage adds a message to the viewer's message log
func (v *Viewer) AddMessage(msg string) {
	const maxMessages = 5
	v.Messages = append(v.Messages, msg)

	// Keep only the last maxMessages
	if len(v.Messages) > maxMessages {
		v.Messages = v.Messages[len(v.Messages)-maxMessages:]
	}
}

// LastMessage returns the most recent message, or "" when there is none
func (v *Viewer) LastMessage() string {
	if len(v.Messages) == 0 {
		return ""
	}
	return v.Messages[len(v.Messages)-1]
}

// ClearMessages clears all messages
func (v *Viewer) ClearMessages() {
	v.Messages = make([]string, 0)
}
