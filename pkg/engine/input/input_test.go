package input

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Action
	}{
		{"arrow_up", ActionMoveUp},
		{"j", ActionMoveDown},
		{"a", ActionMoveLeft},
		{"arrow_right", ActionMoveRight},
		{"enter", ActionConfirm},
		{"gamepad_a", ActionConfirm},
		{"escape", ActionExit},
		{"back", ActionExit},
		{"p", ActionScreenshot},
		{"+", ActionZoomIn},
		{"x", ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := MapToIntent(DebouncedInput{Device: DeviceKeyboard, Code: tt.code, Repeat: true})
			assert.Equal(t, tt.want, got.Action)
			if tt.want != ActionNone {
				assert.True(t, got.Repeat)
			}
		})
	}
}

func TestActionIsMove(t *testing.T) {
	assert.True(t, ActionMoveUp.IsMove())
	assert.True(t, ActionMoveRight.IsMove())
	assert.False(t, ActionConfirm.IsMove())
	assert.False(t, ActionNone.IsMove())
}

func TestGetBindingsByAction_Sorted(t *testing.T) {
	got := GetBindingsByAction()
	assert.Equal(t, []string{"arrow_up", "gamepad_dpad_up", "k", "w"}, got[ActionMoveUp])
}

func TestQueue_DropsWhenFull(t *testing.T) {
	q := NewQueue()
	for i := 0; i < QueueSize; i++ {
		require.True(t, q.Push(Intent{Action: ActionMoveLeft}))
	}
	assert.False(t, q.Push(Intent{Action: ActionExit}))
	assert.Equal(t, QueueSize, q.Len())

	// FIFO, and the dropped exit never shows up
	for i := 0; i < QueueSize; i++ {
		got, ok := q.Poll(time.Millisecond)
		require.True(t, ok)
		assert.Equal(t, ActionMoveLeft, got.Action)
	}
}

func TestQueue_PollTimesOut(t *testing.T) {
	q := NewQueue()
	start := time.Now()
	got, ok := q.Poll(20 * time.Millisecond)
	assert.False(t, ok)
	assert.Equal(t, ActionNone, got.Action)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestKeyReader_ReadCode(t *testing.T) {
	k := NewKeyReader(strings.NewReader("\x1b[A\x1bOBq\rW\x7fz\x1b[Z"))
	want := []string{"arrow_up", "arrow_down", "q", "enter", "w", "backspace", "z", ""}
	for _, w := range want {
		got, err := k.ReadCode()
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}
	_, err := k.ReadCode()
	assert.Equal(t, io.EOF, err)
}

func TestKeyReader_LoneEscape(t *testing.T) {
	k := NewKeyReader(strings.NewReader("\x1b"))
	got, err := k.ReadCode()
	require.NoError(t, err)
	assert.Equal(t, "escape", got)
}

func TestKeyReader_Feed(t *testing.T) {
	q := NewQueue()
	err := NewKeyReader(strings.NewReader("\x1b[Czl\r")).Feed(q)
	assert.Equal(t, io.EOF, err)

	var got []Action
	for q.Len() > 0 {
		intent, _ := q.Poll(time.Millisecond)
		got = append(got, intent.Action)
	}
	assert.Equal(t, []Action{ActionMoveRight, ActionMoveRight, ActionConfirm}, got)
}
