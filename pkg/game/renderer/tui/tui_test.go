package tui

import (
	"bytes"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starmap/pkg/engine/input"
	"starmap/pkg/game/renderer/canvas"
)

func TestRows_HalfBlocks(t *testing.T) {
	c := canvas.New(4, 3)
	c.SetPixel(0, 0) // top only
	c.SetPixel(1, 1) // bottom only
	c.SetPixel(2, 0) // both
	c.SetPixel(2, 1)
	c.SetPixel(3, 2) // odd last row

	assert.Equal(t, []string{"▀▄█ ", "   ▀"}, Rows(c.Image()))
}

func TestRows_Empty(t *testing.T) {
	assert.Empty(t, Rows(image.NewGray(image.Rect(0, 0, 0, 0))))
}

func TestPresent_WritesRowsAndStatus(t *testing.T) {
	var out bytes.Buffer
	r := NewWithIO(strings.NewReader(""), &out)
	require.NoError(t, r.Init())

	c := canvas.New(2, 2)
	c.SetPixel(0, 0)
	r.SetStatus("Polaris")
	r.Present(c.Image())

	s := out.String()
	assert.Contains(t, s, "▀ ")
	assert.Contains(t, s, "Polaris")
	assert.NoError(t, r.Close())
	assert.Contains(t, out.String(), "\x1b[?25h")
}

func TestRun_FeedsQueueFromInput(t *testing.T) {
	var out bytes.Buffer
	r := NewWithIO(strings.NewReader("l\x1b[Bq"), &out)

	var got []input.Action
	err := r.Run(func() error {
		for len(got) < 3 {
			intent, ok := r.Intents().Poll(time.Second)
			require.True(t, ok)
			got = append(got, intent.Action)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []input.Action{input.ActionMoveRight, input.ActionMoveDown, input.ActionExit}, got)
}

func TestFitError(t *testing.T) {
	tr := NewWithIO(strings.NewReader(""), &bytes.Buffer{})

	assert.NoError(t, tr.fitError(128, 34))
	assert.NoError(t, tr.fitError(200, 60))

	err := tr.fitError(80, 24)
	require.Error(t, err)
	assert.Equal(t, "tui: terminal is 80x24, need at least 128x34", err.Error())
	assert.Error(t, tr.fitError(128, 33))

	small := NewWithIO(strings.NewReader(""), &bytes.Buffer{})
	small.width, small.height = 64, 31
	assert.NoError(t, small.fitError(64, 18))
	assert.EqualError(t, small.fitError(63, 18), "tui: terminal is 63x18, need at least 64x18")
}
