// Package input turns device events into viewer intents and queues them for
// the event loop.
package input

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// MakeRaw puts stdin into raw mode so single key presses can be read.
// The returned function restores the previous terminal state.
func MakeRaw() (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() {
		term.Restore(fd, oldState)
	}, nil
}

// IsTerminal reports whether stdin is an interactive terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// KeyReader decodes raw-mode terminal bytes into key codes
type KeyReader struct {
	r *bufio.Reader
}

// NewKeyReader wraps r, normally os.Stdin in raw mode
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: bufio.NewReader(r)}
}

// tryReadArrowKey attempts to read the rest of an escape sequence.
// Returns the arrow code if successful; a lone ESC is the escape key.
func (k *KeyReader) tryReadArrowKey() (string, error) {
	// A bare ESC has nothing buffered behind it
	if k.r.Buffered() == 0 {
		return "escape", nil
	}

	b2, err := k.r.ReadByte()
	if err != nil {
		return "", err
	}

	// Handle both CSI sequences (ESC [) and SS3 sequences (ESC O)
	if b2 != '[' && b2 != 'O' {
		return "", nil
	}

	b3, err := k.r.ReadByte()
	if err != nil {
		return "", err
	}

	switch b3 {
	case 'A':
		return "arrow_up", nil
	case 'B':
		return "arrow_down", nil
	case 'C':
		return "arrow_right", nil
	case 'D':
		return "arrow_left", nil
	}
	// Unknown escape sequence - discard it
	return "", nil
}

// ReadCode blocks until a key is pressed and returns its code.
// Unknown keys return an empty code.
func (k *KeyReader) ReadCode() (string, error) {
	b, err := k.r.ReadByte()
	if err != nil {
		return "", err
	}

	switch {
	case b == 0x1b:
		return k.tryReadArrowKey()
	case b == '\r' || b == '\n':
		return "enter", nil
	case b == 127 || b == 8:
		return "backspace", nil
	case b == 3: // Ctrl+C
		return "back", nil
	case b >= 32 && b < 127:
		if b >= 'A' && b <= 'Z' {
			b += 'a' - 'A'
		}
		return string(rune(b)), nil
	}
	return "", nil
}

// Feed reads keys until r fails and pushes the resulting intents onto q.
// Intents are dropped when the queue is full.
func (k *KeyReader) Feed(q *Queue) error {
	for {
		code, err := k.ReadCode()
		if err != nil {
			return err
		}
		if code == "" {
			continue
		}
		if intent := IntentFor(DeviceTerminal, code, false); intent.Action != ActionNone {
			q.Push(intent)
		}
	}
}
