// Package tui provides a terminal backend that draws the display with
// half-block characters and reads keys in raw mode.
package tui

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"starmap/pkg/engine/input"
	"starmap/pkg/engine/terminal"
	"starmap/pkg/engine/world"
	"starmap/pkg/game/renderer"
)

// Half-block glyphs indexed by top<<1 | bottom
var blocks = [4]string{" ", "▄", "▀", "█"}

// statusRows are the lines printed under the display
const statusRows = 2

// TUIRenderer is the terminal-based backend
type TUIRenderer struct {
	in  io.Reader
	out io.Writer

	queue *input.Queue

	// Display size in pixels
	width, height int

	colorStatus  color.Style
	displayStyle color.Style

	mu      sync.Mutex
	status  string
	restore func()
}

// New creates a TUI backend on stdin and stdout
func New() *TUIRenderer {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO creates a TUI backend reading keys from in and drawing to out
func NewWithIO(in io.Reader, out io.Writer) *TUIRenderer {
	return &TUIRenderer{
		in:     in,
		out:    out,
		queue:  input.NewQueue(),
		width:  world.ScreenWidth,
		height: world.ScreenHeight,
	}
}

// fitError reports whether a termW x termH terminal is too small for the
// display plus the status rows
func (t *TUIRenderer) fitError(termW, termH int) error {
	cols, rows := terminal.CellsFor(t.width, t.height)
	if cols <= termW && rows+statusRows <= termH {
		return nil
	}
	return fmt.Errorf("tui: terminal is %dx%d, need at least %dx%d", termW, termH, cols, rows+statusRows)
}

// Init switches the terminal to raw mode and hides the cursor
func (t *TUIRenderer) Init() error {
	t.displayStyle = color.Style{color.FgBlack, color.BgYellow}
	t.colorStatus = color.Style{color.FgGray}

	if f, ok := t.out.(*os.File); ok && f == os.Stdout {
		if err := t.fitError(terminal.GetSize()); err != nil {
			return err
		}
	}

	if t.in == os.Stdin && input.IsTerminal() {
		restore, err := input.MakeRaw()
		if err != nil {
			return fmt.Errorf("tui: raw mode: %w", err)
		}
		t.restore = restore
	}

	// Clear screen, hide cursor
	fmt.Fprint(t.out, "\x1b[2J\x1b[?25l")
	return nil
}

// Intents returns the queue fed by the key reader
func (t *TUIRenderer) Intents() *input.Queue {
	return t.queue
}

// SetStatus sets the line shown under the display
func (t *TUIRenderer) SetStatus(s string) {
	t.mu.Lock()
	t.status = s
	t.mu.Unlock()
}

// Present redraws the whole display from the top-left of the terminal
func (t *TUIRenderer) Present(frame image.Image) {
	t.mu.Lock()
	status := t.status
	t.mu.Unlock()

	w := bufio.NewWriter(t.out)
	w.WriteString("\x1b[H")
	for _, row := range Rows(frame) {
		w.WriteString(t.displayStyle.Sprint(row))
		w.WriteString("\x1b[K\r\n")
	}
	w.WriteString("\x1b[K\r\n")
	w.WriteString(t.colorStatus.Sprint(status))
	w.WriteString("\x1b[K")
	w.Flush()
}

// Run feeds the queue from the terminal and runs loop on the calling
// goroutine.
func (t *TUIRenderer) Run(loop func() error) error {
	go func() {
		// Ends with the process; stdin reads cannot be interrupted
		t.readKeys()
	}()
	return loop()
}

func (t *TUIRenderer) readKeys() {
	if err := input.NewKeyReader(t.in).Feed(t.queue); err != nil && err != io.EOF {
		t.SetStatus(gotext.Get("Input error: %v", err))
	}
}

// Close shows the cursor again and restores the terminal mode
func (t *TUIRenderer) Close() error {
	fmt.Fprint(t.out, "\x1b[?25h\r\n")
	if t.restore != nil {
		t.restore()
		t.restore = nil
	}
	return nil
}

// Rows renders img as half-block text, two pixel rows per line
func Rows(img image.Image) []string {
	b := img.Bounds()
	rows := make([]string, 0, (b.Dy()+1)/2)

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		sb.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			i := 0
			if renderer.IsInk(img.At(x, y)) {
				i |= 2
			}
			if y+1 < b.Max.Y && renderer.IsInk(img.At(x, y+1)) {
				i |= 1
			}
			sb.WriteString(blocks[i])
		}
		rows = append(rows, sb.String())
	}
	return rows
}

var _ renderer.Backend = (*TUIRenderer)(nil)
