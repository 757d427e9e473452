// Package annotation holds the points of interest of the star chart and
// answers which one, if any, lies near a tile-local position.
package annotation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"starmap/pkg/engine/world"
)

const (
	// Capacity is the most annotations an Index holds. Loading stops once it
	// is reached.
	Capacity = 200

	// MaxLabel is the longest label kept, in bytes
	MaxLabel = 63

	// MaxLine is the longest source line read, in bytes. The remainder of a
	// longer line is discarded.
	MaxLine = 256
)

var (
	// ErrSourceUnavailable means the annotation source could not be opened
	// or read. The index is still usable, just empty.
	ErrSourceUnavailable = errors.New("annotation: source unavailable")

	// ErrRecordMalformed marks a record that was skipped
	ErrRecordMalformed = errors.New("annotation: malformed record")
)

// Annotation is a labelled point on one tile
type Annotation struct {
	Tile  int
	X     int
	Y     int
	Label string
}

// Index is a fixed capacity table of annotations kept in load order
type Index struct {
	grid    world.Grid
	records []Annotation

	// truncated is set when the source had lines past Capacity
	truncated bool
}

// NewIndex returns an empty index for grid
func NewIndex(grid world.Grid) *Index {
	return &Index{
		grid:    grid,
		records: make([]Annotation, 0, Capacity),
	}
}

// Add validates a and appends it. A full index marks itself truncated and
// returns false without error.
func (idx *Index) Add(a Annotation) (bool, error) {
	if !idx.grid.IsValidIndex(a.Tile) {
		return false, fmt.Errorf("%w: tile %d outside [0,%d)", ErrRecordMalformed, a.Tile, idx.grid.Count())
	}
	if a.X < 0 || a.X >= idx.grid.TileWidth || a.Y < 0 || a.Y >= idx.grid.TileHeight {
		return false, fmt.Errorf("%w: position %d,%d outside tile", ErrRecordMalformed, a.X, a.Y)
	}
	a.Label = truncate(strings.TrimSpace(a.Label), MaxLabel)
	if a.Label == "" {
		return false, fmt.Errorf("%w: empty label", ErrRecordMalformed)
	}
	if len(idx.records) >= Capacity {
		idx.truncated = true
		return false, nil
	}
	idx.records = append(idx.records, a)
	return true, nil
}

// Full reports whether the index reached Capacity
func (idx *Index) Full() bool {
	return len(idx.records) >= Capacity
}

// Len returns the number of annotations
func (idx *Index) Len() int {
	return len(idx.records)
}

// Truncated reports whether loading stopped at Capacity with source lines
// left unread
func (idx *Index) Truncated() bool {
	return idx.truncated
}

// At returns the i-th annotation in load order
func (idx *Index) At(i int) Annotation {
	return idx.records[i]
}

// Each calls fn for every annotation in load order
func (idx *Index) Each(fn func(a Annotation)) {
	for _, a := range idx.records {
		fn(a)
	}
}

// Lookup returns the label of the first annotation, in load order, on tile
// whose squared distance from (lx, ly) is at most radius squared. Closer
// annotations loaded later do not win.
func (idx *Index) Lookup(tile, lx, ly, radius int) (string, bool) {
	r2 := radius * radius
	for i := range idx.records {
		a := &idx.records[i]
		if a.Tile != tile {
			continue
		}
		dx, dy := a.X-lx, a.Y-ly
		if dx*dx+dy*dy <= r2 {
			return a.Label, true
		}
	}
	return "", false
}

// Load reads "tile,x,y,label" records from r. The first line is a header and
// is always discarded. Malformed records are logged and skipped. Once the
// index is full Load reads at most one more line, to tell whether the source
// was truncated, and stops. Load never fails.
func Load(r io.Reader, grid world.Grid, logger *log.Logger) *Index {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	idx := NewIndex(grid)
	br := bufio.NewReaderSize(r, MaxLine)

	for n := 0; ; n++ {
		line, err := readLine(br)
		if err != nil {
			if err != io.EOF {
				logger.Printf("annotations: read failed after line %d: %v", n, err)
			}
			break
		}
		if idx.Full() {
			idx.truncated = strings.TrimSpace(line) != ""
			break
		}
		if n == 0 || strings.TrimSpace(line) == "" {
			continue
		}

		a, err := parseRecord(line)
		if err == nil {
			_, err = idx.Add(a)
		}
		if err != nil {
			logger.Printf("annotations: line %d skipped: %v", n+1, err)
		}
	}

	if idx.truncated {
		logger.Printf("annotations: capacity %d reached, rest of source ignored", Capacity)
	}
	logger.Printf("annotations: loaded %d", idx.Len())
	return idx
}

// LoadFile opens name in fsys and loads it. When the file cannot be opened
// the returned index is empty and the error wraps ErrSourceUnavailable.
func LoadFile(fsys fs.FS, name string, grid world.Grid, logger *log.Logger) (*Index, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return NewIndex(grid), fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	return Load(f, grid, logger), nil
}

// readLine returns the next line without its terminator, at most MaxLine
// bytes of it.
func readLine(br *bufio.Reader) (string, error) {
	line, isPrefix, err := br.ReadLine()
	if err != nil {
		return "", err
	}
	s := string(line)
	for isPrefix {
		if _, isPrefix, err = br.ReadLine(); err != nil {
			break
		}
	}
	return strings.TrimRight(s, "\r"), nil
}

// splitRecord splits line into at most n fields on commas outside double
// quotes. The last field takes the rest of the line, so an unquoted label
// may contain commas.
func splitRecord(line string, n int) []string {
	fields := make([]string, 0, n)
	start, inQuotes := 0, false
	for i := 0; i < len(line) && len(fields) < n-1; i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				fields = append(fields, line[start:i])
				start = i + 1
			}
		}
	}
	return append(fields, line[start:])
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return s
}

func parseRecord(line string) (Annotation, error) {
	fields := splitRecord(line, 4)
	if len(fields) != 4 {
		return Annotation{}, fmt.Errorf("%w: %d fields, want 4", ErrRecordMalformed, len(fields))
	}

	var nums [3]int
	for i := range nums {
		v, err := strconv.Atoi(unquote(fields[i]))
		if err != nil {
			return Annotation{}, fmt.Errorf("%w: field %d: %v", ErrRecordMalformed, i+1, err)
		}
		nums[i] = v
	}

	return Annotation{
		Tile:  nums[0],
		X:     nums[1],
		Y:     nums[2],
		Label: unquote(fields[3]),
	}, nil
}

// truncate cuts s to at most max bytes without splitting a rune
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
