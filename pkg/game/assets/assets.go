// Package assets locates the tile images of the chart and builds them from a
// full chart image.
package assets

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strconv"
	"strings"

	"starmap/pkg/engine/world"
)

// DefaultPattern names tile files by two-digit zero-padded index
const DefaultPattern = "%02d.bmp"

// maxTileFile bounds the bytes read from a tile file that cannot seek
const maxTileFile = 1 << 16

// ErrTileUnavailable means a tile file could not be opened or read
var ErrTileUnavailable = errors.New("assets: tile unavailable")

type nopCloser struct {
	*bytes.Reader
}

func (nopCloser) Close() error { return nil }

// FS serves tiles from a file system. Names come from the manifest when one
// is set and from Pattern otherwise.
type FS struct {
	fsys    fs.FS
	pattern string
	names   map[int]string
}

// NewFS creates a tile source over fsys. An empty pattern selects
// DefaultPattern.
func NewFS(fsys fs.FS, pattern string) *FS {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return &FS{fsys: fsys, pattern: pattern}
}

// UseManifest overrides the file names of the tiles it lists
func (s *FS) UseManifest(names map[int]string) {
	s.names = names
}

// Name returns the file name of tile index
func (s *FS) Name(index int) string {
	if name, ok := s.names[index]; ok {
		return name
	}
	return fmt.Sprintf(s.pattern, index)
}

// Open returns a seekable reader over the tile file
func (s *FS) Open(index int) (io.ReadSeekCloser, error) {
	name := s.Name(index)
	f, err := s.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTileUnavailable, err)
	}
	if rsc, ok := f.(io.ReadSeekCloser); ok {
		return rsc, nil
	}
	defer f.Close()

	b, err := io.ReadAll(io.LimitReader(f, maxTileFile))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTileUnavailable, name, err)
	}
	return nopCloser{bytes.NewReader(b)}, nil
}

// LoadManifest reads a "row,col,filename" tile list. The first line is a
// header. Rows outside grid or without a filename are logged and skipped.
func LoadManifest(r io.Reader, grid world.Grid, logger *log.Logger) (map[int]string, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	names := make(map[int]string)
	for n := 0; ; n++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return names, err
		}
		if n == 0 {
			continue
		}
		if len(rec) < 3 || strings.TrimSpace(rec[2]) == "" {
			logger.Printf("tiles: line %d skipped: %d fields", n+1, len(rec))
			continue
		}
		row, errRow := strconv.Atoi(strings.TrimSpace(rec[0]))
		col, errCol := strconv.Atoi(strings.TrimSpace(rec[1]))
		if errRow != nil || errCol != nil || !grid.IsValidPosition(row, col) {
			logger.Printf("tiles: line %d skipped: bad position %q,%q", n+1, rec[0], rec[1])
			continue
		}
		names[grid.TileIndex(row, col)] = strings.TrimSpace(rec[2])
	}
	logger.Printf("tiles: manifest names %d tiles", len(names))
	return names, nil
}
