package annotation

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starmap/pkg/engine/world"
)

func load(t *testing.T, src string) *Index {
	t.Helper()
	return Load(strings.NewReader(src), world.StarChart, nil)
}

func TestLoad_Polaris(t *testing.T) {
	idx := load(t, "tile,x,y,label\n27,64,32,Polaris")
	require.Equal(t, 1, idx.Len())
	assert.Equal(t, Annotation{Tile: 27, X: 64, Y: 32, Label: "Polaris"}, idx.At(0))

	label, ok := idx.Lookup(27, 64, 32, 4)
	assert.True(t, ok)
	assert.Equal(t, "Polaris", label)

	_, ok = idx.Lookup(27, 69, 32, 4)
	assert.False(t, ok)

	_, ok = idx.Lookup(26, 64, 32, 4)
	assert.False(t, ok)
}

func TestLoad_HeaderAlwaysDiscarded(t *testing.T) {
	idx := load(t, "27,64,32,Polaris\n3,1,1,Vega\n")
	require.Equal(t, 1, idx.Len())
	assert.Equal(t, "Vega", idx.At(0).Label)
}

func TestLoad_SkipsMalformed(t *testing.T) {
	src := strings.Join([]string{
		"tile,x,y,label",
		"5,10,10",          // three fields
		"50,1,1,Too far",   // tile out of range
		"-1,1,1,Negative",  // tile out of range
		"x,1,1,Not a tile", // non-numeric
		"4,128,1,Off tile", // outside tile width
		"4,1,64,Off tile",  // outside tile height
		"4,1,1,   ",        // empty label
		"",                 // blank line
		"1,2,3,Deneb",
	}, "\n")

	idx := load(t, src)
	require.Equal(t, 1, idx.Len())
	assert.Equal(t, "Deneb", idx.At(0).Label)
}

func TestLoad_EmptySource(t *testing.T) {
	assert.Zero(t, load(t, "").Len())
	assert.Zero(t, load(t, "tile,x,y,label\n").Len())
}

func TestLoad_LabelsWithCommasAndQuotes(t *testing.T) {
	src := "tile,x,y,label\r\n" +
		"1,1,1,Alpha, Beta and Gamma\r\n" +
		`2,2,2,"Mizar, Alcor"` + "\r\n" +
		`3,3,3,"Say ""hi"""` + "\r\n" +
		`"4",4,4,Quoted tile` + "\r\n"

	idx := load(t, src)
	require.Equal(t, 4, idx.Len())
	assert.Equal(t, "Alpha, Beta and Gamma", idx.At(0).Label)
	assert.Equal(t, "Mizar, Alcor", idx.At(1).Label)
	assert.Equal(t, `Say "hi"`, idx.At(2).Label)
	assert.Equal(t, 4, idx.At(3).Tile)
}

func TestLoad_TruncatesLongLabelOnRuneBoundary(t *testing.T) {
	label := strings.Repeat("a", 62) + "α"
	idx := load(t, "h\n1,1,1,"+label)
	require.Equal(t, 1, idx.Len())
	assert.Equal(t, strings.Repeat("a", 62), idx.At(0).Label)
}

func TestLoad_TruncatesLongLine(t *testing.T) {
	long := "1,1,1," + strings.Repeat("z", 2*MaxLine)
	idx := load(t, "h\n"+long+"\n2,2,2,After")
	require.Equal(t, 2, idx.Len())
	assert.Len(t, idx.At(0).Label, MaxLabel)
	assert.Equal(t, "After", idx.At(1).Label)
}

// countingReader counts the bytes handed out by r
type countingReader struct {
	r io.Reader
	n int
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += n
	return n, err
}

// endlessRecords yields a header and then valid records forever
type endlessRecords struct {
	buf bytes.Buffer
	i   int
}

func (e *endlessRecords) Read(p []byte) (int, error) {
	for e.buf.Len() < len(p) {
		if e.i == 0 {
			e.buf.WriteString("tile,x,y,label\n")
		}
		fmt.Fprintf(&e.buf, "%d,%d,%d,Star %d\n", e.i%50, e.i%128, e.i%64, e.i)
		e.i++
	}
	return e.buf.Read(p)
}

func records(n int) string {
	var b strings.Builder
	b.WriteString("tile,x,y,label\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "%d,%d,%d,Star %d\n", i%50, i%128, i%64, i)
	}
	return b.String()
}

func TestLoad_Capacity(t *testing.T) {
	full := records(Capacity)
	src := full + records(20000)[len("tile,x,y,label\n"):]
	r := &countingReader{r: strings.NewReader(src)}

	idx := Load(r, world.StarChart, nil)
	assert.Equal(t, Capacity, idx.Len())
	assert.True(t, idx.Truncated())
	assert.Equal(t, "Star 199", idx.At(Capacity-1).Label)

	// Stops one line past capacity, plus what the line reader buffers
	assert.LessOrEqual(t, r.n, len(full)+2*MaxLine)
	assert.Less(t, r.n, len(src))
}

func TestLoad_CapacityStopsEndlessSource(t *testing.T) {
	r := &countingReader{r: &endlessRecords{}}

	idx := Load(r, world.StarChart, nil)
	assert.Equal(t, Capacity, idx.Len())
	assert.True(t, idx.Truncated())
	assert.LessOrEqual(t, r.n, len(records(Capacity))+2*MaxLine)
}

func TestLoad_ExactlyFull(t *testing.T) {
	idx := load(t, records(Capacity)+"\n")
	assert.Equal(t, Capacity, idx.Len())
	assert.False(t, idx.Truncated())
}

func TestLoad_MalformedPastCapacity(t *testing.T) {
	idx := load(t, records(Capacity)+"garbage\n99,1,1,x\n")
	assert.Equal(t, Capacity, idx.Len())
	assert.True(t, idx.Truncated())
}

func TestLookup_TiesResolvedByLoadOrder(t *testing.T) {
	idx := load(t, "h\n9,10,10,Far\n9,12,10,Near\n")

	// Near is at distance 0, Far at distance 2, both within radius
	label, ok := idx.Lookup(9, 12, 10, 4)
	require.True(t, ok)
	assert.Equal(t, "Far", label)
}

func TestLookup_RadiusBoundary(t *testing.T) {
	idx := load(t, "h\n0,10,10,Edge\n")

	_, ok := idx.Lookup(0, 14, 10, 4)
	assert.True(t, ok, "distance equal to radius")
	_, ok = idx.Lookup(0, 13, 13, 4)
	assert.False(t, ok, "distance squared 18 > 16")
}

func TestEach_LoadOrder(t *testing.T) {
	idx := load(t, "h\n1,1,1,A\n0,0,0,B\n")
	var labels []string
	idx.Each(func(a Annotation) { labels = append(labels, a.Label) })
	assert.Equal(t, []string{"A", "B"}, labels)
}

func TestLoadFile(t *testing.T) {
	fsys := fstest.MapFS{
		"annotations.csv": {Data: []byte("tile,x,y,label\n27,64,32,Polaris\n")},
	}

	idx, err := LoadFile(fsys, "annotations.csv", world.StarChart, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, idx.Len())

	idx, err = LoadFile(fsys, "missing.csv", world.StarChart, nil)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	require.NotNil(t, idx)
	assert.Zero(t, idx.Len())
}

func TestSQLite_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "annotations.csv")
	dbPath := filepath.Join(dir, "annotations.db")
	require.NoError(t, os.WriteFile(csvPath, []byte("tile,x,y,label\n27,64,32,Polaris\n5,10,10\n1,2,3,\"Mizar, Alcor\"\n"), 0o644))

	ctx := context.Background()
	n, err := ImportSQLite(ctx, csvPath, dbPath, world.StarChart, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Importing again replaces rather than appends
	n, err = ImportSQLite(ctx, csvPath, dbPath, world.StarChart, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	idx, err := LoadSQLite(ctx, dbPath, world.StarChart, nil)
	require.NoError(t, err)
	require.Equal(t, 2, idx.Len())
	assert.Equal(t, Annotation{Tile: 27, X: 64, Y: 32, Label: "Polaris"}, idx.At(0))
	assert.Equal(t, "Mizar, Alcor", idx.At(1).Label)
}

func TestLoadSQLite_StopsAtCapacity(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "annotations.csv")
	dbPath := filepath.Join(dir, "annotations.db")
	require.NoError(t, os.WriteFile(csvPath, []byte(records(Capacity)), 0o644))

	ctx := context.Background()
	n, err := ImportSQLite(ctx, csvPath, dbPath, world.StarChart, nil)
	require.NoError(t, err)
	require.Equal(t, Capacity, n)

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO annotations (tile, x, y, label) VALUES (1, 1, 1, 'Extra')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	idx, err := LoadSQLite(ctx, dbPath, world.StarChart, nil)
	require.NoError(t, err)
	assert.Equal(t, Capacity, idx.Len())
	assert.True(t, idx.Truncated())
	assert.Equal(t, "Star 199", idx.At(Capacity-1).Label)
}

func TestLoadSQLite_Missing(t *testing.T) {
	idx, err := LoadSQLite(context.Background(), filepath.Join(t.TempDir(), "nope.db"), world.StarChart, nil)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.Zero(t, idx.Len())
}

func TestImportSQLite_MissingCSV(t *testing.T) {
	dir := t.TempDir()
	_, err := ImportSQLite(context.Background(), filepath.Join(dir, "nope.csv"), filepath.Join(dir, "a.db"), world.StarChart, nil)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
}
