package annotation

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"starmap/pkg/engine/world"
)

const createTable = "CREATE TABLE IF NOT EXISTS annotations (id INTEGER PRIMARY KEY NOT NULL, tile INTEGER NOT NULL, x INTEGER NOT NULL, y INTEGER NOT NULL, label TEXT NOT NULL)"

// LoadSQLite loads annotations from the annotations table of the database at
// path, in insertion order, applying the same validation and capacity as
// Load. A database that cannot be opened or queried gives an empty index and
// an error wrapping ErrSourceUnavailable.
func LoadSQLite(ctx context.Context, path string, grid world.Grid, logger *log.Logger) (*Index, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	idx := NewIndex(grid)

	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return idx, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT tile, x, y, label FROM annotations ORDER BY id")
	if err != nil {
		return idx, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer rows.Close()

	for n := 1; rows.Next(); n++ {
		if idx.Full() {
			idx.truncated = true
			break
		}
		var a Annotation
		if err := rows.Scan(&a.Tile, &a.X, &a.Y, &a.Label); err != nil {
			logger.Printf("annotations: row %d skipped: %v: %v", n, ErrRecordMalformed, err)
			continue
		}
		if _, err := idx.Add(a); err != nil {
			logger.Printf("annotations: row %d skipped: %v", n, err)
		}
	}
	if err := rows.Err(); err != nil {
		logger.Printf("annotations: query stopped early: %v", err)
	}

	if idx.truncated {
		logger.Printf("annotations: capacity %d reached, remaining rows ignored", Capacity)
	}
	logger.Printf("annotations: loaded %d from %s", idx.Len(), path)
	return idx, nil
}

// ImportSQLite loads the CSV file at csvPath and replaces the contents of the
// annotations table in the database at dbPath with the records that passed
// validation. It returns the number of records written.
func ImportSQLite(ctx context.Context, csvPath, dbPath string, grid world.Grid, logger *log.Logger) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	idx := Load(f, grid, logger)

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, createTable); err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM annotations"); err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO annotations (tile, x, y, label) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, a := range idx.records {
		if _, err := stmt.ExecContext(ctx, a.Tile, a.X, a.Y, a.Label); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return idx.Len(), nil
}
