package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
)

// ExportImage serializes the full store into a single SQLite image for an
// external persistence collaborator to save or restore. Restoring is just
// opening the written file with OpenDB.
//
// Uses VACUUM INTO, so the image is a compacted, consistent snapshot even
// when the live store is in WAL mode.
func ExportImage(db *sql.DB) ([]byte, error) {
	dir, err := os.MkdirTemp("", "strata-export-*")
	if err != nil {
		return nil, fmt.Errorf("creating export directory: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "image.db")
	if _, err := db.Exec(`VACUUM INTO ?`, path); err != nil {
		return nil, fmt.Errorf("vacuuming store image: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading store image: %w", err)
	}
	return data, nil
}
