package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SchemaVersion is the schema this engine reads and writes. A store
// recorded under any other version is unusable: there is no migration path.
const SchemaVersion = 1

// ErrSchemaVersion marks a schema version mismatch at open time.
var ErrSchemaVersion = errors.New("schema version mismatch")

var schema = []string{
	`CREATE TABLE IF NOT EXISTS branches (
		branch_id    TEXT PRIMARY KEY,
		label        TEXT NOT NULL DEFAULT '',
		created_from TEXT,
		note         TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS items (
		id              TEXT NOT NULL,
		branch_id       TEXT NOT NULL REFERENCES branches(branch_id),
		type            TEXT NOT NULL
		                CHECK(type IN ('task','milestone','release','meeting')),
		title           TEXT NOT NULL,
		start_date      TEXT,
		end_date        TEXT,
		owner           TEXT NOT NULL DEFAULT '',
		lane            TEXT NOT NULL DEFAULT '',
		project         TEXT NOT NULL DEFAULT '',
		tags            TEXT NOT NULL DEFAULT '',
		source_row_hash TEXT NOT NULL DEFAULT '',
		updated_at      TEXT NOT NULL,
		PRIMARY KEY (id, branch_id),
		CHECK(end_date IS NULL OR start_date IS NULL OR end_date >= start_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_items_branch_type ON items(branch_id, type)`,
	`CREATE INDEX IF NOT EXISTS idx_items_dates ON items(start_date, end_date)`,
	`CREATE INDEX IF NOT EXISTS idx_items_project ON items(project)`,

	`CREATE TABLE IF NOT EXISTS item_history (
		id              TEXT NOT NULL,
		branch_id       TEXT NOT NULL,
		version         INTEGER NOT NULL CHECK(version >= 1),
		op              TEXT NOT NULL CHECK(op IN ('insert','update')),
		type            TEXT NOT NULL,
		title           TEXT NOT NULL,
		start_date      TEXT,
		end_date        TEXT,
		owner           TEXT NOT NULL DEFAULT '',
		lane            TEXT NOT NULL DEFAULT '',
		project         TEXT NOT NULL DEFAULT '',
		tags            TEXT NOT NULL DEFAULT '',
		source_row_hash TEXT NOT NULL DEFAULT '',
		updated_at      TEXT NOT NULL,
		snapshot_at     TEXT NOT NULL,
		PRIMARY KEY (id, branch_id, version)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_history_branch_time ON item_history(branch_id, snapshot_at)`,

	`CREATE TABLE IF NOT EXISTS import_profiles (
		name    TEXT PRIMARY KEY,
		mapping TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS app_params (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS _schema_version (
		version INTEGER NOT NULL
	)`,
}

// Init applies the schema, seeds the main branch and the version row, and
// verifies the recorded version. Idempotent on a store this engine wrote;
// fatal on a store written under a different version.
func Init(db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := db.Exec(
		`INSERT OR IGNORE INTO branches (branch_id, label, created_from, note, created_at)
		 VALUES ('main', 'Main', NULL, '', ?)`, now); err != nil {
		return fmt.Errorf("seeding main branch: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM _schema_version`).Scan(&count); err != nil {
		return fmt.Errorf("probing schema version row: %w", err)
	}
	if count == 0 {
		if _, err := db.Exec(`INSERT INTO _schema_version (version) VALUES (?)`, SchemaVersion); err != nil {
			return fmt.Errorf("recording schema version: %w", err)
		}
		return nil
	}

	recorded, err := RecordedVersion(db)
	if err != nil {
		return err
	}
	if recorded != SchemaVersion {
		return fmt.Errorf("store has schema version %d, engine expects %d: %w",
			recorded, SchemaVersion, ErrSchemaVersion)
	}
	return nil
}

// RecordedVersion reads the schema version stored in the database.
func RecordedVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow(`SELECT version FROM _schema_version LIMIT 1`).Scan(&v); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return v, nil
}
