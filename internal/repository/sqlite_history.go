package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

// snapshotLayout keeps nanosecond precision with fixed width so snapshot
// times sort correctly as text.
const snapshotLayout = "2006-01-02T15:04:05.000000000Z07:00"

const historyColumns = `id, branch_id, version, op, type, title, start_date, end_date,
		owner, lane, project, tags, source_row_hash, updated_at, snapshot_at`

// SQLiteHistoryRepo implements HistoryRepo over the append-only
// item_history table.
type SQLiteHistoryRepo struct {
	db *sql.DB
}

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(database *sql.DB) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: database}
}

func (r *SQLiteHistoryRepo) History(ctx context.Context, id, branchID string) ([]*domain.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM item_history
		WHERE id = ? AND branch_id = ? ORDER BY version`
	rows, err := r.db.QueryContext(ctx, query, id, branchID)
	if err != nil {
		return nil, fmt.Errorf("listing item history: %w", err)
	}
	defer rows.Close()
	return scanHistoryRecords(rows)
}

func (r *SQLiteHistoryRepo) Version(ctx context.Context, id, branchID string, version int) (*domain.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM item_history
		WHERE id = ? AND branch_id = ? AND version = ?`
	row := r.db.QueryRowContext(ctx, query, id, branchID, version)
	rec, err := scanHistoryRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting history version: %w", err)
	}
	return rec, nil
}

func (r *SQLiteHistoryRepo) LatestVersion(ctx context.Context, id, branchID string) (int, error) {
	var v int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM item_history WHERE id = ? AND branch_id = ?`,
		id, branchID).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("reading latest version: %w", err)
	}
	return v, nil
}

func (r *SQLiteHistoryRepo) Recent(ctx context.Context, branchID string, limit int) ([]*domain.HistoryRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM item_history
		WHERE branch_id = ? ORDER BY snapshot_at DESC, version DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, branchID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent history: %w", err)
	}
	defer rows.Close()
	return scanHistoryRecords(rows)
}

func (r *SQLiteHistoryRepo) Search(ctx context.Context, branchID, term string, limit int) ([]*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE branch_id = ? AND LOWER(title) LIKE '%' || LOWER(?) || '%'
		ORDER BY start_date, title LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, branchID, term, limit)
	if err != nil {
		return nil, fmt.Errorf("searching items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanHistoryRecord(row rowScanner) (*domain.HistoryRecord, error) {
	var rec domain.HistoryRecord
	var opStr, typeStr, tagsStr, updatedAtStr, snapshotAtStr string
	var startStr, endStr sql.NullString

	err := row.Scan(
		&rec.Item.ID, &rec.Item.BranchID, &rec.Version, &opStr,
		&typeStr, &rec.Item.Title, &startStr, &endStr,
		&rec.Item.Owner, &rec.Item.Lane, &rec.Item.Project, &tagsStr,
		&rec.Item.SourceRowHash, &updatedAtStr, &snapshotAtStr,
	)
	if err != nil {
		return nil, err
	}

	rec.Op = domain.HistoryOp(opStr)
	rec.Item.Type = domain.ItemType(typeStr)
	rec.Item.Tags = splitTags(tagsStr)
	rec.Item.StartDate = parseNullableTime(startStr, domain.DateLayout)
	rec.Item.EndDate = parseNullableTime(endStr, domain.DateLayout)

	rec.Item.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing history updated_at: %w", err)
	}
	rec.SnapshotAt, err = time.Parse(snapshotLayout, snapshotAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot_at: %w", err)
	}
	return &rec, nil
}

func scanHistoryRecords(rows *sql.Rows) ([]*domain.HistoryRecord, error) {
	var records []*domain.HistoryRecord
	for rows.Next() {
		rec, err := scanHistoryRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history records: %w", err)
	}
	return records, nil
}
