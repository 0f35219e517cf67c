package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/strata/internal/db"
	"github.com/alexanderramin/strata/internal/domain"
)

// itemColumns is the canonical SELECT column list for items.
const itemColumns = `id, branch_id, type, title, start_date, end_date,
		owner, lane, project, tags, source_row_hash, updated_at`

// SQLiteItemRepo implements ItemRepo using a SQLite database. Every
// mutation runs inside a transaction that also appends the item's history
// snapshot, so the versioning rule holds without storage-engine triggers.
type SQLiteItemRepo struct {
	db  *sql.DB
	uow db.UnitOfWork
}

// NewSQLiteItemRepo creates a new SQLiteItemRepo.
func NewSQLiteItemRepo(database *sql.DB) *SQLiteItemRepo {
	return &SQLiteItemRepo{
		db:  database,
		uow: db.NewSQLiteUnitOfWork(database),
	}
}

// buildFilter translates a Filter into conjunctive WHERE clauses.
func buildFilter(branchID string, f Filter) (string, []any) {
	clauses := []string{"branch_id = ?"}
	args := []any{branchID}

	if len(f.Types) == 1 {
		clauses = append(clauses, "type = ?")
		args = append(args, string(f.Types[0]))
	} else if len(f.Types) > 1 {
		placeholders := make([]string, len(f.Types))
		for i, t := range f.Types {
			placeholders[i] = "?"
			args = append(args, string(t))
		}
		clauses = append(clauses, "type IN ("+strings.Join(placeholders, ", ")+")")
	}
	if f.Project != "" {
		clauses = append(clauses, "project = ?")
		args = append(args, f.Project)
	}
	if f.Owner != "" {
		clauses = append(clauses, "owner = ?")
		args = append(args, f.Owner)
	}
	if f.Lane != "" {
		clauses = append(clauses, "lane = ?")
		args = append(args, f.Lane)
	}
	if f.Tag != "" {
		clauses = append(clauses, "tags LIKE '%' || ? || '%'")
		args = append(args, f.Tag)
	}
	if f.Overlaps != nil {
		clauses = append(clauses,
			"start_date <= ?", "(end_date >= ? OR end_date IS NULL)")
		args = append(args,
			f.Overlaps.End.Format(domain.DateLayout),
			f.Overlaps.Start.Format(domain.DateLayout))
	}

	return strings.Join(clauses, " AND "), args
}

func (r *SQLiteItemRepo) List(ctx context.Context, branchID string, f Filter) ([]*domain.Item, error) {
	where, args := buildFilter(branchID, f)
	query := `SELECT ` + itemColumns + ` FROM items WHERE ` + where +
		` ORDER BY start_date, title`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *SQLiteItemRepo) Get(ctx context.Context, id, branchID string) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ? AND branch_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, branchID)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

func (r *SQLiteItemRepo) Insert(ctx context.Context, item *domain.Item) (int64, error) {
	item.UpdatedAt = nowUTC()
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		query := `INSERT INTO items (` + itemColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, query,
			item.ID,
			item.BranchID,
			string(item.Type),
			item.Title,
			nullableTimeToString(item.StartDate, domain.DateLayout),
			nullableTimeToString(item.EndDate, domain.DateLayout),
			item.Owner,
			item.Lane,
			item.Project,
			joinTags(item.Tags),
			item.SourceRowHash,
			item.UpdatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("inserting item: %w", err)
		}
		return appendHistory(ctx, tx, item, domain.OpInsert)
	})
	if err != nil {
		return 0, err
	}
	return 1, nil
}

func (r *SQLiteItemRepo) Update(ctx context.Context, id, branchID string, changes domain.ItemChanges) (int64, error) {
	var affected int64
	err := r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx,
			`SELECT `+itemColumns+` FROM items WHERE id = ? AND branch_id = ?`, id, branchID)
		item, err := scanItem(row)
		if err == sql.ErrNoRows {
			return nil // affected stays 0
		}
		if err != nil {
			return fmt.Errorf("loading item for update: %w", err)
		}

		changes.Apply(item)
		// updated_at is refreshed regardless of which fields changed.
		item.UpdatedAt = nowUTC()

		query := `UPDATE items SET type = ?, title = ?, start_date = ?, end_date = ?,
			owner = ?, lane = ?, project = ?, tags = ?, source_row_hash = ?, updated_at = ?
			WHERE id = ? AND branch_id = ?`
		if _, err := tx.ExecContext(ctx, query,
			string(item.Type),
			item.Title,
			nullableTimeToString(item.StartDate, domain.DateLayout),
			nullableTimeToString(item.EndDate, domain.DateLayout),
			item.Owner,
			item.Lane,
			item.Project,
			joinTags(item.Tags),
			item.SourceRowHash,
			item.UpdatedAt.Format(time.RFC3339),
			id, branchID,
		); err != nil {
			return fmt.Errorf("updating item: %w", err)
		}

		if err := appendHistory(ctx, tx, item, domain.OpUpdate); err != nil {
			return err
		}
		affected = 1
		return nil
	})
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (r *SQLiteItemRepo) Delete(ctx context.Context, id, branchID string) (int64, error) {
	// Deletion leaves no tombstone and writes no history record.
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM items WHERE id = ? AND branch_id = ?`, id, branchID)
	if err != nil {
		return 0, fmt.Errorf("deleting item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rows: %w", err)
	}
	return n, nil
}

func (r *SQLiteItemRepo) Count(ctx context.Context, branchID string, f Filter) (int64, error) {
	where, args := buildFilter(branchID, f)
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE `+where, args...).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// appendHistory writes the snapshot that every successful item mutation
// produces. The version counter is sourced from history, not the live row,
// so it keeps climbing across delete/recreate cycles.
func appendHistory(ctx context.Context, tx db.DBTX, item *domain.Item, op domain.HistoryOp) error {
	var maxVersion int
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM item_history WHERE id = ? AND branch_id = ?`,
		item.ID, item.BranchID).Scan(&maxVersion)
	if err != nil {
		return fmt.Errorf("reading max history version: %w", err)
	}

	query := `INSERT INTO item_history (id, branch_id, version, op, type, title,
		start_date, end_date, owner, lane, project, tags, source_row_hash,
		updated_at, snapshot_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query,
		item.ID,
		item.BranchID,
		maxVersion+1,
		string(op),
		string(item.Type),
		item.Title,
		nullableTimeToString(item.StartDate, domain.DateLayout),
		nullableTimeToString(item.EndDate, domain.DateLayout),
		item.Owner,
		item.Lane,
		item.Project,
		joinTags(item.Tags),
		item.SourceRowHash,
		item.UpdatedAt.Format(time.RFC3339),
		time.Now().UTC().Format(snapshotLayout),
	); err != nil {
		return fmt.Errorf("appending history record: %w", err)
	}
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the shared scan path.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var item domain.Item
	var typeStr, tagsStr, updatedAtStr string
	var startStr, endStr sql.NullString

	err := row.Scan(
		&item.ID, &item.BranchID, &typeStr, &item.Title, &startStr, &endStr,
		&item.Owner, &item.Lane, &item.Project, &tagsStr, &item.SourceRowHash,
		&updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	item.Type = domain.ItemType(typeStr)
	item.Tags = splitTags(tagsStr)
	item.StartDate = parseNullableTime(startStr, domain.DateLayout)
	item.EndDate = parseNullableTime(endStr, domain.DateLayout)

	item.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}
	return items, nil
}
