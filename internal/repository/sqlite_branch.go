package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

const branchColumns = `branch_id, label, created_from, note, created_at`

// SQLiteBranchRepo implements BranchRepo. Branch creation copies the source
// branch's current items through the item repository, so every copy gets its
// own version-1 history entry on the new branch; parent history is never
// inherited.
type SQLiteBranchRepo struct {
	db    *sql.DB
	items ItemRepo
}

// NewSQLiteBranchRepo creates a new SQLiteBranchRepo.
func NewSQLiteBranchRepo(database *sql.DB, items ItemRepo) *SQLiteBranchRepo {
	return &SQLiteBranchRepo{db: database, items: items}
}

func (r *SQLiteBranchRepo) Create(ctx context.Context, fromID, toID, label, note string) (*domain.Branch, error) {
	source, err := r.Get(ctx, fromID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("source branch %q: %w", fromID, ErrBranchNotFound)
	}
	existing, err := r.Get(ctx, toID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("target branch %q: %w", toID, ErrBranchExists)
	}

	branch := &domain.Branch{
		ID:          toID,
		Label:       label,
		CreatedFrom: fromID,
		Note:        note,
		CreatedAt:   nowUTC(),
	}
	query := `INSERT INTO branches (` + branchColumns + `) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query,
		branch.ID, branch.Label, branch.CreatedFrom, branch.Note,
		branch.CreatedAt.Format(time.RFC3339),
	); err != nil {
		return nil, fmt.Errorf("inserting branch: %w", err)
	}

	// Physical copy of the parent's current rows. Later edits to the
	// parent never propagate.
	sourceItems, err := r.items.List(ctx, fromID, Filter{})
	if err != nil {
		return nil, fmt.Errorf("listing source branch items: %w", err)
	}
	for _, item := range sourceItems {
		copied := *item
		copied.BranchID = toID
		if _, err := r.items.Insert(ctx, &copied); err != nil {
			return nil, fmt.Errorf("copying item %q to branch %q: %w", item.ID, toID, err)
		}
	}

	return branch, nil
}

func (r *SQLiteBranchRepo) Get(ctx context.Context, id string) (*domain.Branch, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+branchColumns+` FROM branches WHERE branch_id = ?`, id)
	branch, err := scanBranch(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting branch: %w", err)
	}
	return branch, nil
}

func (r *SQLiteBranchRepo) List(ctx context.Context) ([]*domain.Branch, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+branchColumns+` FROM branches
		 ORDER BY branch_id != 'main', created_at, branch_id`)
	if err != nil {
		return nil, fmt.Errorf("listing branches: %w", err)
	}
	defer rows.Close()

	var branches []*domain.Branch
	for rows.Next() {
		branch, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning branch row: %w", err)
		}
		branches = append(branches, branch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating branches: %w", err)
	}
	return branches, nil
}

func (r *SQLiteBranchRepo) Update(ctx context.Context, id string, changes domain.BranchChanges) (int64, error) {
	if changes.Empty() {
		return 0, nil
	}

	branch, err := r.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if branch == nil {
		return 0, nil
	}
	if changes.Label != nil {
		branch.Label = *changes.Label
	}
	if changes.Note != nil {
		branch.Note = *changes.Note
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE branches SET label = ?, note = ? WHERE branch_id = ?`,
		branch.Label, branch.Note, id)
	if err != nil {
		return 0, fmt.Errorf("updating branch: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting updated branches: %w", err)
	}
	return n, nil
}

func (r *SQLiteBranchRepo) Delete(ctx context.Context, id string) error {
	if id == domain.MainBranch {
		return fmt.Errorf("deleting branch %q: %w", domain.MainBranch, ErrProtectedBranch)
	}
	branch, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if branch == nil {
		return fmt.Errorf("deleting branch %q: %w", id, ErrBranchNotFound)
	}

	// Item rows go; their history stays, orphaned from any live branch.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE branch_id = ?`, id); err != nil {
		return fmt.Errorf("deleting branch items: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE branch_id = ?`, id); err != nil {
		return fmt.Errorf("deleting branch record: %w", err)
	}
	return nil
}

func (r *SQLiteBranchRepo) ItemCount(ctx context.Context, id string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE branch_id = ?`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting branch items: %w", err)
	}
	return n, nil
}

func scanBranch(row rowScanner) (*domain.Branch, error) {
	var branch domain.Branch
	var createdFrom sql.NullString
	var createdAtStr string

	if err := row.Scan(&branch.ID, &branch.Label, &createdFrom, &branch.Note, &createdAtStr); err != nil {
		return nil, err
	}
	if createdFrom.Valid {
		branch.CreatedFrom = createdFrom.String
	}

	var err error
	branch.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing branch created_at: %w", err)
	}
	return &branch, nil
}
