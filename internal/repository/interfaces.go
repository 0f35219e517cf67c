package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/strata/internal/domain"
)

// DateRange is an inclusive calendar window for overlap filtering.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Filter narrows item listings. All set fields compose conjunctively.
type Filter struct {
	// Types restricts to the given item types; empty means all types.
	Types []domain.ItemType
	// Project, Owner, and Lane are exact matches when non-empty.
	Project string
	Owner   string
	Lane    string
	// Tag is a substring match against the serialized tag list.
	Tag string
	// Overlaps keeps items whose scheduled span intersects the range:
	// start_date <= range.End AND (end_date >= range.Start OR end_date IS NULL).
	Overlaps *DateRange
}

type ItemRepo interface {
	List(ctx context.Context, branchID string, f Filter) ([]*domain.Item, error)
	// Get returns nil (no error) when the item does not exist.
	Get(ctx context.Context, id, branchID string) (*domain.Item, error)
	// Insert writes the item and its version-1-or-next history snapshot as
	// one unit. Returns the number of rows written (1 on success).
	Insert(ctx context.Context, item *domain.Item) (int64, error)
	// Update applies a sparse changeset, refreshes updated_at, and appends
	// the next history snapshot. Returns 0 when the item does not exist.
	Update(ctx context.Context, id, branchID string, changes domain.ItemChanges) (int64, error)
	// Delete removes the live row only; history is retained and no
	// deletion record is written. Returns 0 when the item does not exist.
	Delete(ctx context.Context, id, branchID string) (int64, error)
	Count(ctx context.Context, branchID string, f Filter) (int64, error)
}

type BranchRepo interface {
	// Create inserts the branch record and copies every current item of the
	// source branch as a fresh insert on the new branch.
	Create(ctx context.Context, fromID, toID, label, note string) (*domain.Branch, error)
	// Get returns nil (no error) when the branch does not exist.
	Get(ctx context.Context, id string) (*domain.Branch, error)
	List(ctx context.Context) ([]*domain.Branch, error)
	Update(ctx context.Context, id string, changes domain.BranchChanges) (int64, error)
	Delete(ctx context.Context, id string) error
	ItemCount(ctx context.Context, id string) (int64, error)
}

type HistoryRepo interface {
	History(ctx context.Context, id, branchID string) ([]*domain.HistoryRecord, error)
	// Version returns nil (no error) when the record does not exist.
	Version(ctx context.Context, id, branchID string, version int) (*domain.HistoryRecord, error)
	// LatestVersion returns 0 when the pair has never been written.
	LatestVersion(ctx context.Context, id, branchID string) (int, error)
	Recent(ctx context.Context, branchID string, limit int) ([]*domain.HistoryRecord, error)
	Search(ctx context.Context, branchID, term string, limit int) ([]*domain.Item, error)
}

type ProfileRepo interface {
	// Save stores a named column mapping with replace-on-save semantics.
	Save(ctx context.Context, name string, mapping domain.ColumnMapping) error
	// Get returns nil (no error) when the profile does not exist.
	Get(ctx context.Context, name string) (*domain.ColumnMapping, error)
	ListNames(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) (int64, error)
}

type ParamRepo interface {
	SetParam(ctx context.Context, key, value string) error
	// GetParam returns "" when the key is absent.
	GetParam(ctx context.Context, key string) (string, error)
}
