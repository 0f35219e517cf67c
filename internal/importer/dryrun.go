// Package importer reconciles externally split CSV rows against existing
// branch state: column auto-detection, read-only dry-run classification,
// and a best-effort commit.
package importer

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/repository"
	"github.com/google/uuid"
)

// Mode selects how rows with no existing match are treated.
type Mode string

const (
	// ModeUpsert adds new rows and updates matched ones.
	ModeUpsert Mode = "upsert"
	// ModeUpdateOnly skips rows that would create new items.
	ModeUpdateOnly Mode = "update-only"
)

// Options configures a dry run.
type Options struct {
	Branch  string
	Mapping domain.ColumnMapping
	Mode    Mode
}

// AddedRow is a row that will insert a new item on commit.
type AddedRow struct {
	Index int
	Item  domain.Item
}

// UpdatedRow is a row that will apply a sparse update to an existing item.
type UpdatedRow struct {
	Index   int
	ID      string
	Changes domain.ItemChanges
}

// SkippedRow is a row left alone, with a human-readable reason.
type SkippedRow struct {
	Index  int
	Reason string
}

// ConflictRow is a row whose match key already appeared earlier in the
// same batch. FirstIndex is the 1-based row of the first occurrence.
type ConflictRow struct {
	Index      int
	Key        string
	FirstIndex int
	Reason     string
}

// DryRunResult is the read-only classification of an import batch.
// Nothing has been written when it is produced.
type DryRunResult struct {
	Branch   string
	Mode     Mode
	Strategy domain.IDStrategy

	Added     []AddedRow
	Updated   []UpdatedRow
	Skipped   []SkippedRow
	Conflicts []ConflictRow
}

// TotalRows counts the classified rows (blank rows are never counted).
func (r *DryRunResult) TotalRows() int {
	return len(r.Added) + len(r.Updated) + len(r.Skipped) + len(r.Conflicts)
}

// Engine classifies and commits import batches against one branch.
type Engine struct {
	items repository.ItemRepo
}

func NewEngine(items repository.ItemRepo) *Engine {
	return &Engine{items: items}
}

// DryRun classifies rows in order without writing anything. Row indexes in
// the result are 1-based positions within the batch.
func (e *Engine) DryRun(ctx context.Context, rows [][]string, opts Options) (*DryRunResult, error) {
	if opts.Mode == "" {
		opts.Mode = ModeUpsert
	}
	strategy := opts.Mapping.IDStrategy
	if strategy == "" {
		strategy = domain.StrategyGenerate
	}

	existing, err := e.items.List(ctx, opts.Branch, repository.Filter{})
	if err != nil {
		return nil, fmt.Errorf("listing existing items: %w", err)
	}
	byKey := make(map[string]*domain.Item, len(existing))
	for _, item := range existing {
		byKey[matchKeyFor(item, strategy)] = item
	}

	result := &DryRunResult{Branch: opts.Branch, Mode: opts.Mode, Strategy: strategy}
	seen := make(map[string]int)

	for i, row := range rows {
		index := i + 1
		if isBlankRow(row) {
			continue
		}

		fields, reasons := parseRow(row, opts.Mapping)
		if strategy == domain.StrategyColumn && fields.IDValue == "" {
			reasons = append(reasons, "id column is empty")
		}
		if len(reasons) > 0 {
			result.Skipped = append(result.Skipped, SkippedRow{
				Index:  index,
				Reason: strings.Join(reasons, "; "),
			})
			continue
		}

		// The generated id doubles as the match key, so generate-strategy
		// rows can neither collide in the batch nor match existing items.
		newID := ""
		key := ""
		switch strategy {
		case domain.StrategyColumn:
			newID = fields.IDValue
			key = fields.IDValue
		case domain.StrategyMatch:
			newID = uuid.New().String()
			key = fields.Project + ":" + fields.Title
		default:
			newID = uuid.New().String()
			key = newID
		}

		if first, dup := seen[key]; dup {
			result.Conflicts = append(result.Conflicts, ConflictRow{
				Index:      index,
				Key:        key,
				FirstIndex: first,
				Reason: fmt.Sprintf("%s key %q already used by row %d in this batch",
					strategy, key, first),
			})
			continue
		}
		seen[key] = index

		hash := RowHash(row)
		current, ok := byKey[key]
		if !ok {
			if opts.Mode == ModeUpdateOnly {
				result.Skipped = append(result.Skipped, SkippedRow{
					Index:  index,
					Reason: "new item in update-only mode",
				})
				continue
			}
			result.Added = append(result.Added, AddedRow{
				Index: index,
				Item:  fields.item(newID, opts.Branch, hash),
			})
			continue
		}

		if current.SourceRowHash == hash {
			result.Skipped = append(result.Skipped, SkippedRow{
				Index:  index,
				Reason: "no changes detected",
			})
			continue
		}
		result.Updated = append(result.Updated, UpdatedRow{
			Index:   index,
			ID:      current.ID,
			Changes: fields.changes(opts.Mapping, hash),
		})
	}

	return result, nil
}

func matchKeyFor(item *domain.Item, strategy domain.IDStrategy) string {
	if strategy == domain.StrategyMatch {
		return item.MatchKey()
	}
	return item.ID
}
