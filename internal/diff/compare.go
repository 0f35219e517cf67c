// Package diff compares the item sets of two branches field by field.
package diff

import (
	"context"
	"fmt"
	"sort"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/alexanderramin/strata/internal/repository"
)

// Change is an item present on both branches whose fields differ.
type Change struct {
	Before domain.Item
	After  domain.Item
	// Fields names the differing fields, in a fixed order.
	Fields []string
}

// Result is a full branch comparison: the symmetric difference of items
// by id plus the before/after detail for changed pairs.
type Result struct {
	BranchA string
	BranchB string

	// Added items exist only on B, Removed only on A.
	Added     []domain.Item
	Removed   []domain.Item
	Changed   []Change
	Unchanged []domain.Item
}

// Counts summarizes a result per bucket.
type Counts struct {
	Added     int
	Removed   int
	Changed   int
	Unchanged int
}

func (r *Result) Counts() Counts {
	return Counts{
		Added:     len(r.Added),
		Removed:   len(r.Removed),
		Changed:   len(r.Changed),
		Unchanged: len(r.Unchanged),
	}
}

// Engine computes branch comparisons through the item repository's read path.
type Engine struct {
	items repository.ItemRepo
}

func NewEngine(items repository.ItemRepo) *Engine {
	return &Engine{items: items}
}

// Compare categorizes every item id appearing on either branch. Two map
// passes keyed by id stand in for a two-sided outer join: A's rows extended
// with matching B, then B's rows with no match in A.
func (e *Engine) Compare(ctx context.Context, branchA, branchB string) (*Result, error) {
	itemsA, err := e.items.List(ctx, branchA, repository.Filter{})
	if err != nil {
		return nil, fmt.Errorf("listing branch %q: %w", branchA, err)
	}
	itemsB, err := e.items.List(ctx, branchB, repository.Filter{})
	if err != nil {
		return nil, fmt.Errorf("listing branch %q: %w", branchB, err)
	}

	byIDB := make(map[string]*domain.Item, len(itemsB))
	for _, item := range itemsB {
		byIDB[item.ID] = item
	}

	result := &Result{BranchA: branchA, BranchB: branchB}
	seenInA := make(map[string]bool, len(itemsA))

	for _, a := range itemsA {
		seenInA[a.ID] = true
		b, ok := byIDB[a.ID]
		if !ok {
			result.Removed = append(result.Removed, *a)
			continue
		}
		if fields := changedFields(a, b); len(fields) > 0 {
			result.Changed = append(result.Changed, Change{Before: *a, After: *b, Fields: fields})
		} else {
			result.Unchanged = append(result.Unchanged, *a)
		}
	}

	for _, b := range itemsB {
		if !seenInA[b.ID] {
			result.Added = append(result.Added, *b)
		}
	}
	// List order is start_date/title; keep added deterministic by id too.
	sort.SliceStable(result.Added, func(i, j int) bool {
		return result.Added[i].ID < result.Added[j].ID
	})

	return result, nil
}

// changedFields compares every field except id, branch_id, and updated_at.
func changedFields(a, b *domain.Item) []string {
	var fields []string
	if a.Type != b.Type {
		fields = append(fields, "type")
	}
	if a.Title != b.Title {
		fields = append(fields, "title")
	}
	if !domain.SameDate(a.StartDate, b.StartDate) {
		fields = append(fields, "start_date")
	}
	if !domain.SameDate(a.EndDate, b.EndDate) {
		fields = append(fields, "end_date")
	}
	if a.Owner != b.Owner {
		fields = append(fields, "owner")
	}
	if a.Lane != b.Lane {
		fields = append(fields, "lane")
	}
	if a.Project != b.Project {
		fields = append(fields, "project")
	}
	if !equalTags(a.Tags, b.Tags) {
		fields = append(fields, "tags")
	}
	if a.SourceRowHash != b.SourceRowHash {
		fields = append(fields, "source_row_hash")
	}
	return fields
}

func equalTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
