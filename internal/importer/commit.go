package importer

import (
	"context"
	"log"
)

// CommitResult reports what a commit actually wrote. Inserted+Updated may
// be less than the dry run promised when individual writes failed.
type CommitResult struct {
	Inserted int
	Updated  int
	Failed   int
}

// Commit applies a dry-run result through the item repository. Every item
// write is attempted independently: a failure is logged and counted, never
// escalated, and the remaining items still go through. The batch is
// deliberately not one transaction; a crash mid-batch leaves a partial
// import.
func (e *Engine) Commit(ctx context.Context, result *DryRunResult) *CommitResult {
	var res CommitResult

	for _, add := range result.Added {
		item := add.Item
		if _, err := e.items.Insert(ctx, &item); err != nil {
			log.Printf("import: inserting row %d (item %q): %v", add.Index, item.ID, err)
			res.Failed++
			continue
		}
		res.Inserted++
	}

	for _, upd := range result.Updated {
		n, err := e.items.Update(ctx, upd.ID, result.Branch, upd.Changes)
		if err != nil {
			log.Printf("import: updating row %d (item %q): %v", upd.Index, upd.ID, err)
			res.Failed++
			continue
		}
		if n == 0 {
			log.Printf("import: updating row %d: item %q no longer exists", upd.Index, upd.ID)
			res.Failed++
			continue
		}
		res.Updated++
	}

	return &res
}
