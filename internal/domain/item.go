package domain

import "time"

// Item is one schedulable record on a branch. Identity is the (ID, BranchID)
// pair: the same logical id may exist independently on many branches.
type Item struct {
	ID       string
	BranchID string
	Type     ItemType
	Title    string

	StartDate *time.Time
	EndDate   *time.Time

	Owner   string
	Lane    string
	Project string
	Tags    []string

	// SourceRowHash is the change-detection token of the import row this
	// item was last written from; empty for items created by hand.
	SourceRowHash string

	UpdatedAt time.Time
}

// MatchKey derives the synthetic key used by the "match" import strategy.
func (i *Item) MatchKey() string {
	return i.Project + ":" + i.Title
}
