package domain

import "time"

// OptDate is an optional nullable date inside a changeset. Set reports
// whether the field is present at all; a present field with a nil Value
// clears the stored date.
type OptDate struct {
	Set   bool
	Value *time.Time
}

// DateChange builds a present OptDate.
func DateChange(t *time.Time) OptDate {
	return OptDate{Set: true, Value: t}
}

// ItemChanges is a sparse partial update of an item. Nil pointer fields
// (and unset OptDates) are left unchanged by the repository.
type ItemChanges struct {
	Type          *ItemType
	Title         *string
	StartDate     OptDate
	EndDate       OptDate
	Owner         *string
	Lane          *string
	Project       *string
	Tags          *[]string
	SourceRowHash *string
}

// Empty reports whether the changeset carries no fields at all.
func (c ItemChanges) Empty() bool {
	return c.Type == nil && c.Title == nil &&
		!c.StartDate.Set && !c.EndDate.Set &&
		c.Owner == nil && c.Lane == nil && c.Project == nil &&
		c.Tags == nil && c.SourceRowHash == nil
}

// Apply copies the present fields onto an item. UpdatedAt is not touched
// here; the repository stamps it on every update.
func (c ItemChanges) Apply(item *Item) {
	if c.Type != nil {
		item.Type = *c.Type
	}
	if c.Title != nil {
		item.Title = *c.Title
	}
	if c.StartDate.Set {
		item.StartDate = c.StartDate.Value
	}
	if c.EndDate.Set {
		item.EndDate = c.EndDate.Value
	}
	if c.Owner != nil {
		item.Owner = *c.Owner
	}
	if c.Lane != nil {
		item.Lane = *c.Lane
	}
	if c.Project != nil {
		item.Project = *c.Project
	}
	if c.Tags != nil {
		item.Tags = *c.Tags
	}
	if c.SourceRowHash != nil {
		item.SourceRowHash = *c.SourceRowHash
	}
}

// BranchChanges is a sparse partial update of branch metadata.
type BranchChanges struct {
	Label *string
	Note  *string
}

// Empty reports whether the changeset carries no fields.
func (c BranchChanges) Empty() bool {
	return c.Label == nil && c.Note == nil
}
