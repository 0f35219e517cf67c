package testutil

import (
	"time"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/google/uuid"
)

// Item options
type ItemOption func(*domain.Item)

func WithID(id string) ItemOption {
	return func(i *domain.Item) {
		i.ID = id
	}
}

func WithBranch(branchID string) ItemOption {
	return func(i *domain.Item) {
		i.BranchID = branchID
	}
}

func WithType(t domain.ItemType) ItemOption {
	return func(i *domain.Item) {
		i.Type = t
	}
}

func WithDates(start, end string) ItemOption {
	return func(i *domain.Item) {
		i.StartDate = DateP(start)
		i.EndDate = DateP(end)
	}
}

func WithStartDate(start string) ItemOption {
	return func(i *domain.Item) {
		i.StartDate = DateP(start)
	}
}

func WithOwner(owner string) ItemOption {
	return func(i *domain.Item) {
		i.Owner = owner
	}
}

func WithLane(lane string) ItemOption {
	return func(i *domain.Item) {
		i.Lane = lane
	}
}

func WithProject(project string) ItemOption {
	return func(i *domain.Item) {
		i.Project = project
	}
}

func WithTags(tags ...string) ItemOption {
	return func(i *domain.Item) {
		i.Tags = tags
	}
}

// NewTestItem builds a task on the main branch with a generated id.
func NewTestItem(title string, opts ...ItemOption) *domain.Item {
	item := &domain.Item{
		ID:       uuid.New().String(),
		BranchID: domain.MainBranch,
		Type:     domain.TypeTask,
		Title:    title,
	}
	for _, opt := range opts {
		opt(item)
	}
	return item
}

// DateP parses an ISO date into a pointer, panicking on bad fixture input.
func DateP(iso string) *time.Time {
	t, err := time.Parse(domain.DateLayout, iso)
	if err != nil {
		panic("bad fixture date " + iso + ": " + err.Error())
	}
	return &t
}
