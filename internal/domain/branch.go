package domain

import "time"

// MainBranch is the default branch. It is created at schema init and can
// never be deleted.
const MainBranch = "main"

// Branch is a named, isolated copy of the item set used for scenario
// planning. Branches never share item storage.
type Branch struct {
	ID    string
	Label string
	// CreatedFrom is the parent branch id, empty for main.
	CreatedFrom string
	Note        string
	CreatedAt   time.Time
}
