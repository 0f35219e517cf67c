package domain

import "time"

// HistoryRecord is an immutable snapshot of an item at one point in its
// mutation sequence. Versions start at 1 and increment by exactly one per
// mutation of the (id, branch) pair; the counter survives delete/recreate
// cycles because it is sourced from history, not from the live row.
type HistoryRecord struct {
	Item       Item
	Version    int
	Op         HistoryOp
	SnapshotAt time.Time
}
