package domain

import "strings"

type ItemType string

const (
	TypeTask      ItemType = "task"
	TypeMilestone ItemType = "milestone"
	TypeRelease   ItemType = "release"
	TypeMeeting   ItemType = "meeting"
)

// ValidItemTypes is the canonical set of accepted item type strings.
var ValidItemTypes = map[string]bool{
	"task": true, "milestone": true, "release": true, "meeting": true,
}

// typeSynonyms maps common external vocabulary (tracker exports, etc.)
// onto the four canonical types. Keys are lower-case.
var typeSynonyms = map[string]ItemType{
	"task":        TypeTask,
	"story":       TypeTask,
	"todo":        TypeTask,
	"bug":         TypeTask,
	"issue":       TypeTask,
	"chore":       TypeTask,
	"subtask":     TypeTask,
	"milestone":   TypeMilestone,
	"deadline":    TypeMilestone,
	"checkpoint":  TypeMilestone,
	"release":     TypeRelease,
	"epic":        TypeRelease,
	"version":     TypeRelease,
	"launch":      TypeRelease,
	"meeting":     TypeMeeting,
	"event":       TypeMeeting,
	"call":        TypeMeeting,
	"appointment": TypeMeeting,
	"workshop":    TypeMeeting,
}

// NormalizeType resolves a raw type string to a canonical ItemType,
// case-insensitively and through the synonym table. The second return
// reports whether the value was recognized.
func NormalizeType(raw string) (ItemType, bool) {
	t, ok := typeSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}

type HistoryOp string

const (
	OpInsert HistoryOp = "insert"
	OpUpdate HistoryOp = "update"
)

// IDStrategy decides whether an imported row is new or updates an
// existing item.
type IDStrategy string

const (
	// StrategyGenerate assigns a fresh random id to every row.
	StrategyGenerate IDStrategy = "generate"
	// StrategyColumn uses a mapped id column's value verbatim.
	StrategyColumn IDStrategy = "column"
	// StrategyMatch matches on project + ":" + title; new rows still
	// receive a generated id.
	StrategyMatch IDStrategy = "match"
)
