package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_AcceptedForms(t *testing.T) {
	cases := map[string]string{
		"2026-03-01":   "2026-03-01",
		"2026/03/01":   "2026-03-01",
		"3/1/2026":     "2026-03-01",
		"03/01/2026":   "2026-03-01",
		"3-1-2026":     "2026-03-01",
		" 2026-03-01 ": "2026-03-01",
	}
	for input, want := range cases {
		got, err := ParseDate(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got.Format(DateLayout), "input %q", input)
	}
}

func TestParseDate_Rejects(t *testing.T) {
	for _, input := range []string{"", "yesterday", "2026-13-40", "01.02.2026"} {
		_, err := ParseDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestNormalizeType(t *testing.T) {
	for raw, want := range map[string]ItemType{
		"task": TypeTask, "Story": TypeTask, "EPIC": TypeRelease,
		"deadline": TypeMilestone, "event": TypeMeeting, " meeting ": TypeMeeting,
	} {
		got, ok := NormalizeType(raw)
		require.True(t, ok, "type %q", raw)
		assert.Equal(t, want, got)
	}

	_, ok := NormalizeType("sprint")
	assert.False(t, ok)
}

func TestItemChanges_ApplyAndEmpty(t *testing.T) {
	assert.True(t, ItemChanges{}.Empty())

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	item := Item{Title: "Old", Owner: "ana", StartDate: &start}

	title := "New"
	changes := ItemChanges{Title: &title, StartDate: DateChange(nil)}
	assert.False(t, changes.Empty())

	changes.Apply(&item)
	assert.Equal(t, "New", item.Title)
	assert.Nil(t, item.StartDate, "present nil date clears the field")
	assert.Equal(t, "ana", item.Owner, "absent fields stay put")
}

func TestItem_MatchKey(t *testing.T) {
	item := Item{Project: "atlas", Title: "Kickoff"}
	assert.Equal(t, "atlas:Kickoff", item.MatchKey())
}
