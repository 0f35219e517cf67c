package importer

import (
	"testing"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMapping maps title, type, start, end, owner, tags onto columns 0-5.
func testMapping() domain.ColumnMapping {
	m := domain.NewColumnMapping()
	m.Title = 0
	m.Type = 1
	m.StartDate = 2
	m.EndDate = 3
	m.Owner = 4
	m.Tags = 5
	return m
}

func TestParseRow_Valid(t *testing.T) {
	fields, errs := parseRow(
		[]string{"Ship it", "Release", "2026-03-01", "2026-03-15", "dana", "q1, committed"},
		testMapping())

	require.Empty(t, errs)
	assert.Equal(t, "Ship it", fields.Title)
	assert.Equal(t, domain.TypeRelease, fields.Type)
	require.NotNil(t, fields.Start)
	assert.Equal(t, "2026-03-01", fields.Start.Format(domain.DateLayout))
	require.NotNil(t, fields.End)
	assert.Equal(t, "dana", fields.Owner)
	assert.Equal(t, []string{"q1", "committed"}, fields.Tags)
}

func TestParseRow_TypeSynonyms(t *testing.T) {
	cases := map[string]domain.ItemType{
		"story":     domain.TypeTask,
		"STORY":     domain.TypeTask,
		"epic":      domain.TypeRelease,
		"deadline":  domain.TypeMilestone,
		"event":     domain.TypeMeeting,
		"Milestone": domain.TypeMilestone,
	}
	for raw, want := range cases {
		fields, errs := parseRow([]string{"T", raw, "", "", "", ""}, testMapping())
		require.Empty(t, errs, "type %q should normalize", raw)
		assert.Equal(t, want, fields.Type, "type %q", raw)
	}
}

func TestParseRow_NumericDateForms(t *testing.T) {
	fields, errs := parseRow(
		[]string{"T", "task", "3/1/2026", "03/15/2026", "", ""}, testMapping())
	require.Empty(t, errs)
	assert.Equal(t, "2026-03-01", fields.Start.Format(domain.DateLayout))
	assert.Equal(t, "2026-03-15", fields.End.Format(domain.DateLayout))
}

func TestParseRow_CollectsAllErrors(t *testing.T) {
	_, errs := parseRow(
		[]string{"", "sprint", "not-a-date", "", "", ""}, testMapping())

	require.Len(t, errs, 3)
	assert.Contains(t, errs[0], "title is required")
	assert.Contains(t, errs[1], "unrecognized type")
	assert.Contains(t, errs[2], "invalid start date")
}

func TestParseRow_EndBeforeStart(t *testing.T) {
	_, errs := parseRow(
		[]string{"T", "task", "2026-03-15", "2026-03-01", "", ""}, testMapping())
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "end date precedes start date")
}

func TestParseRow_ShortRowsAndUnmappedFields(t *testing.T) {
	// Rows shorter than the mapped width read as empty cells.
	fields, errs := parseRow([]string{"Just a title", "task"}, testMapping())
	require.Empty(t, errs)
	assert.Nil(t, fields.Start)
	assert.Empty(t, fields.Owner)
	assert.Empty(t, fields.Tags)
}

func TestIsBlankRow(t *testing.T) {
	assert.True(t, isBlankRow([]string{"", "  ", "\t"}))
	assert.False(t, isBlankRow([]string{"", "x"}))
}

func TestRowHash_StableAndSensitive(t *testing.T) {
	row := []string{"Ship it", "task", "2026-03-01"}
	assert.Equal(t, RowHash(row), RowHash([]string{"Ship it", "task", "2026-03-01"}))
	assert.NotEqual(t, RowHash(row), RowHash([]string{"Ship it", "task", "2026-03-02"}))
}
