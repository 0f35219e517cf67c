package repository

import (
	"database/sql"
	"strings"
	"time"
)

// tagSeparator is the storage form of the tags list. Imported tags are
// split on the mapping's delimiter before they reach the repository.
const tagSeparator = ","

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// joinTags serializes a tag list for storage.
func joinTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

// splitTags deserializes a stored tag list. Empty storage means no tags.
func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, tagSeparator)
}

// nowUTC returns the current UTC time truncated to whole seconds, which is
// what RFC3339 storage round-trips.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
