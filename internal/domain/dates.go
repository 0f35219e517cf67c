package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date format used throughout the store.
const DateLayout = "2006-01-02"

// dateLayouts are the accepted input forms: ISO first, then the numeric
// month/day/year forms trackers commonly export.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
}

// ParseDate parses a calendar date from ISO or numeric month/day/year forms.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

// SameDate compares two nullable dates by calendar day.
func SameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Format(DateLayout) == b.Format(DateLayout)
}
