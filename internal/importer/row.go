package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/strata/internal/domain"
	"github.com/mitchellh/hashstructure/v2"
)

// rowFields is one raw row normalized through a column mapping, before
// it is classified against existing branch state.
type rowFields struct {
	Title   string
	Type    domain.ItemType
	Start   *time.Time
	End     *time.Time
	Owner   string
	Lane    string
	Project string
	Tags    []string
	IDValue string
}

// cell returns the trimmed value at idx, or "" for unmapped/short rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isBlankRow reports whether every cell is empty. Blank rows are ignored
// entirely, not counted as skipped.
func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseRow validates and normalizes a raw row. All problems are collected
// as reason strings; parseRow never fails hard.
func parseRow(row []string, m domain.ColumnMapping) (rowFields, []string) {
	var fields rowFields
	var errs []string

	fields.Title = cell(row, m.Title)
	if fields.Title == "" {
		errs = append(errs, "title is required")
	}

	rawType := cell(row, m.Type)
	if rawType == "" {
		errs = append(errs, "type is required")
	} else if t, ok := domain.NormalizeType(rawType); ok {
		fields.Type = t
	} else {
		errs = append(errs, fmt.Sprintf("unrecognized type %q", rawType))
	}

	if raw := cell(row, m.StartDate); raw != "" {
		if t, err := domain.ParseDate(raw); err != nil {
			errs = append(errs, fmt.Sprintf("invalid start date %q", raw))
		} else {
			fields.Start = &t
		}
	}
	if raw := cell(row, m.EndDate); raw != "" {
		if t, err := domain.ParseDate(raw); err != nil {
			errs = append(errs, fmt.Sprintf("invalid end date %q", raw))
		} else {
			fields.End = &t
		}
	}
	if fields.Start != nil && fields.End != nil && fields.End.Before(*fields.Start) {
		errs = append(errs, "end date precedes start date")
	}

	fields.Owner = cell(row, m.Owner)
	fields.Lane = cell(row, m.Lane)
	fields.Project = cell(row, m.Project)
	fields.IDValue = cell(row, m.ID)

	if raw := cell(row, m.Tags); raw != "" {
		delim := m.TagDelimiter
		if delim == "" {
			delim = ","
		}
		for _, tag := range strings.Split(raw, delim) {
			if tag = strings.TrimSpace(tag); tag != "" {
				fields.Tags = append(fields.Tags, tag)
			}
		}
	}

	return fields, errs
}

// RowHash computes the change-detection token for a raw row. Rows hash
// over their raw cell values, so an unmodified re-import produces the
// token already stored on the item.
func RowHash(row []string) string {
	h, err := hashstructure.Hash(row, hashstructure.FormatV2, nil)
	if err != nil {
		// Hashing a []string cannot fail; keep the token stable anyway.
		return strings.Join(row, "\x1f")
	}
	return strconv.FormatUint(h, 16)
}

// changes builds the sparse update a classified row applies to its
// existing item. Only mapped fields are present; the change token is
// always refreshed.
func (f rowFields) changes(m domain.ColumnMapping, hash string) domain.ItemChanges {
	var c domain.ItemChanges
	if m.Title >= 0 {
		title := f.Title
		c.Title = &title
	}
	if m.Type >= 0 {
		t := f.Type
		c.Type = &t
	}
	if m.StartDate >= 0 {
		c.StartDate = domain.DateChange(f.Start)
	}
	if m.EndDate >= 0 {
		c.EndDate = domain.DateChange(f.End)
	}
	if m.Owner >= 0 {
		owner := f.Owner
		c.Owner = &owner
	}
	if m.Lane >= 0 {
		lane := f.Lane
		c.Lane = &lane
	}
	if m.Project >= 0 {
		project := f.Project
		c.Project = &project
	}
	if m.Tags >= 0 {
		tags := f.Tags
		c.Tags = &tags
	}
	c.SourceRowHash = &hash
	return c
}

// item materializes a new domain item from the row for the "added" bucket.
func (f rowFields) item(id, branchID, hash string) domain.Item {
	return domain.Item{
		ID:            id,
		BranchID:      branchID,
		Type:          f.Type,
		Title:         f.Title,
		StartDate:     f.Start,
		EndDate:       f.End,
		Owner:         f.Owner,
		Lane:          f.Lane,
		Project:       f.Project,
		Tags:          f.Tags,
		SourceRowHash: hash,
	}
}
