package importer

import (
	"strings"

	"github.com/alexanderramin/strata/internal/domain"
)

// detectOrder pairs each target field with its keyword list. Fields are
// resolved in this order; for each field, the first header containing any
// of its keywords (case-insensitively) wins the mapping.
var detectOrder = []struct {
	field    string
	keywords []string
}{
	{"title", []string{"summary", "title", "name", "subject"}},
	{"type", []string{"type", "kind", "category"}},
	{"start_date", []string{"start", "begin", "created", "from"}},
	{"end_date", []string{"end", "due", "finish", "until", "target"}},
	{"owner", []string{"owner", "assignee", "assigned", "responsible"}},
	{"lane", []string{"lane", "swimlane", "track", "team", "stream"}},
	{"project", []string{"project", "initiative", "workstream", "component"}},
	{"tags", []string{"tag", "label", "keywords"}},
	{"id", []string{"id", "key", "issue", "ref", "number"}},
}

// DetectColumns guesses a column mapping from a header row. If an id column
// is found the default strategy is "column", otherwise "generate".
func DetectColumns(headers []string) domain.ColumnMapping {
	mapping := domain.NewColumnMapping()

	for _, entry := range detectOrder {
		idx := firstMatch(headers, entry.keywords)
		if idx < 0 {
			continue
		}
		switch entry.field {
		case "title":
			mapping.Title = idx
		case "type":
			mapping.Type = idx
		case "start_date":
			mapping.StartDate = idx
		case "end_date":
			mapping.EndDate = idx
		case "owner":
			mapping.Owner = idx
		case "lane":
			mapping.Lane = idx
		case "project":
			mapping.Project = idx
		case "tags":
			mapping.Tags = idx
		case "id":
			mapping.ID = idx
		}
	}

	if mapping.ID >= 0 {
		mapping.IDStrategy = domain.StrategyColumn
	}
	return mapping
}

func firstMatch(headers, keywords []string) int {
	for i, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		for _, kw := range keywords {
			if strings.Contains(h, kw) {
				return i
			}
		}
	}
	return -1
}
