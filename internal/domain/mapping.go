package domain

// ColumnMapping binds target item fields to column indexes of an imported
// row. -1 means the field is unmapped. Mappings are persisted as import
// profiles, so the JSON shape is part of the stored format.
type ColumnMapping struct {
	Title     int `json:"title"`
	Type      int `json:"type"`
	StartDate int `json:"start_date"`
	EndDate   int `json:"end_date"`
	Owner     int `json:"owner"`
	Lane      int `json:"lane"`
	Project   int `json:"project"`
	Tags      int `json:"tags"`
	ID        int `json:"id"`

	IDStrategy   IDStrategy `json:"id_strategy"`
	TagDelimiter string     `json:"tag_delimiter"`
}

// NewColumnMapping returns a mapping with every field unmapped and the
// defaults the importer assumes (generate strategy, comma tag delimiter).
func NewColumnMapping() ColumnMapping {
	return ColumnMapping{
		Title: -1, Type: -1, StartDate: -1, EndDate: -1,
		Owner: -1, Lane: -1, Project: -1, Tags: -1, ID: -1,
		IDStrategy:   StrategyGenerate,
		TagDelimiter: ",",
	}
}
