package models

// SheetData represents structured data for a single sheet.
type SheetData struct {
	// Rows contains populated rows with values and formulas.
	Rows []CellRow `json:"rows,omitempty"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty"`
	// PrintAreas contains user-defined print areas.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
	// MergedCells lists merged ranges in A1 notation.
	MergedCells []string `json:"merged_cells,omitempty"`
	// FreezeCell is the top-left cell of the scrollable pane when panes are frozen.
	FreezeCell string `json:"freeze_cell,omitempty"`
	// Validations lists data validation rules.
	Validations []ValidationData `json:"validations,omitempty"`
	// ConditionalFormats lists conditional formatting rules.
	ConditionalFormats []ConditionalData `json:"conditional_formats,omitempty"`
}

// ValidationData summarizes one data validation rule.
type ValidationData struct {
	Range    string `json:"range"`
	Type     string `json:"type"`
	Formula1 string `json:"formula1,omitempty"`
}

// ConditionalData summarizes one conditional formatting rule.
type ConditionalData struct {
	Range    string   `json:"range"`
	Type     string   `json:"type"`
	Criteria string   `json:"criteria,omitempty"`
	Value    string   `json:"value,omitempty"`
	Colors   []string `json:"colors,omitempty"`
}
