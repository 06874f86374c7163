package models

// Table is delimited report data addressed by header name.
type Table struct {
	// Headers is the report's own header row.
	Headers []string `json:"headers"`
	// Rows holds the data rows as raw strings.
	Rows [][]string `json:"rows"`
}
