// Package models defines the data structures shared by the forge engine.
package models

// TabSchema describes the header layout of one worksheet.
type TabSchema struct {
	// Name is the sheet name, unique within a workbook.
	Name string `json:"name" yaml:"name"`
	// HeaderRow is the 1-based row holding the headers.
	HeaderRow int `json:"header_row" yaml:"header_row"`
	// Headers lists the column headers in sheet order.
	Headers []string `json:"headers" yaml:"headers"`
}

// Clone returns a copy that shares no memory with s.
func (s TabSchema) Clone() TabSchema {
	out := s
	out.Headers = append([]string(nil), s.Headers...)
	return out
}

// ColumnRef locates a header within a tab.
type ColumnRef struct {
	// Tab is the sheet the header belongs to.
	Tab string `json:"tab"`
	// Header is the header text that was resolved.
	Header string `json:"header"`
	// Index is the 1-based column index; zero means unresolved.
	Index int `json:"index"`
	// Letter is the spreadsheet column label (A, B, ..., AA).
	Letter string `json:"letter"`
}

// Resolved reports whether r points at a real column.
func (r ColumnRef) Resolved() bool {
	return r.Index > 0 && r.Letter != ""
}
