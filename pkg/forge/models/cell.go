package models

// CellRow represents a single populated row read back from a sheet.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (string) to cell value.
	C map[string]interface{} `json:"c,omitempty"`
	// F maps column index to formula text (without the leading "=").
	F map[string]string `json:"f,omitempty"`
}
