package models

// RowRange is the inclusive block of data rows a sheet supports.
type RowRange struct {
	// First is the first data row (1-based).
	First int `json:"first"`
	// Last is the last data row (1-based, inclusive).
	Last int `json:"last"`
}

// Len returns the number of rows covered.
func (r RowRange) Len() int {
	if r.Last < r.First {
		return 0
	}
	return r.Last - r.First + 1
}

// Contains reports whether row lies inside the range.
func (r RowRange) Contains(row int) bool {
	return row >= r.First && row <= r.Last
}
