package schema

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// Resolve returns the column holding header in s. The match is exact and case
// sensitive. A missing header is always an error.
func Resolve(s models.TabSchema, header string) (models.ColumnRef, error) {
	for i, h := range s.Headers {
		if h != header {
			continue
		}
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return models.ColumnRef{}, fmt.Errorf("tab %q column %d: %w", s.Name, i+1, err)
		}
		return models.ColumnRef{Tab: s.Name, Header: header, Index: i + 1, Letter: letter}, nil
	}
	return models.ColumnRef{}, &HeaderNotFoundError{Tab: s.Name, Header: header}
}

// ColumnMap is the full header to column mapping of one tab schema. It is
// built in one pass and never patched; rebuild it when headers change.
type ColumnMap struct {
	tab  string
	refs map[string]models.ColumnRef
	cols []models.ColumnRef
}

// NewColumnMap builds the mapping for s. Duplicate or empty headers make the
// mapping ambiguous and are rejected.
func NewColumnMap(s models.TabSchema) (ColumnMap, error) {
	m := ColumnMap{
		tab:  s.Name,
		refs: make(map[string]models.ColumnRef, len(s.Headers)),
		cols: make([]models.ColumnRef, 0, len(s.Headers)),
	}
	for i, h := range s.Headers {
		if h == "" {
			return ColumnMap{}, fmt.Errorf("tab %q: header %d is empty", s.Name, i+1)
		}
		if _, ok := m.refs[h]; ok {
			return ColumnMap{}, fmt.Errorf("tab %q: duplicate header %q", s.Name, h)
		}
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return ColumnMap{}, fmt.Errorf("tab %q column %d: %w", s.Name, i+1, err)
		}
		ref := models.ColumnRef{Tab: s.Name, Header: h, Index: i + 1, Letter: letter}
		m.refs[h] = ref
		m.cols = append(m.cols, ref)
	}
	return m, nil
}

// Lookup returns the column for header.
func (m ColumnMap) Lookup(header string) (models.ColumnRef, error) {
	ref, ok := m.refs[header]
	if !ok {
		return models.ColumnRef{}, &HeaderNotFoundError{Tab: m.tab, Header: header}
	}
	return ref, nil
}

// Columns returns every column in sheet order.
func (m ColumnMap) Columns() []models.ColumnRef {
	return append([]models.ColumnRef(nil), m.cols...)
}

// Len returns the number of mapped headers.
func (m ColumnMap) Len() int {
	return len(m.cols)
}
