package forge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/schema"
)

const (
	headerFill = "#1F4E78"
	headerFont = "#FFFFFF"
	noteFont   = "#808080"

	minColWidth = 12
	maxColWidth = 50
)

// styles holds the style IDs registered on one file.
type styles struct {
	f       *excelize.File
	header  int
	title   int
	label   int
	note    int
	numFmts map[string]int
}

func newStyles(f *excelize.File) (*styles, error) {
	s := &styles{f: f, numFmts: make(map[string]int)}
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: headerFont},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#000000", Style: 1},
		},
	}); err != nil {
		return nil, err
	}
	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Vertical: "center"},
	}); err != nil {
		return nil, err
	}
	if s.label, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, err
	}
	if s.note, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true, Color: noteFont}}); err != nil {
		return nil, err
	}
	return s, nil
}

// named returns the style for a StaticCell style name; 0 means default.
func (s *styles) named(name string) (int, error) {
	switch name {
	case "":
		return 0, nil
	case "title":
		return s.title, nil
	case "label":
		return s.label, nil
	case "note":
		return s.note, nil
	case "header":
		return s.header, nil
	}
	return 0, fmt.Errorf("unknown cell style %q", name)
}

// numFmt returns a style applying the custom number format code.
func (s *styles) numFmt(code string) (int, error) {
	if id, ok := s.numFmts[code]; ok {
		return id, nil
	}
	c := code
	id, err := s.f.NewStyle(&excelize.Style{CustomNumFmt: &c})
	if err != nil {
		return 0, fmt.Errorf("number format %q: %w", code, err)
	}
	s.numFmts[code] = id
	return id, nil
}

// createSheets adds one sheet per tab in template order. The default sheet
// becomes the first tab.
func createSheets(f *excelize.File, tabs []models.TabTemplate) error {
	for i, tab := range tabs {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), tab.Name); err != nil {
				return &StageError{Stage: StateSheetsCreated, Tab: tab.Name, Err: err}
			}
			continue
		}
		if _, err := f.NewSheet(tab.Name); err != nil {
			return &StageError{Stage: StateSheetsCreated, Tab: tab.Name, Err: err}
		}
	}
	f.SetActiveSheet(0)
	return nil
}

// layoutTab writes the title, header row, static rows, seeded input data and
// static values of one tab.
func layoutTab(f *excelize.File, st *styles, plan *WorkbookPlan, tab models.TabTemplate) error {
	fail := func(cell string, err error) error {
		return &StageError{Stage: StateSheetsCreated, Tab: tab.Name, Cell: cell, Err: err}
	}
	sheet := tab.Name
	rng, err := plan.Range(tab.Name)
	if err != nil {
		return fail("", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(tab.Headers))
	if err != nil {
		return fail("", err)
	}

	if tab.Title != "" {
		if err := f.SetCellValue(sheet, "A1", tab.Title); err != nil {
			return fail("A1", err)
		}
		if err := f.SetCellStyle(sheet, "A1", "A1", st.title); err != nil {
			return fail("A1", err)
		}
		if tab.HeaderRow > 1 && len(tab.Headers) > 1 {
			if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
				return fail("A1", err)
			}
		}
	}

	headerCell := "A" + strconv.Itoa(tab.HeaderRow)
	row := make([]interface{}, len(tab.Headers))
	for i, h := range tab.Headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, headerCell, &row); err != nil {
		return fail(headerCell, err)
	}
	if err := f.SetCellStyle(sheet, headerCell, lastCol+strconv.Itoa(tab.HeaderRow), st.header); err != nil {
		return fail(headerCell, err)
	}

	for i, values := range tab.Rows {
		cell := "A" + strconv.Itoa(rng.First+i)
		vals := make([]interface{}, len(values))
		copy(vals, values)
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			return fail(cell, err)
		}
	}

	seeded, err := seedTab(f, plan, tab, rng)
	if err != nil {
		return fail("", err)
	}
	if seeded == 0 && len(tab.Rows) == 0 && tab.Placeholder != "" {
		cell := "A" + strconv.Itoa(rng.First)
		if err := f.SetCellValue(sheet, cell, tab.Placeholder); err != nil {
			return fail(cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, st.note); err != nil {
			return fail(cell, err)
		}
	}

	for _, c := range tab.Cells {
		if c.Formula == "" {
			if err := f.SetCellValue(sheet, c.Ref, c.Value); err != nil {
				return fail(c.Ref, err)
			}
		}
		style, err := st.named(c.Style)
		if err != nil {
			return fail(c.Ref, err)
		}
		if c.NumberFormat != "" {
			// A number format replaces the named style on the same cell.
			if style, err = st.numFmt(c.NumberFormat); err != nil {
				return fail(c.Ref, err)
			}
		}
		if style != 0 {
			if err := f.SetCellStyle(sheet, c.Ref, c.Ref, style); err != nil {
				return fail(c.Ref, err)
			}
		}
	}
	return nil
}

// seedTab pastes the plan's input table for tab, matching columns by header
// name. Source columns the tab does not declare are skipped.
func seedTab(f *excelize.File, plan *WorkbookPlan, tab models.TabTemplate, rng models.RowRange) (int, error) {
	in, ok := plan.Inputs[tab.Name]
	if !ok || len(in.Rows) == 0 {
		return 0, nil
	}
	cols, err := schema.NewColumnMap(tab.TabSchema)
	if err != nil {
		return 0, err
	}
	for j, h := range in.Headers {
		if alias, ok := tab.Aliases[h]; ok {
			h = alias
		}
		ref, err := cols.Lookup(h)
		if err != nil {
			continue
		}
		for i, r := range in.Rows {
			if j >= len(r) || r[j] == "" {
				continue
			}
			cell := ref.Letter + strconv.Itoa(rng.First+i)
			if err := f.SetCellValue(tab.Name, cell, seedValue(r[j])); err != nil {
				return 0, err
			}
		}
	}
	return len(in.Rows), nil
}

// plainDecimal matches digits with an optional sign and fraction. Exponent,
// hex and special float forms are identifiers, not numbers.
var plainDecimal = regexp.MustCompile(`^[-+]?(\d+(\.\d*)?|\.\d+)$`)

// seedValue converts report text into a cell value. Numbers with currency
// symbols, thousands separators or a percent sign become numbers; identifiers
// with leading zeros stay text.
func seedValue(s string) interface{} {
	t := strings.TrimSpace(s)
	if t == "" {
		return ""
	}
	if len(t) > 1 && t[0] == '0' && t[1] != '.' {
		return t
	}
	n := strings.ReplaceAll(strings.TrimPrefix(t, "$"), ",", "")
	scale := 1.0
	if strings.HasSuffix(n, "%") {
		n = strings.TrimSuffix(n, "%")
		scale = 100
	}
	if !plainDecimal.MatchString(n) {
		return t
	}
	if n == t {
		if i, err := strconv.ParseInt(t, 10, 64); err == nil {
			return i
		}
	}
	v, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return t
	}
	return v / scale
}

// defaultWidth sizes a column to its header text.
func defaultWidth(header string) float64 {
	w := float64(len(header) + 2)
	if w < minColWidth {
		return minColWidth
	}
	if w > maxColWidth {
		return maxColWidth
	}
	return w
}
