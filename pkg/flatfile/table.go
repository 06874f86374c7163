// Package flatfile reads Seller Central reports and writes Amazon upload
// flat files. Flat files carry plain values, never formulas.
package flatfile

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// ErrMissingColumns indicates a report without the columns a job needs.
var ErrMissingColumns = errors.New("missing required columns")

// MissingColumnsError lists every required column absent from a report.
type MissingColumnsError struct {
	Source  string
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// Skip records an input row that was left out of the output.
type Skip struct {
	// Line is the 1-based data row within the input.
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// Summary describes what a job did with its input.
type Summary struct {
	Read    int    `json:"read"`
	Written int    `json:"written"`
	Skipped []Skip `json:"skipped,omitempty"`
}

const utf8BOM = "\ufeff"

// Read parses delimited text whose first record holds the headers.
func Read(r io.Reader, comma rune) (models.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return models.Table{}, fmt.Errorf("parse report: %w", err)
	}
	if len(records) == 0 {
		return models.Table{}, nil
	}
	headers := records[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}

	t := models.Table{Headers: headers}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// ReadFile reads a report from disk. Tab-separated files (.tsv, .txt) and
// workbooks (.xlsx, first sheet) are recognized by extension; anything else
// is read as CSV.
func ReadFile(path string) (models.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readWorkbook(path)
	case ".tsv", ".txt":
		return ReadDelimitedFile(path, '\t')
	default:
		return ReadDelimitedFile(path, ',')
	}
}

// ReadDelimitedFile reads a report with an explicit delimiter. Seller Central
// order reports are tab-separated whatever their extension.
func ReadDelimitedFile(path string, comma rune) (models.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Table{}, err
	}
	t, err := Read(bytes.NewReader(data), comma)
	if err != nil {
		return models.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func readWorkbook(path string) (models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.Table{}, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return models.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return models.Table{}, nil
	}
	t := models.Table{Headers: rows[0]}
	for _, row := range rows[1:] {
		if !isBlank(row) {
			t.Rows = append(t.Rows, row)
		}
	}
	return t, nil
}

// Columns maps each required header to its index. All missing headers are
// reported together.
func Columns(t models.Table, required ...string) (map[string]int, error) {
	index := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		if _, ok := index[h]; !ok {
			index[h] = i
		}
	}
	var missing []string
	for _, r := range required {
		if _, ok := index[r]; !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}
	return index, nil
}

// Filter keeps the rows whose column value is one of keep.
func Filter(t models.Table, column string, keep []string) (models.Table, error) {
	cols, err := Columns(t, column)
	if err != nil {
		return models.Table{}, err
	}
	set := make(map[string]bool, len(keep))
	for _, k := range keep {
		set[strings.TrimSpace(k)] = true
	}
	out := models.Table{Headers: t.Headers}
	for _, row := range t.Rows {
		if set[field(row, cols[column])] {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// Write emits t as CSV.
func Write(w io.Writer, t models.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return fmt.Errorf("csv write error: %w", err)
	}
	for _, row := range t.Rows {
		padded := make([]string, len(t.Headers))
		copy(padded, row)
		if err := cw.Write(padded); err != nil {
			return fmt.Errorf("csv write error: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush error: %w", err)
	}
	return nil
}

// WriteFile writes t as CSV to path, creating parent directories.
func WriteFile(path string, t models.Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(&buf, t); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ReadLines reads a newline-separated list, skipping blank lines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
