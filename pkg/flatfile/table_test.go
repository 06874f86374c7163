package flatfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

func TestReadStripsBOMAndBlankRows(t *testing.T) {
	in := "\ufeffsku, available\nA,3\n,\nB,4\n"
	tbl, err := Read(strings.NewReader(in), ',')
	require.NoError(t, err)
	assert.Equal(t, []string{"sku", "available"}, tbl.Headers)
	assert.Equal(t, [][]string{{"A", "3"}, {"B", "4"}}, tbl.Rows)
}

func TestReadEmpty(t *testing.T) {
	tbl, err := Read(strings.NewReader(""), ',')
	require.NoError(t, err)
	assert.Empty(t, tbl.Headers)
	assert.Empty(t, tbl.Rows)
}

func TestReadFileByExtension(t *testing.T) {
	dir := t.TempDir()
	tsv := filepath.Join(dir, "listings.txt")
	require.NoError(t, os.WriteFile(tsv, []byte("seller-sku\tprice\nA\t9.99\n"), 0o644))

	tbl, err := ReadFile(tsv)
	require.NoError(t, err)
	assert.Equal(t, []string{"seller-sku", "price"}, tbl.Headers)
	assert.Equal(t, [][]string{{"A", "9.99"}}, tbl.Rows)

	xlsx := filepath.Join(dir, "prices.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]string{"SKU", "New Price"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]string{"A", "12.5"}))
	require.NoError(t, f.SaveAs(xlsx))
	require.NoError(t, f.Close())

	tbl, err = ReadFile(xlsx)
	require.NoError(t, err)
	assert.Equal(t, []string{"SKU", "New Price"}, tbl.Headers)
	assert.Equal(t, [][]string{{"A", "12.5"}}, tbl.Rows)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestColumnsReportsAllMissing(t *testing.T) {
	tbl := models.Table{Headers: []string{"sku"}}
	_, err := Columns(tbl, "sku", "price", "quantity")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)

	var mce *MissingColumnsError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, []string{"price", "quantity"}, mce.Missing)
	assert.Contains(t, err.Error(), "price, quantity")
}

func TestFilter(t *testing.T) {
	tbl := models.Table{
		Headers: []string{"ASIN", "Sessions"},
		Rows:    [][]string{{"B01", "3"}, {"B02", "4"}, {"B03", "5"}},
	}
	got, err := Filter(tbl, "ASIN", []string{"B03", " B01 "})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"B01", "3"}, {"B03", "5"}}, got.Rows)

	_, err = Filter(tbl, "SKU", nil)
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestWritePadsShortRows(t *testing.T) {
	var buf bytes.Buffer
	tbl := models.Table{
		Headers: []string{"a", "b", "c"},
		Rows:    [][]string{{"1"}, {"x,y", "2", "3"}},
	}
	require.NoError(t, Write(&buf, tbl))
	assert.Equal(t, "a,b,c\n1,,\n\"x,y\",2,3\n", buf.String())
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "file.csv")
	require.NoError(t, WriteFile(path, models.Table{Headers: []string{"sku"}, Rows: [][]string{{"A"}}}))

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A"}}, back.Rows)
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.txt")
	require.NoError(t, os.WriteFile(path, []byte("B01\n\n  B02  \n"), 0o644))
	got, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"B01", "B02"}, got)
}
