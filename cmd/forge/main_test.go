package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwesleyquintero/process-systems/pkg/flatfile"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/inspect"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "forge.toml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "buy-recommendations")
	assert.Contains(t, out, "restock-report")
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", "buybox-tracker")
	require.NoError(t, err)
	assert.Contains(t, out, "buybox-tracker: ok")

	_, err = execute(t, "validate", "no-such-template")
	assert.Error(t, err)
}

func TestTemplateCommandSeedsAndFilters(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "business.csv")
	require.NoError(t, os.WriteFile(report, []byte(
		"(Child) ASIN,Title,Sessions - Total,Ordered Product Sales - Total\n"+
			"B01,Widget,10,$100.00\n"+
			"B02,Gadget,20,$50.00\n"), 0o644))
	targets := filepath.Join(dir, "targets.txt")
	require.NoError(t, os.WriteFile(targets, []byte("B02\n"), 0o644))
	target := filepath.Join(dir, "competitors.xlsx")

	out, err := execute(t, "template", "competitor-analysis",
		"-o", target,
		"--input", "Competitor Analysis="+report,
		"--targets", targets,
	)
	require.NoError(t, err)
	assert.Contains(t, out, target)

	wb, err := inspect.Workbook(target, inspect.DefaultOptions())
	require.NoError(t, err)
	sheet := wb.Sheets["Competitor Analysis"]
	var seen []string
	for _, row := range sheet.Rows {
		if row.R == 4 {
			for _, v := range row.C {
				seen = append(seen, fmt.Sprint(v))
			}
		}
	}
	assert.Contains(t, seen, "B02")
	assert.NotContains(t, seen, "B01")
}

func TestTemplateCommandRejectsBadInput(t *testing.T) {
	_, err := execute(t, "template", "restock-report", "--input", "Data_Input_Inventory")
	assert.ErrorContains(t, err, "TAB=PATH")

	_, err = execute(t, "template", "restock-report", "--error-mode", "loud", "-o", filepath.Join(t.TempDir(), "x.xlsx"))
	assert.Error(t, err)
}

func TestFlatFileRestockCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("FORGE_BRANDS_DIR", filepath.Join(dir, "BRANDS"))
	t.Setenv("FORGE_OUTPUT_DIR", filepath.Join(dir, "out"))

	reports := filepath.Join(dir, "BRANDS", "SL", "reports")
	require.NoError(t, os.MkdirAll(filepath.Join(reports, "sales"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(reports, "inventory"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(reports, "sales", "sales.csv"), []byte(
		"order-status\tsku\tquantity\tpurchase-date\n"+
			"Shipped\tA\t4\t2026-01-01T10:00:00+00:00\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(reports, "inventory", "inventory.csv"), []byte(
		"sku,available\nA,1\n"), 0o644))

	out, err := execute(t, "flatfile", "restock")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 1 rows written")

	tbl, err := flatfile.ReadFile(filepath.Join(dir, "out", "restock_recommendations.csv"))
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "A", tbl.Rows[0][0])
}
