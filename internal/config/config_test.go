package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/formula"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("FORGE_BRANDS_DIR", "")
	t.Setenv("FORGE_OUTPUT_DIR", "")

	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 21, cfg.RestockOptions().LeadTimeDays)
	assert.Equal(t, formula.ErrorSwallow, cfg.ForgeOptions().ErrorMode)
}

func TestLoadOverlaysFile(t *testing.T) {
	t.Setenv("FORGE_BRANDS_DIR", "")
	t.Setenv("FORGE_OUTPUT_DIR", "/tmp/out")

	path := filepath.Join(t.TempDir(), FileName)
	doc := `
[paths]
brands_dir = "data/brands"

[rows]
minimum = 50

[formulas]
error_mode = "no_match"

[restock]
lead_time_days = 30
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/brands", cfg.Paths.BrandsDir)
	assert.Equal(t, "/tmp/out", cfg.Paths.OutputDir)
	assert.Equal(t, 50, cfg.Rows.Minimum)
	assert.Equal(t, 10000, cfg.Rows.Maximum)
	assert.Equal(t, 30, cfg.Restock.LeadTimeDays)
	assert.Equal(t, 10, cfg.Restock.SafetyStockDays)

	opts := cfg.ForgeOptions()
	assert.Equal(t, formula.ErrorNoMatch, opts.ErrorMode)
	assert.Equal(t, 50, opts.Rows.Minimum)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", "[rows\n"},
		{"rows", "[rows]\nminimum = 0\n"},
		{"error mode", "[formulas]\nerror_mode = \"loud\"\n"},
		{"discount", "[promotions]\ndiscount = 1.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), FileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestBrandPaths(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.Brand("SL")
	assert.Equal(t, filepath.Join("BRANDS", "SL", "reports", "sales", "sales.csv"), p.Sales)
	assert.Equal(t, filepath.Join("BRANDS", "SL", "reports", "inventory", "inventory.csv"), p.Inventory)
	assert.Equal(t, filepath.Join("BRANDS", "SL", "reports", "listings", "all-listing-report.tsv"), p.Listings)
	assert.Equal(t, filepath.Join("excel_templates", "x.xlsx"), cfg.OutputPath("x.xlsx"))
}
