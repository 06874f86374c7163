// Package config loads forge.toml and locates brand report files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/flatfile"
	"github.com/johnwesleyquintero/process-systems/pkg/forge"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/formula"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/rows"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "forge.toml"

// Config is the whole forge.toml document.
type Config struct {
	Paths      PathsConfig      `toml:"paths"`
	Rows       rows.Planner     `toml:"rows"`
	Formulas   FormulaConfig    `toml:"formulas"`
	Restock    RestockConfig    `toml:"restock"`
	Promotions PromotionsConfig `toml:"promotions"`
	Pricing    PricingConfig    `toml:"pricing"`
}

// PathsConfig locates brand reports and generated files.
type PathsConfig struct {
	BrandsDir string `toml:"brands_dir"`
	OutputDir string `toml:"output_dir"`
}

// FormulaConfig holds formula defaults.
type FormulaConfig struct {
	// ErrorMode is swallow, no_match or strict.
	ErrorMode string `toml:"error_mode"`
}

// RestockConfig holds replenishment parameters in days.
type RestockConfig struct {
	LeadTimeDays     int `toml:"lead_time_days"`
	SafetyStockDays  int `toml:"safety_stock_days"`
	DesiredCoverDays int `toml:"desired_cover_days"`
}

// PromotionsConfig holds the aged-listing discount policy.
type PromotionsConfig struct {
	Discount     float64 `toml:"discount"`
	AgeMonths    int     `toml:"age_months"`
	DurationDays int     `toml:"duration_days"`
}

// PricingConfig holds price update defaults.
type PricingConfig struct {
	Currency string `toml:"currency"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	restock := flatfile.DefaultRestockOptions()
	promo := flatfile.DefaultPromotionOptions()
	return &Config{
		Paths: PathsConfig{
			BrandsDir: "BRANDS",
			OutputDir: "excel_templates",
		},
		Rows:     rows.DefaultPlanner(),
		Formulas: FormulaConfig{ErrorMode: string(formula.ErrorSwallow)},
		Restock: RestockConfig{
			LeadTimeDays:     restock.LeadTimeDays,
			SafetyStockDays:  restock.SafetyStockDays,
			DesiredCoverDays: restock.DesiredCoverDays,
		},
		Promotions: PromotionsConfig{
			Discount:     promo.Discount,
			AgeMonths:    promo.AgeMonths,
			DurationDays: promo.DurationDays,
		},
		Pricing: PricingConfig{Currency: "USD"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// FORGE_BRANDS_DIR and FORGE_OUTPUT_DIR override the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	if v := os.Getenv("FORGE_BRANDS_DIR"); v != "" {
		cfg.Paths.BrandsDir = v
	}
	if v := os.Getenv("FORGE_OUTPUT_DIR"); v != "" {
		cfg.Paths.OutputDir = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a run.
func (c *Config) Validate() error {
	if err := c.Rows.Validate(); err != nil {
		return err
	}
	if _, err := formula.ParseErrorMode(c.Formulas.ErrorMode); err != nil {
		return err
	}
	if c.Promotions.Discount < 0 || c.Promotions.Discount >= 1 {
		return fmt.Errorf("promotions discount must be in [0, 1), got %v", c.Promotions.Discount)
	}
	if c.Restock.LeadTimeDays < 0 || c.Restock.SafetyStockDays < 0 || c.Restock.DesiredCoverDays < 0 {
		return fmt.Errorf("restock days must not be negative")
	}
	return nil
}

// ForgeOptions converts the formula and row settings into assembly options.
func (c *Config) ForgeOptions() forge.Options {
	opts := forge.DefaultOptions()
	opts.Rows = c.Rows
	if c.Formulas.ErrorMode != "" {
		opts.ErrorMode = formula.ErrorMode(c.Formulas.ErrorMode)
	}
	return opts
}

// RestockOptions returns the replenishment parameters.
func (c *Config) RestockOptions() flatfile.RestockOptions {
	return flatfile.RestockOptions{
		LeadTimeDays:     c.Restock.LeadTimeDays,
		SafetyStockDays:  c.Restock.SafetyStockDays,
		DesiredCoverDays: c.Restock.DesiredCoverDays,
	}
}

// PromotionOptions returns the promotion policy.
func (c *Config) PromotionOptions() flatfile.PromotionOptions {
	return flatfile.PromotionOptions{
		Discount:     c.Promotions.Discount,
		AgeMonths:    c.Promotions.AgeMonths,
		DurationDays: c.Promotions.DurationDays,
	}
}

// OutputPath places name under the output directory.
func (c *Config) OutputPath(name string) string {
	return filepath.Join(c.Paths.OutputDir, name)
}

// BrandPaths are the report locations of one brand.
type BrandPaths struct {
	Root      string
	Sales     string
	Inventory string
	Listings  string
}

// Brand returns the report layout of brand under the brands directory.
func (c *Config) Brand(brand string) BrandPaths {
	root := filepath.Join(c.Paths.BrandsDir, brand)
	reports := filepath.Join(root, "reports")
	return BrandPaths{
		Root:      root,
		Sales:     filepath.Join(reports, "sales", "sales.csv"),
		Inventory: filepath.Join(reports, "inventory", "inventory.csv"),
		Listings:  filepath.Join(reports, "listings", "all-listing-report.tsv"),
	}
}
