package main

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/johnwesleyquintero/process-systems/pkg/flatfile"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

var (
	priceIn   string
	promoIn   string
	listingIn string
	flatOut   string
)

func newFlatFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatfile",
		Short: "Convert Seller Central reports into upload flat files",
	}
	cmd.PersistentFlags().StringVarP(&flatOut, "output", "o", "", "Output CSV path (default: output dir)")

	priceCmd := &cobra.Command{
		Use:   "price-update",
		Short: "Build a price update flat file from a SKU / New Price sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flatfile.ReadFile(priceIn)
			if err != nil {
				return err
			}
			out, sum, err := flatfile.PriceUpdate(in, cfg.Pricing.Currency)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), "price_update_flatfile.csv", out, sum)
		},
	}
	priceCmd.Flags().StringVar(&priceIn, "in", "excel_templates/price_update_template.xlsx", "Input sheet (xlsx or csv)")

	promoCmd := &cobra.Command{
		Use:   "promotions",
		Short: "Suggest sale prices for aged active listings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := promoIn
			if path == "" {
				path = cfg.Brand(brand).Listings
			}
			in, err := flatfile.ReadFile(path)
			if err != nil {
				return err
			}
			opts := cfg.PromotionOptions()
			opts.Now = time.Now()
			out, sum, err := flatfile.Promotions(in, opts)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), "promotional_suggestions.csv", out, sum)
		},
	}
	promoCmd.Flags().StringVar(&promoIn, "in", "", "All listings report (default: brand listings report)")

	restockCmd := &cobra.Command{
		Use:   "restock",
		Short: "Recommend FBA restock quantities from sales velocity",
		Args:  cobra.NoArgs,
		RunE:  runRestock,
	}

	listingCmd := &cobra.Command{
		Use:   "listing",
		Short: "Check a new-listing sheet and write it as a flat file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flatfile.ReadFile(listingIn)
			if err != nil {
				return err
			}
			out, sum, err := flatfile.Listing(in)
			if err != nil {
				return err
			}
			return emit(cmd.OutOrStdout(), "amazon_new_listing_flatfile.csv", out, sum)
		},
	}
	listingCmd.Flags().StringVar(&listingIn, "in", "excel_templates/new_listing_template.csv", "New listing sheet")

	cmd.AddCommand(priceCmd, promoCmd, restockCmd, listingCmd)
	return cmd
}

func runRestock(cmd *cobra.Command, args []string) error {
	paths := cfg.Brand(brand)

	orders, err := flatfile.ReadDelimitedFile(paths.Sales, '\t')
	if err != nil {
		return err
	}
	sales, err := flatfile.SalesVelocity(orders)
	if err != nil {
		return fmt.Errorf("%s: %w", paths.Sales, err)
	}

	report, err := flatfile.ReadFile(paths.Inventory)
	if err != nil {
		return err
	}
	stock, err := flatfile.Inventory(report)
	if err != nil {
		return fmt.Errorf("%s: %w", paths.Inventory, err)
	}

	opts := cfg.RestockOptions()
	log.WithFields(logrus.Fields{
		"brand":        brand,
		"lead_time":    opts.LeadTimeDays,
		"safety_stock": opts.SafetyStockDays,
		"cover":        opts.DesiredCoverDays,
		"skus":         len(sales),
	}).Info("generating restock recommendations")

	recs := flatfile.Recommend(sales, stock, opts)
	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No restock recommendations generated.")
		return nil
	}
	out := flatfile.RestockTable(recs)
	return emit(cmd.OutOrStdout(), "restock_recommendations.csv", out, flatfile.Summary{Read: len(sales), Written: len(out.Rows)})
}

func emit(w io.Writer, defaultName string, t models.Table, sum flatfile.Summary) error {
	path := flatOut
	if path == "" {
		path = cfg.OutputPath(defaultName)
	}
	if err := flatfile.WriteFile(path, t); err != nil {
		return err
	}
	for _, s := range sum.Skipped {
		log.WithFields(logrus.Fields{"line": s.Line, "reason": s.Reason}).Warn("row skipped")
	}
	fmt.Fprintf(w, "%s: %d of %d rows written (%d skipped)\n", path, sum.Written, sum.Read, len(sum.Skipped))
	return nil
}
