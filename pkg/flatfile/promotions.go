package flatfile

import (
	"math"
	"strconv"
	"time"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// All-listings report columns used for promotions.
const (
	ColSellerSKU = "seller-sku"
	ColPrice     = "price"
	ColOpenDate  = "open-date"
	ColStatus    = "status"
)

// PromotionHeaders is the column order of the sale price flat file.
var PromotionHeaders = []string{"seller-sku", "standard-price", "sale-price", "sale-start-date", "sale-end-date"}

const openDateLayout = "2006-01-02T15:04:05Z"

// PromotionOptions controls which listings are discounted and by how much.
type PromotionOptions struct {
	// Discount is the fractional price cut, e.g. 0.15.
	Discount float64
	// AgeMonths is how long a listing must be open to qualify. A month
	// counts as 30 days.
	AgeMonths int
	// DurationDays is the length of the sale.
	DurationDays int
	// Now is the reference time. Zero means time.Now.
	Now time.Time
}

// DefaultPromotionOptions returns the standard promotion settings.
func DefaultPromotionOptions() PromotionOptions {
	return PromotionOptions{Discount: 0.15, AgeMonths: 6, DurationDays: 7}
}

// Promotions suggests sale prices for active listings that have been open
// longer than the configured age.
func Promotions(in models.Table, opts PromotionOptions) (models.Table, Summary, error) {
	cols, err := Columns(in, ColSellerSKU, ColPrice, ColOpenDate, ColStatus)
	if err != nil {
		return models.Table{}, Summary{}, err
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	cutoff := now.AddDate(0, 0, -30*opts.AgeMonths)
	start := now.Format(flatFileDate)
	end := now.AddDate(0, 0, opts.DurationDays).Format(flatFileDate)

	out := models.Table{Headers: PromotionHeaders}
	sum := Summary{Read: len(in.Rows)}
	for i, row := range in.Rows {
		line := i + 1
		if field(row, cols[ColStatus]) != "Active" {
			continue
		}
		opened, err := time.Parse(openDateLayout, field(row, cols[ColOpenDate]))
		if err != nil {
			sum.Skipped = append(sum.Skipped, Skip{Line: line, Reason: "invalid open-date"})
			continue
		}
		if !opened.Before(cutoff) {
			continue
		}
		price, err := strconv.ParseFloat(field(row, cols[ColPrice]), 64)
		if err != nil {
			sum.Skipped = append(sum.Skipped, Skip{Line: line, Reason: "invalid price"})
			continue
		}
		sale := math.Round(price*(1-opts.Discount)*100) / 100
		out.Rows = append(out.Rows, []string{
			field(row, cols[ColSellerSKU]),
			formatMoney(price),
			formatMoney(sale),
			start,
			end,
		})
	}
	sum.Written = len(out.Rows)
	return out, sum, nil
}
