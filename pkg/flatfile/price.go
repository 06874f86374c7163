package flatfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// Price update input columns.
const (
	ColSKU       = "SKU"
	ColNewPrice  = "New Price"
	ColStartDate = "Start Date"
	ColEndDate   = "End Date"
)

// PriceUpdateHeaders is the column order of the Amazon price and quantity
// inventory flat file.
var PriceUpdateHeaders = []string{
	"sku",
	"standard_price",
	"minimum_seller_allowed_price",
	"maximum_seller_allowed_price",
	"start_date",
	"end_date",
	"currency",
	"product_tax_code",
	"fulfillment_latency",
	"quantity",
	"leadtime_to_ship",
	"item_condition",
	"item_note",
	"will_ship_internationally",
	"expedited_shipping",
	"standard_plus",
	"item_package_quantity",
	"offering_release_date",
	"update_delete",
}

const flatFileDate = "2006-01-02"

var dateLayouts = []string{
	flatFileDate,
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// PriceUpdate converts a SKU / New Price sheet into the price update flat
// file. Rows with a blank SKU or an unusable price are skipped. Dates are
// optional; when given they must parse.
func PriceUpdate(in models.Table, currency string) (models.Table, Summary, error) {
	cols, err := Columns(in, ColSKU, ColNewPrice, ColStartDate, ColEndDate)
	if err != nil {
		return models.Table{}, Summary{}, err
	}
	if currency == "" {
		currency = "USD"
	}

	out := models.Table{Headers: PriceUpdateHeaders}
	sum := Summary{Read: len(in.Rows)}
	for i, row := range in.Rows {
		line := i + 1
		sku := field(row, cols[ColSKU])
		if sku == "" {
			sum.Skipped = append(sum.Skipped, Skip{Line: line, Reason: "blank SKU"})
			continue
		}
		price, err := parsePrice(field(row, cols[ColNewPrice]))
		if err != nil {
			sum.Skipped = append(sum.Skipped, Skip{Line: line, Reason: err.Error()})
			continue
		}
		start, err := parseDate(field(row, cols[ColStartDate]))
		if err != nil {
			sum.Skipped = append(sum.Skipped, Skip{Line: line, Reason: "start date: " + err.Error()})
			continue
		}
		end, err := parseDate(field(row, cols[ColEndDate]))
		if err != nil {
			sum.Skipped = append(sum.Skipped, Skip{Line: line, Reason: "end date: " + err.Error()})
			continue
		}

		rec := make([]string, len(PriceUpdateHeaders))
		rec[0] = sku
		rec[1] = formatMoney(price)
		rec[4] = start
		rec[5] = end
		rec[6] = currency
		rec[len(rec)-1] = "Update"
		out.Rows = append(out.Rows, rec)
	}
	sum.Written = len(out.Rows)
	return out, sum, nil
}

func parsePrice(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, fmt.Errorf("blank price")
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if v <= 0 {
		return 0, fmt.Errorf("price must be positive, got %q", s)
	}
	return v, nil
}

// parseDate normalizes s to the flat file date layout. Blank stays blank.
func parseDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(flatFileDate), nil
		}
	}
	// Workbook inputs may carry Excel serial dates.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		epoch := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
		return epoch.AddDate(0, 0, int(serial)).Format(flatFileDate), nil
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
