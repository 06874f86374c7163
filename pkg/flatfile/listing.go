package flatfile

import (
	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// ListingColumns are the columns a new-listing sheet must carry.
var ListingColumns = []string{
	"seller-sku",
	"product-id",
	"product-id-type",
	"item-name",
	"item-description",
	"price",
	"quantity",
	"fulfillment-channel",
}

// Listing checks a new-listing sheet and returns it unchanged for upload.
// Rows without a seller-sku are dropped.
func Listing(in models.Table) (models.Table, Summary, error) {
	cols, err := Columns(in, ListingColumns...)
	if err != nil {
		return models.Table{}, Summary{}, err
	}
	out := models.Table{Headers: in.Headers}
	sum := Summary{Read: len(in.Rows)}
	for i, row := range in.Rows {
		if field(row, cols["seller-sku"]) == "" {
			sum.Skipped = append(sum.Skipped, Skip{Line: i + 1, Reason: "blank seller-sku"})
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	sum.Written = len(out.Rows)
	return out, sum, nil
}
