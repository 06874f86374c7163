package flatfile

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// Order and inventory report columns.
const (
	ColOrderStatus  = "order-status"
	ColOrderSKU     = "sku"
	ColQuantity     = "quantity"
	ColPurchaseDate = "purchase-date"
	ColAvailable    = "available"
)

// RestockHeaders is the column order of the restock recommendation file.
var RestockHeaders = []string{
	"sku",
	"avg_daily_sales",
	"current_inventory",
	"days_of_supply",
	"reorder_point",
	"recommended_order_quantity",
	"recommendation",
}

// RestockOptions are the replenishment parameters, all in days.
type RestockOptions struct {
	LeadTimeDays     int
	SafetyStockDays  int
	DesiredCoverDays int
}

// DefaultRestockOptions returns the standard FBA replenishment settings.
func DefaultRestockOptions() RestockOptions {
	return RestockOptions{LeadTimeDays: 21, SafetyStockDays: 10, DesiredCoverDays: 45}
}

// Velocity is the shipped quantity of one SKU and the distinct days it sold on.
type Velocity struct {
	Quantity int
	Days     map[string]struct{}
}

// AverageDaily is units per selling day.
func (v Velocity) AverageDaily() float64 {
	if len(v.Days) == 0 {
		return 0
	}
	return float64(v.Quantity) / float64(len(v.Days))
}

// Recommendation is one SKU that has fallen below its reorder point.
type Recommendation struct {
	SKU              string
	AvgDailySales    float64
	CurrentInventory int
	DaysOfSupply     float64
	ReorderPoint     float64
	OrderQuantity    int
}

// Message is the human-readable recommendation text.
func (r Recommendation) Message() string {
	return fmt.Sprintf("Stock below reorder point (%d units). Recommend ordering.", int(r.ReorderPoint))
}

// SalesVelocity aggregates shipped orders per SKU. Rows that are not shipped
// or carry an unusable quantity or date are ignored.
func SalesVelocity(orders models.Table) (map[string]Velocity, error) {
	cols, err := Columns(orders, ColOrderStatus, ColOrderSKU, ColQuantity, ColPurchaseDate)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Velocity)
	for _, row := range orders.Rows {
		if field(row, cols[ColOrderStatus]) != "Shipped" {
			continue
		}
		sku := field(row, cols[ColOrderSKU])
		qty, err := strconv.Atoi(field(row, cols[ColQuantity]))
		if sku == "" || err != nil || qty <= 0 {
			continue
		}
		sold, err := time.Parse(time.RFC3339, field(row, cols[ColPurchaseDate]))
		if err != nil {
			continue
		}
		v := out[sku]
		if v.Days == nil {
			v.Days = make(map[string]struct{})
		}
		v.Quantity += qty
		v.Days[sold.UTC().Format(flatFileDate)] = struct{}{}
		out[sku] = v
	}
	return out, nil
}

// Inventory reads available units per SKU.
func Inventory(report models.Table) (map[string]int, error) {
	cols, err := Columns(report, ColOrderSKU, ColAvailable)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(report.Rows))
	for _, row := range report.Rows {
		sku := field(row, cols[ColOrderSKU])
		n, err := strconv.Atoi(field(row, cols[ColAvailable]))
		if sku == "" || err != nil || n < 0 {
			continue
		}
		out[sku] = n
	}
	return out, nil
}

// Recommend lists SKUs whose inventory is below the reorder point, most
// urgent (fewest days of supply) first. SKUs missing from inventory count as
// zero on hand.
func Recommend(sales map[string]Velocity, inventory map[string]int, opts RestockOptions) []Recommendation {
	var out []Recommendation
	for sku, v := range sales {
		avg := v.AverageDaily()
		if avg <= 0 {
			continue
		}
		onHand := inventory[sku]
		safety := float64(opts.SafetyStockDays) * avg
		reorder := float64(opts.LeadTimeDays)*avg + safety
		if float64(onHand) >= reorder {
			continue
		}
		qty := int(float64(opts.DesiredCoverDays)*avg - float64(onHand))
		if qty < 0 {
			qty = 0
		}
		out = append(out, Recommendation{
			SKU:              sku,
			AvgDailySales:    avg,
			CurrentInventory: onHand,
			DaysOfSupply:     float64(onHand) / avg,
			ReorderPoint:     reorder,
			OrderQuantity:    qty,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DaysOfSupply != out[j].DaysOfSupply {
			return out[i].DaysOfSupply < out[j].DaysOfSupply
		}
		return out[i].SKU < out[j].SKU
	})
	return out
}

// RestockTable renders recommendations as a flat file.
func RestockTable(recs []Recommendation) models.Table {
	t := models.Table{Headers: RestockHeaders}
	for _, r := range recs {
		t.Rows = append(t.Rows, []string{
			r.SKU,
			round2(r.AvgDailySales),
			strconv.Itoa(r.CurrentInventory),
			round2(r.DaysOfSupply),
			round2(r.ReorderPoint),
			strconv.Itoa(r.OrderQuantity),
			r.Message(),
		})
	}
	return t
}

func round2(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
