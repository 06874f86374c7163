package forge

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/schema"
)

func refPlan(t *testing.T) *WorkbookPlan {
	t.Helper()
	tmpl := models.Template{
		Name: "refs",
		Tabs: []models.TabTemplate{
			{TabSchema: models.TabSchema{Name: "IP Qty", HeaderRow: 1, Headers: []string{"ASIN", "Qty"}}},
			{TabSchema: models.TabSchema{Name: "BUY", HeaderRow: 3, Headers: []string{"ASIN", "Qty!", "Total"}}},
		},
	}
	plan, err := NewPlan(tmpl, filepath.Join(t.TempDir(), "refs.xlsx"), nil, DefaultOptions())
	require.NoError(t, err)
	return plan
}

func TestRowContextExpr(t *testing.T) {
	ctx := rowContext{plan: refPlan(t), tab: "BUY", row: 4}

	tests := []struct {
		text string
		want string
	}{
		{"{ASIN}", "A4"},
		// Rows map onto the other tab's block: BUY starts at 4, IP Qty at 2.
		{"{IP Qty!Qty}*2", "'IP Qty'!B2*2"},
		{"{Qty!}", "B4"},
		{`IF({ASIN}="{ASIN}",1,0)`, `IF(A4="{ASIN}",1,0)`},
		{"SUM({1,2,3})", "SUM({1,2,3})"},
		{"{ASIN", "{ASIN"},
		{"{1}", "{1}"},
		{"MAX(0,{Total}-{Qty!})", "MAX(0,C4-B4)"},
	}
	for _, tt := range tests {
		got := ctx.expr(tt.text)
		require.NoError(t, got.Err(), tt.text)
		assert.Equal(t, tt.want, got.String(), tt.text)
	}
}

func TestRowContextUnresolved(t *testing.T) {
	ctx := rowContext{plan: refPlan(t), tab: "BUY", row: 4}

	err := ctx.expr("{Cost}+1").Err()
	var missing *schema.HeaderNotFoundError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "BUY", missing.Tab)
	assert.Equal(t, "Cost", missing.Header)

	// An unregistered prefix is read as a header of the current tab.
	err = ctx.cell("KEEPA!ASIN").Err()
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "KEEPA!ASIN", missing.Header)
}

func TestPlaceholders(t *testing.T) {
	got := placeholders(`{A}+{B!C}&"{D}"&{1,2}`)
	assert.Equal(t, []string{"A", "B!C"}, got)
}

func TestSeedValue(t *testing.T) {
	tests := []struct {
		in   string
		want interface{}
	}{
		{"12", int64(12)},
		{"12.5", 12.5},
		{"$1,234.50", 1234.5},
		{"15%", 0.15},
		{"007", "007"},
		{"0.5", 0.5},
		{"B00ABC1234", "B00ABC1234"},
		{" 3 ", int64(3)},
		{"-4.5", -4.5},
		{"12E3", "12E3"},
		{"1e5", "1e5"},
		{"NaN", "NaN"},
		{"Inf", "Inf"},
		{"$1e3", "$1e3"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, seedValue(tt.in), tt.in)
	}
}
