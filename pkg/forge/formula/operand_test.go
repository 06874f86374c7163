package formula

import (
	"testing"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

func TestQuoteSheet(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"BUY", "BUY"},
		{"Data_Input", "Data_Input"},
		{"IP Qty", "'IP Qty'"},
		{"Buyer's Sheet", "'Buyer''s Sheet'"},
		{"2024", "'2024'"},
		{"AB12", "'AB12'"},
		{"R1C1", "'R1C1'"},
	}
	for _, tt := range tests {
		if got := QuoteSheet(tt.input); got != tt.expected {
			t.Errorf("QuoteSheet(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestOperands(t *testing.T) {
	b := models.ColumnRef{Tab: "IP Qty", Header: "SKU", Index: 2, Letter: "B"}
	z := models.ColumnRef{Tab: "IP Qty", Header: "Stock", Index: 26, Letter: "Z"}

	tests := []struct {
		operand  Operand
		expected string
	}{
		{Cell(b, 12), "B12"},
		{AbsCell(b, 3), "$B$3"},
		{SheetCell("IP Qty", b, 4), "'IP Qty'!B4"},
		{Span("IP Qty", b, z, 2, 201), "'IP Qty'!$B$2:$Z$201"},
		{Span("", b, b, 0, 0), "$B:$B"},
		{Str(`say "hi"`), `"say ""hi"""`},
		{Num(0.15), "0.15"},
		{Num(60), "60"},
	}
	for _, tt := range tests {
		if err := tt.operand.Err(); err != nil {
			t.Fatalf("operand %q: %v", tt.expected, err)
		}
		if got := tt.operand.String(); got != tt.expected {
			t.Errorf("operand = %q, expected %q", got, tt.expected)
		}
	}

	if Cell(b, 0).Err() == nil {
		t.Error("row 0 should be rejected")
	}
	if Span("IP Qty", b, z, 10, 2).Err() == nil {
		t.Error("inverted row span should be rejected")
	}
	if !(Operand{}).IsZero() || Lit("x").IsZero() {
		t.Error("IsZero mismatch")
	}
}
