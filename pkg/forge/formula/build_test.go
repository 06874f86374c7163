package formula

import (
	"errors"
	"testing"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

var (
	colA = models.ColumnRef{Tab: "BUY", Header: "ASIN", Index: 1, Letter: "A"}
	colD = models.ColumnRef{Tab: "BUY", Header: "Sell Price", Index: 4, Letter: "D"}
	colN = models.ColumnRef{Tab: "BUY", Header: "Cost", Index: 14, Letter: "N"}
	colF = models.ColumnRef{Tab: "BUY", Header: "Profit", Index: 6, Letter: "F"}
)

func TestBuildLookupExample(t *testing.T) {
	spec := Spec{
		Kind: KindLookup,
		Lookup: Lookup{
			Value:   Lit("A5"),
			Table:   Lit("Data!A2:Z500"),
			Column:  7,
			Default: Num(0),
		},
	}

	got, err := Build(spec)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	expected := "IFERROR(VLOOKUP(A5,Data!A2:Z500,7,FALSE),0)"
	if got != expected {
		t.Errorf("Build = %q, expected %q", got, expected)
	}
	if Text(got) != "="+expected {
		t.Errorf("Text = %q", Text(got))
	}
}

func TestBuildLookupModes(t *testing.T) {
	base := Lookup{Value: Lit("A5"), Table: Lit("Data!A2:Z500"), Column: 7, Default: Str("N/A")}

	tests := []struct {
		mode     ErrorMode
		expected string
	}{
		{"", `IFERROR(VLOOKUP(A5,Data!A2:Z500,7,FALSE),"N/A")`},
		{ErrorSwallow, `IFERROR(VLOOKUP(A5,Data!A2:Z500,7,FALSE),"N/A")`},
		{ErrorNoMatch, `IFNA(VLOOKUP(A5,Data!A2:Z500,7,FALSE),"N/A")`},
		{ErrorStrict, `VLOOKUP(A5,Data!A2:Z500,7,FALSE)`},
	}

	for _, tt := range tests {
		l := base
		l.Mode = tt.mode
		got, err := Build(Spec{Kind: KindLookup, Lookup: l})
		if err != nil {
			t.Fatalf("mode %q: %v", tt.mode, err)
		}
		if got != tt.expected {
			t.Errorf("mode %q: got %q, expected %q", tt.mode, got, tt.expected)
		}
	}
}

func TestBuildIndexMatch(t *testing.T) {
	inv := "Data_Input_Inventory"
	sku := models.ColumnRef{Tab: inv, Header: "sku", Index: 1, Letter: "A"}
	asin := models.ColumnRef{Tab: inv, Header: "asin", Index: 3, Letter: "C"}

	got, err := Build(Spec{Kind: KindLookup, Lookup: Lookup{
		Value:  Cell(colA, 2),
		Match:  Span(inv, asin, asin, 2, 201),
		Return: Span(inv, sku, sku, 2, 201),
	}})
	if err != nil {
		t.Fatal(err)
	}
	expected := "IFERROR(INDEX(Data_Input_Inventory!$A$2:$A$201,MATCH(A2,Data_Input_Inventory!$C$2:$C$201,0)),0)"
	if got != expected {
		t.Errorf("got %q, expected %q", got, expected)
	}
}

func TestBuildRatio(t *testing.T) {
	tests := []struct {
		name     string
		ratio    Ratio
		expected string
	}{
		{"default zero", Ratio{Numerator: Cell(colF, 2), Denominator: Cell(colN, 2)}, "IF(N2=0,0,F2/N2)"},
		{"blank zero", Ratio{Numerator: Cell(colF, 2), Denominator: Cell(colN, 2), Zero: Str("")}, `IF(N2=0,"",F2/N2)`},
		{"compound operands", Ratio{Numerator: Lit("E2+F2"), Denominator: Lit("I2/30")}, "IF((I2/30)=0,0,(E2+F2)/(I2/30))"},
		{"function operand", Ratio{Numerator: Lit("SUM(A2:C2)"), Denominator: Lit("MAX(D2,1)")}, "IF(MAX(D2,1)=0,0,SUM(A2:C2)/MAX(D2,1))"},
	}

	for _, tt := range tests {
		got, err := Build(Spec{Kind: KindRatio, Ratio: tt.ratio})
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got != tt.expected {
			t.Errorf("%s: got %q, expected %q", tt.name, got, tt.expected)
		}
	}
}

func TestBuildConditional(t *testing.T) {
	score := models.ColumnRef{Tab: "Buy_Box_Dashboard", Header: "Priority Score", Index: 6, Letter: "F"}
	spec := Spec{Kind: KindConditional, Conditional: Conditional{
		Arms: []Arm{
			{Left: Cell(score, 9), Op: ">", Right: Num(500), Then: Str("Critical")},
			{Left: Cell(score, 9), Op: ">", Right: Num(100), Then: Str("At Risk")},
		},
		Default: Str("Healthy"),
	}}

	got, err := Build(spec)
	if err != nil {
		t.Fatal(err)
	}
	expected := `IF(F9>500,"Critical",IF(F9>100,"At Risk","Healthy"))`
	if got != expected {
		t.Errorf("got %q, expected %q", got, expected)
	}
}

func TestBuildConditionalRequiresDefault(t *testing.T) {
	spec := Spec{Kind: KindConditional, Conditional: Conditional{
		Arms: []Arm{{Left: Lit("L2"), Op: ">", Right: Num(0), Then: Str("Restock Needed")}},
	}}
	_, err := Build(spec)
	var specErr *SpecError
	if !errors.As(err, &specErr) || specErr.Field != "default" {
		t.Fatalf("expected default SpecError, got %v", err)
	}

	spec.Conditional.Default = Str("Healthy")
	spec.Conditional.Arms[0].Op = "=>"
	if _, err := Build(spec); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec for bad operator, got %v", err)
	}

	spec.Conditional.Arms = nil
	if _, err := Build(spec); !errors.Is(err, ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec without arms, got %v", err)
	}
}

func TestBuildPassthroughAndExpression(t *testing.T) {
	src := models.ColumnRef{Tab: "Data_Input", Header: "SKU", Index: 2, Letter: "B"}
	got, err := Build(Spec{Kind: KindPassthrough, Source: SheetCell("Data_Input", src, 7)})
	if err != nil {
		t.Fatal(err)
	}
	if got != `IF(ISBLANK(Data_Input!B7),"",Data_Input!B7)` {
		t.Errorf("passthrough = %q", got)
	}

	got, err = Build(Spec{Kind: KindExpression, Expression: Join(Cell(colD, 3), Lit("-"), Cell(colN, 3))})
	if err != nil {
		t.Fatal(err)
	}
	if got != "D3-N3" {
		t.Errorf("expression = %q", got)
	}
}

func TestBuildUnresolvedReference(t *testing.T) {
	missing := models.ColumnRef{Tab: "KEEPA", Header: "Sales Rank: Current"}

	specs := []Spec{
		{Kind: KindLookup, Lookup: Lookup{Value: Cell(missing, 2), Table: Lit("KEEPA!A:Z"), Column: 3}},
		{Kind: KindLookup, Lookup: Lookup{Value: Cell(colA, 2), Match: Span("KEEPA", colA, colA, 0, 0), Return: Span("KEEPA", missing, missing, 0, 0)}},
		{Kind: KindLookup, Lookup: Lookup{Value: Cell(colA, 2), Table: Lit("KEEPA!A:Z"), Column: 3, Mode: ErrorStrict, Default: Cell(missing, 2)}},
		{Kind: KindRatio, Ratio: Ratio{Numerator: Cell(colF, 2), Denominator: SheetCell("KEEPA", missing, 2)}},
		{Kind: KindConditional, Conditional: Conditional{
			Arms:    []Arm{{Left: Cell(missing, 2), Op: ">", Right: Num(1), Then: Str("x")}},
			Default: Str("y"),
		}},
		{Kind: KindExpression, Expression: Join(Cell(colD, 2), Lit("+"), Cell(missing, 2))},
		{Kind: KindPassthrough, Source: SheetCell("KEEPA", missing, 2)},
	}

	for i, spec := range specs {
		got, err := Build(spec)
		if got != "" {
			t.Errorf("spec %d emitted %q despite unresolved reference", i, got)
		}
		var unresolved *UnresolvedReferenceError
		if !errors.As(err, &unresolved) {
			t.Fatalf("spec %d: expected *UnresolvedReferenceError, got %v", i, err)
		}
		if unresolved.Tab != "KEEPA" || unresolved.Header != "Sales Rank: Current" {
			t.Errorf("spec %d: error names %q/%q", i, unresolved.Tab, unresolved.Header)
		}
		if !errors.Is(err, ErrUnresolvedReference) {
			t.Errorf("spec %d: errors.Is(ErrUnresolvedReference) = false", i)
		}
	}
}

func TestBuildIsPure(t *testing.T) {
	spec := Spec{Kind: KindConditional, Conditional: Conditional{
		Arms: []Arm{
			{Left: Cell(colF, 4), Op: "<", Right: Num(0), Then: Str("LOSING MONEY!")},
			{Left: Cell(colF, 4), Op: "<", Right: Num(0.1), Then: Str("Low Margin")},
		},
		Default: Str("Profitable"),
	}}

	first, err := Build(spec)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Build(spec)
		if err != nil || again != first {
			t.Fatalf("Build run %d = %q, %v; expected %q", i, again, err, first)
		}
	}
}

func TestBuildMissingOperands(t *testing.T) {
	specs := []Spec{
		{Kind: KindLookup, Lookup: Lookup{Table: Lit("A:B"), Column: 2}},
		{Kind: KindLookup, Lookup: Lookup{Value: Lit("A2"), Column: 2}},
		{Kind: KindLookup, Lookup: Lookup{Value: Lit("A2"), Table: Lit("A:B")}},
		{Kind: KindLookup, Lookup: Lookup{Value: Lit("A2"), Match: Lit("A:A")}},
		{Kind: KindRatio, Ratio: Ratio{Numerator: Lit("A2")}},
		{Kind: KindExpression},
		{Kind: KindPassthrough},
		{Kind: "pivot"},
	}
	for i, spec := range specs {
		if _, err := Build(spec); !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("spec %d: expected ErrInvalidSpec, got %v", i, err)
		}
	}
}

func TestParseErrorMode(t *testing.T) {
	for in, expected := range map[string]ErrorMode{"": ErrorSwallow, "swallow": ErrorSwallow, "no_match": ErrorNoMatch, "strict": ErrorStrict} {
		got, err := ParseErrorMode(in)
		if err != nil || got != expected {
			t.Errorf("ParseErrorMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseErrorMode("loud"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
