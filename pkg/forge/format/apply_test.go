package format

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

func TestApply(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"

	scale, err := PlanColorScale("G2:G201", []models.ColorStop{{Value: 0, Color: "red"}, {Value: 0.15, Color: "yellow"}, {Value: 0.3, Color: "green"}})
	if err != nil {
		t.Fatal(err)
	}
	dropdown, err := PlanDropdown("H2:H201", []string{"Yes", "No"})
	if err != nil {
		t.Fatal(err)
	}
	dupes, err := PlanDuplicateHighlight("A2:A201", "")
	if err != nil {
		t.Fatal(err)
	}
	cell, err := PlanCellHighlight("L2:L201", ">", "0", "light-red", "")
	if err != nil {
		t.Fatal(err)
	}

	for _, rule := range []models.FormattingRule{scale, dropdown, dupes, cell} {
		if err := Apply(f, sheet, rule); err != nil {
			t.Fatalf("Apply(%s) failed: %v", rule.Kind, err)
		}
	}

	validations, err := f.GetDataValidations(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(validations) != 1 || validations[0].Sqref != "H2:H201" || validations[0].Type != "list" {
		t.Fatalf("unexpected validations %+v", validations)
	}

	formats, err := f.GetConditionalFormats(sheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(formats) != 3 {
		t.Fatalf("expected 3 conditional ranges, got %d", len(formats))
	}
	if opts := formats["G2:G201"]; len(opts) != 1 || opts[0].Type != "3_color_scale" || opts[0].MidValue != "0.15" {
		t.Errorf("color scale read back as %+v", opts)
	}
	if opts := formats["A2:A201"]; len(opts) != 1 || opts[0].Type != "duplicate" {
		t.Errorf("duplicate rule read back as %+v", opts)
	}
	if opts := formats["L2:L201"]; len(opts) != 1 || opts[0].Type != "cell" || opts[0].Value != "0" {
		t.Errorf("cell rule read back as %+v", opts)
	}
}

func TestApplyUnknownKind(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := Apply(f, "Sheet1", models.FormattingRule{Range: "A1:A2", Kind: "sparkline"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}
