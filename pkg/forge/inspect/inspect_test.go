package inspect

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

func TestParsePrintAreaReference(t *testing.T) {
	tests := []struct {
		ref       string
		wantSheet string
		want      []models.PrintArea
	}{
		{"ORDER!$A$1:$D$10", "ORDER", []models.PrintArea{{R1: 1, C1: 1, R2: 10, C2: 4}}},
		{"'IP Qty'!$B$2:$C$5", "IP Qty", []models.PrintArea{{R1: 2, C1: 2, R2: 5, C2: 3}}},
		{"'Bob''s'!$A$1:$A$2,'Bob''s'!$C$1:$C$2", "Bob's", []models.PrintArea{
			{R1: 1, C1: 1, R2: 2, C2: 1},
			{R1: 1, C1: 3, R2: 2, C2: 3},
		}},
		{"ORDER!$A$1", "ORDER", nil},
	}
	for _, tt := range tests {
		sheet, areas := parsePrintAreaReference(tt.ref)
		if sheet != tt.wantSheet {
			t.Errorf("%s: sheet = %q, want %q", tt.ref, sheet, tt.wantSheet)
		}
		if len(areas) != len(tt.want) {
			t.Fatalf("%s: got %d areas, want %d", tt.ref, len(areas), len(tt.want))
		}
		for i := range areas {
			if areas[i] != tt.want[i] {
				t.Errorf("%s: area %d = %+v, want %+v", tt.ref, i, areas[i], tt.want[i])
			}
		}
	}
}

func TestWorkbookMissingFile(t *testing.T) {
	_, err := Workbook(filepath.Join(t.TempDir(), "missing.xlsx"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestWorkbookLayout(t *testing.T) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	if err := f.SetSheetName(sheet, "Tracker"); err != nil {
		t.Fatal(err)
	}
	sheet = "Tracker"
	f.SetCellValue(sheet, "A1", "Tracker")
	f.MergeCell(sheet, "A1", "C1")
	f.SetSheetRow(sheet, "A2", &[]string{"SKU", "Status", "Score"})
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 2, TopLeftCell: "A3", ActivePane: "bottomLeft"})

	dv := excelize.NewDataValidation(true)
	dv.Sqref = "B3:B10"
	if err := dv.SetDropList([]string{"Open", "Done"}); err != nil {
		t.Fatal(err)
	}
	if err := f.AddDataValidation(sheet, dv); err != nil {
		t.Fatal(err)
	}
	if err := f.SetConditionalFormat(sheet, "C3:C10", []excelize.ConditionalFormatOptions{{
		Type: "2_color_scale", Criteria: "=", MinType: "num", MaxType: "num",
		MinValue: "0", MaxValue: "100", MinColor: "#F8696B", MaxColor: "#63BE7B",
	}}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetDefinedName(&excelize.DefinedName{
		Name: "_xlnm.Print_Area", RefersTo: "Tracker!$A$1:$C$10", Scope: sheet,
	}); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "tracker.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	f.Close()

	wb, err := Workbook(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Workbook failed: %v", err)
	}
	if wb.BookName != "tracker.xlsx" || len(wb.SheetOrder) != 1 {
		t.Fatalf("unexpected workbook %q %v", wb.BookName, wb.SheetOrder)
	}
	got := wb.Sheets["Tracker"]
	if len(got.MergedCells) != 1 || got.MergedCells[0] != "A1:C1" {
		t.Errorf("merged cells = %v", got.MergedCells)
	}
	if got.FreezeCell != "A3" {
		t.Errorf("freeze cell = %q", got.FreezeCell)
	}
	if len(got.Validations) != 1 || got.Validations[0].Range != "B3:B10" || got.Validations[0].Type != "list" {
		t.Errorf("validations = %+v", got.Validations)
	}
	if len(got.ConditionalFormats) != 1 || len(got.ConditionalFormats[0].Colors) != 2 {
		t.Errorf("conditional formats = %+v", got.ConditionalFormats)
	}
	if len(got.PrintAreas) != 1 || got.PrintAreas[0] != (models.PrintArea{R1: 1, C1: 1, R2: 10, C2: 3}) {
		t.Errorf("print areas = %+v", got.PrintAreas)
	}

	light, err := Workbook(path, Options{Mode: ModeLight})
	if err != nil {
		t.Fatal(err)
	}
	if s := light.Sheets["Tracker"]; s.FreezeCell != "" || len(s.PrintAreas) != 0 {
		t.Errorf("light mode read layout: %+v", s)
	}
}

func TestDetectTablesSplitsOnBlankRows(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "Competitor Analysis Report")
	f.SetSheetRow(sheet, "A3", &[]string{"ASIN", "Sessions", "Revenue"})
	f.SetSheetRow(sheet, "A4", &[]interface{}{"B01", 10, 100})
	f.SetSheetRow(sheet, "B5", &[]interface{}{20, 50})

	got, err := DetectTables(f, sheet, DefaultTableParams())
	if err != nil {
		t.Fatalf("DetectTables failed: %v", err)
	}
	if len(got) != 1 || got[0] != "A3:C5" {
		t.Fatalf("tables = %v, want [A3:C5]", got)
	}
}
