package inspect

import (
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// readLayout fills the merged cells, frozen pane, data validations and
// conditional formats of sheet. Results are sorted by range.
func readLayout(f *excelize.File, sheetName string, sheet *models.SheetData) error {
	merged, err := f.GetMergeCells(sheetName, true)
	if err != nil {
		return err
	}
	for _, m := range merged {
		sheet.MergedCells = append(sheet.MergedCells, m.GetStartAxis()+":"+m.GetEndAxis())
	}
	slices.Sort(sheet.MergedCells)

	panes, err := f.GetPanes(sheetName)
	if err != nil {
		return err
	}
	if panes.Freeze {
		sheet.FreezeCell = panes.TopLeftCell
	}

	validations, err := f.GetDataValidations(sheetName)
	if err != nil {
		return err
	}
	for _, dv := range validations {
		sheet.Validations = append(sheet.Validations, models.ValidationData{
			Range:    dv.Sqref,
			Type:     dv.Type,
			Formula1: dv.Formula1,
		})
	}
	slices.SortFunc(sheet.Validations, func(a, b models.ValidationData) int {
		return strings.Compare(a.Range, b.Range)
	})

	formats, err := f.GetConditionalFormats(sheetName)
	if err != nil {
		return err
	}
	ranges := make([]string, 0, len(formats))
	for rng := range formats {
		ranges = append(ranges, rng)
	}
	slices.Sort(ranges)
	for _, rng := range ranges {
		for _, opt := range formats[rng] {
			cd := models.ConditionalData{
				Range:    rng,
				Type:     opt.Type,
				Criteria: opt.Criteria,
				Value:    opt.Value,
			}
			for _, c := range []string{opt.MinColor, opt.MidColor, opt.MaxColor} {
				if c != "" {
					cd.Colors = append(cd.Colors, c)
				}
			}
			sheet.ConditionalFormats = append(sheet.ConditionalFormats, cd)
		}
	}
	return nil
}
