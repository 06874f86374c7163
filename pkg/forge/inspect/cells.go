package inspect

import (
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// Cells reads the populated rows of a sheet. Formula cells without a cached
// value are kept when includeFormulas is set.
func Cells(f *excelize.File, sheetName string, includeFormulas bool) ([]models.CellRow, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		cellMap := make(map[string]interface{})
		formulaMap := make(map[string]string)

		for colIdx, cellValue := range row {
			colStr := strconv.Itoa(colIdx + 1) // 1-based column index as string
			if cellValue != "" {
				cellMap[colStr] = parseValue(cellValue)
			}
			if includeFormulas {
				cellName, _ := excelize.CoordinatesToCellName(colIdx+1, rowNum)
				formula, err := f.GetCellFormula(sheetName, cellName)
				if err != nil {
					return nil, err
				}
				if formula != "" {
					formulaMap[colStr] = formula
				}
			}
		}

		if len(cellMap) == 0 && len(formulaMap) == 0 {
			continue
		}
		cellRow := models.CellRow{R: rowNum}
		if len(cellMap) > 0 {
			cellRow.C = cellMap
		}
		if len(formulaMap) > 0 {
			cellRow.F = formulaMap
		}
		result = append(result, cellRow)
	}

	return result, nil
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
