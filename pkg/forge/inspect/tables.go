package inspect

import (
	"github.com/xuri/excelize/v2"
)

// TableDetectionParams tunes DetectTables.
type TableDetectionParams struct {
	// DensityMin is the smallest filled share of a block's bounding box.
	DensityMin float64
	// MinNonemptyCells drops blocks such as a lone title cell.
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		MinNonemptyCells: 3,
	}
}

// block is a run of consecutive non-blank rows, zero-based and inclusive.
type block struct {
	top, bottom, left, right int
	filled                   int
}

// DetectTables returns the ranges (e.g. "A3:G10") of value blocks separated
// by blank rows, so a title above a blank spacer row is not merged into the
// table below it. Formula cells without a cached value count as blank, so a
// freshly generated dashboard usually yields its header row only.
func DetectTables(f *excelize.File, sheetName string, params TableDetectionParams) ([]string, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, b := range splitBlocks(rows) {
		area := (b.bottom - b.top + 1) * (b.right - b.left + 1)
		if b.filled < params.MinNonemptyCells || float64(b.filled)/float64(area) < params.DensityMin {
			continue
		}
		start, err := excelize.CoordinatesToCellName(b.left+1, b.top+1)
		if err != nil {
			return nil, err
		}
		end, err := excelize.CoordinatesToCellName(b.right+1, b.bottom+1)
		if err != nil {
			return nil, err
		}
		out = append(out, start+":"+end)
	}
	return out, nil
}

func splitBlocks(rows [][]string) []block {
	var blocks []block
	var cur *block
	for r, row := range rows {
		left, right, filled := -1, -1, 0
		for c, v := range row {
			if v == "" {
				continue
			}
			if left < 0 {
				left = c
			}
			right = c
			filled++
		}
		if filled == 0 {
			cur = nil
			continue
		}
		if cur == nil {
			blocks = append(blocks, block{top: r, bottom: r, left: left, right: right})
			cur = &blocks[len(blocks)-1]
		}
		cur.bottom = r
		cur.left = min(cur.left, left)
		cur.right = max(cur.right, right)
		cur.filled += filled
	}
	return blocks
}
