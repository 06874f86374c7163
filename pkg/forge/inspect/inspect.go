package inspect

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// Workbook opens the file at path and reads it back.
func Workbook(path string, opts Options) (*models.WorkbookData, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	defer f.Close()
	return File(f, filepath.Base(path), opts)
}

// File reads an open workbook back. Sheets are visited in workbook order.
func File(f *excelize.File, bookName string, opts Options) (*models.WorkbookData, error) {
	sheetList := f.GetSheetList()
	sheets := make(map[string]models.SheetData, len(sheetList))

	for _, sheetName := range sheetList {
		rows, err := Cells(f, sheetName, opts.ShouldIncludeFormulas())
		if err != nil {
			return nil, &InspectionError{SheetName: sheetName, Component: "cells", Err: err}
		}
		tables, err := DetectTables(f, sheetName, DefaultTableParams())
		if err != nil {
			return nil, &InspectionError{SheetName: sheetName, Component: "tables", Err: err}
		}
		sheet := models.SheetData{
			Rows:            rows,
			TableCandidates: tables,
		}
		if opts.Mode != ModeLight {
			if err := readLayout(f, sheetName, &sheet); err != nil {
				return nil, &InspectionError{SheetName: sheetName, Component: "layout", Err: err}
			}
		}
		sheets[sheetName] = sheet
	}

	if opts.ShouldIncludePrintAreas() {
		printAreas, err := PrintAreas(f)
		if err != nil {
			return nil, &InspectionError{Component: "print_areas", Err: err}
		}
		for sheetName, areas := range printAreas {
			if sheet, ok := sheets[sheetName]; ok {
				sheet.PrintAreas = areas
				sheets[sheetName] = sheet
			}
		}
	}

	return &models.WorkbookData{
		BookName:   bookName,
		SheetOrder: sheetList,
		Sheets:     sheets,
	}, nil
}
