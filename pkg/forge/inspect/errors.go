package inspect

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// InspectionError represents an error while reading part of a workbook.
type InspectionError struct {
	SheetName string
	Component string // "cells", "tables", "print_areas", "layout"
	Err       error
}

func (e *InspectionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("inspection error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("inspection error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *InspectionError) Unwrap() error {
	return e.Err
}
