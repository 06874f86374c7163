package forge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/schema"
)

// ErrSchema indicates a template that failed validation.
var ErrSchema = errors.New("schema error")

// ErrWorkbookLocked indicates the target workbook is held open by another process.
var ErrWorkbookLocked = errors.New("workbook is locked")

// ErrWorkbookWrite indicates the workbook could not be written.
var ErrWorkbookWrite = errors.New("workbook write failed")

// SchemaError carries every issue found while validating a plan.
type SchemaError struct {
	Template string
	Issues   []schema.ValidationIssue
}

func (e *SchemaError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "template %q has %d schema issue(s):", e.Template, len(e.Issues))
	for _, i := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(i.String())
	}
	return b.String()
}

func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// WorkbookLockedError reports a target held open by another program.
type WorkbookLockedError struct {
	Path string
	Err  error
}

func (e *WorkbookLockedError) Error() string {
	return fmt.Sprintf("%s is open in another program; close it and run again", e.Path)
}

func (e *WorkbookLockedError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrWorkbookLocked}
	}
	return []error{ErrWorkbookLocked, e.Err}
}

// WorkbookWriteError reports any other failure while persisting.
type WorkbookWriteError struct {
	Path string
	Err  error
}

func (e *WorkbookWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WorkbookWriteError) Unwrap() []error {
	return []error{ErrWorkbookWrite, e.Err}
}

// StageError locates a failure inside an assembly stage.
type StageError struct {
	Stage State
	Tab   string
	Cell  string
	Err   error
}

func (e *StageError) Error() string {
	var where []string
	if e.Tab != "" {
		where = append(where, fmt.Sprintf("tab %q", e.Tab))
	}
	if e.Cell != "" {
		where = append(where, "cell "+e.Cell)
	}
	if len(where) == 0 {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Stage, strings.Join(where, " "), e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
