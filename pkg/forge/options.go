// Package forge assembles declarative templates into formula-driven workbooks.
package forge

import (
	"github.com/johnwesleyquintero/process-systems/pkg/forge/formula"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/rows"
)

// Options configures planning. Logging is configured on the Assembler.
type Options struct {
	// Rows bounds the number of pre-populated data rows per sheet.
	Rows rows.Planner
	// ErrorMode is the lookup error mode for columns that do not set on_error.
	ErrorMode formula.ErrorMode
}

// DefaultOptions returns default assembly options.
func DefaultOptions() Options {
	return Options{
		Rows:      rows.DefaultPlanner(),
		ErrorMode: formula.ErrorSwallow,
	}
}
