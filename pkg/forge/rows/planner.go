// Package rows sizes the block of pre-populated data rows for a sheet.
package rows

import (
	"fmt"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

const (
	DefaultMinimum  = 200
	DefaultMaximum  = 10000
	DefaultHeadroom = 50
)

// Planner clamps an observed row count plus headroom into [Minimum, Maximum].
//
// Formulas are written for every planned row whether or not data exists yet.
// Too few rows leave blank dashboard rows once more data is pasted; too many
// inflate the file and its recalculation cost.
type Planner struct {
	Minimum  int `json:"minimum" toml:"minimum"`
	Maximum  int `json:"maximum" toml:"maximum"`
	Headroom int `json:"headroom" toml:"headroom"`
}

// DefaultPlanner returns the 200 / 10000 / 50 policy.
func DefaultPlanner() Planner {
	return Planner{Minimum: DefaultMinimum, Maximum: DefaultMaximum, Headroom: DefaultHeadroom}
}

// Validate checks the bounds are usable.
func (p Planner) Validate() error {
	if p.Minimum < 1 {
		return fmt.Errorf("row minimum must be at least 1, got %d", p.Minimum)
	}
	if p.Maximum < p.Minimum {
		return fmt.Errorf("row maximum %d is below minimum %d", p.Maximum, p.Minimum)
	}
	if p.Headroom < 0 {
		return fmt.Errorf("row headroom must not be negative, got %d", p.Headroom)
	}
	return nil
}

// Size returns the number of rows to provision for observed data rows.
func (p Planner) Size(observed int) int {
	if observed < 0 {
		observed = 0
	}
	if observed > p.Maximum-p.Headroom {
		return p.Maximum
	}
	target := observed + p.Headroom
	if target < p.Minimum {
		return p.Minimum
	}
	if target > p.Maximum {
		return p.Maximum
	}
	return target
}

// Plan returns the data rows below headerRow for observed data rows.
func (p Planner) Plan(headerRow, observed int) models.RowRange {
	first := headerRow + 1
	return models.RowRange{First: first, Last: first + p.Size(observed) - 1}
}
