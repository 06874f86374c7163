// Package inspect reads a generated workbook back into plain data so it can
// be checked, diffed or printed.
package inspect

import "fmt"

// Mode represents the inspection depth.
type Mode string

const (
	// ModeLight reads cell values and table candidates only.
	ModeLight Mode = "light"
	// ModeStandard also reads formulas, print areas, merged cells, panes,
	// data validations and conditional formats.
	ModeStandard Mode = "standard"
)

// Options configures inspection behavior.
type Options struct {
	// Mode specifies the inspection depth (light, standard).
	Mode Mode
	// IncludeFormulas specifies whether to read formula text.
	// If nil, defaults to false for light mode, true otherwise.
	IncludeFormulas *bool
	// IncludePrintAreas specifies whether to include print areas.
	// If nil, defaults to false for light mode, true otherwise.
	IncludePrintAreas *bool
}

// DefaultOptions returns default inspection options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeStandard,
	}
}

// ShouldIncludeFormulas returns whether to read formula text.
func (o Options) ShouldIncludeFormulas() bool {
	if o.IncludeFormulas != nil {
		return *o.IncludeFormulas
	}
	return o.Mode != ModeLight
}

// ShouldIncludePrintAreas returns whether to include print areas.
func (o Options) ShouldIncludePrintAreas() bool {
	if o.IncludePrintAreas != nil {
		return *o.IncludePrintAreas
	}
	return o.Mode != ModeLight
}

// ParseMode maps a flag value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeStandard:
		return ModeStandard, nil
	case ModeLight:
		return ModeLight, nil
	}
	return "", fmt.Errorf("unknown inspection mode %q (must be light or standard)", s)
}
