package models

// RuleKind names a formatting or validation rule type.
type RuleKind string

const (
	// RuleColorScale is a 2 or 3 stop color gradient over a numeric range.
	RuleColorScale RuleKind = "color_scale"
	// RuleDropdown restricts input to a fixed list of values.
	RuleDropdown RuleKind = "dropdown_validation"
	// RuleDuplicateHighlight fills cells whose value repeats in the range.
	RuleDuplicateHighlight RuleKind = "duplicate_highlight"
	// RuleCellHighlight fills cells matching a comparison.
	RuleCellHighlight RuleKind = "cell_highlight"
)

// ColorStop is one point of a color scale.
type ColorStop struct {
	Value float64 `json:"value" yaml:"value"`
	Color string  `json:"color" yaml:"color"`
}

// FormattingRule is a declarative rule attached to a cell range.
type FormattingRule struct {
	// Range is the target range in A1 notation (e.g. F2:F201).
	Range string `json:"range"`
	// Kind selects how the remaining fields are read.
	Kind RuleKind `json:"kind"`
	// Stops holds color scale stops in ascending value order.
	Stops []ColorStop `json:"stops,omitempty"`
	// Values holds the allowed dropdown entries.
	Values []string `json:"values,omitempty"`
	// Criteria is the comparison operator for cell highlights.
	Criteria string `json:"criteria,omitempty"`
	// Value is the comparison operand for cell highlights.
	Value string `json:"value,omitempty"`
	// Fill is the background color for highlight rules.
	Fill string `json:"fill,omitempty"`
	// FontColor is the optional text color for highlight rules.
	FontColor string `json:"font_color,omitempty"`
}
