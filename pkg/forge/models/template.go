package models

// Role classifies how a tab is used by analysts.
type Role string

const (
	// RoleInput tabs receive pasted report data.
	RoleInput Role = "input"
	// RoleDashboard tabs are computed from other tabs.
	RoleDashboard Role = "dashboard"
	// RoleNotes tabs hold static text such as instructions.
	RoleNotes Role = "notes"
)

// ColumnKind names the formula family of a computed column.
type ColumnKind string

const (
	ColumnPassthrough ColumnKind = "passthrough"
	ColumnLookup      ColumnKind = "lookup"
	ColumnRatio       ColumnKind = "ratio"
	ColumnConditional ColumnKind = "conditional"
	ColumnExpression  ColumnKind = "expression"
)

// Template is the declarative description of one workbook.
type Template struct {
	// Name is the registry key used on the command line.
	Name string `json:"name" yaml:"name"`
	// Description is a one line summary shown by "forge list".
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// FileName is the default artifact name.
	FileName string `json:"file_name" yaml:"file_name"`
	// Tabs lists the sheets in workbook order.
	Tabs []TabTemplate `json:"tabs" yaml:"tabs"`
}

// TabTemplate extends a TabSchema with the rules that populate the sheet.
type TabTemplate struct {
	TabSchema `yaml:",inline"`

	Role        Role   `json:"role,omitempty" yaml:"role,omitempty"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`

	Columns []ColumnDecl  `json:"columns,omitempty" yaml:"columns,omitempty"`
	Formats []FormatDecl  `json:"formats,omitempty" yaml:"formats,omitempty"`
	Cells   []StaticCell  `json:"cells,omitempty" yaml:"cells,omitempty"`
	Rows    [][]any       `json:"rows,omitempty" yaml:"rows,omitempty"`
	Widths  []ColumnWidth `json:"widths,omitempty" yaml:"widths,omitempty"`
	Freeze  bool          `json:"freeze,omitempty" yaml:"freeze,omitempty"`
	Filter  bool          `json:"filter,omitempty" yaml:"filter,omitempty"`
	// Aliases renames report columns to tab headers when seeding, keyed by
	// the report header.
	Aliases map[string]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	// PrintArea limits printing to the header and planned rows.
	PrintArea bool `json:"print_area,omitempty" yaml:"print_area,omitempty"`
}

// EffectiveRole returns the declared role, inferring dashboard for tabs
// that carry computed columns.
func (t TabTemplate) EffectiveRole() Role {
	if t.Role != "" {
		return t.Role
	}
	if len(t.Columns) > 0 {
		return RoleDashboard
	}
	return RoleInput
}

// ColumnDecl declares how one column of a tab is computed.
//
// Operand fields are formula fragments in which {Header} refers to the same
// row of the current tab and {Tab!Header} to the matching row of another tab.
// Quoted text and numbers pass through untouched.
type ColumnDecl struct {
	Header string     `json:"header" yaml:"header"`
	Kind   ColumnKind `json:"kind" yaml:"kind"`

	// passthrough
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// lookup: find Value in the Key column of tab Table and return Column.
	Value   string `json:"value,omitempty" yaml:"value,omitempty"`
	Table   string `json:"table,omitempty" yaml:"table,omitempty"`
	Key     string `json:"key,omitempty" yaml:"key,omitempty"`
	Column  string `json:"column,omitempty" yaml:"column,omitempty"`
	Method  string `json:"method,omitempty" yaml:"method,omitempty"`
	Default string `json:"default,omitempty" yaml:"default,omitempty"`
	OnError string `json:"on_error,omitempty" yaml:"on_error,omitempty"`
	// Bounded limits the lookup table to the planned rows of Table. By
	// default input tabs are searched by whole column so rows pasted past
	// the planned range still match.
	Bounded bool `json:"bounded,omitempty" yaml:"bounded,omitempty"`

	// ratio
	Numerator   string `json:"numerator,omitempty" yaml:"numerator,omitempty"`
	Denominator string `json:"denominator,omitempty" yaml:"denominator,omitempty"`
	Zero        string `json:"zero,omitempty" yaml:"zero,omitempty"`

	// conditional
	Arms []ArmDecl `json:"arms,omitempty" yaml:"arms,omitempty"`
	Else string    `json:"else,omitempty" yaml:"else,omitempty"`

	// expression
	Expr string `json:"expr,omitempty" yaml:"expr,omitempty"`

	NumberFormat string `json:"number_format,omitempty" yaml:"number_format,omitempty"`
}

// ArmDecl is one "when Left Op Right then Then" branch.
type ArmDecl struct {
	Left  string `json:"left" yaml:"left"`
	Op    string `json:"op" yaml:"op"`
	Right string `json:"right" yaml:"right"`
	Then  string `json:"then" yaml:"then"`
}

// FormatDecl attaches a formatting rule to a whole data column.
type FormatDecl struct {
	Kind      RuleKind    `json:"kind" yaml:"kind"`
	Column    string      `json:"column" yaml:"column"`
	Stops     []ColorStop `json:"stops,omitempty" yaml:"stops,omitempty"`
	Values    []string    `json:"values,omitempty" yaml:"values,omitempty"`
	Criteria  string      `json:"criteria,omitempty" yaml:"criteria,omitempty"`
	Value     string      `json:"value,omitempty" yaml:"value,omitempty"`
	Fill      string      `json:"fill,omitempty" yaml:"fill,omitempty"`
	FontColor string      `json:"font_color,omitempty" yaml:"font_color,omitempty"`
}

// StaticCell is a fixed value or formula at an absolute address.
type StaticCell struct {
	Ref     string `json:"ref" yaml:"ref"`
	Value   any    `json:"value,omitempty" yaml:"value,omitempty"`
	Formula string `json:"formula,omitempty" yaml:"formula,omitempty"`
	// Style is one of "title", "label", "note" or empty.
	Style        string `json:"style,omitempty" yaml:"style,omitempty"`
	NumberFormat string `json:"number_format,omitempty" yaml:"number_format,omitempty"`
}

// ColumnWidth sets the width of the column holding Header.
type ColumnWidth struct {
	Header string  `json:"header" yaml:"header"`
	Width  float64 `json:"width" yaml:"width"`
}
