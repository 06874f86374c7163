// Package formula turns formula specs into spreadsheet formula text.
package formula

import (
	"fmt"
)

// Kind selects the formula family produced by Build.
type Kind string

const (
	KindLookup      Kind = "lookup"
	KindRatio       Kind = "ratio"
	KindConditional Kind = "conditional"
	KindExpression  Kind = "expression"
	KindPassthrough Kind = "passthrough"
)

// ErrorMode controls what a lookup shows when it fails.
//
// ErrorSwallow turns every lookup error into the default value. Analysts see
// 0 instead of #N/A for an unmatched ASIN, but a broken reference is hidden
// the same way. ErrorNoMatch only replaces the no-match case, so #REF! and
// friends still surface. ErrorStrict leaves every error visible.
type ErrorMode string

const (
	ErrorSwallow ErrorMode = "swallow"
	ErrorNoMatch ErrorMode = "no_match"
	ErrorStrict  ErrorMode = "strict"
)

// ParseErrorMode maps a configuration string to an ErrorMode. The empty
// string selects ErrorSwallow.
func ParseErrorMode(s string) (ErrorMode, error) {
	switch ErrorMode(s) {
	case "", ErrorSwallow:
		return ErrorSwallow, nil
	case ErrorNoMatch, ErrorStrict:
		return ErrorMode(s), nil
	}
	return "", fmt.Errorf("%w: unknown error mode %q (must be swallow, no_match or strict)", ErrInvalidSpec, s)
}

// Lookup finds Value in a table with exact-match semantics. Either Table and
// Column (VLOOKUP) or Match and Return (INDEX/MATCH) must be set.
type Lookup struct {
	Value   Operand
	Table   Operand
	Column  int
	Match   Operand
	Return  Operand
	Default Operand
	Mode    ErrorMode
}

// Ratio divides Numerator by Denominator, yielding Zero when the denominator is 0.
type Ratio struct {
	Numerator   Operand
	Denominator Operand
	Zero        Operand
}

// Arm is one branch of a conditional: when Left Op Right, yield Then.
type Arm struct {
	Left  Operand
	Op    string
	Right Operand
	Then  Operand
}

// Conditional evaluates Arms in order; the first match wins and Default
// covers everything else.
type Conditional struct {
	Arms    []Arm
	Default Operand
}

// Spec is a stateless description of one formula.
type Spec struct {
	Kind        Kind
	Lookup      Lookup
	Ratio       Ratio
	Conditional Conditional
	// Expression is emitted verbatim for KindExpression.
	Expression Operand
	// Source is the copied cell for KindPassthrough.
	Source Operand
}

// Text returns body as cell input, with the leading "=".
func Text(body string) string {
	return "=" + body
}
