package formula

import (
	"fmt"
	"strconv"
	"strings"
)

var comparisons = map[string]bool{
	"=":  true,
	"<>": true,
	"<":  true,
	"<=": true,
	">":  true,
	">=": true,
}

// Build returns the formula text for spec without the leading "=". It is a
// pure function: identical specs always yield identical text.
func Build(spec Spec) (string, error) {
	switch spec.Kind {
	case KindLookup:
		return buildLookup(spec.Lookup)
	case KindRatio:
		return buildRatio(spec.Ratio)
	case KindConditional:
		return buildConditional(spec.Conditional)
	case KindExpression:
		if err := required(KindExpression, "expression", spec.Expression); err != nil {
			return "", err
		}
		return spec.Expression.text, nil
	case KindPassthrough:
		if err := required(KindPassthrough, "source", spec.Source); err != nil {
			return "", err
		}
		src := spec.Source.text
		return fmt.Sprintf(`IF(ISBLANK(%s),"",%s)`, src, src), nil
	}
	return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, spec.Kind)
}

func buildLookup(l Lookup) (string, error) {
	if err := required(KindLookup, "value", l.Value); err != nil {
		return "", err
	}

	var core string
	if !l.Match.IsZero() || !l.Return.IsZero() {
		if err := required(KindLookup, "match", l.Match); err != nil {
			return "", err
		}
		if err := required(KindLookup, "return", l.Return); err != nil {
			return "", err
		}
		core = fmt.Sprintf("INDEX(%s,MATCH(%s,%s,0))", l.Return.text, l.Value.text, l.Match.text)
	} else {
		if err := required(KindLookup, "table", l.Table); err != nil {
			return "", err
		}
		if l.Column < 1 {
			return "", &SpecError{Kind: KindLookup, Field: "column", Msg: "column index must be positive, got " + strconv.Itoa(l.Column)}
		}
		core = fmt.Sprintf("VLOOKUP(%s,%s,%d,FALSE)", l.Value.text, l.Table.text, l.Column)
	}

	// Checked in every mode, strict included.
	def, err := optional(KindLookup, "default", l.Default, "0")
	if err != nil {
		return "", err
	}
	mode := l.Mode
	if mode == "" {
		mode = ErrorSwallow
	}
	if mode == ErrorStrict {
		return core, nil
	}
	switch mode {
	case ErrorSwallow:
		return fmt.Sprintf("IFERROR(%s,%s)", core, def), nil
	case ErrorNoMatch:
		return fmt.Sprintf("IFNA(%s,%s)", core, def), nil
	}
	return "", &SpecError{Kind: KindLookup, Field: "mode", Msg: fmt.Sprintf("unknown error mode %q", mode)}
}

func buildRatio(r Ratio) (string, error) {
	if err := required(KindRatio, "numerator", r.Numerator); err != nil {
		return "", err
	}
	if err := required(KindRatio, "denominator", r.Denominator); err != nil {
		return "", err
	}
	zero, err := optional(KindRatio, "zero", r.Zero, "0")
	if err != nil {
		return "", err
	}
	den := group(r.Denominator)
	return fmt.Sprintf("IF(%s=0,%s,%s/%s)", den, zero, group(r.Numerator), den), nil
}

func buildConditional(c Conditional) (string, error) {
	if len(c.Arms) == 0 {
		return "", &SpecError{Kind: KindConditional, Field: "arms", Msg: "at least one arm is required"}
	}
	if c.Default.IsZero() {
		return "", &SpecError{Kind: KindConditional, Field: "default", Msg: "a default arm is required"}
	}
	if c.Default.err != nil {
		return "", c.Default.err
	}

	var b strings.Builder
	for i, arm := range c.Arms {
		field := "arms[" + strconv.Itoa(i) + "]"
		if !comparisons[arm.Op] {
			return "", &SpecError{Kind: KindConditional, Field: field + ".op", Msg: fmt.Sprintf("unsupported comparison %q", arm.Op)}
		}
		if err := required(KindConditional, field+".left", arm.Left); err != nil {
			return "", err
		}
		if err := required(KindConditional, field+".right", arm.Right); err != nil {
			return "", err
		}
		if err := required(KindConditional, field+".then", arm.Then); err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "IF(%s%s%s,%s,", arm.Left.text, arm.Op, arm.Right.text, arm.Then.text)
	}
	b.WriteString(c.Default.text)
	b.WriteString(strings.Repeat(")", len(c.Arms)))
	return b.String(), nil
}

func required(kind Kind, field string, o Operand) error {
	if o.err != nil {
		return o.err
	}
	if o.text == "" {
		return &SpecError{Kind: kind, Field: field, Msg: "operand is required"}
	}
	return nil
}

func optional(kind Kind, field string, o Operand, fallback string) (string, error) {
	if o.IsZero() {
		return fallback, nil
	}
	if err := required(kind, field, o); err != nil {
		return "", err
	}
	return o.text, nil
}
