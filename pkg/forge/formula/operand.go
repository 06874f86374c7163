package formula

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// Operand is a fragment of formula text: a reference, a literal or a
// sub-expression. Operands built from unresolved columns carry their error
// until Build reports it.
type Operand struct {
	text string
	err  error
}

// Lit wraps raw formula text.
func Lit(text string) Operand {
	return Operand{text: text}
}

// Num formats a numeric literal.
func Num(v float64) Operand {
	return Operand{text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Str quotes s as a string literal.
func Str(s string) Operand {
	return Operand{text: `"` + strings.ReplaceAll(s, `"`, `""`) + `"`}
}

// Cell references ref on row within the current sheet, e.g. B12.
func Cell(ref models.ColumnRef, row int) Operand {
	if err := checkRef(ref, row); err != nil {
		return Operand{err: err}
	}
	return Operand{text: ref.Letter + strconv.Itoa(row)}
}

// AbsCell is Cell with both coordinates anchored, e.g. $B$12.
func AbsCell(ref models.ColumnRef, row int) Operand {
	if err := checkRef(ref, row); err != nil {
		return Operand{err: err}
	}
	return Operand{text: "$" + ref.Letter + "$" + strconv.Itoa(row)}
}

// SheetCell references ref on row of another sheet, e.g. 'IP Qty'!B12.
func SheetCell(sheet string, ref models.ColumnRef, row int) Operand {
	o := Cell(ref, row)
	if o.err != nil {
		return o
	}
	return Operand{text: QuoteSheet(sheet) + "!" + o.text}
}

// Span references an anchored block from column from to column to. A last
// row of zero selects whole columns ($A:$Z). An empty sheet means the current
// sheet.
func Span(sheet string, from, to models.ColumnRef, first, last int) Operand {
	if !from.Resolved() {
		return Operand{err: &UnresolvedReferenceError{Tab: from.Tab, Header: from.Header}}
	}
	if !to.Resolved() {
		return Operand{err: &UnresolvedReferenceError{Tab: to.Tab, Header: to.Header}}
	}
	var text string
	if last == 0 {
		text = fmt.Sprintf("$%s:$%s", from.Letter, to.Letter)
	} else {
		if first < 1 || last < first {
			return Operand{err: &SpecError{Kind: "range", Field: "rows", Msg: fmt.Sprintf("invalid rows %d:%d", first, last)}}
		}
		text = fmt.Sprintf("$%s$%d:$%s$%d", from.Letter, first, to.Letter, last)
	}
	if sheet != "" {
		text = QuoteSheet(sheet) + "!" + text
	}
	return Operand{text: text}
}

// Join concatenates operands into one expression. The first error wins.
func Join(parts ...Operand) Operand {
	var b strings.Builder
	for _, p := range parts {
		if p.err != nil {
			return Operand{err: p.err}
		}
		b.WriteString(p.text)
	}
	return Operand{text: b.String()}
}

// Invalid returns an operand that fails Build with err.
func Invalid(err error) Operand {
	return Operand{err: err}
}

// String returns the formula text of o, or an empty string for broken operands.
func (o Operand) String() string {
	return o.text
}

// Err returns the reference error carried by o, if any.
func (o Operand) Err() error {
	return o.err
}

// IsZero reports whether o was never set.
func (o Operand) IsZero() bool {
	return o.text == "" && o.err == nil
}

func checkRef(ref models.ColumnRef, row int) error {
	if !ref.Resolved() {
		return &UnresolvedReferenceError{Tab: ref.Tab, Header: ref.Header}
	}
	if row < 1 {
		return &SpecError{Kind: "reference", Field: "row", Msg: fmt.Sprintf("row %d for column %q", row, ref.Header)}
	}
	return nil
}

var plainSheetName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// QuoteSheet returns name in the form used before "!" in a reference.
func QuoteSheet(name string) string {
	if plainSheetName.MatchString(name) && !looksLikeCell(name) {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}

var cellLike = regexp.MustCompile(`(?i)^(?:[A-Z]{1,3}[0-9]+|R[0-9]*C[0-9]*)$`)

func looksLikeCell(name string) bool {
	return cellLike.MatchString(name)
}

var simpleToken = regexp.MustCompile(`^(?:[$A-Za-z0-9_.!':]+|"(?:[^"]|"")*")$`)

// group wraps compound expressions in parentheses so they bind as one term.
func group(o Operand) string {
	if simpleToken.MatchString(o.text) || isCall(o.text) {
		return o.text
	}
	return "(" + o.text + ")"
}

// isCall reports whether text is a single function call such as SUM(A1:A9).
func isCall(text string) bool {
	open := strings.IndexByte(text, '(')
	if open <= 0 || !strings.HasSuffix(text, ")") {
		return false
	}
	for _, r := range text[:open] {
		if !(r == '.' || r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return false
		}
	}
	depth, inStr := 0, false
	for i, r := range text[open:] {
		switch {
		case r == '"':
			inStr = !inStr
		case inStr:
		case r == '(':
			depth++
		case r == ')':
			depth--
			if depth == 0 && open+i != len(text)-1 {
				return false
			}
		}
	}
	return depth == 0
}
