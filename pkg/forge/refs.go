package forge

import (
	"strconv"
	"strings"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/formula"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// rowContext is the cell a formula is being built for. Every reference made
// through it is resolved against the registry at call time.
type rowContext struct {
	plan *WorkbookPlan
	tab  string
	row  int
}

// splitRef splits "Tab!Header". Text without a registered tab prefix is a
// header of the current tab.
func (c rowContext) splitRef(text string) (tab, header string) {
	for i := strings.IndexByte(text, '!'); i > 0; {
		if c.plan.Registry.Has(text[:i]) {
			return text[:i], text[i+1:]
		}
		next := strings.IndexByte(text[i+1:], '!')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return c.tab, text
}

// mapRow moves the current row onto the data block of tab.
func (c rowContext) mapRow(tab string) (int, error) {
	if tab == c.tab {
		return c.row, nil
	}
	cur, err := c.plan.Range(c.tab)
	if err != nil {
		return 0, err
	}
	other, err := c.plan.Range(tab)
	if err != nil {
		return 0, err
	}
	return c.row - cur.First + other.First, nil
}

// cell returns "Tab!Header" on the current row.
func (c rowContext) cell(text string) formula.Operand {
	tab, header := c.splitRef(text)
	ref, err := c.plan.Registry.Resolve(tab, header)
	if err != nil {
		return formula.Invalid(err)
	}
	row, err := c.mapRow(tab)
	if err != nil {
		return formula.Invalid(err)
	}
	if tab == c.tab {
		return formula.Cell(ref, row)
	}
	return formula.SheetCell(tab, ref, row)
}

// block returns the columns of tab between two headers: whole columns when
// whole is set, else the anchored planned data rows.
func (c rowContext) block(tab string, from, to models.ColumnRef, whole bool) formula.Operand {
	rng, err := c.plan.Range(tab)
	if err != nil {
		return formula.Invalid(err)
	}
	sheet := tab
	if tab == c.tab {
		sheet = ""
	}
	if whole {
		return formula.Span(sheet, from, to, 0, 0)
	}
	return formula.Span(sheet, from, to, rng.First, rng.Last)
}

// wholeColumns reports whether lookups into tab should search entire
// columns. Input tabs receive pasted reports of unknown length.
func (c rowContext) wholeColumns(tab string, bounded bool) bool {
	if bounded {
		return false
	}
	t, ok := c.plan.tab(tab)
	return ok && t.EffectiveRole() == models.RoleInput
}

// expr expands {Header} and {Tab!Header} placeholders in text. Text inside
// string literals and brace groups that look like array constants is kept.
func (c rowContext) expr(text string) formula.Operand {
	var parts []formula.Operand
	var lit strings.Builder
	inString := false

	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == '"' {
			inString = !inString
		}
		if ch != '{' || inString {
			lit.WriteByte(ch)
			continue
		}
		end := strings.IndexByte(text[i+1:], '}')
		if end < 0 {
			lit.WriteString(text[i:])
			break
		}
		name := text[i+1 : i+1+end]
		if !isPlaceholder(name) {
			lit.WriteString(text[i : i+end+2])
			i += end + 1
			continue
		}
		if lit.Len() > 0 {
			parts = append(parts, formula.Lit(lit.String()))
			lit.Reset()
		}
		parts = append(parts, c.cell(name))
		i += end + 1
	}
	if lit.Len() > 0 {
		parts = append(parts, formula.Lit(lit.String()))
	}
	return formula.Join(parts...)
}

// optionalExpr is expr for fields that may be left empty.
func (c rowContext) optionalExpr(text string) formula.Operand {
	if text == "" {
		return formula.Operand{}
	}
	return c.expr(text)
}

func isPlaceholder(name string) bool {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, ",;\"") {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(name), 64)
	return err != nil
}

// placeholders lists the references used by text, for validation.
func placeholders(text string) []string {
	var out []string
	inString := false
	for i := 0; i < len(text); i++ {
		switch {
		case text[i] == '"':
			inString = !inString
		case text[i] == '{' && !inString:
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return out
			}
			if name := text[i+1 : i+1+end]; isPlaceholder(name) {
				out = append(out, name)
			}
			i += end + 1
		}
	}
	return out
}
