package forge

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/format"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/formula"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
)

// applyFormulas writes every computed column of tab over its planned rows,
// then the static formula cells. It returns the number of formula cells.
func applyFormulas(f *excelize.File, plan *WorkbookPlan, tab models.TabTemplate) (int, error) {
	rng, err := plan.Range(tab.Name)
	if err != nil {
		return 0, &StageError{Stage: StateFormulasApplied, Tab: tab.Name, Err: err}
	}

	count := 0
	for _, decl := range tab.Columns {
		for row := rng.First; row <= rng.Last; row++ {
			// Resolve the target column per cell like every operand does.
			ref, err := plan.Registry.Resolve(tab.Name, decl.Header)
			if err != nil {
				return count, &StageError{Stage: StateFormulasApplied, Tab: tab.Name, Err: err}
			}
			cell := ref.Letter + strconv.Itoa(row)
			ctx := rowContext{plan: plan, tab: tab.Name, row: row}
			spec, err := compile(ctx, decl, plan.ErrorMode)
			if err != nil {
				return count, &StageError{Stage: StateFormulasApplied, Tab: tab.Name, Cell: cell, Err: err}
			}
			body, err := formula.Build(spec)
			if err != nil {
				return count, &StageError{Stage: StateFormulasApplied, Tab: tab.Name, Cell: cell, Err: err}
			}
			if err := f.SetCellFormula(tab.Name, cell, body); err != nil {
				return count, &StageError{Stage: StateFormulasApplied, Tab: tab.Name, Cell: cell, Err: err}
			}
			count++
		}
	}

	for _, c := range tab.Cells {
		if c.Formula == "" {
			continue
		}
		ctx := rowContext{plan: plan, tab: tab.Name, row: rng.First}
		body, err := formula.Build(formula.Spec{Kind: formula.KindExpression, Expression: ctx.expr(c.Formula)})
		if err != nil {
			return count, &StageError{Stage: StateFormulasApplied, Tab: tab.Name, Cell: c.Ref, Err: err}
		}
		if err := f.SetCellFormula(tab.Name, c.Ref, body); err != nil {
			return count, &StageError{Stage: StateFormulasApplied, Tab: tab.Name, Cell: c.Ref, Err: err}
		}
		count++
	}
	return count, nil
}

// applyFormatting attaches the formatting rules, number formats, column
// widths, panes and filter of tab. It returns the number of rules applied.
func applyFormatting(f *excelize.File, st *styles, plan *WorkbookPlan, tab models.TabTemplate) (int, error) {
	fail := func(cell string, err error) error {
		return &StageError{Stage: StateFormattingApplied, Tab: tab.Name, Cell: cell, Err: err}
	}
	rng, err := plan.Range(tab.Name)
	if err != nil {
		return 0, fail("", err)
	}
	span := func(header string) (string, string, error) {
		ref, err := plan.Registry.Resolve(tab.Name, header)
		if err != nil {
			return "", "", err
		}
		return ref.Letter, ref.Letter + strconv.Itoa(rng.First) + ":" + ref.Letter + strconv.Itoa(rng.Last), nil
	}

	rules := 0
	for _, fd := range tab.Formats {
		_, area, err := span(fd.Column)
		if err != nil {
			return rules, fail("", err)
		}
		rule, err := planRule(area, fd)
		if err != nil {
			return rules, fail(area, err)
		}
		if err := format.Apply(f, tab.Name, rule); err != nil {
			return rules, fail(area, err)
		}
		rules++
	}

	for _, decl := range tab.Columns {
		if decl.NumberFormat == "" {
			continue
		}
		col, area, err := span(decl.Header)
		if err != nil {
			return rules, fail("", err)
		}
		style, err := st.numFmt(decl.NumberFormat)
		if err != nil {
			return rules, fail(area, err)
		}
		if err := f.SetCellStyle(tab.Name, col+strconv.Itoa(rng.First), col+strconv.Itoa(rng.Last), style); err != nil {
			return rules, fail(area, err)
		}
	}

	widths := make(map[string]float64, len(tab.Widths))
	for _, w := range tab.Widths {
		widths[w.Header] = w.Width
	}
	for _, h := range tab.Headers {
		col, _, err := span(h)
		if err != nil {
			return rules, fail("", err)
		}
		w, ok := widths[h]
		if !ok {
			w = defaultWidth(h)
		}
		if err := f.SetColWidth(tab.Name, col, col, w); err != nil {
			return rules, fail(col, err)
		}
	}

	if tab.Freeze {
		if err := f.SetPanes(tab.Name, &excelize.Panes{
			Freeze:      true,
			YSplit:      tab.HeaderRow,
			TopLeftCell: "A" + strconv.Itoa(rng.First),
			ActivePane:  "bottomLeft",
		}); err != nil {
			return rules, fail("", err)
		}
	}
	if tab.Filter {
		lastCol, err := excelize.ColumnNumberToName(len(tab.Headers))
		if err != nil {
			return rules, fail("", err)
		}
		area := "A" + strconv.Itoa(tab.HeaderRow) + ":" + lastCol + strconv.Itoa(rng.Last)
		if err := f.AutoFilter(tab.Name, area, nil); err != nil {
			return rules, fail(area, err)
		}
	}
	if tab.PrintArea {
		lastCol, err := excelize.ColumnNumberToName(len(tab.Headers))
		if err != nil {
			return rules, fail("", err)
		}
		if err := f.SetDefinedName(&excelize.DefinedName{
			Name:     "_xlnm.Print_Area",
			RefersTo: fmt.Sprintf("%s!$A$1:$%s$%d", formula.QuoteSheet(tab.Name), lastCol, rng.Last),
			Scope:    tab.Name,
		}); err != nil {
			return rules, fail("", err)
		}
	}
	return rules, nil
}

// planRule turns a declaration into a validated rule for area.
func planRule(area string, fd models.FormatDecl) (models.FormattingRule, error) {
	switch fd.Kind {
	case models.RuleColorScale:
		return format.PlanColorScale(area, fd.Stops)
	case models.RuleDropdown:
		return format.PlanDropdown(area, fd.Values)
	case models.RuleDuplicateHighlight:
		return format.PlanDuplicateHighlight(area, fd.Fill)
	case models.RuleCellHighlight:
		return format.PlanCellHighlight(area, fd.Criteria, fd.Value, fd.Fill, fd.FontColor)
	}
	return models.FormattingRule{}, fmt.Errorf("%w: unknown rule kind %q", format.ErrInvalidRule, fd.Kind)
}
