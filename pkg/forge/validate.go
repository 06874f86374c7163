package forge

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/formula"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/schema"
)

// Validate checks the plan's schemas and every declaration that refers to
// them. All findings are returned together; an empty result means the plan
// can be assembled.
func (p *WorkbookPlan) Validate() []schema.ValidationIssue {
	issues := p.Registry.Validate()
	if len(p.Template.Tabs) == 0 {
		issues = append(issues, schema.ValidationIssue{Tab: p.Template.Name, Field: "tabs", Message: "template declares no tabs"})
	}
	for _, tab := range p.Template.Tabs {
		issues = append(issues, p.validateTab(tab)...)
	}
	for _, name := range sortedKeys(p.Inputs) {
		t, ok := p.tab(name)
		switch {
		case !ok:
			issues = append(issues, schema.ValidationIssue{Tab: name, Field: "input", Message: "input data targets an unknown tab"})
		case t.EffectiveRole() != models.RoleInput:
			issues = append(issues, schema.ValidationIssue{Tab: name, Field: "input", Message: fmt.Sprintf("input data targets a %s tab", t.EffectiveRole())})
		}
	}
	return issues
}

func (p *WorkbookPlan) validateTab(tab models.TabTemplate) []schema.ValidationIssue {
	var issues []schema.ValidationIssue
	add := func(field, format string, args ...any) {
		issues = append(issues, schema.ValidationIssue{Tab: tab.Name, Field: field, Message: fmt.Sprintf(format, args...)})
	}
	headers := make(map[string]bool, len(tab.Headers))
	for _, h := range tab.Headers {
		headers[h] = true
	}

	switch tab.EffectiveRole() {
	case models.RoleInput, models.RoleDashboard, models.RoleNotes:
	default:
		add("role", "unknown role %q", tab.Role)
	}

	// The first data row is enough to prove every reference resolves.
	rng, _ := p.Range(tab.Name)
	ctx := rowContext{plan: p, tab: tab.Name, row: rng.First}

	computed := make(map[string]bool, len(tab.Columns))
	for _, col := range tab.Columns {
		field := fmt.Sprintf("columns[%s]", col.Header)
		if !headers[col.Header] {
			add(field, "header %q is not declared on the tab", col.Header)
		}
		if computed[col.Header] {
			add(field, "column is computed more than once")
		}
		computed[col.Header] = true
		for _, msg := range p.checkColumn(ctx, col) {
			add(field, "%s", msg)
		}
	}

	for i, fd := range tab.Formats {
		field := fmt.Sprintf("formats[%d]", i)
		if !headers[fd.Column] {
			add(field, "column %q is not declared on the tab", fd.Column)
		}
		switch fd.Kind {
		case models.RuleColorScale, models.RuleDropdown, models.RuleDuplicateHighlight, models.RuleCellHighlight:
		default:
			add(field, "unknown rule kind %q", fd.Kind)
		}
	}

	for i, cell := range tab.Cells {
		if _, _, err := excelize.CellNameToCoordinates(cell.Ref); err != nil {
			add(fmt.Sprintf("cells[%d]", i), "invalid cell reference %q", cell.Ref)
		}
		for _, ref := range placeholders(cell.Formula) {
			if msg := checkRef(ctx, ref); msg != "" {
				add(fmt.Sprintf("cells[%d]", i), "%s", msg)
			}
		}
	}

	for _, src := range sortedKeys(tab.Aliases) {
		if !headers[tab.Aliases[src]] {
			add("aliases", "%q maps to undeclared header %q", src, tab.Aliases[src])
		}
	}

	for _, w := range tab.Widths {
		if !headers[w.Header] {
			add("widths", "header %q is not declared on the tab", w.Header)
		}
		if w.Width <= 0 || w.Width > 255 {
			add("widths", "width of %q must be in (0, 255], got %g", w.Header, w.Width)
		}
	}
	return issues
}

// checkColumn reports references and fields of col that cannot be compiled.
func (p *WorkbookPlan) checkColumn(ctx rowContext, col models.ColumnDecl) []string {
	var msgs []string
	refs := func(fields ...string) {
		for _, text := range fields {
			for _, ref := range placeholders(text) {
				if msg := checkRef(ctx, ref); msg != "" {
					msgs = append(msgs, msg)
				}
			}
		}
	}
	need := func(name, value string) {
		if value == "" {
			msgs = append(msgs, name+" is required")
		}
	}

	switch col.Kind {
	case models.ColumnPassthrough:
		need("source", col.Source)
		if col.Source != "" {
			if msg := checkRef(ctx, col.Source); msg != "" {
				msgs = append(msgs, msg)
			}
		}
	case models.ColumnLookup:
		need("value", col.Value)
		need("table", col.Table)
		need("key", col.Key)
		need("column", col.Column)
		refs(col.Value, col.Default)
		if col.Table != "" {
			for _, h := range []string{col.Key, col.Column} {
				if h == "" {
					continue
				}
				if _, err := p.Registry.Resolve(col.Table, h); err != nil {
					msgs = append(msgs, err.Error())
				}
			}
		}
		if _, err := formula.ParseErrorMode(col.OnError); err != nil {
			msgs = append(msgs, err.Error())
		}
		switch col.Method {
		case methodAuto, methodVLookup, methodIndexMatch:
		default:
			msgs = append(msgs, fmt.Sprintf("unknown lookup method %q", col.Method))
		}
	case models.ColumnRatio:
		need("numerator", col.Numerator)
		need("denominator", col.Denominator)
		refs(col.Numerator, col.Denominator, col.Zero)
	case models.ColumnConditional:
		if len(col.Arms) == 0 {
			msgs = append(msgs, "at least one arm is required")
		}
		need("else", col.Else)
		for _, arm := range col.Arms {
			refs(arm.Left, arm.Right, arm.Then)
		}
		refs(col.Else)
	case models.ColumnExpression:
		need("expr", col.Expr)
		refs(col.Expr)
	default:
		msgs = append(msgs, fmt.Sprintf("unknown column kind %q", col.Kind))
	}
	return msgs
}

// checkRef returns why ref cannot be resolved from ctx, or "".
func checkRef(ctx rowContext, ref string) string {
	tab, header := ctx.splitRef(ref)
	if _, err := ctx.plan.Registry.Resolve(tab, header); err != nil {
		return err.Error()
	}
	return ""
}
