package forge

import (
	"fmt"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/formula"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/schema"
)

// WorkbookPlan is everything one generation run needs, resolved before any
// sheet is created. Build a fresh plan per run.
type WorkbookPlan struct {
	Template models.Template
	Registry *schema.Registry
	// Ranges holds the planned data rows per tab.
	Ranges map[string]models.RowRange
	// Inputs holds report data to paste into input tabs, keyed by tab.
	Inputs map[string]models.Table
	// Target is the artifact path.
	Target string
	// ErrorMode is the default lookup error mode.
	ErrorMode formula.ErrorMode
}

// NewPlan sizes every tab of tmpl for the given inputs. The largest input
// drives the row count so that dashboards cover every pasted row.
func NewPlan(tmpl models.Template, target string, inputs map[string]models.Table, opts Options) (*WorkbookPlan, error) {
	if err := opts.Rows.Validate(); err != nil {
		return nil, err
	}
	mode := opts.ErrorMode
	if mode == "" {
		mode = formula.ErrorSwallow
	}
	if _, err := formula.ParseErrorMode(string(mode)); err != nil {
		return nil, err
	}

	observed := 0
	for _, in := range inputs {
		if len(in.Rows) > observed {
			observed = len(in.Rows)
		}
	}

	schemas := make([]models.TabSchema, 0, len(tmpl.Tabs))
	ranges := make(map[string]models.RowRange, len(tmpl.Tabs))
	for _, tab := range tmpl.Tabs {
		schemas = append(schemas, tab.TabSchema)
		if _, ok := ranges[tab.Name]; !ok {
			ranges[tab.Name] = opts.Rows.Plan(tab.HeaderRow, observed)
		}
	}

	copied := make(map[string]models.Table, len(inputs))
	for name, in := range inputs {
		copied[name] = in
	}

	return &WorkbookPlan{
		Template:  tmpl,
		Registry:  schema.NewRegistry(schemas...),
		Ranges:    ranges,
		Inputs:    copied,
		Target:    target,
		ErrorMode: mode,
	}, nil
}

// Range returns the planned rows of tab.
func (p *WorkbookPlan) Range(tab string) (models.RowRange, error) {
	r, ok := p.Ranges[tab]
	if !ok {
		return models.RowRange{}, &schema.UnknownTabError{Tab: tab}
	}
	return r, nil
}

// tab returns the template declaration for name.
func (p *WorkbookPlan) tab(name string) (models.TabTemplate, bool) {
	for _, t := range p.Template.Tabs {
		if t.Name == name {
			return t, true
		}
	}
	return models.TabTemplate{}, false
}

func (p *WorkbookPlan) String() string {
	return fmt.Sprintf("plan(%s, %d tabs -> %s)", p.Template.Name, len(p.Template.Tabs), p.Target)
}
