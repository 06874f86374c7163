package forge

import (
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/schema"
)

// State is a step of the assembly lifecycle.
type State string

const (
	StateInit              State = "init"
	StateSchemaValidated   State = "schema_validated"
	StateSheetsCreated     State = "sheets_created"
	StateFormulasApplied   State = "formulas_applied"
	StateFormattingApplied State = "formatting_applied"
	StatePersisted         State = "persisted"
	StateFailed            State = "failed"
)

// Report summarizes one assembly run.
type Report struct {
	RunID    string `json:"run_id"`
	Template string `json:"template"`
	Path     string `json:"path"`
	State    State  `json:"state"`
	// FailedAt is the stage that was being entered when the run failed.
	FailedAt     State                      `json:"failed_at,omitempty"`
	Sheets       []string                   `json:"sheets"`
	FormulaCells int                        `json:"formula_cells"`
	Rules        int                        `json:"rules"`
	Ranges       map[string]models.RowRange `json:"ranges"`
	Issues       []schema.ValidationIssue   `json:"issues,omitempty"`
	Elapsed      time.Duration              `json:"elapsed"`
}

// Assembler drives a WorkbookPlan through the assembly stages. An Assembler
// keeps no state between runs and may be reused.
type Assembler struct {
	log logrus.FieldLogger
}

// NewAssembler returns an Assembler logging to log. A nil log uses the
// logrus standard logger.
func NewAssembler(log logrus.FieldLogger) *Assembler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Assembler{log: log}
}

// run is the mutable state of one assembly.
type run struct {
	plan   *WorkbookPlan
	file   *excelize.File
	styles *styles
	report *Report
	log    logrus.FieldLogger
	start  time.Time
}

// Build validates plan and assembles the workbook in memory without
// persisting it. On success the report is in StateFormattingApplied and the
// caller owns the returned file. On failure the file is closed.
func (a *Assembler) Build(plan *WorkbookPlan) (*excelize.File, *Report, error) {
	r := &run{
		plan: plan,
		report: &Report{
			RunID:    uuid.NewString(),
			Template: plan.Template.Name,
			Path:     plan.Target,
			State:    StateInit,
			Ranges:   maps.Clone(plan.Ranges),
		},
		start: time.Now(),
	}
	r.log = a.log.WithFields(logrus.Fields{
		"run_id":   r.report.RunID,
		"template": plan.Template.Name,
	})
	r.log.WithField("target", plan.Target).Debug("assembly started")

	stages := []struct {
		next State
		fn   func(*run) error
	}{
		{StateSchemaValidated, (*run).validate},
		{StateSheetsCreated, (*run).createSheets},
		{StateFormulasApplied, (*run).applyFormulas},
		{StateFormattingApplied, (*run).applyFormatting},
	}
	for _, s := range stages {
		if err := s.fn(r); err != nil {
			r.fail(s.next, err)
			if r.file != nil {
				_ = r.file.Close()
			}
			return nil, r.report, err
		}
		r.advance(s.next)
	}
	return r.file, r.report, nil
}

// Run builds plan and persists it to plan.Target.
func (a *Assembler) Run(plan *WorkbookPlan) (*Report, error) {
	f, report, err := a.Build(plan)
	if err != nil {
		return report, err
	}
	defer f.Close()

	start := time.Now()
	log := a.log.WithFields(logrus.Fields{
		"run_id":   report.RunID,
		"template": report.Template,
		"stage":    StatePersisted,
	})
	if err := Save(f, plan.Target); err != nil {
		report.State = StateFailed
		report.FailedAt = StatePersisted
		log.WithError(err).Error("persist failed")
		return report, err
	}
	report.State = StatePersisted
	report.Elapsed += time.Since(start)
	log.WithFields(logrus.Fields{
		"path":          plan.Target,
		"formula_cells": report.FormulaCells,
		"rules":         report.Rules,
	}).Info("workbook written")
	return report, nil
}

func (r *run) advance(s State) {
	r.report.State = s
	r.report.Elapsed = time.Since(r.start)
	r.log.WithField("stage", s).Debug("stage complete")
}

func (r *run) fail(at State, err error) {
	r.report.FailedAt = at
	r.report.State = StateFailed
	var se *SchemaError
	if errors.As(err, &se) {
		r.report.Issues = se.Issues
	}
	r.report.Elapsed = time.Since(r.start)
	r.log.WithField("stage", at).WithError(err).Error("assembly failed")
}

func (r *run) validate() error {
	issues := r.plan.Validate()
	if len(issues) == 0 {
		return nil
	}
	for _, i := range issues {
		r.log.WithFields(logrus.Fields{
			"stage": StateSchemaValidated,
			"tab":   i.Tab,
		}).Warn(i.String())
	}
	return &SchemaError{Template: r.plan.Template.Name, Issues: issues}
}

func (r *run) createSheets() error {
	r.file = excelize.NewFile()
	st, err := newStyles(r.file)
	if err != nil {
		return &StageError{Stage: StateSheetsCreated, Err: err}
	}
	r.styles = st
	if err := createSheets(r.file, r.plan.Template.Tabs); err != nil {
		return err
	}
	for _, tab := range r.plan.Template.Tabs {
		if err := layoutTab(r.file, r.styles, r.plan, tab); err != nil {
			return err
		}
		r.report.Sheets = append(r.report.Sheets, tab.Name)
		r.log.WithFields(logrus.Fields{
			"stage": StateSheetsCreated,
			"tab":   tab.Name,
			"rows":  r.plan.Ranges[tab.Name].Len(),
		}).Debug("sheet laid out")
	}
	return nil
}

func (r *run) applyFormulas() error {
	for _, tab := range r.plan.Template.Tabs {
		n, err := applyFormulas(r.file, r.plan, tab)
		r.report.FormulaCells += n
		if err != nil {
			return err
		}
		if n > 0 {
			r.log.WithFields(logrus.Fields{
				"stage": StateFormulasApplied,
				"tab":   tab.Name,
				"cells": n,
			}).Debug("formulas written")
		}
	}
	return nil
}

func (r *run) applyFormatting() error {
	for _, tab := range r.plan.Template.Tabs {
		n, err := applyFormatting(r.file, r.styles, r.plan, tab)
		r.report.Rules += n
		if err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
