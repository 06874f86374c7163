package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/johnwesleyquintero/process-systems/pkg/flatfile"
	"github.com/johnwesleyquintero/process-systems/pkg/forge"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/formula"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/models"
	"github.com/johnwesleyquintero/process-systems/pkg/forge/templates"
)

var (
	outputPath   string
	templateFile string
	inputs       []string
	targetsPath  string
	targetColumn string
	errorMode    string
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template [name]",
		Short: "Generate a workbook from a template",
		Long: `Generate a workbook from a built-in template, or from a YAML
definition given with --file. Input tabs can be seeded from report files
with --input TAB=PATH.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTemplate,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path (default: output dir / template file name)")
	cmd.Flags().StringVar(&templateFile, "file", "", "Template definition YAML file")
	cmd.Flags().StringArrayVar(&inputs, "input", nil, "Seed an input tab: TAB=PATH (repeatable)")
	cmd.Flags().StringVar(&targetsPath, "targets", "", "File of ids, one per line, to keep from seeded reports")
	cmd.Flags().StringVar(&targetColumn, "target-column", "(Child) ASIN", "Report column matched against --targets")
	cmd.Flags().StringVar(&errorMode, "error-mode", "", "Lookup error mode: swallow, no_match, strict")
	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [name]",
		Short: "Check a template for schema issues without writing a workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmpl, err := loadTemplate(args)
			if err != nil {
				return err
			}
			plan, err := forge.NewPlan(tmpl, "", nil, cfg.ForgeOptions())
			if err != nil {
				return err
			}
			issues := plan.Validate()
			if len(issues) > 0 {
				return &forge.SchemaError{Template: tmpl.Name, Issues: issues}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d tabs)\n", tmpl.Name, len(tmpl.Tabs))
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range templates.Names() {
				tmpl, err := templates.Load(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", name, tmpl.Description)
			}
			return nil
		},
	}
}

func runTemplate(cmd *cobra.Command, args []string) error {
	tmpl, err := loadTemplate(args)
	if err != nil {
		return err
	}

	seeds, err := readInputs(inputs)
	if err != nil {
		return err
	}
	if targetsPath != "" {
		if seeds, err = filterTargets(seeds); err != nil {
			return err
		}
	}

	opts := cfg.ForgeOptions()
	if errorMode != "" {
		mode, err := formula.ParseErrorMode(errorMode)
		if err != nil {
			return err
		}
		opts.ErrorMode = mode
	}

	target := outputPath
	if target == "" {
		target = cfg.OutputPath(tmpl.FileName)
	}

	plan, err := forge.NewPlan(tmpl, target, seeds, opts)
	if err != nil {
		return err
	}
	log.WithField("plan", plan.String()).Debug("plan ready")

	report, err := forge.NewAssembler(log).Run(plan)
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

func loadTemplate(args []string) (models.Template, error) {
	switch {
	case templateFile != "" && len(args) > 0:
		return models.Template{}, errors.New("give either a template name or --file, not both")
	case templateFile != "":
		return templates.LoadFile(templateFile)
	case len(args) == 1:
		return templates.Load(args[0])
	default:
		return models.Template{}, fmt.Errorf("template name required (available: %s)", strings.Join(templates.Names(), ", "))
	}
}

// readInputs parses TAB=PATH pairs into seed tables.
func readInputs(pairs []string) (map[string]models.Table, error) {
	out := make(map[string]models.Table, len(pairs))
	for _, p := range pairs {
		tab, path, ok := strings.Cut(p, "=")
		if !ok || tab == "" || path == "" {
			return nil, fmt.Errorf("invalid --input %q: want TAB=PATH", p)
		}
		t, err := flatfile.ReadFile(path)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"tab": tab, "path": path, "rows": len(t.Rows)}).Debug("input read")
		out[tab] = t
	}
	return out, nil
}

func filterTargets(seeds map[string]models.Table) (map[string]models.Table, error) {
	ids, err := flatfile.ReadLines(targetsPath)
	if err != nil {
		return nil, err
	}
	filtered := 0
	for tab, t := range seeds {
		kept, err := flatfile.Filter(t, targetColumn, ids)
		if errors.Is(err, flatfile.ErrMissingColumns) {
			continue
		}
		if err != nil {
			return nil, err
		}
		seeds[tab] = kept
		filtered++
	}
	if filtered == 0 {
		return nil, fmt.Errorf("no seeded report has column %q to match --targets", targetColumn)
	}
	return seeds, nil
}

func printReport(w io.Writer, r *forge.Report) {
	fmt.Fprintf(w, "%s -> %s\n", r.Template, r.Path)
	fmt.Fprintf(w, "  sheets:        %s\n", strings.Join(r.Sheets, ", "))
	fmt.Fprintf(w, "  formula cells: %d\n", r.FormulaCells)
	fmt.Fprintf(w, "  rules:         %d\n", r.Rules)
	fmt.Fprintf(w, "  elapsed:       %s\n", r.Elapsed.Round(time.Millisecond))
}
