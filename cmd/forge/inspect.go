package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/johnwesleyquintero/process-systems/pkg/forge/inspect"
)

var (
	inspectOut string
	pretty     bool
	mode       string
	sheetsDir  string
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [input.xlsx]",
		Short: "Read a workbook back as JSON",
		Long: `inspect reads a workbook (typically one forge generated) and prints
its cells, formulas, table candidates, print areas, panes, validations and
conditional formats as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
	cmd.Flags().StringVarP(&inspectOut, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&mode, "mode", "standard", "Inspection mode: light, standard")
	cmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	m, err := inspect.ParseMode(mode)
	if err != nil {
		return err
	}
	wb, err := inspect.Workbook(args[0], inspect.Options{Mode: m})
	if err != nil {
		return fmt.Errorf("inspection failed: %w", err)
	}

	data, err := toJSON(wb)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if inspectOut != "" {
		if err := os.WriteFile(inspectOut, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if sheetsDir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	if sheetsDir == "" {
		return nil
	}
	if err := os.MkdirAll(sheetsDir, 0o755); err != nil {
		return err
	}
	for _, name := range wb.SheetOrder {
		sheet := wb.Sheets[name]
		data, err := toJSON(&sheet)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(sheetsDir, name+".json"), data, 0o644); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
	}
	return nil
}

func toJSON(v any) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
