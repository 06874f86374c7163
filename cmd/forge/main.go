// Package main provides the forge command line.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/johnwesleyquintero/process-systems/internal/config"
)

var (
	configPath string
	brand      string
	verbose    bool

	cfg *config.Config
	log = logrus.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "forge",
		Short: "Generate formula-driven Excel templates and Amazon flat files",
		Long: `forge builds analyst workbooks from declarative tab and column
templates, wiring cross-sheet lookups, conditional formatting and dropdowns,
and converts Seller Central reports into upload-ready flat files.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			log.SetOutput(cmd.ErrOrStderr())
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			var err error
			cfg, err = config.Load(configPath)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.FileName, "Configuration file")
	rootCmd.PersistentFlags().StringVar(&brand, "brand", "SL", "Brand directory under the brands dir")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		newTemplateCmd(),
		newValidateCmd(),
		newListCmd(),
		newInspectCmd(),
		newFlatFileCmd(),
	)
	return rootCmd
}
