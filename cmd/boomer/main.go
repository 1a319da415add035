// Package main provides the CLI entry point for boomer.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/marmidr/boomer/internal/config"
)

// errDiscrepancies is returned by check --strict when the files disagree.
var errDiscrepancies = errors.New("discrepancies found")

var (
	configPath string
	verbose    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errDiscrepancies) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boomer",
		Short: "Cross-check BOM and Pick-and-Place files",
		Long: `boomer compares a Bill of Materials with one or two Pick-and-Place files
and reports missing parts, comment mismatches and parts placed too close.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $BOOMER_CONFIG or ./boomer.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose (debug) logging")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newPreviewCmd())
	rootCmd.AddCommand(newProfilesCmd())
	rootCmd.AddCommand(newProjectsCmd())
	return rootCmd
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
