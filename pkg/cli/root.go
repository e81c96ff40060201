// Package cli implements the tpchbench command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tpch-bench/internal/config"

	// Register the built-in solutions.
	_ "tpch-bench/internal/engine/duckdb"
	_ "tpch-bench/internal/engine/sqlite"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tpchbench",
		Short:         "TPC-H benchmark runner",
		Long:          "Runs the TPC-H queries against embedded database engines, verifies the results, and plots the recorded timings.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPlotCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadSettings reads the environment configuration, initialises the process
// logger at the configured level, and logs any loader warnings.
func loadSettings() (*config.Settings, *slog.Logger, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, nil, err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(log)
	for _, w := range cfg.Warnings {
		log.Warn(w)
	}
	return cfg, log, nil
}
