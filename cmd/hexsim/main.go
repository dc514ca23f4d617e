// Command hexsim runs the hex-grid logistics simulation headlessly.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/talgya/hexsim/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:   "hexsim",
		Short: "Turn-based hex-grid logistics simulation",
		Long: `hexsim plays a city-builder economy on a hex grid: buildings produce
and consume resources, and packages carry them along planned paths.
Settings come from HEXSIM_* environment variables; flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(&cfg)
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Path to a JSON building catalog")
	rootCmd.PersistentFlags().StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "Path to the SQLite run journal")

	rootCmd.AddCommand(newRunCmd(&cfg), newCatalogCmd(&cfg), newRunsCmd(&cfg))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cfg *config.Config) error {
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return nil
}
