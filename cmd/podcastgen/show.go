package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mangalrohit/podcastgen/internal/config"
	"github.com/mangalrohit/podcastgen/internal/observability"
	"github.com/mangalrohit/podcastgen/internal/pipeline/stages"
)

var showCommand = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run's status and per-stage progress",
	Args:  cobra.ExactArgs(1),
	RunE:  showCmd,
}

var (
	showDataDir     string
	showDatabaseURL string
)

func init() {
	showCommand.Flags().StringVar(&showDataDir, "data-dir", "", "Root directory for artifacts and run records")
	showCommand.Flags().StringVar(&showDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(showCommand)
}

func showCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := config.Config{DataDir: showDataDir}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = showDatabaseURL
	}
	applyEnvDefaults(&cfg)

	var teardown closers
	defer teardown.closeAll()

	store, err := newRunStore(ctx, cfg, &teardown)
	if err != nil {
		return err
	}

	run, err := store.GetRun(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to load run: %w", err)
	}
	if run == nil {
		return fmt.Errorf("run %s not found", args[0])
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRun(run)
	printer.PrintProgress(run, stages.Order)
	if run.Output != nil {
		printer.PrintEpisode(run.Output)
	}
	return nil
}
