package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mangalrohit/podcastgen/internal/config"
)

var runsCommand = &cobra.Command{
	Use:   "runs <podcast-id>",
	Short: "List runs recorded for a podcast",
	Args:  cobra.ExactArgs(1),
	RunE:  runsCmd,
}

var (
	runsDataDir     string
	runsDatabaseURL string
)

func init() {
	runsCommand.Flags().StringVar(&runsDataDir, "data-dir", "", "Root directory for artifacts and run records")
	runsCommand.Flags().StringVar(&runsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runsCommand)
}

func runsCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := config.Config{DataDir: runsDataDir}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runsDatabaseURL
	}
	applyEnvDefaults(&cfg)

	var teardown closers
	defer teardown.closeAll()

	store, err := newRunStore(ctx, cfg, &teardown)
	if err != nil {
		return err
	}

	runs, err := store.QueryRunsByPodcast(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to query runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Printf("No runs found for podcast %s.\n", args[0])
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tSTATUS\tCURRENT STAGE\tCREATED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			run.ID, run.Status, run.Progress.CurrentStage, run.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}
