package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mangalrohit/podcastgen/internal/config"
)

var stopCommand = &cobra.Command{
	Use:   "stop <run-id>",
	Short: "Ask a running pipeline to stop at its next stage boundary",
	Long:  "Writes the stop sentinel for the run. The orchestrator checks it between stages and converts the run to failed with a cancellation error; a stage already mid-flight finishes first.",
	Args:  cobra.ExactArgs(1),
	RunE:  stopCmd,
}

var (
	stopDataDir string
	stopReason  string
)

func init() {
	stopCommand.Flags().StringVar(&stopDataDir, "data-dir", "", "Root directory for artifacts and run records")
	stopCommand.Flags().StringVar(&stopReason, "reason", "", "Reason recorded with the stop request")

	rootCmd.AddCommand(stopCommand)
}

func stopCmd(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg := config.Config{DataDir: stopDataDir}
	applyEnvDefaults(&cfg)

	store, err := newArtifactStore(cfg)
	if err != nil {
		return err
	}
	if err := store.RequestStop(ctx, args[0], stopReason); err != nil {
		return fmt.Errorf("failed to request stop: %w", err)
	}

	fmt.Printf("Stop requested for run %s.\n", args[0])
	return nil
}
