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

var resumeCommand = &cobra.Command{
	Use:   "resume <run-id> <stage>",
	Short: "Re-run one stage of an existing run from its saved artifacts",
	Long:  "Rebuilds the stage's input from the previous stage's persisted output artifact and executes exactly that stage. Resuming is supported from scrape onward.",
	Args:  cobra.ExactArgs(2),
	RunE:  resumeCmd,
}

var (
	resumeConfigPath   string
	resumeLLMProvider  string
	resumeTTSProvider  string
	resumeHTTPProvider string
	resumeCassetteKey  string
	resumeDataDir      string
	resumeAPIKey       string
	resumeDatabaseURL  string
	resumeVerbose      bool
)

func init() {
	resumeCommand.Flags().StringVar(&resumeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	resumeCommand.Flags().StringVar(&resumeLLMProvider, "llm", "", "LLM backend: stub, replay or live")
	resumeCommand.Flags().StringVar(&resumeTTSProvider, "tts", "", "TTS backend: stub, replay or live")
	resumeCommand.Flags().StringVar(&resumeHTTPProvider, "http", "", "HTTP backend: stub, replay or live")
	resumeCommand.Flags().StringVar(&resumeCassetteKey, "cassette", "", "Cassette set for replay or recording runs")
	resumeCommand.Flags().StringVar(&resumeDataDir, "data-dir", "", "Root directory for artifacts and run records")
	resumeCommand.Flags().StringVar(&resumeAPIKey, "api-key", "", "LLM/TTS API key (optional, defaults to GEMINI_API_KEY env var)")
	resumeCommand.Flags().StringVar(&resumeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	resumeCommand.Flags().BoolVarP(&resumeVerbose, "verbose", "v", false, "Print detailed debug information")

	rootCmd.AddCommand(resumeCommand)
}

func resumeCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	runID, fromStage := args[0], args[1]

	var cfg config.Config
	if resumeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(resumeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	if cmd.Flags().Changed("llm") {
		cfg.LLMProvider = resumeLLMProvider
	}
	if cmd.Flags().Changed("tts") {
		cfg.TTSProvider = resumeTTSProvider
	}
	if cmd.Flags().Changed("http") {
		cfg.HTTPProvider = resumeHTTPProvider
	}
	if cmd.Flags().Changed("cassette") {
		cfg.CassetteKey = resumeCassetteKey
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = resumeDataDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = resumeAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = resumeDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = resumeVerbose
	}

	applyEnvDefaults(&cfg)

	var teardown closers
	defer teardown.closeAll()

	orchestrator, err := newOrchestrator(ctx, cfg, cfg.CassetteKey, &teardown)
	if err != nil {
		return err
	}

	run, err := orchestrator.Resume(ctx, runID, fromStage)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRun(run)
	printer.PrintProgress(run, stages.Order)
	if run.Output != nil {
		printer.PrintEpisode(run.Output)
	}
	return nil
}
