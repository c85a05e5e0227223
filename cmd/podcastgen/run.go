package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mangalrohit/podcastgen/internal/config"
	"github.com/mangalrohit/podcastgen/internal/observability"
	"github.com/mangalrohit/podcastgen/internal/pipeline/stages"
	"github.com/mangalrohit/podcastgen/internal/types"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full episode generation pipeline end-to-end",
	Long: `Orchestrates all thirteen stages from prepare through package, persisting each stage's input and output artifacts along the way.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath   string
	runEpisodePath  string
	runRunID        string
	runLLMProvider  string
	runTTSProvider  string
	runHTTPProvider string
	runCassetteKey  string
	runDataDir      string
	runAPIKey       string
	runDatabaseURL  string
	runUseBrowser   bool
	runRecord       bool
	runDryRun       bool
	runVerbose      bool
	runDisable      []string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runEpisodePath, "episode", "e", "", "Path to episode configuration JSON")
	runCommand.Flags().StringVar(&runRunID, "run-id", "", "Run identifier (optional, generated if not provided)")
	runCommand.Flags().StringVar(&runLLMProvider, "llm", "", "LLM backend: stub, replay or live")
	runCommand.Flags().StringVar(&runTTSProvider, "tts", "", "TTS backend: stub, replay or live")
	runCommand.Flags().StringVar(&runHTTPProvider, "http", "", "HTTP backend: stub, replay or live")
	runCommand.Flags().StringVar(&runCassetteKey, "cassette", "", "Cassette set for replay or recording runs")
	runCommand.Flags().StringVar(&runDataDir, "data-dir", "", "Root directory for artifacts and run records")
	runCommand.Flags().StringSliceVar(&runDisable, "disable", nil, "Optional stages to skip (disambiguate, contrast, qa)")
	runCommand.Flags().BoolVar(&runUseBrowser, "use-browser", false, "Use headless browser for SPA sites (requires Chrome)")
	runCommand.Flags().BoolVar(&runRecord, "record", false, "Record gateway cassettes during live runs")
	runCommand.Flags().BoolVar(&runDryRun, "dry-run", false, "Validate input and stop after prepare")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "LLM/TTS API key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for run record persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("episode") {
		cfg.Episode = runEpisodePath
	}
	if cmd.Flags().Changed("llm") {
		cfg.LLMProvider = runLLMProvider
	}
	if cmd.Flags().Changed("tts") {
		cfg.TTSProvider = runTTSProvider
	}
	if cmd.Flags().Changed("http") {
		cfg.HTTPProvider = runHTTPProvider
	}
	if cmd.Flags().Changed("cassette") {
		cfg.CassetteKey = runCassetteKey
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = runDataDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = runUseBrowser
	}
	if cmd.Flags().Changed("record") {
		cfg.Record = runRecord
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	applyEnvDefaults(&cfg)

	// Step 3: Validate required fields
	if cfg.Episode == "" {
		return fmt.Errorf("--episode must be provided (via flag or config)")
	}

	input, err := loadPipelineInput(cfg.Episode)
	if err != nil {
		return err
	}
	if runRunID != "" {
		input.RunID = runRunID
	}
	if input.RunID == "" {
		input.RunID = uuid.New().String()
	}
	input.Flags.DryRun = input.Flags.DryRun || runDryRun
	if input.Flags.CassetteKey == "" {
		input.Flags.CassetteKey = cfg.CassetteKey
	}

	// Provider flags embedded in the pipeline input apply when neither the
	// CLI nor the config file chose a backend.
	if cfg.LLMProvider == "" {
		cfg.LLMProvider = input.Flags.Provider.LLM
	}
	if cfg.TTSProvider == "" {
		cfg.TTSProvider = input.Flags.Provider.TTS
	}
	if cfg.HTTPProvider == "" {
		cfg.HTTPProvider = input.Flags.Provider.HTTP
	}
	for _, stage := range runDisable {
		if input.Flags.Enable == nil {
			input.Flags.Enable = make(map[string]bool)
		}
		input.Flags.Enable[stage] = false
	}

	var teardown closers
	defer teardown.closeAll()

	orchestrator, err := newOrchestrator(ctx, cfg, input.Flags.CassetteKey, &teardown)
	if err != nil {
		return err
	}

	run, err := orchestrator.Execute(ctx, *input)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintRun(run)
	if cfg.Verbose {
		printer.PrintProgress(run, stages.Order)
	}
	printer.PrintEpisode(run.Output)
	return nil
}

// loadPipelineInput reads the episode configuration file. The file may be a
// full pipeline input or just the episode config.
func loadPipelineInput(path string) (*types.PipelineInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read episode file %s: %w", path, err)
	}

	var input types.PipelineInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse episode JSON: %w", err)
	}

	if input.Config.Title == "" {
		// Plain episode config without the pipeline envelope.
		var episode types.EpisodeConfig
		if err := json.Unmarshal(data, &episode); err == nil && episode.Title != "" {
			input.Config = episode
		}
	}
	if input.PodcastID == "" {
		input.PodcastID = input.Config.Company.Name
	}
	return &input, nil
}
