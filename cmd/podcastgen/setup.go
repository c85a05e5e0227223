package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mangalrohit/podcastgen/internal/artifacts"
	"github.com/mangalrohit/podcastgen/internal/config"
	"github.com/mangalrohit/podcastgen/internal/gateway"
	"github.com/mangalrohit/podcastgen/internal/pipeline"
	"github.com/mangalrohit/podcastgen/internal/runstore"
)

// closers collects teardown functions accumulated during setup.
type closers []func()

func (c closers) closeAll() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// applyEnvDefaults fills config values left unset by flags and config file
// from the environment.
func applyEnvDefaults(cfg *config.Config) {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("PODCASTGEN_DATA_DIR")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.CassettePath == "" {
		cfg.CassettePath = filepath.Join(cfg.DataDir, "cassettes")
	}
}

// newArtifactStore picks object storage when an S3 endpoint is configured,
// the local filesystem otherwise.
func newArtifactStore(cfg config.Config) (artifacts.Store, error) {
	if cfg.S3Endpoint == "" {
		return artifacts.NewFSStore(filepath.Join(cfg.DataDir, "artifacts")), nil
	}
	store, err := artifacts.NewObjectStore(artifacts.ObjectConfig{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to configure object storage: %w", err)
	}
	return store, nil
}

// newRunStore picks PostgreSQL when a database URL is configured, a local
// file store otherwise. Reads go through an in-process cache either way.
func newRunStore(ctx context.Context, cfg config.Config, teardown *closers) (runstore.Store, error) {
	if cfg.DatabaseURL == "" {
		return runstore.NewCachedStore(runstore.NewFileStore(filepath.Join(cfg.DataDir, "runs"))), nil
	}
	pg, err := runstore.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	*teardown = append(*teardown, pg.Close)
	return runstore.NewCachedStore(pg), nil
}

// newOrchestrator wires stores and gateways into a pipeline orchestrator.
func newOrchestrator(ctx context.Context, cfg config.Config, cassetteKey string, teardown *closers) (*pipeline.Orchestrator, error) {
	llm, err := gateway.ParseProvider(cfg.LLMProvider)
	if err != nil {
		return nil, err
	}
	tts, err := gateway.ParseProvider(cfg.TTSProvider)
	if err != nil {
		return nil, err
	}
	httpProvider, err := gateway.ParseProvider(cfg.HTTPProvider)
	if err != nil {
		return nil, err
	}

	if (llm == gateway.ProviderLive || tts == gateway.ProviderLive) && cfg.APIKey == "" {
		return nil, fmt.Errorf("live gateways require an API key (flag, config or GEMINI_API_KEY/OPENAI_API_KEY)")
	}

	gateways, err := gateway.NewSet(ctx, gateway.Config{
		LLMProvider:  llm,
		TTSProvider:  tts,
		HTTPProvider: httpProvider,
		CassetteKey:  cassetteKey,
		CassettePath: cfg.CassettePath,
		APIKey:       cfg.APIKey,
		Record:       cfg.Record,
		UseBrowser:   cfg.UseBrowser,
	})
	if err != nil {
		return nil, err
	}
	*teardown = append(*teardown, func() { _ = gateways.Close() })

	artifactStore, err := newArtifactStore(cfg)
	if err != nil {
		return nil, err
	}
	runStore, err := newRunStore(ctx, cfg, teardown)
	if err != nil {
		return nil, err
	}

	orchestrator := pipeline.New(artifactStore, runStore, gateways)
	orchestrator.Verbose = cfg.Verbose
	return orchestrator, nil
}
