// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Episode      string `json:"episode,omitempty"`       // Path to episode configuration JSON
	DataDir      string `json:"data_dir,omitempty"`      // Root directory for filesystem artifact storage
	CassettePath string `json:"cassette_path,omitempty"` // Root directory for recorded gateway cassettes

	// Providers
	LLMProvider  string `json:"llm_provider,omitempty"`  // LLM backend: stub, replay or live
	TTSProvider  string `json:"tts_provider,omitempty"`  // TTS backend: stub, replay or live
	HTTPProvider string `json:"http_provider,omitempty"` // HTTP backend: stub, replay or live
	CassetteKey  string `json:"cassette_key,omitempty"`  // Cassette set for replay/record runs

	// Object storage (optional; filesystem is used when unset)
	S3Endpoint  string `json:"s3_endpoint,omitempty"`
	S3AccessKey string `json:"s3_access_key,omitempty"`
	S3SecretKey string `json:"s3_secret_key,omitempty"`
	S3Bucket    string `json:"s3_bucket,omitempty"`
	S3UseSSL    bool   `json:"s3_use_ssl,omitempty"`

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // LLM/TTS API key
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for run records
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA sites
	Record      bool   `json:"record,omitempty"`       // Write cassettes during live runs
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	for _, provider := range []string{c.LLMProvider, c.TTSProvider, c.HTTPProvider} {
		switch provider {
		case "", "stub", "replay", "live", "openai", "gemini":
		default:
			return fmt.Errorf("config error: unknown provider %q (want stub, replay or live)", provider)
		}
	}

	if c.Record && c.CassetteKey == "" {
		return fmt.Errorf("config error: 'record' requires 'cassette_key'")
	}

	// Validate file paths exist (if specified)
	if c.Episode != "" {
		if _, err := os.Stat(c.Episode); os.IsNotExist(err) {
			return fmt.Errorf("config error: episode file not found: %s", c.Episode)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Episode == "" {
		result.Episode = defaults.Episode
	}
	if result.DataDir == "" {
		result.DataDir = defaults.DataDir
	}
	if result.CassettePath == "" {
		result.CassettePath = defaults.CassettePath
	}
	if result.LLMProvider == "" {
		result.LLMProvider = defaults.LLMProvider
	}
	if result.TTSProvider == "" {
		result.TTSProvider = defaults.TTSProvider
	}
	if result.HTTPProvider == "" {
		result.HTTPProvider = defaults.HTTPProvider
	}
	if result.CassetteKey == "" {
		result.CassetteKey = defaults.CassetteKey
	}
	if result.S3Endpoint == "" {
		result.S3Endpoint = defaults.S3Endpoint
	}
	if result.S3AccessKey == "" {
		result.S3AccessKey = defaults.S3AccessKey
	}
	if result.S3SecretKey == "" {
		result.S3SecretKey = defaults.S3SecretKey
	}
	if result.S3Bucket == "" {
		result.S3Bucket = defaults.S3Bucket
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
