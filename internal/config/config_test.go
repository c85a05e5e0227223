package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"llm_provider": "replay",
		"cassette_key": "episode-1",
		"data_dir": "/tmp/podcastgen",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "replay", cfg.LLMProvider)
	assert.Equal(t, "episode-1", cfg.CassetteKey)
	assert.Equal(t, "/tmp/podcastgen", cfg.DataDir)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := &Config{LLMProvider: "morse-code"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown provider")
}

func TestValidate_RecordRequiresCassetteKey(t *testing.T) {
	cfg := &Config{Record: true}
	assert.Error(t, cfg.Validate())

	cfg.CassetteKey = "episode-1"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingEpisodeFile(t *testing.T) {
	cfg := &Config{Episode: "/nonexistent/episode.json"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "episode file not found")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{LLMProvider: "live"}
	merged := cfg.MergeWithDefaults(Config{
		LLMProvider: "stub",
		TTSProvider: "stub",
		DataDir:     "data",
	})

	assert.Equal(t, "live", merged.LLMProvider, "explicit values win")
	assert.Equal(t, "stub", merged.TTSProvider)
	assert.Equal(t, "data", merged.DataDir)
}
