package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.BaseURL)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "openai", cfg.Embedder.Provider)
	require.NotNil(t, cfg.Embedder.OpenAI)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.OpenAI.Model)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
listen_addr: ":9090"
llm:
  model: openai/gpt-4o-mini
embedder:
  provider: vertex
  vertex:
    project_id: my-project
assets:
  sheet_url: https://docs.google.com/spreadsheets/d/abc123/edit
  sheet_tab: Assets
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "vertex", cfg.Embedder.Provider)
	require.NotNil(t, cfg.Embedder.Vertex)
	assert.Equal(t, "my-project", cfg.Embedder.Vertex.ProjectID)
	// Vertex defaults fill in behind explicit fields.
	assert.Equal(t, "us-central1", cfg.Embedder.Vertex.Location)
	assert.Equal(t, "text-embedding-004", cfg.Embedder.Vertex.Model)
	assert.Equal(t, "Assets", cfg.Assets.SheetTab)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LISTEN_ADDR", ":7070")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("LLM_MODEL", "anthropic/claude-sonnet-4")
	t.Setenv("ASSET_SHEET_URL", "https://docs.google.com/spreadsheets/d/env123/edit")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":7070", cfg.ListenAddr)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "anthropic/claude-sonnet-4", cfg.LLM.Model)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/env123/edit", cfg.Assets.SheetURL)
}

func TestLoadConfigDebugEnvWinsOverLogLevel(t *testing.T) {
	t.Setenv("DEBUG", "1")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "listen_addr: [not a string")
	_, err := LoadConfig(path)
	require.Error(t, err)
}
