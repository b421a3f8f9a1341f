package core

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LLMConfig configures the chat-completions client used for extraction.
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"-"` // secrets come from the environment only
}

// OpenAIEmbedderConfig configures the OpenAI-compatible embeddings client.
type OpenAIEmbedderConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

// VertexEmbedderConfig configures the Vertex AI embedder.
type VertexEmbedderConfig struct {
	ProjectID string `yaml:"project_id"`
	Location  string `yaml:"location"`
	Model     string `yaml:"model"`
}

// EmbedderConfig selects and configures the embedding gateway implementation.
type EmbedderConfig struct {
	Provider string                `yaml:"provider"` // "openai" or "vertex"
	OpenAI   *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
	Vertex   *VertexEmbedderConfig `yaml:"vertex,omitempty"`
}

// AssetsConfig holds the default asset catalogue location. Requests may
// override both fields per call.
type AssetsConfig struct {
	SheetURL string `yaml:"sheet_url"`
	SheetTab string `yaml:"sheet_tab"`
}

// Config is the root application configuration.
type Config struct {
	LogLevel   string         `yaml:"log_level"`
	ListenAddr string         `yaml:"listen_addr"`
	LLM        LLMConfig      `yaml:"llm"`
	Embedder   EmbedderConfig `yaml:"embedder"`
	Assets     AssetsConfig   `yaml:"assets"`
}

// LoadConfig reads the YAML config at path (missing file means defaults) and
// applies environment overrides. Secrets are environment-only.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyDefaults(cfg)
	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		LogLevel:   "info",
		ListenAddr: ":8080",
		LLM: LLMConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Model:   "google/gemini-2.5-flash",
		},
		Embedder: EmbedderConfig{
			Provider: "openai",
			OpenAI: &OpenAIEmbedderConfig{
				BaseURL:   "https://api.openai.com/v1",
				APIKeyEnv: "EMBEDDING_API_KEY",
				Model:     "text-embedding-3-small",
			},
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "google/gemini-2.5-flash"
	}
	if cfg.Embedder.Provider == "" {
		cfg.Embedder.Provider = "openai"
	}
	if cfg.Embedder.Provider == "openai" && cfg.Embedder.OpenAI == nil {
		cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
	}
	if cfg.Embedder.OpenAI != nil {
		if cfg.Embedder.OpenAI.BaseURL == "" {
			cfg.Embedder.OpenAI.BaseURL = "https://api.openai.com/v1"
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "EMBEDDING_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
	}
	if cfg.Embedder.Vertex != nil {
		if cfg.Embedder.Vertex.Location == "" {
			cfg.Embedder.Vertex.Location = "us-central1"
		}
		if cfg.Embedder.Vertex.Model == "" {
			cfg.Embedder.Vertex.Model = "text-embedding-004"
		}
	}
}

func applyEnvOverrides(cfg *Config) {
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	if os.Getenv("DEBUG") == "1" {
		cfg.LogLevel = "debug"
	}
	cfg.ListenAddr = getEnvOrDefault("LISTEN_ADDR", cfg.ListenAddr)
	cfg.LLM.APIKey = os.Getenv("LLM_API_KEY")
	cfg.LLM.Model = getEnvOrDefault("LLM_MODEL", cfg.LLM.Model)
	cfg.Assets.SheetURL = getEnvOrDefault("ASSET_SHEET_URL", cfg.Assets.SheetURL)
	cfg.Assets.SheetTab = getEnvOrDefault("ASSET_SHEET_TAB", cfg.Assets.SheetTab)
	if cfg.Embedder.Vertex != nil {
		cfg.Embedder.Vertex.ProjectID = getEnvOrDefault("GOOGLE_CLOUD_PROJECT", cfg.Embedder.Vertex.ProjectID)
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
