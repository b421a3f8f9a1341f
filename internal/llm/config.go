package llm

import (
	"fmt"
	"time"
)

// Config contains configuration for the LLM client.
type Config struct {
	// APIKey authenticates against the chat-completions endpoint.
	APIKey string

	// BaseURL is the OpenAI-compatible API base URL,
	// e.g. https://openrouter.ai/api/v1.
	BaseURL string

	// DefaultModel is the model used when the caller passes none,
	// e.g. google/gemini-2.5-flash.
	DefaultModel string

	// Timeout is the HTTP request timeout. Default: 60 seconds — notice
	// texts run long and extraction responses are large.
	Timeout time.Duration

	// MaxRetries is the maximum number of parse/validation retries.
	// Default: 3.
	MaxRetries int
}

// Validate checks that required config fields are set.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("APIKey is required")
	}
	if c.BaseURL == "" {
		return fmt.Errorf("BaseURL is required")
	}
	if c.DefaultModel == "" {
		return fmt.Errorf("DefaultModel is required")
	}
	return nil
}

// SetDefaults fills in default values for optional fields.
func (c *Config) SetDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}
