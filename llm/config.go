package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gpt-4o-mini"

// DefaultTimeout is the per-request timeout, covering all retry attempts.
const DefaultTimeout = 120 * time.Second

// Config holds configuration for the chat-completions client.
type Config struct {
	// BaseURL is the backend root, e.g. "https://litellm.internal.example".
	// The client posts to BaseURL + "/chat/completions". Required.
	BaseURL string `json:"base_url" yaml:"base_url" toml:"base_url"`

	// APIToken is sent as a bearer token when non-empty.
	APIToken string `json:"api_token" yaml:"api_token" toml:"api_token"`

	// Model is the model name forwarded to the backend.
	Model string `json:"model" yaml:"model" toml:"model"`

	// MaxTokens caps the completion length. 0 omits the field.
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" toml:"max_tokens"`

	// Temperature controls sampling randomness. 0 omits the field.
	Temperature float64 `json:"temperature" yaml:"temperature" toml:"temperature"`

	// Timeout bounds one logical Chat call including retries.
	// 0 uses DefaultTimeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" toml:"timeout"`

	// MaxAttempts is the retry budget per request. 0 uses the retry
	// package default.
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`

	// RetryDelay is the fixed wait between attempts. 0 uses the retry
	// package default; use a negative value for no delay.
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay" toml:"retry_delay"`
}

// WithDefaults returns a copy with zero values replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Validate checks if the configuration is usable.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be >= 0, got %d", c.MaxTokens)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must be >= 0, got %d", c.MaxAttempts)
	}
	return nil
}

// LoadFromEnv populates config fields from environment variables.
// Variables use the REVIEWKIT_LLM_ prefix and take precedence over
// existing values.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("REVIEWKIT_LLM_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("REVIEWKIT_LLM_API_TOKEN"); v != "" {
		c.APIToken = v
	}
	if v := os.Getenv("REVIEWKIT_LLM_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("REVIEWKIT_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTokens = n
		}
	}
	if v := os.Getenv("REVIEWKIT_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = f
		}
	}
	if v := os.Getenv("REVIEWKIT_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
}
