package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/reviewkit/reviewkit/chunk"
	"github.com/reviewkit/reviewkit/llm"
)

// Config is the root configuration for a review run, loadable from a
// YAML or TOML file with environment overrides on top.
type Config struct {
	LLM    LLMConfig    `yaml:"llm" toml:"llm" json:"llm"`
	Chunk  ChunkConfig  `yaml:"chunk" toml:"chunk" json:"chunk"`
	Prompt PromptConfig `yaml:"prompt" toml:"prompt" json:"prompt"`
	Review ReviewConfig `yaml:"review" toml:"review" json:"review"`
}

// LLMConfig mirrors the chat client settings with file-friendly
// duration fields.
type LLMConfig struct {
	BaseURL     string   `yaml:"base_url" toml:"base_url" json:"base_url"`
	APIToken    string   `yaml:"api_token" toml:"api_token" json:"api_token"`
	Model       string   `yaml:"model" toml:"model" json:"model"`
	MaxTokens   int      `yaml:"max_tokens" toml:"max_tokens" json:"max_tokens"`
	Temperature float64  `yaml:"temperature" toml:"temperature" json:"temperature"`
	Timeout     Duration `yaml:"timeout" toml:"timeout" json:"timeout"`
	MaxAttempts int      `yaml:"max_attempts" toml:"max_attempts" json:"max_attempts"`
	RetryDelay  Duration `yaml:"retry_delay" toml:"retry_delay" json:"retry_delay"`
}

// ClientConfig converts to the llm package's config type.
func (c LLMConfig) ClientConfig() llm.Config {
	return llm.Config{
		BaseURL:     c.BaseURL,
		APIToken:    c.APIToken,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Timeout:     c.Timeout.Std(),
		MaxAttempts: c.MaxAttempts,
		RetryDelay:  c.RetryDelay.Std(),
	}
}

// ChunkConfig tunes prompt splitting. Zero values use the chunk
// package defaults.
type ChunkConfig struct {
	Reserve       int `yaml:"reserve" toml:"reserve" json:"reserve"`
	CharsPerToken int `yaml:"chars_per_token" toml:"chars_per_token" json:"chars_per_token"`
}

// Splitter builds a splitter from these settings.
func (c ChunkConfig) Splitter() *chunk.Splitter {
	s := chunk.NewSplitter()
	if c.Reserve > 0 {
		s = s.WithReserve(c.Reserve)
	}
	if c.CharsPerToken > 0 {
		s = s.WithCharsPerToken(c.CharsPerToken)
	}
	return s
}

// PromptConfig names the prompt sources and substitution context.
// Sources may be file paths or http(s) URLs.
type PromptConfig struct {
	System  []string          `yaml:"system" toml:"system" json:"system"`
	Sources []string          `yaml:"sources" toml:"sources" json:"sources"`
	Context map[string]string `yaml:"context" toml:"context" json:"context"`
	Watch   bool              `yaml:"watch" toml:"watch" json:"watch"`
}

// ReviewConfig tunes gateway dispatch.
type ReviewConfig struct {
	// MaxPromptTokens caps total prompt size before splitting kicks in.
	// Zero uses the model's known context window.
	MaxPromptTokens int `yaml:"max_prompt_tokens" toml:"max_prompt_tokens" json:"max_prompt_tokens"`
}

// Load reads a configuration file, applies REVIEWKIT_ environment
// overrides, and validates the result. The format is chosen by file
// extension: .yaml/.yml or .toml.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse toml config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (want .yaml, .yml, or .toml)", ext)
	}

	cfg.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadFromEnv applies REVIEWKIT_ environment overrides on top of the
// current values.
func (c *Config) LoadFromEnv() {
	llmCfg := c.LLM.ClientConfig()
	llmCfg.LoadFromEnv()
	c.LLM = LLMConfig{
		BaseURL:     llmCfg.BaseURL,
		APIToken:    llmCfg.APIToken,
		Model:       llmCfg.Model,
		MaxTokens:   llmCfg.MaxTokens,
		Temperature: llmCfg.Temperature,
		Timeout:     Duration(llmCfg.Timeout),
		MaxAttempts: llmCfg.MaxAttempts,
		RetryDelay:  Duration(llmCfg.RetryDelay),
	}

	if v := os.Getenv("REVIEWKIT_CHUNK_RESERVE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Chunk.Reserve = n
		}
	}
	if v := os.Getenv("REVIEWKIT_REVIEW_MAX_PROMPT_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Review.MaxPromptTokens = n
		}
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if err := c.LLM.ClientConfig().WithDefaults().Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if c.Chunk.Reserve < 0 {
		return fmt.Errorf("chunk: reserve must be >= 0, got %d", c.Chunk.Reserve)
	}
	if c.Review.MaxPromptTokens < 0 {
		return fmt.Errorf("review: max_prompt_tokens must be >= 0, got %d", c.Review.MaxPromptTokens)
	}
	return nil
}
