// Package config loads review run configuration from YAML or TOML
// files, with REVIEWKIT_ environment variable overrides applied on top
// of the file values.
//
//	cfg, err := config.Load("reviewkit.yaml")
//	client, err := llm.NewClient(cfg.LLM.ClientConfig())
//
// Durations in config files use Go's syntax ("30s", "2m"). Settings
// left at their zero value fall back to the owning package's defaults.
package config
