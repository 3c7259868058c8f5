// Package config loads the tool configuration from an optional TOML
// file, with defaults matching stock behavior. CLI flags override
// whatever the file says.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Model policy strategy names accepted in [ollama] model_policy.
const (
	PolicyUnrestricted    = "unrestricted"
	PolicyAllowList       = "allowlist"
	PolicyInteractivePull = "interactive"
)

// Config is the top-level application configuration.
type Config struct {
	Ollama OllamaConfig `toml:"ollama"`
	Limits LimitsConfig `toml:"limits"`
	Output OutputConfig `toml:"output"`
}

// OllamaConfig holds backend connection and model-selection settings.
type OllamaConfig struct {
	BaseURL        string   `toml:"base_url"`
	TimeoutSeconds int      `toml:"timeout_seconds"`
	ModelPolicy    string   `toml:"model_policy"`
	DefaultModel   string   `toml:"default_model"`
	AllowedModels  []string `toml:"allowed_models"`
}

// LimitsConfig bounds how much diff content is retained and prompted.
type LimitsConfig struct {
	FileLimit     int `toml:"file_limit"`
	SymbolLimit   int `toml:"symbol_limit"`
	SymbolExcerpt int `toml:"symbol_excerpt"`
	FileExcerpt   int `toml:"file_excerpt"`
	DiffLimit     int `toml:"diff_limit"`
}

// OutputConfig holds documentation log settings.
type OutputConfig struct {
	File string `toml:"file"`
}

// DefaultConfig returns a Config populated with stock values.
func DefaultConfig() *Config {
	return &Config{
		Ollama: OllamaConfig{
			BaseURL:        "http://localhost:11434",
			TimeoutSeconds: 300,
			ModelPolicy:    PolicyAllowList,
			DefaultModel:   "phi3:medium",
			AllowedModels: []string{
				"phi3:medium",
				"mistral:7b",
				"deepseek-coder:6.7b",
				"qwen2.5-coder:7b",
			},
		},
		Limits: LimitsConfig{
			FileLimit:     20,
			SymbolLimit:   5,
			SymbolExcerpt: 1000,
			FileExcerpt:   2000,
			DiffLimit:     6000,
		},
		Output: OutputConfig{
			File: "refactoring.md",
		},
	}
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error; the defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
