// Package config loads Literature Surveyor client configuration from
// ~/.surveyor/config.yaml with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidProviders are the generation providers the backend accepts.
var ValidProviders = []string{"gemini", "mistral"}

// Config holds all surveyor client configuration.
type Config struct {
	// Backend configuration
	Backend BackendConfig `yaml:"backend"`

	// History cache configuration
	History HistoryConfig `yaml:"history"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig configures the generation endpoint.
type BackendConfig struct {
	// BaseURL of the Literature Surveyor backend. The generate endpoint
	// lives at {BaseURL}/LS/content/v1/generate.
	BaseURL string `yaml:"base_url"`

	// Provider selects the hosted LLM (gemini or mistral). Ignored when
	// LocalLLM is true.
	Provider string `yaml:"provider"`

	// LocalLLM routes generation through the backend's local model.
	LocalLLM bool `yaml:"local_llm"`
}

// HistoryConfig configures the query history cache.
type HistoryConfig struct {
	// DatabasePath is the SQLite file backing the history store.
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig returns the default configuration. The base URL points at
// the backend's local development server.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL:  "http://localhost:8001",
			Provider: "gemini",
			LocalLLM: false,
		},
		History: HistoryConfig{
			DatabasePath: filepath.Join(configDir(), "history.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(configDir(), "surveyor.log"),
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".surveyor"
	}
	return filepath.Join(home, ".surveyor")
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return defaults if config file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("SURVEYOR_BASE_URL"); url != "" {
		c.Backend.BaseURL = url
	}
	if provider := os.Getenv("SURVEYOR_PROVIDER"); provider != "" {
		c.Backend.Provider = provider
	}
	if local := os.Getenv("SURVEYOR_LOCAL_LLM"); local != "" {
		c.Backend.LocalLLM = local == "1" || strings.EqualFold(local, "true")
	}
	if path := os.Getenv("SURVEYOR_DB"); path != "" {
		c.History.DatabasePath = path
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL not configured (set backend.base_url or SURVEYOR_BASE_URL)")
	}

	// Provider only matters when the hosted path is active.
	if !c.Backend.LocalLLM {
		valid := false
		for _, p := range ValidProviders {
			if c.Backend.Provider == p {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid provider: %s (valid: %v)", c.Backend.Provider, ValidProviders)
		}
	}

	return nil
}
