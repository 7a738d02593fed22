package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8001", cfg.Backend.BaseURL)
	assert.Equal(t, "gemini", cfg.Backend.Provider)
	assert.False(t, cfg.Backend.LocalLLM)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `backend:
  base_url: https://surveyor.example.com
  provider: mistral
history:
  database_path: /tmp/h.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://surveyor.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, "mistral", cfg.Backend.Provider)
	assert.Equal(t, "/tmp/h.db", cfg.History.DatabasePath)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [not a map"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SURVEYOR_BASE_URL", "http://127.0.0.1:9000")
	t.Setenv("SURVEYOR_PROVIDER", "mistral")
	t.Setenv("SURVEYOR_LOCAL_LLM", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.Backend.BaseURL)
	assert.Equal(t, "mistral", cfg.Backend.Provider)
	assert.True(t, cfg.Backend.LocalLLM)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "empty base url", mutate: func(c *Config) { c.Backend.BaseURL = "" }, wantErr: true},
		{name: "unknown provider", mutate: func(c *Config) { c.Backend.Provider = "claude" }, wantErr: true},
		{name: "unknown provider ignored when local", mutate: func(c *Config) {
			c.Backend.Provider = "claude"
			c.Backend.LocalLLM = true
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
