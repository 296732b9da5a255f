package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Sternrassler/pokedex-catalog/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.Upstream.BaseURL)
	assert.Equal(t, "pokedex-catalog/0.1", cfg.Upstream.UserAgent)
	assert.Equal(t, time.Duration(0), cfg.Upstream.Timeout)
	assert.Equal(t, 5, cfg.Batch.Size)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Pretty)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "catalog.yaml", `
server:
  addr: 127.0.0.1:9090
upstream:
  base_url: http://localhost:3000/api/v2
  timeout: 2s
batch:
  size: 8
log:
  level: debug
  pretty: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, "http://localhost:3000/api/v2", cfg.Upstream.BaseURL)
	assert.Equal(t, "pokedex-catalog/0.1", cfg.Upstream.UserAgent)
	assert.Equal(t, 2*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 8, cfg.Batch.Size)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Pretty)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "catalog.yaml", "batch:\n  size: 8\n")
	t.Setenv("CATALOG_BATCH_SIZE", "3")
	t.Setenv("CATALOG_UPSTREAM_USER_AGENT", "env-agent/1.0")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Batch.Size)
	assert.Equal(t, "env-agent/1.0", cfg.Upstream.UserAgent)
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalog.yaml"), []byte("server:\n  addr: :7070\n"), 0o600))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		errorMsg string
	}{
		{
			name:     "batch size zero",
			content:  "batch:\n  size: 0\n",
			errorMsg: "batch.size must be >= 1 (got 0)",
		},
		{
			name:     "empty base url",
			content:  "upstream:\n  base_url: \"\"\n",
			errorMsg: "upstream.base_url is required",
		},
		{
			name:     "unknown log level",
			content:  "log:\n  level: loud\n",
			errorMsg: `log.level: unknown log level "loud" (want debug, info, warn or error)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "catalog.yaml", tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.errorMsg, err.Error())
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_Derived(t *testing.T) {
	cfg := &Config{
		Upstream: UpstreamConfig{BaseURL: "http://x", UserAgent: "ua", Timeout: time.Second},
		Batch:    BatchConfig{Size: 7},
		Log:      LogConfig{Level: "warn", Pretty: true},
	}

	assert.Equal(t, "http://x", cfg.Client().BaseURL)
	assert.Equal(t, time.Second, cfg.Client().Timeout)
	assert.Equal(t, 7, cfg.BatchFetcher().BatchSize)
	assert.Equal(t, logging.LevelWarn, cfg.Logging().Level)
	assert.True(t, cfg.Logging().Pretty)
}
