package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_OverlaysVariables(t *testing.T) {
	t.Setenv("COURTSIDE_SERVER_ORIGIN", "https://hoops.example")
	t.Setenv("COURTSIDE_REQUEST_TIMEOUT", "5s")
	t.Setenv("COURTSIDE_RATE_LIMIT", "2.5")
	t.Setenv("COURTSIDE_BULK_CONCURRENCY", "8")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, "")

	assert.Equal(t, "https://hoops.example", cfg.ServerOrigin)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.InDelta(t, 2.5, cfg.RateLimit, 0.0001)
	assert.Equal(t, 8, cfg.BulkConcurrency)
	assert.Equal(t, "/api", cfg.APIBasePath)
}

func TestParseEnv_MalformedValuesIgnored(t *testing.T) {
	t.Setenv("COURTSIDE_REQUEST_TIMEOUT", "soon")
	t.Setenv("COURTSIDE_RATE_BURST", "many")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, "")

	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 20, cfg.RateBurst)
}

func TestParseEnv_LoadsDotEnvWithoutOverriding(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("COURTSIDE_DB_PATH=from-file.db\nCOURTSIDE_LOG_LEVEL=warn\n"), 0o600))

	t.Setenv("COURTSIDE_LOG_LEVEL", "error")
	// godotenv sets variables process-wide; make sure they are restored.
	t.Setenv("COURTSIDE_DB_PATH", "")
	require.NoError(t, os.Unsetenv("COURTSIDE_DB_PATH"))

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, envFile)

	assert.Equal(t, "from-file.db", cfg.DBPath)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestParseEnv_MissingFileIsNotAnError(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(cfg, filepath.Join(t.TempDir(), "absent.env")) })
	assert.Equal(t, "courtside.db", cfg.DBPath)
}
