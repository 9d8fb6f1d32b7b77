package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "project_samarth", cfg.MongoDBName)

	assert.Equal(t, 180, cfg.CacheTTL.ApedaProduction)
	assert.Equal(t, 365, cfg.CacheTTL.CropProduction)
	assert.Equal(t, 365, cfg.CacheTTL.HistoricalRainfall)
	assert.Equal(t, 90, cfg.CacheTTL.DailyRainfall)
	assert.Equal(t, 90, cfg.CacheTTL.Default)
}

func TestLoadYAMLAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := `
port: 9001
env: production
mongo_url: mongodb://file-host/db
datagov:
  api_key: file-key
cache_ttl_days:
  daily_rainfall: 7
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("DATABASE_URL", "mongodb://env-host/db")
	t.Setenv("DATA_GOV_API_KEY", "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Port)
	assert.False(t, cfg.IsDev())
	// Environment wins over the file.
	assert.Equal(t, "mongodb://env-host/db", cfg.MongoURL)
	assert.Equal(t, "env-key", cfg.DataGov.APIKey)
	// Explicit TTLs survive, unset ones get defaults.
	assert.Equal(t, 7, cfg.CacheTTL.DailyRainfall)
	assert.Equal(t, 180, cfg.CacheTTL.ApedaProduction)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not a number"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
