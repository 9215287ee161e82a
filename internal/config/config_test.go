package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, defaultMongoDB, cfg.MongoDB)
	assert.Equal(t, time.Hour, cfg.Wotd.ScrapeInterval.D())
	assert.True(t, cfg.IsDev())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9090
env: production
mongo_db: carpediction_test
wotd:
  scrape_interval: 30m
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "carpediction_test", cfg.MongoDB)
	assert.Equal(t, 30*time.Minute, cfg.Wotd.ScrapeInterval.D())
	// untouched fields still defaulted
	assert.Equal(t, defaultWotdSourceURL, cfg.Wotd.SourceURL)
}

func TestLoadEnvFallback(t *testing.T) {
	t.Setenv("CD_DB_URL", "mongodb://db.example:27017")
	t.Setenv("JWT_KEY", "env-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.example:27017", cfg.MongoURL)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
}
