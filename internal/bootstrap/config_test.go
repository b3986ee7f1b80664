package bootstrap

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghugn/chem-class-git/config"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com/api/")
	t.Setenv("SESSION_BACKEND", "memory")
	t.Setenv("SESSION_TTL", "10s")
	t.Setenv("HTTP_COMPRESSION_LEVEL", "42")
	t.Setenv("APP_BASE_URL", "https://chemclass.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, config.SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, time.Minute, cfg.Session.TTL, "ttl is clamped to the minimum")
	assert.Equal(t, 9, cfg.HTTP.CompressionLevel)
	assert.True(t, cfg.HTTP.SecureCookies())
	assert.False(t, cfg.UsesRedis())
}

func TestLoadConfig_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "postgres")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestInitLogger(t *testing.T) {
	logger := InitLogger(true)
	require.NotNil(t, logger)
	assert.Equal(t, logger.Handler(), slog.Default().Handler())
}
