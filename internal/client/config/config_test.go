package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, "notflix.db", c.LocalDBPath)
	assert.Equal(t, "https://api.themoviedb.org/3", c.TMDBBaseURL)
	assert.Equal(t, "https://image.tmdb.org/t/p", c.ImageBaseURL)
	assert.Equal(t, "https://hnembed.cc", c.PlayerBaseURL)
	assert.Empty(t, c.RedisAddr)
	assert.Equal(t, 10*time.Minute, c.CatalogCacheTTL)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 3*time.Second, cfg.OnlineCheckInterval)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv("SERVER_ADDRESS", "env:1")
	t.Setenv("TMDB_API_KEY", "env-key")
	t.Setenv("REDIS_ADDR", "env-redis:6379")

	path := writeTempFile(t, "client.yaml", "server_endpoint_addr: file:2\nredis_addr: file-redis:6379\n")
	os.Args = []string{"testbin", "-c", path, "-a", "flag:3"}

	cfg := LoadConfig()

	assert.Equal(t, "flag:3", cfg.ServerEndpointAddr)
	assert.Equal(t, "file-redis:6379", cfg.RedisAddr)
	assert.Equal(t, "env-key", cfg.TMDBAPIKey)
}
