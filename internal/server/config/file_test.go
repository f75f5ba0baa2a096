package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func Test_parseFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("loads from json", func(t *testing.T) {
		path := writeTempFile(t, "server.json", `{
			"endpoint_addr_grpc": "www.example:9000",
			"database_dsn": "postgres://file",
			"secret_key": "my_secret_key",
			"access_token_validity_duration": "1m",
			"refresh_token_validity_duration": "72h",
			"bcrypt_cost": 4
		}`)
		os.Args = []string{"testbin", "-config", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, "postgres://file", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, time.Minute, cfg.AccessTokenValidityDuration)
		assert.Equal(t, 72*time.Hour, cfg.RefreshTokenValidityDuration)
		assert.Equal(t, 4, cfg.BcryptCost)
		assert.Equal(t, ":8081", cfg.HealthAddr, "keys absent from the file keep their value")
	})

	t.Run("loads from yaml", func(t *testing.T) {
		path := writeTempFile(t, "server.yml", "health_addr: \":9999\"\nlog_level: warn\nevents_queue: audit\n")
		os.Args = []string{"testbin", "-c", path}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, ":9999", cfg.HealthAddr)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "audit", cfg.EventsQueue)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
	})

	t.Run("no flag loads nothing", func(t *testing.T) {
		os.Args = []string{"testbin"}
		cfg := &Config{}
		parseFile(cfg)
		assert.Equal(t, Config{}, *cfg)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(t.TempDir(), "nope.json")}
		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("malformed file panics", func(t *testing.T) {
		path := writeTempFile(t, "bad.json", `{"secret_key":`)
		os.Args = []string{"testbin", "-c", path}
		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
