package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first when present.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v, ok := os.LookupEnv("SERVER_ADDRESS"); ok {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := os.LookupEnv("NOTFLIX_DB"); ok {
		cfg.LocalDBPath = v
	}
	if v, ok := os.LookupEnv("TMDB_API_KEY"); ok {
		cfg.TMDBAPIKey = v
	}
	if v, ok := os.LookupEnv("TMDB_BASE_URL"); ok {
		cfg.TMDBBaseURL = v
	}
	if v, ok := os.LookupEnv("PLAYER_BASE_URL"); ok {
		cfg.PlayerBaseURL = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		cfg.RedisAddr = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}
