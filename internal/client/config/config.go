package config

import "time"

// Config holds runtime settings for the Notflix CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - LocalDBPath: sqlite file holding the session and profile pointers.
//   - TMDBAPIKey, TMDBBaseURL: catalog API credentials and root.
//   - ImageBaseURL: root for poster and backdrop URLs.
//   - PlayerBaseURL: root of the embeddable player.
//   - RedisAddr: catalog response cache; empty disables caching.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	LocalDBPath         string
	TMDBAPIKey          string
	TMDBBaseURL         string
	ImageBaseURL        string
	PlayerBaseURL       string
	RedisAddr           string
	CatalogCacheTTL     time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.LocalDBPath = "notflix.db"
	c.TMDBAPIKey = ""
	c.TMDBBaseURL = "https://api.themoviedb.org/3"
	c.ImageBaseURL = "https://image.tmdb.org/t/p"
	c.PlayerBaseURL = "https://hnembed.cc"
	c.RedisAddr = ""
	c.CatalogCacheTTL = 10 * time.Minute
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a config file (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
