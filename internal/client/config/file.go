package config

import (
	"github.com/dmitrijs2005/notflix/internal/flagx"
	"github.com/dmitrijs2005/notflix/internal/timex"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Pointer
// fields tell absent keys apart from zero values.
type FileConfig struct {
	ServerEndpointAddr  *string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	LocalDBPath         *string         `json:"local_db_path" yaml:"local_db_path"`
	TMDBAPIKey          *string         `json:"tmdb_api_key" yaml:"tmdb_api_key"`
	TMDBBaseURL         *string         `json:"tmdb_base_url" yaml:"tmdb_base_url"`
	ImageBaseURL        *string         `json:"image_base_url" yaml:"image_base_url"`
	PlayerBaseURL       *string         `json:"player_base_url" yaml:"player_base_url"`
	RedisAddr           *string         `json:"redis_addr" yaml:"redis_addr"`
	CatalogCacheTTL     *timex.Duration `json:"catalog_cache_ttl" yaml:"catalog_cache_ttl"`
	LogLevel            *string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays Config with values loaded from the file named by -c or
// -config. Panics on read or unmarshal errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	fc := &FileConfig{}
	if err := flagx.LoadConfigFile(path, fc); err != nil {
		panic(err)
	}

	setString(&cfg.ServerEndpointAddr, fc.ServerEndpointAddr)
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	setString(&cfg.LocalDBPath, fc.LocalDBPath)
	setString(&cfg.TMDBAPIKey, fc.TMDBAPIKey)
	setString(&cfg.TMDBBaseURL, fc.TMDBBaseURL)
	setString(&cfg.ImageBaseURL, fc.ImageBaseURL)
	setString(&cfg.PlayerBaseURL, fc.PlayerBaseURL)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	if fc.CatalogCacheTTL != nil {
		cfg.CatalogCacheTTL = fc.CatalogCacheTTL.Duration
	}
	setString(&cfg.LogLevel, fc.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
