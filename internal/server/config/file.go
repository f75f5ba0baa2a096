package config

import (
	"github.com/dmitrijs2005/notflix/internal/flagx"
	"github.com/dmitrijs2005/notflix/internal/timex"
)

// FileConfig is the on-disk shape of the server config (JSON or YAML).
// Only keys present in the file override the current values.
type FileConfig struct {
	EndpointAddrGRPC             *string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	HealthAddr                   *string         `json:"health_addr" yaml:"health_addr"`
	DatabaseDSN                  *string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    *string         `json:"secret_key" yaml:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	BcryptCost                   *int            `json:"bcrypt_cost" yaml:"bcrypt_cost"`
	AMQPURL                      *string         `json:"amqp_url" yaml:"amqp_url"`
	EventsQueue                  *string         `json:"events_queue" yaml:"events_queue"`
	LogLevel                     *string         `json:"log_level" yaml:"log_level"`
}

// parseFile loads the file named by -c/-config into config. No flag means
// nothing to load; an unreadable or malformed file panics, like bad flags do.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := flagx.LoadConfigFile(path, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.HealthAddr, c.HealthAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	setString(&config.AMQPURL, c.AMQPURL)
	setString(&config.EventsQueue, c.EventsQueue)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
