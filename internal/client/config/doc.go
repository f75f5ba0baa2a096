// Package config loads runtime configuration for the Notflix CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file (see parseEnv).
//  3. Optional JSON or YAML file (see parseFile) selected via -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-i int      online status check interval (seconds)
//	-f string   local database file
//	-k string   TMDB API key
//	-r string   redis address for the catalog cache
//	-l string   log level
//
// Environment
//
//	SERVER_ADDRESS, NOTFLIX_DB, TMDB_API_KEY, TMDB_BASE_URL, PLAYER_BASE_URL,
//	REDIS_ADDR, LOG_LEVEL
//
// # File schema
//
// Intervals use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "3s",
//	  "local_db_path": "notflix.db",
//	  "tmdb_api_key": "...",
//	  "redis_addr": "127.0.0.1:6379",
//	  "catalog_cache_ttl": "10m"
//	}
package config
