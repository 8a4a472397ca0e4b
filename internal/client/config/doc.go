// Package config loads runtime configuration for the courtside client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file
//     (github.com/joho/godotenv); variables already set win over the file.
//  3. Optional JSON file selected via -c / -config or COURTSIDE_CONFIG.
//  4. Command-line flags, which override earlier values.
//
// Environment
//
//	COURTSIDE_SERVER_ORIGIN     COURTSIDE_API_BASE_PATH
//	COURTSIDE_REQUEST_TIMEOUT   COURTSIDE_DB_PATH
//	COURTSIDE_RATE_LIMIT        COURTSIDE_RATE_BURST
//	COURTSIDE_RENEW_SKEW        COURTSIDE_BULK_CONCURRENCY
//	COURTSIDE_LOG_LEVEL
//
// Supported flags
//
//	-s string   server origin (scheme://host:port)
//	-b string   API base path
//	-t int      request timeout (seconds)
//	-d string   session database path
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values may be strings like "15s" or
// integer nanoseconds:
//
//	{
//	  "server_origin": "https://hoops.example",
//	  "api_base_path": "/api",
//	  "request_timeout": "15s",
//	  "db_path": "courtside.db",
//	  "rate_limit": 10,
//	  "rate_burst": 20,
//	  "renew_skew": "30s",
//	  "bulk_concurrency": 4,
//	  "log_level": "debug"
//	}
package config
