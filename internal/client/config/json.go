package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/courtside/internal/flagx"
	"github.com/dmitrijs2005/courtside/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// rely on timex.Duration so they may be written as "15s" or nanoseconds.
type JsonConfig struct {
	ServerOrigin    string         `json:"server_origin"`
	APIBasePath     string         `json:"api_base_path"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
	DBPath          string         `json:"db_path"`
	RateLimit       float64        `json:"rate_limit"`
	RateBurst       int            `json:"rate_burst"`
	RenewSkew       timex.Duration `json:"renew_skew"`
	BulkConcurrency int            `json:"bulk_concurrency"`
	LogLevel        string         `json:"log_level"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config
// (or COURTSIDE_CONFIG). Only fields present with non-zero values are copied.
// It panics on read or unmarshal errors; a broken config file is fatal.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerOrigin != "" {
		cfg.ServerOrigin = jc.ServerOrigin
	}
	if jc.APIBasePath != "" {
		cfg.APIBasePath = jc.APIBasePath
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DBPath != "" {
		cfg.DBPath = jc.DBPath
	}
	if jc.RateLimit != 0 {
		cfg.RateLimit = jc.RateLimit
	}
	if jc.RateBurst != 0 {
		cfg.RateBurst = jc.RateBurst
	}
	if jc.RenewSkew.Duration > 0 {
		cfg.RenewSkew = jc.RenewSkew.Duration
	}
	if jc.BulkConcurrency != 0 {
		cfg.BulkConcurrency = jc.BulkConcurrency
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
