package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the courtside client core.
//
// Fields:
//   - ServerOrigin: scheme://host[:port] of the REST backend; also the prefix
//     for non-absolute media URLs.
//   - APIBasePath: path prefix of every REST endpoint (e.g. "/api").
//   - RequestTimeout: per-request timeout enforced by the gateway.
//   - DBPath: SQLite file holding the persisted session.
//   - RateLimit / RateBurst: outbound token bucket (requests per second);
//     RateLimit <= 0 disables limiting.
//   - RenewSkew: renew a JWT this long before it expires.
//   - BulkConcurrency: parallelism of bulk store operations.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerOrigin    string
	APIBasePath     string
	RequestTimeout  time.Duration
	DBPath          string
	RateLimit       float64
	RateBurst       int
	RenewSkew       time.Duration
	BulkConcurrency int
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerOrigin = "http://localhost:6543"
	c.APIBasePath = "/api"
	c.RequestTimeout = 15 * time.Second
	c.DBPath = "courtside.db"
	c.RateLimit = 10
	c.RateBurst = 20
	c.RenewSkew = 30 * time.Second
	c.BulkConcurrency = 4
	c.LogLevel = "info"
}

// BaseURL is the origin joined with the API base path.
func (c *Config) BaseURL() string {
	return c.ServerOrigin + c.APIBasePath
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (.env honoured), a JSON file (if present) and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, ".env")
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
