package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/courtside/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-s string   server origin
//	-b string   API base path
//	-t int      request timeout in seconds
//	-d string   session database path
//	-l string   log level
//
// Only the flags listed above are considered (flagx.FilterArgs), so other
// components may define their own. Parse errors panic.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-s", "-b", "-t", "-d", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerOrigin, "s", cfg.ServerOrigin, "server origin (scheme://host:port)")
	fs.StringVar(&cfg.APIBasePath, "b", cfg.APIBasePath, "API base path")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "session database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
