package fakeapi

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/courtside/internal/flagx"
)

// Config holds development server settings.
//
//   - Addr: listen address.
//   - SecretKey: HMAC secret for signing access tokens (HS256).
//   - AccessTokenTTL: lifetime of issued tokens.
type Config struct {
	Addr           string
	SecretKey      string
	AccessTokenTTL time.Duration
}

func (c *Config) LoadDefaults() {
	c.Addr = ":6543"
	c.SecretKey = "courtside-dev-secret"
	c.AccessTokenTTL = 15 * time.Minute
}

// ParseFlags overlays cfg with command-line flags:
//
//	-a string   listen address
//	-k string   token signing secret
//	-t int      access token lifetime, seconds
func ParseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-k", "-t"})

	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "a", cfg.Addr, "listen address")
	fs.StringVar(&cfg.SecretKey, "k", cfg.SecretKey, "token signing secret")
	ttl := fs.Int("t", int(cfg.AccessTokenTTL.Seconds()), "access token lifetime (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.AccessTokenTTL = time.Duration(*ttl) * time.Second
		}
	})
}
