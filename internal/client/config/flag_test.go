package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.LoadDefaults()
		return c
	}

	tests := []struct {
		name        string
		args        []string
		expected    func() *Config
		expectPanic bool
	}{
		{
			name: "origin and timeout",
			args: []string{"-s", "http://127.0.0.1:9090", "-t", "3"},
			expected: func() *Config {
				c := base()
				c.ServerOrigin = "http://127.0.0.1:9090"
				c.RequestTimeout = 3 * time.Second
				return c
			},
		},
		{
			name: "unrelated flags are ignored",
			args: []string{"-c", "conf.json", "-d", "/tmp/s.db", "-l", "debug"},
			expected: func() *Config {
				c := base()
				c.DBPath = "/tmp/s.db"
				c.LogLevel = "debug"
				return c
			},
		},
		{
			name:        "incorrect timeout",
			args:        []string{"-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected(), cfg))
		})
	}
}
