package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		start       *Config
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name:  "all flags",
			start: &Config{},
			args: []string{
				"-a", "127.0.0.1:9090", "-k", "mongo", "-d", "db", "-m", "mongodb://m", "-b", "favs",
				"-s", "secret", "-t", "30", "-l", "5", "-g", "logrus", "-v", "debug",
			},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				Storage:                     "mongo",
				DatabaseDSN:                 "db",
				MongoURI:                    "mongodb://m",
				MongoDatabase:               "favs",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 30 * time.Minute,
				FavouritesLimit:             5,
				LogBackend:                  "logrus",
				LogLevel:                    "debug",
			},
		},
		{
			name:     "foreign flags ignored, sub-minute ttl kept without -t",
			start:    &Config{AccessTokenValidityDuration: 90 * time.Second},
			args:     []string{"-c", "cfg.json", "-s", "k"},
			expected: &Config{AccessTokenValidityDuration: 90 * time.Second, SecretKey: "k"},
		},
		{
			name:     "zero ttl disables expiry",
			start:    &Config{AccessTokenValidityDuration: time.Hour},
			args:     []string{"-t", "0"},
			expected: &Config{},
		},
		{
			name:        "non-numeric limit",
			start:       &Config{},
			args:        []string{"-l", "many"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(tt.start, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(tt.start, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, tt.start))
		})
	}
}
