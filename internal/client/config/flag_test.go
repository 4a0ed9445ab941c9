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
		name      string
		args      []string
		expected  func(*Config)
		expectErr bool
	}{
		{
			name: "all flags",
			args: []string{"-b", "http://api:8000", "-f", "http://web", "-d", "x.db", "-l", "debug", "-o", "otel:4318", "-t", "5", "-s"},
			expected: func(c *Config) {
				c.BackendURL = "http://api:8000"
				c.FrontendURL = "http://web"
				c.DatabasePath = "x.db"
				c.LogLevel = "debug"
				c.OTelEndpoint = "otel:4318"
				c.RequestTimeout = 5 * time.Second
				c.SingleFlight = true
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"-x", "1", "-b=http://api", "--verbose"},
			expected: func(c *Config) { c.BackendURL = "http://api" },
		},
		{
			name:      "incorrect timeout",
			args:      []string{"-t", "abc"},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			err := parseFlags(cfg, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.expected(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestParseFlags_KeepsSubSecondTimeoutWhenUnset(t *testing.T) {
	cfg := defaults()
	cfg.RequestTimeout = 1500 * time.Millisecond
	require.NoError(t, parseFlags(cfg, []string{"-l", "warn"}))
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout)
}
