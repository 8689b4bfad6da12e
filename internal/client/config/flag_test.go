package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://auth:9090", "-g", "ws://game:9090/game", "-d", "alt.db", "-t", "5"},
			expected: &Config{
				APIBaseURL:     "http://auth:9090",
				GameSocketURL:  "ws://game:9090/game",
				DatabasePath:   "alt.db",
				RequestTimeout: 5 * time.Second,
			},
		},
		{
			name: "unknown flags ignored",
			args: []string{"cmd", "-a", "http://auth:9090", "-x", "whatever"},
			expected: &Config{
				APIBaseURL: "http://auth:9090",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}

func TestParseFlags_InvalidTimeoutPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-t", "abc"}

	config := &Config{}
	require.Panics(t, func() { parseFlags(config) })
}
