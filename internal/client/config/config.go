package config

import "time"

// Config holds runtime settings for the Skyjo client.
//
// Fields:
//   - APIBaseURL: base URL of the remote auth API.
//   - GameSocketURL: WebSocket URL of the game server.
//   - DatabasePath: location of the local sqlite database (token + audit log).
//   - RequestTimeout: client-side deadline for auth API calls.
type Config struct {
	APIBaseURL     string
	GameSocketURL  string
	DatabasePath   string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.GameSocketURL = "ws://localhost:3000/game"
	c.DatabasePath = "skyjo.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
