package config

import "time"

// Config holds runtime settings for the opo console.
//
// Fields:
//   - APIBaseURL: base URL of the oposiciones REST API.
//   - RequestTimeout: deadline of a single HTTP attempt.
//   - StorePath: SQLite file holding the session credentials.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StorePath      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.RequestTimeout = 10 * time.Second
	c.StorePath = "opoclient.db"
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then overlays the JSON file, the environment
// and command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
