package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type envConfig struct {
	APIBaseURL     string        `env:"OPO_API_BASE_URL"`
	RequestTimeout time.Duration `env:"OPO_REQUEST_TIMEOUT"`
	StorePath      string        `env:"OPO_STORE_PATH"`
	LogLevel       string        `env:"OPO_LOG_LEVEL"`
}

// parseEnv overlays cfg with the OPO_* variables that are set. It panics on
// malformed values.
func parseEnv(cfg *Config) {
	ec := envConfig{
		APIBaseURL:     cfg.APIBaseURL,
		RequestTimeout: cfg.RequestTimeout,
		StorePath:      cfg.StorePath,
		LogLevel:       cfg.LogLevel,
	}
	if err := cleanenv.ReadEnv(&ec); err != nil {
		panic(err)
	}

	cfg.APIBaseURL = ec.APIBaseURL
	cfg.RequestTimeout = ec.RequestTimeout
	cfg.StorePath = ec.StorePath
	cfg.LogLevel = ec.LogLevel
}
