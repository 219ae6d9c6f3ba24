package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration
type Config struct {
	BaseURL    string        `env:"JSONQ_BASE_URL" envDefault:"http://localhost:3000"`
	Timeout    time.Duration `env:"JSONQ_TIMEOUT" envDefault:"10s"`
	RecordsKey string        `env:"JSONQ_RECORDS_KEY" envDefault:"records"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsDebug reports whether debug logging was requested
func (c *Config) IsDebug() bool {
	return strings.EqualFold(c.LogLevel, "debug")
}
