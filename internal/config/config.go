package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config contains application configuration parameters.
type Config struct {
	LogLevel int     `env:"LOG_LEVEL" envDefault:"0"`
	Backend  Backend `envPrefix:"BACKEND_"`
	JWT      JWT     `envPrefix:"JWT_"`
	Vault    Vault   `envPrefix:"VAULT_"`
}

// Backend contains simulated-backend parameters.
type Backend struct {
	// LatencyScale multiplies every operation's base latency. Zero disables
	// the simulated delay entirely.
	LatencyScale float64 `env:"LATENCY_SCALE" envDefault:"1.0"`
	PageSize     int     `env:"PAGE_SIZE" envDefault:"5"`
	Seed         bool    `env:"SEED" envDefault:"true"`
}

// JWT contains session-token parameters.
type JWT struct {
	Secret string `env:"SECRET" envDefault:"devsecret"`
}

// Vault contains secret-store parameters. An empty path selects the
// in-memory store.
type Vault struct {
	Path string `env:"PATH" envDefault:""`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
