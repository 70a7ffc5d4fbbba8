package app

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all the necessary configuration for an App instance to run.
// Environment variables prefixed SCREENWIRE_ seed the defaults; CLI flags
// override them.
type Config struct {
	// WiringPath points at a wiring file or a directory of wiring files.
	WiringPath string `env:"SCREENWIRE_WIRING_PATH"`
	// ManifestPath points at the directory containing screen and service
	// type manifests.
	ManifestPath string `env:"SCREENWIRE_MANIFEST_PATH" envDefault:"services"`

	LogFormat       string `env:"SCREENWIRE_LOG_FORMAT" envDefault:"json"`
	LogLevel        string `env:"SCREENWIRE_LOG_LEVEL" envDefault:"info"`
	HealthcheckPort int    `env:"SCREENWIRE_HEALTHCHECK_PORT" envDefault:"0"`
	WorkerCount     int    `env:"SCREENWIRE_WORKERS" envDefault:"10"`

	// CheckOnly stops after loading, validating and building the graph,
	// without providing services or readying screens.
	CheckOnly bool `env:"SCREENWIRE_CHECK" envDefault:"false"`
}

// ConfigFromEnv builds a Config seeded from the environment.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// NewConfig validates a fully resolved Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.WiringPath == "" {
		return nil, errors.New("WiringPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
