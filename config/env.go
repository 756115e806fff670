package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Runtime process-level knobs taken from the environment.
type Runtime struct {
	Workers     int    `env:"THREEPG_WORKERS" envDefault:"0"` // 0: no limit
	LogLevel    string `env:"THREEPG_LOG_LEVEL" envDefault:"info"`
	MetricsFile string `env:"THREEPG_METRICS_FILE"`
}

// ParseRuntime loads Runtime from environment variables.
func ParseRuntime() (Runtime, error) {
	var r Runtime
	if err := env.Parse(&r); err != nil {
		return r, fmt.Errorf("parse env: %w", err)
	}
	return r, nil
}
