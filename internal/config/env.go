package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process settings read from WHATIF_* variables. CLI flags
// override these.
type Env struct {
	DataDir   string `env:"WHATIF_DATA_DIR" envDefault:".whatif"`
	OutputDir string `env:"WHATIF_OUTPUT_DIR" envDefault:"."`
	LogLevel  string `env:"WHATIF_LOG_LEVEL" envDefault:"info"`
	Seed      uint64 `env:"WHATIF_SEED"`
	Workers   int    `env:"WHATIF_WORKERS" envDefault:"4"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadEnv() (Env, error) {
	var e Env
	err := ParseEnv(&e)
	return e, err
}
