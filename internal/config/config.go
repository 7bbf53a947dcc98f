package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	CatalogPath    string        `env:"CATALOG_PATH" envDefault:"filament_data.csv"`
	CurrencySymbol string        `env:"CURRENCY_SYMBOL" envDefault:"£"`
	MenuTitle      string        `env:"MENU_TITLE" envDefault:"Select Filament (Arrow Keys + Enter):"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"warn"`
	LogOutput      string        `env:"LOG_OUTPUT" envDefault:"stderr"`
	ExitHold       time.Duration `env:"EXIT_HOLD" envDefault:"0s"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Validate fields env cannot express
	if strings.TrimSpace(cfg.CatalogPath) == "" {
		return nil, fmt.Errorf("catalog path must not be empty")
	}
	if cfg.ExitHold < 0 {
		return nil, fmt.Errorf("exit hold must not be negative, got %s", cfg.ExitHold)
	}

	return &cfg, nil
}

// WithArgs applies command line overrides. The first positional argument,
// when present, replaces the catalog path.
func (c *Config) WithArgs(args []string) *Config {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		c.CatalogPath = args[0]
	}
	return c
}
