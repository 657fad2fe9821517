package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envOverrides are read from TABSWITCH_* variables.
type envOverrides struct {
	LogLevel   string `envconfig:"LOG_LEVEL"`
	Theme      string `envconfig:"THEME"`
	Discovery  string `envconfig:"DISCOVERY"`
	ActivePage *int   `envconfig:"ACTIVE_PAGE"`
}

func applyEnv(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process("tabswitch", &env); err != nil {
		return fmt.Errorf("failed to load environment overrides: %w", err)
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.Discovery != "" {
		cfg.Discovery.Source = env.Discovery
	}
	if env.ActivePage != nil {
		cfg.ActivePage = *env.ActivePage
	}
	return nil
}
