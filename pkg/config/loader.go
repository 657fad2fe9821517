package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/b/tabswitch/pkg/colors"
)

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrGroupExists   = errors.New("group already exists")
	ErrInvalidConfig = errors.New("invalid config")
)

// LoadFile reads path on top of Default() without environment overrides.
// Use it when the result is written back with SaveConfig.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads path on top of Default() and applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is LoadConfig, except that a missing file yields the defaults.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cfg, err
}

// SaveConfig writes the config to the specified path
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate rejects settings the switcher cannot work with.
func Validate(cfg *Config) error {
	switch cfg.Discovery.Source {
	case SourceStatic, SourceTmux:
	default:
		return fmt.Errorf("%w: unknown discovery source %q", ErrInvalidConfig, cfg.Discovery.Source)
	}
	switch colors.ThemeMode(cfg.ThemeMode) {
	case colors.ThemeModeAuto, colors.ThemeModeDark, colors.ThemeModeLight:
	default:
		return fmt.Errorf("%w: unknown theme mode %q", ErrInvalidConfig, cfg.ThemeMode)
	}
	for _, group := range cfg.Groups {
		if _, err := regexp.Compile(group.Pattern); err != nil {
			return fmt.Errorf("%w: group %q: %v", ErrInvalidConfig, group.Name, err)
		}
	}
	seen := make(map[string]bool, len(cfg.Tabs))
	for _, tab := range cfg.Tabs {
		if tab.ID == "" {
			return fmt.Errorf("%w: tab without id", ErrInvalidConfig)
		}
		if seen[tab.ID] {
			return fmt.Errorf("%w: duplicate tab id %q", ErrInvalidConfig, tab.ID)
		}
		seen[tab.ID] = true
	}
	return nil
}

// AddGroup inserts group before the "Default" group so that the catch-all
// pattern is matched last.
func AddGroup(cfg *Config, group Group) error {
	if FindGroup(cfg, group.Name) != nil {
		return ErrGroupExists
	}
	for i, g := range cfg.Groups {
		if g.Name == "Default" {
			cfg.Groups = append(cfg.Groups[:i], append([]Group{group}, cfg.Groups[i:]...)...)
			return nil
		}
	}
	cfg.Groups = append(cfg.Groups, group)
	return nil
}

// FindGroup returns a pointer to the group with the given name, or nil if not found
func FindGroup(cfg *Config, name string) *Group {
	for i := range cfg.Groups {
		if cfg.Groups[i].Name == name {
			return &cfg.Groups[i]
		}
	}
	return nil
}

// DefaultGroup is the catch-all group.
func DefaultGroup() Group {
	return Group{Name: "Default", Pattern: ".*"}
}
