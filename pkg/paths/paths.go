// Package paths resolves where tabswitch keeps its config and state files.
//
// Layout (XDG-style):
//
//	Config: ~/.config/tabswitch/config.yaml   (override: TABSWITCH_CONFIG_DIR)
//	State:  ~/.local/state/tabswitch/         (override: TABSWITCH_STATE_DIR)
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const appName = "tabswitch"

// cachedDir resolves a directory once: env override first, then a path
// below the home directory.
type cachedDir struct {
	once   sync.Once
	value  string
	envKey string
	parts  []string
}

func (d *cachedDir) get() string {
	d.once.Do(func() {
		if env := os.Getenv(d.envKey); env != "" {
			d.value = env
			return
		}
		home, err := os.UserHomeDir()
		if err != nil {
			d.value = "."
			return
		}
		d.value = filepath.Join(append([]string{home}, d.parts...)...)
	})
	return d.value
}

func (d *cachedDir) ensure() (string, error) {
	dir := d.get()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create dir %s: %w", dir, err)
	}
	return dir, nil
}

var (
	configDir = newConfigDir()
	stateDir  = newStateDir()
)

func newConfigDir() *cachedDir {
	return &cachedDir{envKey: "TABSWITCH_CONFIG_DIR", parts: []string{".config", appName}}
}

func newStateDir() *cachedDir {
	return &cachedDir{envKey: "TABSWITCH_STATE_DIR", parts: []string{".local", "state", appName}}
}

// ConfigDir resolves the config directory.
func ConfigDir() string { return configDir.get() }

// StateDir resolves the state directory.
func StateDir() string { return stateDir.get() }

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StatePath returns the full path to a state file (e.g. "perf.log").
func StatePath(filename string) string {
	return filepath.Join(StateDir(), filename)
}

// EnsureConfigDir creates the config directory if needed and returns it.
func EnsureConfigDir() (string, error) { return configDir.ensure() }

// EnsureStateDir creates the state directory if needed and returns it.
func EnsureStateDir() (string, error) { return stateDir.ensure() }

// ResetForTest clears cached values so tests can re-run resolution logic.
func ResetForTest() {
	configDir = newConfigDir()
	stateDir = newStateDir()
}
