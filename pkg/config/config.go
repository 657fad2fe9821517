package config

import (
	"github.com/b/tabswitch/pkg/colors"
	"github.com/b/tabswitch/pkg/paths"
	"github.com/b/tabswitch/pkg/tabs"
)

// Discovery sources
const (
	SourceStatic = "static"
	SourceTmux   = "tmux"
)

type Config struct {
	AutoInit            bool `yaml:"auto_init"`
	AutoDiscover        bool `yaml:"auto_discover"`
	AllowReselectActive bool `yaml:"allow_reselect_active"`
	IgnorePageObjects   bool `yaml:"ignore_page_objects"`

	// ActivePage is the selection hint an external editor writes; it is
	// applied through RefreshSync whenever the file changes.
	ActivePage int `yaml:"active_page"`

	Theme     string         `yaml:"theme"`
	ThemeMode string         `yaml:"theme_mode"` // auto, dark or light
	Colors    colors.Palette `yaml:"colors"`

	Discovery Discovery `yaml:"discovery"`
	Groups    []Group   `yaml:"groups"`
	Tabs      []TabSpec `yaml:"tabs"`
	Log       Log       `yaml:"log"`
}

type Discovery struct {
	Source string `yaml:"source"` // static or tmux
	Group  string `yaml:"group"`  // tmux only: restrict to one group
}

// Group assigns tmux windows to a tab group by window name.
type Group struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
}

// TabSpec is a manually declared tab.
type TabSpec struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

type Log struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		AutoInit:            true,
		AutoDiscover:        true,
		AllowReselectActive: true,
		Theme:               "dark",
		ThemeMode:           string(colors.ThemeModeAuto),
		Discovery:           Discovery{Source: SourceStatic},
		Groups:              []Group{DefaultGroup()},
		Log:                 Log{Level: "info"},
	}
}

// DefaultConfigPath returns the config file location
func DefaultConfigPath() string {
	return paths.ConfigPath()
}

// Palette resolves the tab colours: explicit colours win over the theme and
// anything still missing is derived.
func (c *Config) Palette(isDarkTerminalBg bool) colors.Palette {
	theme := colors.GetTheme(c.Theme)
	return colors.AutoFill(c.Colors.Merge(theme.Tabs), isDarkTerminalBg)
}

// Options converts the file settings into switcher options.
func (c *Config) Options(isDarkTerminalBg bool) tabs.Options {
	return tabs.Options{
		AutoInit:            c.AutoInit,
		AutoDiscover:        c.AutoDiscover,
		AllowReselectActive: c.AllowReselectActive,
		IgnoreSurfaces:      c.IgnorePageObjects,
		Colors:              c.Palette(isDarkTerminalBg),
	}
}
