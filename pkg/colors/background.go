package colors

import (
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// ThemeMode represents the theme detection mode
type ThemeMode string

const (
	ThemeModeAuto  ThemeMode = "auto"
	ThemeModeDark  ThemeMode = "dark"
	ThemeModeLight ThemeMode = "light"
)

// BackgroundDetector decides whether tab colours are derived for a dark or a
// light terminal. The first answer is cached.
type BackgroundDetector struct {
	mode         ThemeMode
	cachedIsDark *bool

	// overridable in tests
	getenv func(string) string
	query  func() (isDark bool, ok bool)
}

// NewBackgroundDetector creates a detector with the given mode
func NewBackgroundDetector(mode ThemeMode) *BackgroundDetector {
	return &BackgroundDetector{
		mode:   mode,
		getenv: os.Getenv,
		query:  queryTermenv,
	}
}

// IsDarkBackground returns true if the background is dark
func (d *BackgroundDetector) IsDarkBackground() bool {
	if d.cachedIsDark != nil {
		return *d.cachedIsDark
	}

	var isDark bool
	switch d.mode {
	case ThemeModeDark:
		isDark = true
	case ThemeModeLight:
		isDark = false
	default:
		isDark = d.detect()
	}

	d.cachedIsDark = &isDark
	return isDark
}

func (d *BackgroundDetector) detect() bool {
	if isDark, ok := d.checkCOLORFGBG(); ok {
		return isDark
	}
	if isDark, ok := d.query(); ok {
		return isDark
	}
	if profile := strings.ToLower(d.getenv("ITERM_PROFILE")); profile != "" {
		if strings.Contains(profile, "light") {
			return false
		}
		if strings.Contains(profile, "dark") {
			return true
		}
	}
	// Most terminal users run dark backgrounds
	return true
}

// checkCOLORFGBG reads "fg;bg" ANSI indices; 0-7 are dark, 8-15 light.
func (d *BackgroundDetector) checkCOLORFGBG() (bool, bool) {
	v := d.getenv("COLORFGBG")
	if v == "" {
		return false, false
	}
	parts := strings.Split(v, ";")
	if len(parts) < 2 {
		return false, false
	}
	bg, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return false, false
	}
	return bg < 8 || bg == 16, true
}

// queryTermenv sends OSC queries; tmux and screen swallow them.
func queryTermenv() (bool, bool) {
	output := termenv.NewOutput(os.Stdout)
	bgColor := output.BackgroundColor()
	if bgColor == nil {
		return false, false
	}
	if _, ok := bgColor.(termenv.NoColor); ok {
		return false, false
	}
	return output.HasDarkBackground(), true
}
