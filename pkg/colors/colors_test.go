package colors

import (
	"math"
	"testing"

	"github.com/muesli/termenv"
)

func TestLuminance(t *testing.T) {
	tests := []struct {
		name     string
		hexColor string
		want     float64
		delta    float64
	}{
		{"black", "#000000", 0.0, 0.001},
		{"white", "#ffffff", 1.0, 0.001},
		{"mid gray", "#808080", 0.2159, 0.01},
		{"pure red", "#ff0000", 0.2126, 0.01},
		{"pure green", "#00ff00", 0.7152, 0.01},
		{"pure blue", "#0000ff", 0.0722, 0.01},
		{"no hash prefix", "ffffff", 1.0, 0.001},
		{"invalid", "#zzzzzz", 0.0, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Luminance(tt.hexColor)
			if math.Abs(got-tt.want) > tt.delta {
				t.Errorf("Luminance(%q) = %v, want %v (delta %v)", tt.hexColor, got, tt.want, tt.delta)
			}
		})
	}
}

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		name  string
		fg    string
		bg    string
		want  float64
		delta float64
	}{
		{"black on white", "#000000", "#ffffff", 21.0, 0.1},
		{"white on black", "#ffffff", "#000000", 21.0, 0.1},
		{"same color", "#808080", "#808080", 1.0, 0.1},
		{"white on mid gray", "#ffffff", "#808080", 4.0, 0.5},
		{"black on mid gray", "#000000", "#808080", 5.3, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ContrastRatio(tt.fg, tt.bg)
			if math.Abs(got-tt.want) > tt.delta {
				t.Errorf("ContrastRatio(%q, %q) = %v, want %v", tt.fg, tt.bg, got, tt.want)
			}
		})
	}
}

func TestDeriveTextColor(t *testing.T) {
	tests := []struct {
		name    string
		bgColor string
		want    string
	}{
		{"dark background -> white text", "#000000", "#ffffff"},
		{"light background -> black text", "#ffffff", "#000000"},
		{"dark blue -> white text", "#1a1a2e", "#ffffff"},
		{"light yellow -> black text", "#f0f0d0", "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveTextColor(tt.bgColor); got != tt.want {
				t.Errorf("DeriveTextColor(%q) = %q, want %q", tt.bgColor, got, tt.want)
			}
		})
	}
}

func TestLightenAndDarken(t *testing.T) {
	if got := lightenColorBy("#000000", 1.0); got != "#ffffff" {
		t.Errorf("lighten black fully = %q", got)
	}
	if got := darkenColorBy("#ffffff", 1.0); got != "#000000" {
		t.Errorf("darken white fully = %q", got)
	}
	if got := lightenColorBy("#ffffff", 0.5); got != "#ffffff" {
		t.Errorf("lighten white = %q", got)
	}
	if got := lightenColorBy("not-a-color", 0.5); got != "not-a-color" {
		t.Errorf("invalid input should pass through, got %q", got)
	}
}

func TestEnsureContrast(t *testing.T) {
	tests := []struct {
		name     string
		fg       string
		bg       string
		minRatio float64
	}{
		{"already meets WCAG AA", "#ffffff", "#000000", 4.5},
		{"needs adjustment", "#808080", "#666666", 4.5},
		{"dark on dark", "#333333", "#222222", 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsureContrast(tt.fg, tt.bg, tt.minRatio)
			if ratio := ContrastRatio(got, tt.bg); ratio < tt.minRatio {
				t.Errorf("EnsureContrast(%q, %q) = %q with ratio %v, want >= %v", tt.fg, tt.bg, got, ratio, tt.minRatio)
			}
		})
	}
}

func TestDeriveActiveDiffersFromInactive(t *testing.T) {
	for _, dark := range []bool{true, false} {
		active := DeriveActiveBg("#3498db", dark)
		inactive := DeriveInactiveBg("#3498db", dark)
		if !ValidHex(active) || !ValidHex(inactive) {
			t.Fatalf("derived colours should be valid hex: %q %q", active, inactive)
		}
		if active == inactive {
			t.Fatalf("active and inactive should differ (dark=%v): %s", dark, active)
		}
	}
	if got := DeriveActiveBg("bogus", true); got != "bogus" {
		t.Fatalf("invalid base should pass through, got %q", got)
	}
}

func TestAutoFillKeepsExplicitColors(t *testing.T) {
	p := AutoFill(Palette{Base: "#2ecc71", ActiveBg: "#000000"}, true)
	if p.ActiveBg != "#000000" {
		t.Fatalf("explicit active bg overwritten: %s", p.ActiveBg)
	}
	if p.ActiveFg != "#ffffff" {
		t.Fatalf("expected white text on black, got %s", p.ActiveFg)
	}
	if p.InactiveBg == "" || p.InactiveFg == "" {
		t.Fatalf("inactive colours should be derived: %+v", p)
	}
}

func TestAutoFillWithoutBase(t *testing.T) {
	p := AutoFill(Palette{}, false)
	if p.ActiveBg == "" || p.ActiveFg == "" || p.InactiveBg == "" || p.InactiveFg == "" {
		t.Fatalf("expected all colours derived, got %+v", p)
	}
}

func TestPaletteStateFor(t *testing.T) {
	p := Palette{ActiveBg: "#111111", ActiveFg: "#eeeeee", InactiveBg: "#222222", InactiveFg: "#dddddd"}
	if got := p.StateFor(true); got != (State{Active: true, Bg: "#111111", Fg: "#eeeeee"}) {
		t.Fatalf("active state = %+v", got)
	}
	if got := p.StateFor(false); got != (State{Active: false, Bg: "#222222", Fg: "#dddddd"}) {
		t.Fatalf("inactive state = %+v", got)
	}
}

func TestPaletteMerge(t *testing.T) {
	got := Palette{ActiveBg: "#111111"}.Merge(Palette{ActiveBg: "#999999", InactiveFg: "#888888"})
	if got.ActiveBg != "#111111" || got.InactiveFg != "#888888" {
		t.Fatalf("merge = %+v", got)
	}
}

func TestBackgroundDetector(t *testing.T) {
	tests := []struct {
		name      string
		mode      ThemeMode
		colorfgbg string
		queryDark bool
		queryOK   bool
		want      bool
	}{
		{"forced dark", ThemeModeDark, "", false, false, true},
		{"forced light", ThemeModeLight, "", true, true, false},
		{"COLORFGBG light", ThemeModeAuto, "0;15", true, true, false},
		{"COLORFGBG dark", ThemeModeAuto, "15;0", false, true, true},
		{"termenv answer", ThemeModeAuto, "", false, true, false},
		{"nothing known", ThemeModeAuto, "", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewBackgroundDetector(tt.mode)
			d.getenv = func(key string) string {
				if key == "COLORFGBG" {
					return tt.colorfgbg
				}
				return ""
			}
			d.query = func() (bool, bool) { return tt.queryDark, tt.queryOK }
			if got := d.IsDarkBackground(); got != tt.want {
				t.Errorf("IsDarkBackground() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHexToTmuxColor(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#000000", "colour16"},
		{"#ffffff", "colour231"},
		{"#ff0000", "colour196"},
		{"garbage", "colour0"},
	}
	for _, tt := range tests {
		if got := HexToTmuxColor(tt.hex); got != tt.want {
			t.Errorf("HexToTmuxColor(%q) = %q, want %q", tt.hex, got, tt.want)
		}
	}
	if got := TmuxColor("#abcdef", termenv.TrueColor); got != "#abcdef" {
		t.Errorf("true colour should pass through, got %q", got)
	}
	if got := TmuxColor("", termenv.ANSI256); got != "default" {
		t.Errorf("empty colour = %q", got)
	}
}

func TestGetThemeFallback(t *testing.T) {
	if got := GetTheme("does-not-exist"); got.Name != "Dark" {
		t.Fatalf("expected dark fallback, got %s", got.Name)
	}
	names := ListThemes()
	if len(names) != len(Themes) {
		t.Fatalf("ListThemes returned %d names, want %d", len(names), len(Themes))
	}
}
