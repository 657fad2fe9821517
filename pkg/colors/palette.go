package colors

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the shared active/inactive colour configuration applied to every
// tab of a group. Base is only used to derive missing entries.
type Palette struct {
	Base       string `yaml:"base,omitempty"`
	ActiveBg   string `yaml:"active_bg,omitempty"`
	ActiveFg   string `yaml:"active_fg,omitempty"`
	InactiveBg string `yaml:"inactive_bg,omitempty"`
	InactiveFg string `yaml:"inactive_fg,omitempty"`
}

// State is the colour a tab currently shows.
type State struct {
	Active bool
	Bg     string
	Fg     string
}

// StateFor maps an active flag onto the palette.
func (p Palette) StateFor(active bool) State {
	if active {
		return State{Active: true, Bg: p.ActiveBg, Fg: p.ActiveFg}
	}
	return State{Active: false, Bg: p.InactiveBg, Fg: p.InactiveFg}
}

// IsZero reports whether no colour has been configured at all
func (p Palette) IsZero() bool {
	return p == Palette{}
}

// Merge returns p with empty fields taken from fallback.
func (p Palette) Merge(fallback Palette) Palette {
	if p.Base == "" {
		p.Base = fallback.Base
	}
	if p.ActiveBg == "" {
		p.ActiveBg = fallback.ActiveBg
	}
	if p.ActiveFg == "" {
		p.ActiveFg = fallback.ActiveFg
	}
	if p.InactiveBg == "" {
		p.InactiveBg = fallback.InactiveBg
	}
	if p.InactiveFg == "" {
		p.InactiveFg = fallback.InactiveFg
	}
	return p
}

// AutoFill derives any missing colour from Base (or the default base colour)
// and makes sure both foregrounds stay readable on their backgrounds.
func AutoFill(p Palette, isDarkTerminalBg bool) Palette {
	base := p.Base
	if !ValidHex(base) {
		base = DefaultBaseColor(0)
	}
	if p.ActiveBg == "" {
		p.ActiveBg = DeriveActiveBg(base, isDarkTerminalBg)
	}
	if p.InactiveBg == "" {
		p.InactiveBg = DeriveInactiveBg(base, isDarkTerminalBg)
	}
	if p.ActiveFg == "" {
		p.ActiveFg = DeriveTextColor(p.ActiveBg)
	}
	if p.InactiveFg == "" {
		p.InactiveFg = DeriveTextColor(p.InactiveBg)
	}
	p.ActiveFg = EnsureContrast(p.ActiveFg, p.ActiveBg, 4.5)
	p.InactiveFg = EnsureContrast(p.InactiveFg, p.InactiveBg, 3.0)
	return p
}

// Style renders the state as a lipgloss style for a tab label.
func (s State) Style() lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 1)
	if s.Bg != "" {
		style = style.Background(lipgloss.Color(s.Bg))
	}
	if s.Fg != "" {
		style = style.Foreground(lipgloss.Color(s.Fg))
	}
	if s.Active {
		style = style.Bold(true)
	}
	return style
}
