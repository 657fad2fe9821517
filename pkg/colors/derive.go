package colors

import (
	"github.com/lucasb-eyer/go-colorful"
)

var basePalette = []string{
	"#3498db", // Blue
	"#2ecc71", // Green
	"#e74c3c", // Red
	"#9b59b6", // Purple
	"#f39c12", // Orange
	"#1abc9c", // Turquoise
	"#e67e22", // Carrot
	"#34495e", // Dark blue-gray
}

// DefaultBaseColor returns a base colour from the built-in palette, cycling
// when index exceeds its length.
func DefaultBaseColor(index int) string {
	if index < 0 {
		index = -index
	}
	return basePalette[index%len(basePalette)]
}

// DeriveActiveBg creates a saturated, more vivid variant for the active tab.
func DeriveActiveBg(baseColor string, isDarkTerminalBg bool) string {
	c, ok := parseHex(baseColor)
	if !ok {
		return baseColor
	}
	h, s, l := c.Hsl()

	s = clamp(s*1.4, 0, 1)
	if isDarkTerminalBg {
		l = clamp(l*1.2, 0.35, 0.6)
	} else {
		l = clamp(l*0.9, 0.25, 0.5)
	}
	return colorful.Hsl(h, s, l).Clamped().Hex()
}

// DeriveInactiveBg creates a desaturated variant for inactive tabs.
func DeriveInactiveBg(baseColor string, isDarkTerminalBg bool) string {
	c, ok := parseHex(baseColor)
	if !ok {
		return baseColor
	}
	h, s, l := c.Hsl()

	s *= 0.7
	if isDarkTerminalBg {
		l = clamp(l*1.1, 0, 0.45)
	} else {
		l = clamp(l*0.95, 0, 0.4)
	}
	return colorful.Hsl(h, s, l).Clamped().Hex()
}

// DeriveTextColor picks white or black text for a background. White wins
// whenever it reaches the WCAG large-text ratio (3:1).
func DeriveTextColor(bgColor string) string {
	if ContrastRatio("#ffffff", bgColor) >= 3.0 {
		return "#ffffff"
	}
	if ContrastRatio("#000000", bgColor) >= 3.0 {
		return "#000000"
	}
	if IsLightColor(bgColor) {
		return "#000000"
	}
	return "#ffffff"
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
