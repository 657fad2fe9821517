package colors

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// parseHex accepts "#rrggbb", "rrggbb" and the 3-digit short forms.
func parseHex(hexColor string) (colorful.Color, bool) {
	s := strings.TrimSpace(hexColor)
	if s == "" {
		return colorful.Color{}, false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, false
	}
	return c, true
}

// ValidHex reports whether s parses as a hex colour
func ValidHex(s string) bool {
	_, ok := parseHex(s)
	return ok
}

// Luminance calculates the WCAG relative luminance of a colour.
// Returns a value between 0 (black) and 1 (white); invalid colours are 0.
func Luminance(hexColor string) float64 {
	c, ok := parseHex(hexColor)
	if !ok {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio calculates the WCAG contrast ratio between two colours.
// Returns a value between 1 (no contrast) and 21.
func ContrastRatio(fg, bg string) float64 {
	l1 := Luminance(fg)
	l2 := Luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// EnsureContrast nudges fg away from bg until minRatio is met.
// minRatio should be 4.5 for WCAG AA, 7.0 for AAA.
func EnsureContrast(fg, bg string, minRatio float64) string {
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}

	lighter := Luminance(fg) > Luminance(bg)
	for step := 1; step <= 10; step++ {
		amount := float64(step) / 10
		var adjusted string
		if lighter {
			adjusted = lightenColorBy(fg, amount)
		} else {
			adjusted = darkenColorBy(fg, amount)
		}
		if ContrastRatio(adjusted, bg) >= minRatio {
			return adjusted
		}
	}

	if Luminance(bg) > 0.5 {
		return "#000000"
	}
	return "#ffffff"
}

// IsLightColor returns true if the colour is closer to white than black
func IsLightColor(hexColor string) bool {
	return Luminance(hexColor) > 0.5
}

func lightenColorBy(hexColor string, amount float64) string {
	c, ok := parseHex(hexColor)
	if !ok {
		return hexColor
	}
	return c.BlendRgb(white, amount).Clamped().Hex()
}

func darkenColorBy(hexColor string, amount float64) string {
	c, ok := parseHex(hexColor)
	if !ok {
		return hexColor
	}
	return c.BlendRgb(black, amount).Clamped().Hex()
}
