package colors

import (
	"fmt"
	"math"

	"github.com/muesli/termenv"
)

// HexToTmuxColor maps a hex colour onto tmux's 256-colour cube ("colourN").
// Invalid input maps to colour0.
func HexToTmuxColor(hex string) string {
	c, ok := parseHex(hex)
	if !ok {
		return "colour0"
	}
	r6 := cubeIndex(c.R)
	g6 := cubeIndex(c.G)
	b6 := cubeIndex(c.B)
	return fmt.Sprintf("colour%d", 16+36*r6+6*g6+b6)
}

func cubeIndex(v float64) int {
	i := int(math.Floor(v * 255 * 6 / 256))
	if i > 5 {
		i = 5
	}
	if i < 0 {
		i = 0
	}
	return i
}

// TmuxColor returns hex unchanged for true-colour terminals and the nearest
// palette entry otherwise.
func TmuxColor(hex string, profile termenv.Profile) string {
	if hex == "" {
		return "default"
	}
	if profile == termenv.TrueColor && ValidHex(hex) {
		return hex
	}
	return HexToTmuxColor(hex)
}
