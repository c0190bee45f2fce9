package theme

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

func parseHex(hex string) (r, g, b int, ok bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(n>>16) & 0xFF, int(n>>8) & 0xFF, int(n) & 0xFF, true
}

func formatHex(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Lighten blends each channel toward white: c + (255-c)*pct/100, floored.
// Input that is not a hex color is returned unchanged.
func Lighten(hex string, pct int) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	pct = clampPct(pct)
	up := func(c int) int { return c + (255-c)*pct/100 }
	return formatHex(up(r), up(g), up(b))
}

// Darken blends each channel toward black: c*(100-pct)/100, floored.
func Darken(hex string, pct int) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return hex
	}
	pct = clampPct(pct)
	down := func(c int) int { return c * (100 - pct) / 100 }
	return formatHex(down(r), down(g), down(b))
}

// ValidHex reports whether s is a #RGB or #RRGGBB color.
func ValidHex(s string) bool {
	_, _, _, ok := parseHex(s)
	return ok && strings.HasPrefix(strings.TrimSpace(s), "#")
}

// NRGBA converts a hex color. ok is false for anything unparsable.
func NRGBA(hex string) (c color.NRGBA, ok bool) {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF}, true
}
