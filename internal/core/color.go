package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Palette used by the habitat renderer.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorCyan
	ColorWhite
	ColorBrightBlue
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBrown
	ColorTan
	ColorGold
	ColorCharcoal
)

// colorNames maps config-friendly names to palette entries.
var colorNames = map[string]Color{
	"default":  ColorDefault,
	"red":      ColorRed,
	"green":    ColorGreen,
	"yellow":   ColorYellow,
	"blue":     ColorBlue,
	"cyan":     ColorCyan,
	"white":    ColorBrightWhite,
	"orange":   ColorOrange,
	"gray":     ColorGray,
	"grey":     ColorGray,
	"brown":    ColorBrown,
	"tan":      ColorTan,
	"golden":   ColorGold,
	"gold":     ColorGold,
	"black":    ColorCharcoal,
	"charcoal": ColorCharcoal,
}

// ParseColor resolves a color name from configuration.
// Unknown names fall back to ColorDefault and ok=false.
func ParseColor(name string) (c Color, ok bool) {
	c, ok = colorNames[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}
