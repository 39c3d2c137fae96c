package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
	ColorBrown
)

// Shades orders wall glyphs from nearest to farthest.
var Shades = []rune{'█', '▓', '▒', '░', '·'}

// Shade picks a glyph for a distance, with fog reaching the last shade at
// fog tiles. A non-positive fog always returns the nearest shade.
func Shade(distance, fog float64) rune {
	if fog <= 0 || distance <= 0 {
		return Shades[0]
	}
	i := int(distance / fog * float64(len(Shades)-1))
	return Shades[Clamp(i, 0, len(Shades)-1)]
}

// Dim returns the darker variant used for shaded wall faces.
func (c Color) Dim() Color {
	switch c {
	case ColorBrightRed:
		return ColorRed
	case ColorBrightGreen:
		return ColorGreen
	case ColorBrightYellow:
		return ColorYellow
	case ColorBrightBlue:
		return ColorBlue
	case ColorBrightMagenta:
		return ColorMagenta
	case ColorBrightCyan:
		return ColorCyan
	case ColorBrightWhite:
		return ColorWhite
	case ColorWhite, ColorDefault:
		return ColorGray
	case ColorGray:
		return ColorDarkGray
	case ColorOrange:
		return ColorBrown
	default:
		return c
	}
}
