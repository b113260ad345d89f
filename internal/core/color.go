package core

// Color is the foreground of a screen cell. The platform decides how each
// value looks on the terminal.
type Color uint8

// The first seven colors have bright variants at the same offset.
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
)

const brightOffset = ColorBrightRed - ColorRed

// IsBright reports whether c is one of the bright variants.
func (c Color) IsBright() bool {
	return c >= ColorBrightRed && c <= ColorBrightWhite
}

// Bright returns the bright variant of a base color. Colors without one
// (default, orange, gray and the bright colors themselves) map to bright white
// so a highlight is always visible.
func (c Color) Bright() Color {
	if c >= ColorRed && c <= ColorWhite {
		return c + brightOffset
	}
	if c.IsBright() {
		return c
	}
	return ColorBrightWhite
}
