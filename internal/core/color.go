package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

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

// Attr is a bit set of text attributes.
type Attr uint8

const (
	AttrBold Attr = 1 << iota
	AttrReverse
)

// Has reports whether every bit of other is set.
func (a Attr) Has(other Attr) bool {
	return a&other == other
}

// Style is the color and attributes of a cell.
type Style struct {
	Color Color
	Attr  Attr
}

// Fg returns a plain style with the given foreground color.
func Fg(c Color) Style {
	return Style{Color: c}
}

// Bold returns the style with bold added.
func (s Style) Bold() Style {
	s.Attr |= AttrBold
	return s
}

// Reverse returns the style with reverse video added.
func (s Style) Reverse() Style {
	s.Attr |= AttrReverse
	return s
}
