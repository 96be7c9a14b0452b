package core

// Color is the foreground color of a screen cell.
type Color uint8

// Palette used by the catcher renderer and the host UI.
const (
	ColorDefault Color = iota
	ColorRed
	ColorYellow
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightWhite
	ColorOrange
	ColorGray

	colorCount
)

// ansiCodes holds the 256-color palette index of each Color.
var ansiCodes = [colorCount]string{
	ColorDefault:      "",
	ColorRed:          "1",
	ColorYellow:       "3",
	ColorWhite:        "7",
	ColorBrightRed:    "9",
	ColorBrightYellow: "11",
	ColorBrightWhite:  "15",
	ColorOrange:       "208",
	ColorGray:         "245",
}

// ANSI returns the 256-color code for c, or "" for the terminal default.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return ansiCodes[c]
}

// Colors returns every palette entry in order.
func Colors() []Color {
	out := make([]Color, 0, colorCount)
	for c := range colorCount {
		out = append(out, c)
	}
	return out
}
