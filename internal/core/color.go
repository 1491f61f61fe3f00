package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color code.
type Color uint8

// Predefined colors.
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
)

// Semantic palette used by the cave renderer and HUD.
const (
	ColorWall      = ColorGray
	ColorEndZone   = ColorBrightGreen
	ColorStartPad  = ColorBlue
	ColorShields   = ColorBrightCyan
	ColorOneUp     = ColorBrightMagenta
	ColorCraft     = ColorBrightWhite
	ColorFlame     = ColorOrange
	ColorDamage    = ColorBrightRed
	ColorMessage   = ColorBrightYellow
	ColorLocked    = ColorDarkGray
	ColorUnlocked  = ColorWhite
	ColorHighlight = ColorBrightYellow
)
