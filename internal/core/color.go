package core

// Color is the foreground colour of a screen cell.
// The platform maps each value to an ANSI 256 colour.
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
	ColorEmber // Deep red-orange used for lava and heat
	ColorAsh   // Dark gray for locked entries
)

// HeatRamp runs from cold to hot. Renderers index it by intensity.
var HeatRamp = []Color{ColorAsh, ColorGray, ColorRed, ColorEmber, ColorOrange, ColorBrightYellow}

// Heat picks a HeatRamp colour for a value in [0, 1].
func Heat(v float64) Color {
	i := int(ClampF(v, 0, 1) * float64(len(HeatRamp)-1))
	return HeatRamp[i]
}
