package bento

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Hues step by the golden angle so consecutive cell ids land far apart on
// the wheel while the assignment stays deterministic per id.
const (
	paletteHueStep = 137.50776405003785
	paletteHueBase = 40.0
	paletteChroma  = 0.28
	paletteLum     = 0.72
)

// CellColor returns the deterministic fill color for a cell id. Two grids
// assign identical colors to identical ids regardless of layout.
func CellColor(id int) Color {
	hue := math.Mod(paletteHueBase+float64(id)*paletteHueStep, 360)
	c := colorful.Hcl(hue, paletteChroma, paletteLum).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: 1}
}
