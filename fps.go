package bento

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawFPS prints the current FPS and TPS in the top-left corner of the
// screen. Toggled at runtime with the F key.
func drawFPS(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f",
		ebiten.ActualFPS(), ebiten.ActualTPS()))
}
