package boing

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// overlayRefresh is how often the debug overlay text is rebuilt, in seconds.
const overlayRefresh = 0.5

// debugOverlay draws the animator state and the current FPS/TPS in the
// canvas's top-left corner.
type debugOverlay struct {
	img     *ebiten.Image
	elapsed float64
	dirty   bool
}

func newDebugOverlay() *debugOverlay {
	// 140x60 is enough for four lines of DebugPrint text.
	return &debugOverlay{img: ebiten.NewImage(140, 60), dirty: true}
}

func (o *debugOverlay) update(dt float64, a *Animator) {
	o.elapsed += dt
	if o.elapsed < overlayRefresh && !o.dirty {
		return
	}
	o.elapsed = 0
	o.dirty = false

	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, overlayText(a, ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (o *debugOverlay) draw(screen *ebiten.Image) {
	screen.DrawImage(o.img, nil)
}

// overlayText formats the animator state for the debug overlay.
func overlayText(a *Animator, fps, tps float64) string {
	return fmt.Sprintf("%s #%d\nframe %d held %t\nFPS: %.1f\nTPS: %.1f",
		a.Phase(), a.Session(), a.Frame(), a.Held(), fps, tps)
}
