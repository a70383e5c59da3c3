package koipond

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWidget displays the current FPS and TPS in the top-left corner,
// refreshed about every half second.
type fpsWidget struct {
	img   *ebiten.Image
	since float64
	op    ebiten.DrawImageOptions
}

func newFPSWidget() *fpsWidget {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	return &fpsWidget{img: ebiten.NewImage(100, 32), since: 0.5}
}

func (f *fpsWidget) update(dt float64) {
	f.since += dt
	if f.since < 0.5 {
		return
	}
	f.since = 0

	f.img.Clear()
	// Semi-transparent background for readability
	f.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (f *fpsWidget) draw(screen *ebiten.Image) {
	f.op.GeoM.Reset()
	screen.DrawImage(f.img, &f.op)
}
