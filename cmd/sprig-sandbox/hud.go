package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/phanxgames/sprig"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const hudRefresh = 0.5 // seconds

// hud displays FPS, TPS and the renderer statistics of the last frame.
// The text is redrawn into its own image every hudRefresh seconds.
type hud struct {
	img   *ebiten.Image
	p     *message.Printer
	since float32
	text  string
}

func newHUD() *hud {
	// enough for four lines of debug font
	return &hud{
		img:   ebiten.NewImage(330, 68),
		p:     message.NewPrinter(language.English),
		since: hudRefresh,
	}
}

func (h *hud) update(dt float32, stats sprig.Statistics) {
	h.since += dt
	if h.since < hudRefresh {
		return
	}
	h.since = 0
	h.text = h.p.Sprintf("FPS: %.1f  TPS: %.1f\ndraw calls: %d  quads: %d\nspace: wander  r: recenter\nwheel: zoom  p: screenshot",
		ebiten.ActualFPS(), ebiten.ActualTPS(), stats.DrawCalls, stats.QuadCount)

	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, h.text)
}

func (h *hud) draw(screen *ebiten.Image) {
	screen.DrawImage(h.img, nil)
}
