package main

import (
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/sprig"
	"github.com/phanxgames/sprig/ecs"
	"github.com/tanema/gween/ease"
)

// sandbox holds everything a frame needs, independent of the backend.
type sandbox struct {
	cfg      Config
	renderer *sprig.Renderer
	scene    *ecs.Scene
	camera   *sprig.OrthoCamera
	rng      *rand.Rand
}

func (s *sandbox) step(dt float32) {
	s.camera.Update(dt)
	s.scene.Update(dt)
}

func (s *sandbox) draw() {
	s.renderer.ResetStatistics()
	s.renderer.Clear(s.cfg.clearColor())
	s.scene.Render(s.renderer, s.camera)
}

// wander scrolls the camera to a random point of the playfield.
func (s *sandbox) wander() {
	x := (s.rng.Float32() - 0.5) * float32(s.cfg.Width) / 2
	y := (s.rng.Float32() - 0.5) * float32(s.cfg.Height) / 2
	s.camera.ScrollTo(x, y, 1.5, ease.InOutQuad)
}

// game runs the sandbox inside an ebiten window.
type game struct {
	*sandbox
	backend *sprig.EbitenBackend
	hud     *hud
	shots   screenshots
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.wander()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.camera.ScrollTo(0, 0, 0.5, ease.OutCubic)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.shots.take("sandbox")
	}
	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.camera.Zoom = clamp(g.camera.Zoom*(1+float32(wy)*0.1), 0.1, 10)
	}
	dt := 1 / float32(ebiten.TPS())
	g.step(dt)
	g.hud.update(dt, g.renderer.Statistics())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.backend.SetTarget(screen)
	g.draw()
	g.hud.draw(screen)
	g.shots.flush(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.camera.SetViewportSize(float32(outsideWidth), float32(outsideHeight))
	return outsideWidth, outsideHeight
}

func runWindow(s *sandbox, b *sprig.EbitenBackend) error {
	ebiten.SetWindowSize(s.cfg.Width, s.cfg.Height)
	ebiten.SetWindowTitle("sprig sandbox")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(&game{
		sandbox: s,
		backend: b,
		hud:     newHUD(),
		shots:   screenshots{dir: s.cfg.ScreenshotDir},
	})
}

// runHeadless renders cfg.Frames frames without a window and logs the
// renderer statistics.
func runHeadless(s *sandbox) {
	const dt = 1.0 / 60
	var total sprig.Statistics
	rb, _ := s.renderer.Backend().(*sprig.RecordingBackend)
	for frame := 0; frame < s.cfg.Frames; frame++ {
		if frame%60 == 0 {
			s.wander()
		}
		s.step(dt)
		if rb != nil {
			rb.Reset()
		}
		s.draw()
		st := s.renderer.Statistics()
		total.DrawCalls += st.DrawCalls
		total.QuadCount += st.QuadCount
		sprig.Logger().Debug("frame", "n", frame, "stats", st)
	}
	sprig.Logger().Info("headless run finished", "frames", s.cfg.Frames, "stats", total)
}
