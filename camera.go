package sprig

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// OrthoCamera is a 2D orthographic camera. World space is y-up; one world
// unit maps to Zoom pixels.
type OrthoCamera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float32
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float32
	// Rotation is the camera rotation in radians (counter-clockwise).
	Rotation float32
	// Width and Height are the size of the viewport in pixels.
	Width, Height float32

	scrollTween *scrollAnim
}

// NewOrthoCamera returns a camera centered on the origin for a viewport of
// the given size.
func NewOrthoCamera(width, height float32) *OrthoCamera {
	return &OrthoCamera{
		Zoom:   1,
		Width:  width,
		Height: height,
	}
}

// SetViewportSize updates the viewport after a resize.
func (c *OrthoCamera) SetViewportSize(width, height float32) {
	c.Width = width
	c.Height = height
}

// Projection returns the orthographic projection for the viewport and zoom.
func (c *OrthoCamera) Projection() mgl32.Mat4 {
	hw := c.Width / (2 * c.Zoom)
	hh := c.Height / (2 * c.Zoom)
	return mgl32.Ortho(-hw, hw, -hh, hh, -1, 1)
}

// View returns the world-to-camera transform.
func (c *OrthoCamera) View() mgl32.Mat4 {
	return mgl32.Translate3D(c.X, c.Y, 0).
		Mul4(mgl32.HomogRotate3DZ(c.Rotation)).
		Inv()
}

// ViewProjection returns Projection·View.
func (c *OrthoCamera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// WorldToScreen converts world coordinates to viewport pixels (y down).
func (c *OrthoCamera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	ndc := c.ViewProjection().Mul4x1(mgl32.Vec4{wx, wy, 0, 1})
	return NDCToPixels(ndc[0], ndc[1], c.Width, c.Height)
}

// ScreenToWorld converts viewport pixels (y down) to world coordinates.
func (c *OrthoCamera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	nx := sx/c.Width*2 - 1
	ny := 1 - sy/c.Height*2
	w := c.ViewProjection().Inv().Mul4x1(mgl32.Vec4{nx, ny, 0, 1})
	return w[0], w[1]
}

// NDCToPixels maps normalized device coordinates to pixel coordinates of a
// width x height target whose origin is the top-left corner.
func NDCToPixels(nx, ny, width, height float32) (px, py float32) {
	return (nx + 1) / 2 * width, (1 - ny) / 2 * height
}

// ScrollTo animates the camera to the given world position over duration seconds.
func (c *OrthoCamera) ScrollTo(x, y float32, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(c.X, x, duration, easeFn),
		tweenY: gween.New(c.Y, y, duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *OrthoCamera) Scrolling() bool {
	return c.scrollTween != nil
}

// Update advances the scroll animation by dt seconds.
func (c *OrthoCamera) Update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		c.X, c.scrollTween.doneX = c.scrollTween.tweenX.Update(dt)
	}
	if !c.scrollTween.doneY {
		c.Y, c.scrollTween.doneY = c.scrollTween.tweenY.Update(dt)
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
}
