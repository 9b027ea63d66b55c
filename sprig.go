package sprig

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA converts c to a premultiplied color.RGBA, clamping components to
// [0, 1].
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Pos2 lifts a 2D position onto the z = 0 plane.
func Pos2(x, y float32) mgl32.Vec3 {
	return mgl32.Vec3{x, y, 0}
}

// QuadVertex is one vertex of a batched quad as uploaded to the backend.
type QuadVertex struct {
	Position     mgl32.Vec3
	Color        Color
	TexCoord     mgl32.Vec2
	TexIndex     float32 // texture slot, stored as a float like the shader attribute
	TilingFactor float32
}

// whitePixel returns the 1x1 opaque image backing texture slot 0.
func whitePixel() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3] = 0xff, 0xff, 0xff, 0xff
	return img
}
