package sprig

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Texture is an opaque GPU texture handle owned by a Backend. Two handles
// refer to the same texture iff they compare equal, so the dynamic type must
// be comparable with ==. Backends hand out pointers; a value type holding a
// slice or map panics when the renderer looks up its slot.
type Texture interface {
	Width() int
	Height() int
}

// TextureFactory creates textures. Every Backend is a TextureFactory.
type TextureFactory interface {
	NewTexture(img image.Image) (Texture, error)
}

// Sprite is a sub-rectangle of a texture, described by four UV corners in
// the order bottom-left, bottom-right, top-right, top-left.
type Sprite struct {
	texture Texture
	uv      [4]mgl32.Vec2
}

// NewSprite returns a sprite covering the UV rectangle [lo, hi] of tex.
func NewSprite(tex Texture, lo, hi mgl32.Vec2) *Sprite {
	return &Sprite{
		texture: tex,
		uv: [4]mgl32.Vec2{
			{lo[0], lo[1]},
			{hi[0], lo[1]},
			{hi[0], hi[1]},
			{lo[0], hi[1]},
		},
	}
}

// NewSpriteFromCoords returns the sprite found at cell coords of a sheet laid
// out in cells of cellSize pixels. spriteSize is measured in cells, so a
// sprite may span several of them.
func NewSpriteFromCoords(tex Texture, coords, cellSize, spriteSize mgl32.Vec2) *Sprite {
	w, h := float32(tex.Width()), float32(tex.Height())
	lo := mgl32.Vec2{
		coords[0] * cellSize[0] / w,
		coords[1] * cellSize[1] / h,
	}
	hi := mgl32.Vec2{
		(coords[0] + spriteSize[0]) * cellSize[0] / w,
		(coords[1] + spriteSize[1]) * cellSize[1] / h,
	}
	return NewSprite(tex, lo, hi)
}

// Texture returns the sheet the sprite was cut from.
func (s *Sprite) Texture() Texture {
	return s.texture
}

// UV returns the sprite's four texture coordinates.
func (s *Sprite) UV() [4]mgl32.Vec2 {
	return s.uv
}

// Width returns the sprite's width in texels.
func (s *Sprite) Width() float32 {
	return (s.uv[1][0] - s.uv[0][0]) * float32(s.texture.Width())
}

// Height returns the sprite's height in texels.
func (s *Sprite) Height() float32 {
	return (s.uv[2][1] - s.uv[1][1]) * float32(s.texture.Height())
}
