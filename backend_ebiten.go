package sprig

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// EbitenTexture is a Texture backed by an ebiten image.
type EbitenTexture struct {
	img *ebiten.Image
}

func (t *EbitenTexture) Width() int  { return t.img.Bounds().Dx() }
func (t *EbitenTexture) Height() int { return t.img.Bounds().Dy() }

// Image returns the underlying ebiten image.
func (t *EbitenTexture) Image() *ebiten.Image { return t.img }

// EbitenBackend draws batches onto an ebiten image. Ebitengine has no
// multi-texture shader input for arbitrary images, so each draw call is
// split into one DrawTriangles32 per run of quads sharing a texture slot.
// The view-projection is applied on the CPU.
type EbitenBackend struct {
	target  *ebiten.Image
	clear   Color
	vp      mgl32.Mat4
	indices []uint32

	vertices []QuadVertex
	slots    [MaxTextureSlots]*EbitenTexture

	// scratch buffers reused across runs
	verts []ebiten.Vertex
	inds  []uint32
}

// NewEbitenBackend returns a backend with no target. Call SetTarget from
// the game's Draw method before rendering.
func NewEbitenBackend() *EbitenBackend {
	return &EbitenBackend{vp: mgl32.Ident4()}
}

// SetTarget sets the image subsequent draw calls render into.
func (b *EbitenBackend) SetTarget(img *ebiten.Image) {
	b.target = img
}

func (b *EbitenBackend) Init() error { return nil }

func (b *EbitenBackend) SetClearColor(c Color) { b.clear = c }

func (b *EbitenBackend) Clear() {
	if b.target != nil {
		b.target.Fill(b.clear.RGBA())
	}
}

func (b *EbitenBackend) NewTexture(img image.Image) (Texture, error) {
	return &EbitenTexture{img: ebiten.NewImageFromImage(img)}, nil
}

func (b *EbitenBackend) SetIndexData(indices []uint32) {
	b.indices = append(b.indices[:0], indices...)
}

func (b *EbitenBackend) SetViewProjection(m mgl32.Mat4) { b.vp = m }

func (b *EbitenBackend) SetVertexData(vertices []QuadVertex) {
	b.vertices = append(b.vertices[:0], vertices...)
}

func (b *EbitenBackend) BindTexture(slot int, t Texture) {
	et, _ := t.(*EbitenTexture)
	b.slots[slot] = et
}

func (b *EbitenBackend) DrawIndexed(indexCount int) {
	if b.target == nil {
		Logger().Warn("ebiten backend: draw without target")
		return
	}
	quads := indexCount / indicesPerQuad
	if n := len(b.vertices) / verticesPerQuad; quads > n {
		quads = n
	}
	for start := 0; start < quads; {
		end, slot := nextSlotRun(b.vertices, start, quads)
		b.drawRun(start, end, slot)
		start = end
	}
}

// nextSlotRun returns the end (exclusive) of the run of quads starting at
// start that sample the same texture slot, along with that slot.
func nextSlotRun(vertices []QuadVertex, start, quads int) (end, slot int) {
	slot = int(vertices[start*verticesPerQuad].TexIndex)
	end = start + 1
	for end < quads && int(vertices[end*verticesPerQuad].TexIndex) == slot {
		end++
	}
	return end, slot
}

func (b *EbitenBackend) drawRun(start, end, slot int) {
	tex := b.slots[slot]
	if tex == nil {
		return
	}
	tb := b.target.Bounds()
	tw, th := float32(tb.Dx()), float32(tb.Dy())
	sb := tex.img.Bounds()
	sw, sh := float32(sb.Dx()), float32(sb.Dy())

	b.verts = b.verts[:0]
	b.inds = b.inds[:0]
	repeat := false

	for i := start * verticesPerQuad; i < end*verticesPerQuad; i++ {
		v := &b.vertices[i]
		p := b.vp.Mul4x1(v.Position.Vec4(1))
		dx, dy := NDCToPixels(p[0], p[1], tw, th)
		u := v.TexCoord[0] * v.TilingFactor
		w := v.TexCoord[1] * v.TilingFactor
		if v.TilingFactor != 1 {
			repeat = true
		}
		b.verts = append(b.verts, ebiten.Vertex{
			DstX:   float32(tb.Min.X) + dx,
			DstY:   float32(tb.Min.Y) + dy,
			SrcX:   float32(sb.Min.X) + u*sw,
			SrcY:   float32(sb.Min.Y) + (1-w)*sh, // texture v grows upwards
			ColorR: v.Color.R,
			ColorG: v.Color.G,
			ColorB: v.Color.B,
			ColorA: v.Color.A,
		})
	}

	base := uint32(start * verticesPerQuad)
	for _, idx := range b.indices[start*indicesPerQuad : end*indicesPerQuad] {
		b.inds = append(b.inds, idx-base)
	}

	var op ebiten.DrawTrianglesOptions
	if repeat {
		op.Address = ebiten.AddressRepeat
	}
	b.target.DrawTriangles32(b.verts, b.inds, tex.img, &op)
}
