package sprig

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	verticesPerQuad = 4
	indicesPerQuad  = 6

	// MaxQuads is the number of quads a single batch can hold.
	MaxQuads    = 10000
	MaxVertices = MaxQuads * verticesPerQuad
	MaxIndices  = MaxQuads * indicesPerQuad

	// MaxTextureSlots is the size of the per-draw-call texture table. Slot 0
	// always holds the blank texture.
	MaxTextureSlots = 16
)

// Local corners of the unit quad and their whole-texture UVs.
var (
	quadPositions = [verticesPerQuad]mgl32.Vec4{
		{-0.5, -0.5, 0, 1},
		{0.5, -0.5, 0, 1},
		{0.5, 0.5, 0, 1},
		{-0.5, 0.5, 0, 1},
	}
	quadTexCoords = [verticesPerQuad]mgl32.Vec2{
		{0, 0},
		{1, 0},
		{1, 1},
		{0, 1},
	}
)

// Camera supplies the view-projection matrix for a scene.
type Camera interface {
	ViewProjection() mgl32.Mat4
}

// Statistics counts the work done by a Renderer since the last
// ResetStatistics call.
type Statistics struct {
	DrawCalls int
	QuadCount int
}

func (s Statistics) VertexCount() int { return s.QuadCount * verticesPerQuad }
func (s Statistics) IndexCount() int  { return s.QuadCount * indicesPerQuad }

// Renderer accumulates quads into a fixed-capacity vertex arena and submits
// them to a Backend with as few draw calls as possible.
//
// Quads are only accepted between BeginScene and EndScene. Running out of
// vertex space or texture slots is handled by flushing the current batch and
// starting a new one; draw order is always preserved.
type Renderer struct {
	backend Backend
	blank   Texture

	vertices   []QuadVertex // arena of MaxVertices, addressed by cursor
	cursor     int
	indexCount int

	slots    [MaxTextureSlots]Texture
	nextSlot int

	batching bool
	stats    Statistics
}

// NewRenderer initializes b and prepares the static batch resources: the
// blank texture and the shared index buffer.
func NewRenderer(b Backend) (*Renderer, error) {
	if err := b.Init(); err != nil {
		return nil, fmt.Errorf("sprig: init backend: %w", err)
	}
	blank, err := b.NewTexture(whitePixel())
	if err != nil {
		return nil, fmt.Errorf("sprig: create blank texture: %w", err)
	}

	indices := make([]uint32, MaxIndices)
	for i, j := 0, uint32(0); i < len(indices); i, j = i+indicesPerQuad, j+verticesPerQuad {
		indices[i+0] = j + 0
		indices[i+1] = j + 1
		indices[i+2] = j + 2
		indices[i+3] = j + 2
		indices[i+4] = j + 3
		indices[i+5] = j + 0
	}
	b.SetIndexData(indices)

	r := &Renderer{
		backend:  b,
		blank:    blank,
		vertices: make([]QuadVertex, MaxVertices),
	}
	r.reset()
	return r, nil
}

// Backend returns the backend the renderer draws through.
func (r *Renderer) Backend() Backend { return r.backend }

// BlankTexture returns the 1x1 white texture bound to slot 0.
func (r *Renderer) BlankTexture() Texture { return r.blank }

// Batching reports whether a scene is open.
func (r *Renderer) Batching() bool { return r.batching }

// TextureSlotsInUse returns the number of occupied texture slots in the
// current batch, including the blank slot.
func (r *Renderer) TextureSlotsInUse() int { return r.nextSlot }

// Clear clears the backend's target with c.
func (r *Renderer) Clear(c Color) {
	r.backend.SetClearColor(c)
	r.backend.Clear()
}

// BeginScene opens a batch session drawn from the camera's point of view.
func (r *Renderer) BeginScene(cam Camera) {
	if r.batching {
		panic("sprig: BeginScene called before EndScene")
	}
	r.backend.SetViewProjection(cam.ViewProjection())
	r.reset()
	r.batching = true
}

// EndScene uploads the accumulated vertices, flushes them and closes the
// session.
func (r *Renderer) EndScene() {
	r.mustBatch("EndScene")
	r.backend.SetVertexData(r.vertices[:r.cursor])
	r.Flush()
	r.batching = false
}

// Flush binds the resident texture slots and submits the current batch as a
// single draw call. The vertex data must have been uploaded. An empty batch
// issues no draw call.
func (r *Renderer) Flush() {
	r.mustBatch("Flush")
	if r.indexCount == 0 {
		return
	}
	for i := 0; i < r.nextSlot; i++ {
		r.backend.BindTexture(i, r.slots[i])
	}
	r.backend.DrawIndexed(r.indexCount)
	r.stats.DrawCalls++
}

// FlushAndReset submits the current batch and starts a new one within the
// same scene.
func (r *Renderer) FlushAndReset() {
	r.mustBatch("FlushAndReset")
	r.backend.SetVertexData(r.vertices[:r.cursor])
	r.Flush()
	r.reset()
}

// Statistics returns the counters accumulated since the last reset.
func (r *Renderer) Statistics() Statistics { return r.stats }

// ResetStatistics zeroes the counters. Call it once per frame.
func (r *Renderer) ResetStatistics() { r.stats = Statistics{} }

func (r *Renderer) reset() {
	r.cursor = 0
	r.indexCount = 0
	r.slots[0] = r.blank
	for i := 1; i < len(r.slots); i++ {
		r.slots[i] = nil
	}
	r.nextSlot = 1
}

func (r *Renderer) mustBatch(op string) {
	if !r.batching {
		panic("sprig: " + op + " called outside BeginScene/EndScene")
	}
}

// DrawQuad draws a flat-colored quad centered on pos.
func (r *Renderer) DrawQuad(pos mgl32.Vec3, size mgl32.Vec2, c Color) {
	r.submit(quadTransform(pos, size), nil, &quadTexCoords, 1, c)
}

// DrawTexturedQuad draws the whole of tex, repeated tiling times along each
// axis and multiplied by tint.
func (r *Renderer) DrawTexturedQuad(pos mgl32.Vec3, size mgl32.Vec2, tex Texture, tiling float32, tint Color) {
	r.submit(quadTransform(pos, size), tex, &quadTexCoords, tiling, tint)
}

// DrawSpriteQuad draws the sprite's region of its sheet.
func (r *Renderer) DrawSpriteQuad(pos mgl32.Vec3, size mgl32.Vec2, s *Sprite, tiling float32, tint Color) {
	uv := s.UV()
	r.submit(quadTransform(pos, size), s.Texture(), &uv, tiling, tint)
}

// DrawRotatedQuad is DrawQuad rotated by rotation radians about the quad's
// center.
func (r *Renderer) DrawRotatedQuad(pos mgl32.Vec3, size mgl32.Vec2, rotation float32, c Color) {
	r.submit(rotatedQuadTransform(pos, size, rotation), nil, &quadTexCoords, 1, c)
}

// DrawRotatedTexturedQuad is DrawTexturedQuad with a rotation.
func (r *Renderer) DrawRotatedTexturedQuad(pos mgl32.Vec3, size mgl32.Vec2, rotation float32, tex Texture, tiling float32, tint Color) {
	r.submit(rotatedQuadTransform(pos, size, rotation), tex, &quadTexCoords, tiling, tint)
}

// DrawRotatedSpriteQuad is DrawSpriteQuad with a rotation.
func (r *Renderer) DrawRotatedSpriteQuad(pos mgl32.Vec3, size mgl32.Vec2, rotation float32, s *Sprite, tiling float32, tint Color) {
	uv := s.UV()
	r.submit(rotatedQuadTransform(pos, size, rotation), s.Texture(), &uv, tiling, tint)
}

func quadTransform(pos mgl32.Vec3, size mgl32.Vec2) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.Scale3D(size[0], size[1], 1))
}

// rotatedQuadTransform builds T(pos)·R(-rotation)·S(size). The negated angle
// makes positive rotations turn clockwise on a y-up view.
func rotatedQuadTransform(pos mgl32.Vec3, size mgl32.Vec2, rotation float32) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl32.HomogRotate3DZ(-rotation)).
		Mul4(mgl32.Scale3D(size[0], size[1], 1))
}

// submit appends one quad to the arena, flushing first when the batch is
// out of room.
func (r *Renderer) submit(transform mgl32.Mat4, tex Texture, uv *[verticesPerQuad]mgl32.Vec2, tiling float32, c Color) {
	r.mustBatch("Draw")
	if r.indexCount >= MaxIndices {
		Logger().Debug("batch full, flushing", "quads", r.indexCount/indicesPerQuad)
		r.FlushAndReset()
	}
	slot := float32(r.textureSlot(tex))

	for i := 0; i < verticesPerQuad; i++ {
		r.vertices[r.cursor] = QuadVertex{
			Position:     transform.Mul4x1(quadPositions[i]).Vec3(),
			Color:        c,
			TexCoord:     uv[i],
			TexIndex:     slot,
			TilingFactor: tiling,
		}
		r.cursor++
	}
	r.indexCount += indicesPerQuad
	r.stats.QuadCount++
}

// textureSlot returns the slot tex is bound to in the current batch,
// allocating one if needed. A nil texture maps to the blank slot.
func (r *Renderer) textureSlot(tex Texture) int {
	if tex == nil || tex == r.blank {
		return 0
	}
	for i := 1; i < r.nextSlot; i++ {
		if r.slots[i] == tex {
			return i
		}
	}
	if r.nextSlot >= MaxTextureSlots {
		Logger().Debug("texture slots full, flushing", "slots", r.nextSlot)
		r.FlushAndReset()
	}
	slot := r.nextSlot
	r.slots[slot] = tex
	r.nextSlot++
	return slot
}
