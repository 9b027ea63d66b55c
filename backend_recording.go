package sprig

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// MemTexture is the texture type created by RecordingBackend. It keeps the
// decoded pixels in memory so headless tools can inspect them.
type MemTexture struct {
	ID     int
	width  int
	height int
	Image  image.Image
}

func (t *MemTexture) Width() int  { return t.width }
func (t *MemTexture) Height() int { return t.height }

// DrawCall is one DrawIndexed call captured by RecordingBackend.
type DrawCall struct {
	IndexCount     int
	Vertices       []QuadVertex // vertices referenced by the call
	Textures       []Texture    // slots bound since the previous call, by slot
	ViewProjection mgl32.Mat4
}

// RecordingBackend is a headless Backend. It records every draw call instead
// of rasterizing, which makes it the backend of choice for tests, servers and
// tooling that needs the batch output without a GPU.
type RecordingBackend struct {
	Calls      []DrawCall
	ClearColor Color
	Clears     int
	Indices    []uint32

	initialized bool
	nextID      int
	vp          mgl32.Mat4
	vertices    []QuadVertex
	slots       []Texture
}

// NewRecordingBackend returns an empty RecordingBackend.
func NewRecordingBackend() *RecordingBackend {
	return &RecordingBackend{vp: mgl32.Ident4()}
}

func (b *RecordingBackend) Init() error {
	b.initialized = true
	return nil
}

func (b *RecordingBackend) SetClearColor(c Color) { b.ClearColor = c }
func (b *RecordingBackend) Clear()                { b.Clears++ }

func (b *RecordingBackend) NewTexture(img image.Image) (Texture, error) {
	sz := img.Bounds().Size()
	b.nextID++
	return &MemTexture{ID: b.nextID, width: sz.X, height: sz.Y, Image: img}, nil
}

func (b *RecordingBackend) SetIndexData(indices []uint32) {
	b.Indices = append(b.Indices[:0], indices...)
}

func (b *RecordingBackend) SetViewProjection(m mgl32.Mat4) { b.vp = m }

func (b *RecordingBackend) SetVertexData(vertices []QuadVertex) {
	b.vertices = append(b.vertices[:0], vertices...)
}

func (b *RecordingBackend) BindTexture(slot int, t Texture) {
	for len(b.slots) <= slot {
		b.slots = append(b.slots, nil)
	}
	b.slots[slot] = t
}

func (b *RecordingBackend) DrawIndexed(indexCount int) {
	n := indexCount / indicesPerQuad * verticesPerQuad
	if n > len(b.vertices) {
		n = len(b.vertices)
	}
	b.Calls = append(b.Calls, DrawCall{
		IndexCount:     indexCount,
		Vertices:       append([]QuadVertex(nil), b.vertices[:n]...),
		Textures:       append([]Texture(nil), b.slots...),
		ViewProjection: b.vp,
	})
	b.slots = b.slots[:0]
}

// Initialized reports whether Init has been called.
func (b *RecordingBackend) Initialized() bool { return b.initialized }

// Reset forgets recorded calls and clears, keeping textures valid.
func (b *RecordingBackend) Reset() {
	b.Calls = b.Calls[:0]
	b.Clears = 0
}
