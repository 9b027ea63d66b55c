package sprig

import (
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestRenderer(t *testing.T) (*Renderer, *RecordingBackend) {
	t.Helper()
	rb := NewRecordingBackend()
	r, err := NewRenderer(rb)
	if err != nil {
		t.Fatal(err)
	}
	return r, rb
}

func expectPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatalf("expected panic containing %q, got none", substr)
		}
		msg, _ := rec.(string)
		if !strings.Contains(msg, substr) {
			t.Errorf("panic = %v, want it to contain %q", rec, substr)
		}
	}()
	fn()
}

// ---- Setup tests -----------------------------------------------------------

func TestNewRendererIndexPattern(t *testing.T) {
	r, rb := newTestRenderer(t)
	if !rb.Initialized() {
		t.Error("backend not initialized")
	}
	if len(rb.Indices) != MaxIndices {
		t.Fatalf("index buffer = %d, want %d", len(rb.Indices), MaxIndices)
	}
	want := []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	for i, w := range want {
		if rb.Indices[i] != w {
			t.Fatalf("indices[:12] = %v, want %v", rb.Indices[:12], want)
		}
	}
	last := rb.Indices[MaxIndices-6:]
	base := uint32(MaxVertices - 4)
	if last[0] != base || last[4] != base+3 {
		t.Errorf("last quad indices = %v", last)
	}
	if b := r.BlankTexture(); b.Width() != 1 || b.Height() != 1 {
		t.Errorf("blank texture = %dx%d", b.Width(), b.Height())
	}
	if r.TextureSlotsInUse() != 1 {
		t.Errorf("slots in use = %d, want 1", r.TextureSlotsInUse())
	}
}

// ---- Scene session tests ---------------------------------------------------

func TestDrawOutsideScenePanics(t *testing.T) {
	r, _ := newTestRenderer(t)
	expectPanic(t, "outside BeginScene", func() {
		r.DrawQuad(Pos2(0, 0), mgl32.Vec2{1, 1}, ColorWhite)
	})
	expectPanic(t, "EndScene called outside", r.EndScene)
	expectPanic(t, "Flush called outside", r.Flush)
}

func TestBeginSceneTwicePanics(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.BeginScene(identityCamera{})
	expectPanic(t, "BeginScene called before EndScene", func() {
		r.BeginScene(identityCamera{})
	})
}

func TestEmptySceneIssuesNoDrawCall(t *testing.T) {
	r, rb := newTestRenderer(t)
	r.BeginScene(identityCamera{})
	r.EndScene()
	if len(rb.Calls) != 0 {
		t.Errorf("draw calls = %d, want 0", len(rb.Calls))
	}
	if r.Batching() {
		t.Error("still batching")
	}
	if s := r.Statistics(); s.DrawCalls != 0 || s.QuadCount != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestViewProjectionForwarded(t *testing.T) {
	r, rb := newTestRenderer(t)
	cam := NewOrthoCamera(800, 600)
	cam.X = 10
	r.BeginScene(cam)
	r.DrawQuad(Pos2(0, 0), mgl32.Vec2{1, 1}, ColorWhite)
	r.EndScene()
	if rb.Calls[0].ViewProjection != cam.ViewProjection() {
		t.Error("view-projection not forwarded to backend")
	}
}

func TestClear(t *testing.T) {
	r, rb := newTestRenderer(t)
	c := Color{0.1, 0.2, 0.3, 1}
	r.Clear(c)
	if rb.ClearColor != c || rb.Clears != 1 {
		t.Errorf("clear color %v, clears %d", rb.ClearColor, rb.Clears)
	}
}

// ---- Quad geometry tests ---------------------------------------------------

func TestDrawQuadVertices(t *testing.T) {
	r, rb := newTestRenderer(t)
	tint := Color{1, 0, 0, 1}
	r.BeginScene(identityCamera{})
	r.DrawQuad(mgl32.Vec3{1, 2, 0.5}, mgl32.Vec2{2, 4}, tint)
	r.EndScene()

	if len(rb.Calls) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(rb.Calls))
	}
	call := rb.Calls[0]
	if call.IndexCount != 6 {
		t.Errorf("index count = %d, want 6", call.IndexCount)
	}
	want := [4]mgl32.Vec3{{0, 0, 0.5}, {2, 0, 0.5}, {2, 4, 0.5}, {0, 4, 0.5}}
	for i, v := range call.Vertices {
		if !vec3ApproxEqual(v.Position, want[i]) {
			t.Errorf("vertex %d position = %v, want %v", i, v.Position, want[i])
		}
		if v.TexCoord != quadTexCoords[i] {
			t.Errorf("vertex %d uv = %v", i, v.TexCoord)
		}
		if v.Color != tint || v.TexIndex != 0 || v.TilingFactor != 1 {
			t.Errorf("vertex %d = %+v", i, v)
		}
	}
	if len(call.Textures) != 1 || call.Textures[0] != r.BlankTexture() {
		t.Errorf("bound textures = %v, want only the blank texture", call.Textures)
	}
}

func TestRotatedZeroMatchesUnrotated(t *testing.T) {
	r, rb := newTestRenderer(t)
	pos, size := mgl32.Vec3{3, -1, 0}, mgl32.Vec2{5, 2}
	r.BeginScene(identityCamera{})
	r.DrawQuad(pos, size, ColorWhite)
	r.DrawRotatedQuad(pos, size, 0, ColorWhite)
	r.EndScene()

	v := rb.Calls[0].Vertices
	for i := 0; i < 4; i++ {
		if v[i] != v[i+4] {
			t.Errorf("vertex %d: %+v != %+v", i, v[i], v[i+4])
		}
	}
}

func TestRotatedQuadTurnsClockwise(t *testing.T) {
	r, rb := newTestRenderer(t)
	r.BeginScene(identityCamera{})
	r.DrawRotatedQuad(Pos2(0, 0), mgl32.Vec2{1, 1}, math.Pi/2, ColorWhite)
	r.EndScene()

	// A quarter turn clockwise moves the bottom-left corner to the top-left.
	got := rb.Calls[0].Vertices[0].Position
	if !vec3ApproxEqual(got, mgl32.Vec3{-0.5, 0.5, 0}) {
		t.Errorf("bottom-left corner = %v, want (-0.5, 0.5, 0)", got)
	}
}

func TestSpriteQuadUsesSpriteUV(t *testing.T) {
	r, rb := newTestRenderer(t)
	tex := newMemTexture(t, 64, 64)
	s := NewSpriteFromCoords(tex, mgl32.Vec2{1, 1}, mgl32.Vec2{16, 16}, mgl32.Vec2{1, 1})
	tint := Color{0.5, 0.5, 0.5, 1}

	r.BeginScene(identityCamera{})
	r.DrawSpriteQuad(Pos2(0, 0), mgl32.Vec2{1, 1}, s, 2, tint)
	r.DrawRotatedSpriteQuad(Pos2(1, 0), mgl32.Vec2{1, 1}, 1, s, 1, ColorWhite)
	r.EndScene()

	call := rb.Calls[0]
	uv := s.UV()
	for i := 0; i < 4; i++ {
		v := call.Vertices[i]
		if v.TexCoord != uv[i] || v.TexIndex != 1 || v.TilingFactor != 2 || v.Color != tint {
			t.Errorf("vertex %d = %+v", i, v)
		}
	}
	if call.Vertices[4].TexIndex != 1 {
		t.Error("same sheet should reuse slot 1")
	}
	if call.Textures[1] != tex {
		t.Error("sheet not bound to slot 1")
	}
}

// ---- Batching tests --------------------------------------------------------

func TestBatchOverflowFlushes(t *testing.T) {
	r, rb := newTestRenderer(t)
	r.BeginScene(identityCamera{})
	for i := 0; i < MaxQuads+1; i++ {
		r.DrawQuad(Pos2(float32(i), 0), mgl32.Vec2{1, 1}, ColorWhite)
	}
	r.EndScene()

	if len(rb.Calls) != 2 {
		t.Fatalf("draw calls = %d, want 2", len(rb.Calls))
	}
	if rb.Calls[0].IndexCount != MaxIndices || rb.Calls[1].IndexCount != 6 {
		t.Errorf("index counts = %d, %d", rb.Calls[0].IndexCount, rb.Calls[1].IndexCount)
	}
	// draw order survives the flush
	if got := rb.Calls[1].Vertices[0].Position[0]; !approxEqual(got, MaxQuads-0.5, epsilon) {
		t.Errorf("overflow quad x = %v", got)
	}
	s := r.Statistics()
	if s.DrawCalls != 2 || s.QuadCount != MaxQuads+1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestSameTextureSharesSlot(t *testing.T) {
	r, rb := newTestRenderer(t)
	tex := newMemTexture(t, 8, 8)
	r.BeginScene(identityCamera{})
	for i := 0; i < 20; i++ {
		r.DrawTexturedQuad(Pos2(float32(i), 0), mgl32.Vec2{1, 1}, tex, 1, ColorWhite)
	}
	if r.TextureSlotsInUse() != 2 {
		t.Errorf("slots in use = %d, want 2", r.TextureSlotsInUse())
	}
	r.EndScene()

	if len(rb.Calls) != 1 {
		t.Fatalf("draw calls = %d, want 1", len(rb.Calls))
	}
	if len(rb.Calls[0].Textures) != 2 {
		t.Errorf("bound textures = %d, want 2", len(rb.Calls[0].Textures))
	}
}

// sizeTex is a comparable value handle; equal values are the same texture.
type sizeTex struct{ w, h int }

func (t sizeTex) Width() int  { return t.w }
func (t sizeTex) Height() int { return t.h }

func TestValueTextureHandlesShareSlot(t *testing.T) {
	r, rb := newTestRenderer(t)
	r.BeginScene(identityCamera{})
	r.DrawTexturedQuad(Pos2(0, 0), mgl32.Vec2{1, 1}, sizeTex{8, 8}, 1, ColorWhite)
	r.DrawTexturedQuad(Pos2(1, 0), mgl32.Vec2{1, 1}, sizeTex{8, 8}, 1, ColorWhite)
	r.DrawTexturedQuad(Pos2(2, 0), mgl32.Vec2{1, 1}, sizeTex{4, 4}, 1, ColorWhite)
	if got := r.TextureSlotsInUse(); got != 3 {
		t.Errorf("slots in use = %d, want 3", got)
	}
	r.EndScene()

	v := rb.Calls[0].Vertices
	if v[0].TexIndex != v[4].TexIndex || v[0].TexIndex == v[8].TexIndex {
		t.Errorf("tex indices = %v, %v, %v", v[0].TexIndex, v[4].TexIndex, v[8].TexIndex)
	}
}

func TestBlankTextureUsesSlotZero(t *testing.T) {
	r, rb := newTestRenderer(t)
	r.BeginScene(identityCamera{})
	r.DrawTexturedQuad(Pos2(0, 0), mgl32.Vec2{1, 1}, r.BlankTexture(), 1, ColorWhite)
	r.EndScene()
	if rb.Calls[0].Vertices[0].TexIndex != 0 || r.TextureSlotsInUse() != 1 {
		t.Error("blank texture allocated a slot")
	}
}

func TestTextureSlotOverflowFlushes(t *testing.T) {
	r, rb := newTestRenderer(t)
	textures := make([]Texture, MaxTextureSlots)
	for i := range textures {
		textures[i] = newMemTexture(t, 4, 4)
	}

	r.BeginScene(identityCamera{})
	for i, tex := range textures {
		r.DrawTexturedQuad(Pos2(float32(i), 0), mgl32.Vec2{1, 1}, tex, 1, ColorWhite)
	}
	r.EndScene()

	if len(rb.Calls) != 2 {
		t.Fatalf("draw calls = %d, want 2", len(rb.Calls))
	}
	first, second := rb.Calls[0], rb.Calls[1]
	if first.IndexCount != (MaxTextureSlots-1)*6 {
		t.Errorf("first batch quads = %d", first.IndexCount/6)
	}
	if len(first.Textures) != MaxTextureSlots {
		t.Errorf("first batch slots = %d", len(first.Textures))
	}
	if second.IndexCount != 6 || second.Vertices[0].TexIndex != 1 {
		t.Errorf("second batch = %d indices, slot %v", second.IndexCount, second.Vertices[0].TexIndex)
	}
	if second.Textures[0] != r.BlankTexture() || second.Textures[1] != textures[MaxTextureSlots-1] {
		t.Error("second batch bindings wrong")
	}
}

func TestStatisticsReset(t *testing.T) {
	r, _ := newTestRenderer(t)
	for frame := 0; frame < 2; frame++ {
		r.BeginScene(identityCamera{})
		r.DrawQuad(Pos2(0, 0), mgl32.Vec2{1, 1}, ColorWhite)
		r.EndScene()
	}
	if s := r.Statistics(); s.DrawCalls != 2 || s.QuadCount != 2 {
		t.Errorf("stats = %+v", s)
	}
	r.ResetStatistics()
	if s := r.Statistics(); s != (Statistics{}) {
		t.Errorf("stats after reset = %+v", s)
	}
}
