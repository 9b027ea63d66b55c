package asset

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/sprig"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	fsys := fstest.MapFS{
		"hero.png":  pngFile(t, 64, 32),
		"tiles.bmp": bmpFile(t, 128, 128),
	}
	backend := sprig.NewRecordingBackend()
	src := NewRegistry(NewFSLoader(fsys, backend))
	mustImport(t, src, "hero", "hero.png")
	mustImport(t, src, "tiles", "tiles.bmp")
	mustCreate(t, src, "grass", "tiles", Cell(0, 0, 16, 16))
	mustCreate(t, src, "hero_idle", "hero", Cell(1, 0, 32, 32))
	mustCreate(t, src, "water", "tiles", Selector{
		Coords:     mgl32.Vec2{2, 3},
		CellSize:   mgl32.Vec2{16, 16},
		SpriteSize: mgl32.Vec2{2, 1},
	})

	var buf bytes.Buffer
	if err := src.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	text := buf.String()
	for _, key := range []string{"logicalName", "spritesUsing", "spriteSheetName", "referrerIndex", "spriteSelector", "cellSize"} {
		if !strings.Contains(text, key) {
			t.Errorf("encoded catalog lacks %q:\n%s", key, text)
		}
	}

	dst := NewRegistry(NewFSLoader(fsys, backend))
	if err := dst.Decode(&buf); err != nil {
		t.Fatal(err)
	}

	assertNames(t, "TextureNames", dst.TextureNames(), src.TextureNames())
	assertNames(t, "SpriteNames", dst.SpriteNames(), src.SpriteNames())
	for _, name := range src.TextureNames() {
		assertNames(t, name+".SpritesUsing", mustUsing(t, dst, name), mustUsing(t, src, name))
		want, _ := src.Texture(name)
		got, _ := dst.Texture(name)
		if got.Width() != want.Width() || got.Height() != want.Height() {
			t.Errorf("%s: size %dx%d, want %dx%d", name, got.Width(), got.Height(), want.Width(), want.Height())
		}
	}
	for _, name := range src.SpriteNames() {
		ws, _ := src.SpriteSelector(name)
		gs, _ := dst.SpriteSelector(name)
		if ws != gs {
			t.Errorf("%s: selector %+v, want %+v", name, gs, ws)
		}
		wr, _ := src.ReferrerIndex(name)
		gr, _ := dst.ReferrerIndex(name)
		if wr != gr {
			t.Errorf("%s: referrer index %d, want %d", name, gr, wr)
		}
		wsp, _ := src.Sprite(name)
		gsp, _ := dst.Sprite(name)
		if wsp.UV() != gsp.UV() {
			t.Errorf("%s: uv %v, want %v", name, gsp.UV(), wsp.UV())
		}
	}
}

const skippedCatalog = `
textures:
  - logicalName: hero
    path: hero.png
  - logicalName: hero
    path: other.png
  - logicalName: ghost
    path: missing.png
  - logicalName: ""
    path: hero.png
sprites:
  - logicalName: idle
    spriteSheetName: hero
    spriteSelector: {coords: [0, 0], cellSize: [16, 16], spriteSize: [1, 1]}
  - logicalName: boo
    spriteSheetName: ghost
    spriteSelector: {coords: [0, 0], cellSize: [16, 16], spriteSize: [1, 1]}
  - logicalName: bad
    spriteSheetName: hero
    spriteSelector: {coords: [0], cellSize: [16, 16], spriteSize: [1, 1]}
  - logicalName: idle
    spriteSheetName: hero
    spriteSelector: {coords: [1, 0], cellSize: [16, 16], spriteSize: [1, 1]}
`

func TestDecodeSkipsBadEntries(t *testing.T) {
	fsys := fstest.MapFS{
		"hero.png":  pngFile(t, 32, 32),
		"other.png": pngFile(t, 8, 8),
	}
	r := NewRegistry(NewFSLoader(fsys, sprig.NewRecordingBackend()))

	err := r.Decode(strings.NewReader(skippedCatalog))
	if err == nil {
		t.Fatal("expected skipped-entry errors")
	}
	for _, target := range []error{ErrDuplicate, ErrLoad, ErrUnknownSheet} {
		if !errors.Is(err, target) {
			t.Errorf("err does not match %v:\n%v", target, err)
		}
	}
	var list errorList
	if !errors.As(err, &list) || len(list) != 6 {
		t.Errorf("errors = %d, want 6:\n%v", len(list), err)
	}

	assertNames(t, "TextureNames", r.TextureNames(), []string{"hero"})
	assertNames(t, "SpriteNames", r.SpriteNames(), []string{"idle"})
	if p, _ := r.TexturePath("hero"); p != "hero.png" {
		t.Errorf("hero path = %q", p)
	}
	if sel, _ := r.SpriteSelector("idle"); sel.Coords != (mgl32.Vec2{0, 0}) {
		t.Errorf("duplicate sprite overwrote the first: %+v", sel)
	}
}

func TestDecodeSharesTexturesByPath(t *testing.T) {
	l := newStubLoader(map[string]image.Point{"atlas.png": {64, 64}})
	r := NewRegistry(l)
	doc := `
textures:
  - {logicalName: ui, path: atlas.png}
  - {logicalName: fonts, path: atlas.png}
`
	if err := r.Decode(strings.NewReader(doc)); err != nil {
		t.Fatal(err)
	}
	if l.loads["atlas.png"] != 1 {
		t.Errorf("atlas.png loaded %d times, want 1", l.loads["atlas.png"])
	}
	a, _ := r.Texture("ui")
	b, _ := r.Texture("fonts")
	if a != b {
		t.Error("textures sharing a path should share a handle")
	}
}

func TestDecodeMergesIntoRegistry(t *testing.T) {
	r := newTestRegistry(t)
	mustImport(t, r, "a", "a.png")
	doc := `
textures:
  - {logicalName: b, path: b.png}
sprites:
  - logicalName: s
    spriteSheetName: a
    spriteSelector: {coords: [0, 0], cellSize: [8, 8], spriteSize: [1, 1]}
`
	if err := r.Decode(strings.NewReader(doc)); err != nil {
		t.Fatal(err)
	}
	assertNames(t, "TextureNames", r.TextureNames(), []string{"a", "b"})
	assertNames(t, "a.SpritesUsing", mustUsing(t, r, "a"), []string{"s"})
}

func TestDecodeEmpty(t *testing.T) {
	r := newTestRegistry(t)
	if err := r.Decode(strings.NewReader("")); err != nil {
		t.Fatalf("empty document: %v", err)
	}
	if err := r.Decode(strings.NewReader("textures: [")); err == nil {
		t.Error("malformed document should fail")
	}
}

func TestDecodeProgress(t *testing.T) {
	fsys := fstest.MapFS{}
	var doc strings.Builder
	doc.WriteString("textures:\n")
	for i := 0; i < 9; i++ {
		name := string(rune('a' + i))
		fsys[name+".png"] = pngFile(t, 4, 4)
		doc.WriteString("  - {logicalName: " + name + ", path: " + name + ".png}\n")
	}
	doc.WriteString("  - {logicalName: again, path: a.png}\n")

	var (
		mu    sync.Mutex
		calls [][2]int
	)
	r := NewRegistry(NewFSLoader(fsys, sprig.NewRecordingBackend()))
	err := r.Decode(strings.NewReader(doc.String()),
		WithWorkers(3),
		WithProgress(func(done, total int) {
			mu.Lock()
			calls = append(calls, [2]int{done, total})
			mu.Unlock()
		}))
	if err != nil {
		t.Fatal(err)
	}
	if r.NumTextures() != 10 {
		t.Errorf("NumTextures = %d", r.NumTextures())
	}
	if len(calls) != 9 {
		t.Fatalf("progress calls = %d, want one per distinct path", len(calls))
	}
	for i, c := range calls {
		if c[0] != i+1 || c[1] != 9 {
			t.Errorf("call %d = %v", i, c)
		}
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	r := newTestRegistry(t)
	mustImport(t, r, "a", "a.png")
	mustCreate(t, r, "s", "a", Cell(2, 1, 16, 16))

	dir := t.TempDir()
	if err := r.SaveFile(filepath.Join(dir, "catalog.yaml")); err != nil {
		t.Fatal(err)
	}

	dst := newTestRegistry(t)
	if err := dst.LoadFile(os.DirFS(dir), "catalog.yaml"); err != nil {
		t.Fatal(err)
	}
	if sel, _ := dst.SpriteSelector("s"); sel != Cell(2, 1, 16, 16) {
		t.Errorf("selector = %+v", sel)
	}
	if err := dst.LoadFile(os.DirFS(dir), "nope.yaml"); err == nil {
		t.Error("missing file should fail")
	}
}
