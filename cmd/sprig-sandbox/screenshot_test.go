package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"hello", "hello"},
		{"after-spawn", "after-spawn"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#$%", "special_____"},
		{"", "unlabeled"},
		{"café", "caf_"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	var s screenshots
	s.take("a")
	s.take("b")
	if len(s.queue) != 2 || s.queue[0] != "a" || s.queue[1] != "b" {
		t.Errorf("queue = %v, want [a b]", s.queue)
	}
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	// premultiplied, as read back from the screen
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	copy(src.Pix, []byte{100, 50, 0, 200, 255, 255, 255, 255})
	if err := writePNG(path, src); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
	if got := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA); got != (color.NRGBA{127, 63, 0, 200}) {
		t.Errorf("pixel 0 = %v, want straight alpha {127 63 0 200}", got)
	}
	if got := color.NRGBAModel.Convert(img.At(1, 0)).(color.NRGBA); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("opaque pixel = %v", got)
	}
	if err := writePNG(filepath.Join(t.TempDir(), "missing", "shot.png"), src); err == nil {
		t.Error("expected error for missing directory")
	}
}
