package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/sprig"
	"github.com/pkg/errors"
)

// screenshots queues labeled captures of the rendered frame.
type screenshots struct {
	dir   string
	queue []string
}

// take queues a screenshot to be captured at the end of the current
// frame's Draw call.
func (s *screenshots) take(label string) {
	s.queue = append(s.queue, label)
}

// flush writes the frame once per queued label as a timestamped PNG.
func (s *screenshots) flush(screen *ebiten.Image) {
	if len(s.queue) == 0 {
		return
	}
	defer func() { s.queue = s.queue[:0] }()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		sprig.Logger().Error("screenshot", "err", err)
		return
	}

	img := frameImage(screen)
	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.queue {
		path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		_ = writePNG(path, img)
	}
}

// frameImage copies the screen into an image.RGBA. ebiten's pixels are
// premultiplied like image.RGBA, and png.Encode converts to straight alpha.
func frameImage(screen *ebiten.Image) *image.RGBA {
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)
	return img
}

// writePNG encodes img to path and logs the outcome.
func writePNG(path string, img image.Image) (err error) {
	defer func() {
		if err != nil {
			sprig.Logger().Error("screenshot failed", "path", path, "err", err)
			return
		}
		sprig.Logger().Info("screenshot saved", "path", path)
	}()
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create screenshot")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrap(f.Close(), "close screenshot")
}

// sanitizeLabel keeps letters, digits, '-' and '.', replaces anything else
// with '_' and names blank labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
			return r
		}
		return '_'
	}, label)
}
