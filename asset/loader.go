package asset

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"github.com/phanxgames/sprig"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// TextureLoader turns a source path into a texture.
type TextureLoader interface {
	LoadTexture(path string) (sprig.Texture, error)
}

// ImageDecoder is implemented by loaders that can split loading into a
// decode step, safe to run concurrently, and a texture creation step that
// must run on the render thread. Registry.Decode uses it to decode catalog
// images in parallel.
type ImageDecoder interface {
	DecodeImage(path string) (image.Image, error)
	NewTexture(img image.Image) (sprig.Texture, error)
}

// FSLoader loads PNG, JPEG, BMP and WebP images from a file system and
// uploads them through a texture factory, usually the renderer's backend.
type FSLoader struct {
	FS      fs.FS
	Factory sprig.TextureFactory
}

// NewFSLoader returns a loader reading from fsys.
func NewFSLoader(fsys fs.FS, factory sprig.TextureFactory) *FSLoader {
	return &FSLoader{FS: fsys, Factory: factory}
}

// DecodeImage reads and decodes the image at path.
func (l *FSLoader) DecodeImage(path string) (image.Image, error) {
	f, err := l.FS.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	return img, nil
}

// NewTexture uploads a decoded image.
func (l *FSLoader) NewTexture(img image.Image) (sprig.Texture, error) {
	return l.Factory.NewTexture(img)
}

// LoadTexture decodes and uploads the image at path.
func (l *FSLoader) LoadTexture(path string) (sprig.Texture, error) {
	img, err := l.DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return l.NewTexture(img)
}
