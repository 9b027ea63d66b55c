package asset

import (
	"image"
	"io"
	"io/fs"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/sprig"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// document is the on-disk catalog schema.
type document struct {
	Textures []textureDoc `yaml:"textures"`
	Sprites  []spriteDoc  `yaml:"sprites"`
}

type textureDoc struct {
	Name         string   `yaml:"logicalName"`
	Path         string   `yaml:"path"`
	SpritesUsing []string `yaml:"spritesUsing,flow"`
}

type spriteDoc struct {
	Name          string      `yaml:"logicalName"`
	Sheet         string      `yaml:"spriteSheetName"`
	ReferrerIndex int         `yaml:"referrerIndex"`
	Selector      selectorDoc `yaml:"spriteSelector"`
}

type selectorDoc struct {
	Coords     []float32 `yaml:"coords,flow"`
	CellSize   []float32 `yaml:"cellSize,flow"`
	SpriteSize []float32 `yaml:"spriteSize,flow"`
}

func vec2Doc(v mgl32.Vec2) []float32 { return []float32{v[0], v[1]} }

func docVec2(field string, v []float32) (mgl32.Vec2, error) {
	if len(v) != 2 {
		return mgl32.Vec2{}, errors.Errorf("%s: want 2 components, got %d", field, len(v))
	}
	return mgl32.Vec2{v[0], v[1]}, nil
}

func (d *selectorDoc) selector() (sel Selector, err error) {
	if sel.Coords, err = docVec2("coords", d.Coords); err != nil {
		return sel, err
	}
	if sel.CellSize, err = docVec2("cellSize", d.CellSize); err != nil {
		return sel, err
	}
	if sel.SpriteSize, err = docVec2("spriteSize", d.SpriteSize); err != nil {
		return sel, err
	}
	return sel, nil
}

func (r *Registry) document() document {
	doc := document{
		Textures: make([]textureDoc, 0, r.textures.len()),
		Sprites:  make([]spriteDoc, 0, r.sprites.len()),
	}
	for _, name := range r.textures.names {
		rec, _ := r.textures.get(name)
		doc.Textures = append(doc.Textures, textureDoc{
			Name:         name,
			Path:         rec.path,
			SpritesUsing: rec.refs.list(),
		})
	}
	for _, name := range r.sprites.names {
		rec, _ := r.sprites.get(name)
		ref, _ := r.ReferrerIndex(name)
		doc.Sprites = append(doc.Sprites, spriteDoc{
			Name:          name,
			Sheet:         rec.sheet,
			ReferrerIndex: ref,
			Selector: selectorDoc{
				Coords:     vec2Doc(rec.sel.Coords),
				CellSize:   vec2Doc(rec.sel.CellSize),
				SpriteSize: vec2Doc(rec.sel.SpriteSize),
			},
		})
	}
	return doc
}

// Encode writes the catalog as a YAML document.
func (r *Registry) Encode(w io.Writer) error {
	doc := r.document()
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return errors.Wrap(err, "encode catalog")
	}
	return errors.Wrap(enc.Close(), "encode catalog")
}

// SaveFile writes the catalog to the named file.
func (r *Registry) SaveFile(name string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "save catalog")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "save catalog")
		}
	}()
	return r.Encode(f)
}

type decodeOptions struct {
	workers  int
	progress func(done, total int)
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

// WithWorkers bounds the number of images decoded concurrently.
func WithWorkers(n int) DecodeOption {
	return func(o *decodeOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithProgress registers a callback invoked on the calling goroutine after
// each distinct texture source has been loaded.
func WithProgress(fn func(done, total int)) DecodeOption {
	return func(o *decodeOptions) {
		o.progress = fn
	}
}

// Decode reads a YAML catalog into the registry. Textures are imported
// first, then sprites in document order. Entries that cannot be added are
// skipped; their errors are returned together once the whole document has
// been processed. Everything else stays in the registry.
//
// Texture entries sharing a source path share one loaded texture.
func (r *Registry) Decode(rd io.Reader, options ...DecodeOption) error {
	o := decodeOptions{workers: 2 * runtime.NumCPU()}
	for _, opt := range options {
		opt(&o)
	}

	var doc document
	if err := yaml.NewDecoder(rd).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return errors.Wrap(err, "decode catalog")
	}

	var (
		errs  errorList
		paths PathTable
		ids   = make([]int, len(doc.Textures))
	)
	for i := range doc.Textures {
		ids[i] = paths.Store(doc.Textures[i].Path)
	}
	handles, loadErrs := r.loadPaths(&paths, &o)

	for i := range doc.Textures {
		t := &doc.Textures[i]
		id := ids[i]
		switch {
		case t.Name == "":
			errs = append(errs, errors.Errorf("texture entry %d: missing logical name", i))
		case r.textures.has(t.Name):
			errs = append(errs, errors.Wrapf(ErrDuplicate, "texture %q", t.Name))
		case loadErrs[id] != nil:
			errs = append(errs, errors.Wrapf(&LoadError{Path: t.Path, Err: loadErrs[id]}, "texture %q", t.Name))
		default:
			r.addTexture(t.Name, t.Path, handles[id])
		}
	}

	for i := range doc.Sprites {
		s := &doc.Sprites[i]
		sel, err := s.Selector.selector()
		if err != nil {
			errs = append(errs, errors.Wrapf(err, "sprite %q", s.Name))
			continue
		}
		if err := r.CreateSprite(s.Name, s.Sheet, sel); err != nil {
			errs = append(errs, err)
		}
	}

	sprig.Logger().Info("catalog decoded",
		"textures", r.textures.len(), "sprites", r.sprites.len(),
		"sources", paths.Len(), "skipped", len(errs))
	if len(errs) > 0 {
		sprig.Logger().Warn("catalog entries skipped", "err", errs)
		return errs
	}
	return nil
}

// LoadFile decodes the named catalog file from fsys.
func (r *Registry) LoadFile(fsys fs.FS, name string, options ...DecodeOption) error {
	f, err := fsys.Open(name)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}
	defer f.Close()
	return r.Decode(f, options...)
}

// loadPaths loads every distinct path of the table, indexed by path id.
// Decoding runs on a bounded pool of goroutines when the loader supports
// it; textures are always created on the calling goroutine.
func (r *Registry) loadPaths(paths *PathTable, o *decodeOptions) ([]sprig.Texture, []error) {
	n := paths.Len()
	handles := make([]sprig.Texture, n)
	errs := make([]error, n)

	done := 0
	step := func() {
		done++
		if o.progress != nil {
			o.progress(done, n)
		}
	}

	dec, ok := r.loader.(ImageDecoder)
	if !ok {
		for id := 0; id < n; id++ {
			p, _ := paths.Path(id)
			handles[id], errs[id] = r.load(p)
			step()
		}
		return handles, errs
	}

	images := make([]image.Image, n)
	var g errgroup.Group
	g.SetLimit(o.workers)
	for id := 0; id < n; id++ {
		p, _ := paths.Path(id)
		g.Go(func() error {
			images[id], errs[id] = dec.DecodeImage(p)
			return nil
		})
	}
	_ = g.Wait()

	for id := 0; id < n; id++ {
		if errs[id] == nil {
			handles[id], errs[id] = dec.NewTexture(images[id])
			if errs[id] == nil && handles[id] == nil {
				errs[id] = errNilHandle
			}
		}
		step()
	}
	return handles, errs
}
