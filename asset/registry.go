package asset

import (
	"github.com/phanxgames/sprig"
	"github.com/pkg/errors"
)

type textureRecord struct {
	handle sprig.Texture
	path   string
	// refs holds the names of the sprites bound to this texture. A sprite's
	// referrer index is its position in refs.
	refs catalog[struct{}]
}

type spriteRecord struct {
	handle *sprig.Sprite
	sheet  string
	sel    Selector
}

// Registry catalogs textures and sprites by logical name.
type Registry struct {
	loader   TextureLoader
	sink     EventSink
	textures catalog[*textureRecord]
	sprites  catalog[*spriteRecord]
}

// NewRegistry returns an empty registry that imports textures with loader.
// loader may be nil for a registry filled only through AddTexture; imports
// and catalog decoding then fail with ErrLoad.
func NewRegistry(loader TextureLoader, options ...Option) *Registry {
	r := &Registry{loader: loader}
	for _, o := range options {
		o(r)
	}
	return r
}

// SetEventSink replaces the sink notified of mutations. nil disables
// notifications. Use Sinks to keep the current sink as well.
func (r *Registry) SetEventSink(sink EventSink) {
	r.sink = sink
}

// EventSink returns the installed sink, or nil.
func (r *Registry) EventSink() EventSink { return r.sink }

// load runs the loader and turns a missing loader or handle into an error.
func (r *Registry) load(path string) (sprig.Texture, error) {
	if r.loader == nil {
		return nil, errNoLoader
	}
	tex, err := r.loader.LoadTexture(path)
	if err == nil && tex == nil {
		err = errNilHandle
	}
	return tex, err
}

func (r *Registry) emit(kind EventKind, name, sheet string) {
	if r.sink != nil {
		r.sink.EmitEvent(Event{Kind: kind, Name: name, Sheet: sheet})
	}
}

// ImportTexture loads the texture at path and catalogs it under name. On
// failure the registry is left unchanged.
func (r *Registry) ImportTexture(name, path string) error {
	if r.textures.has(name) {
		return errors.Wrapf(ErrDuplicate, "import texture %q", name)
	}
	tex, err := r.load(path)
	if err != nil {
		sprig.Logger().Warn("texture import failed", "name", name, "path", path, "err", err)
		return errors.Wrapf(&LoadError{Path: path, Err: err}, "import texture %q", name)
	}
	r.addTexture(name, path, tex)
	return nil
}

// AddTexture catalogs an already loaded texture. path is informational and
// is what Encode writes out. A nil tex is rejected with ErrLoad.
func (r *Registry) AddTexture(name, path string, tex sprig.Texture) error {
	if r.textures.has(name) {
		return errors.Wrapf(ErrDuplicate, "add texture %q", name)
	}
	if tex == nil {
		return errors.Wrapf(&LoadError{Path: path, Err: errNilHandle}, "add texture %q", name)
	}
	r.addTexture(name, path, tex)
	return nil
}

func (r *Registry) addTexture(name, path string, tex sprig.Texture) {
	r.textures.insert(name, &textureRecord{handle: tex, path: path})
	sprig.Logger().Debug("texture imported", "name", name, "path", path)
	r.emit(TextureImported, name, "")
}

// Texture returns the texture named name.
func (r *Registry) Texture(name string) (sprig.Texture, bool) {
	rec, ok := r.textures.get(name)
	if !ok {
		return nil, false
	}
	return rec.handle, true
}

// TexturePath returns the source path a texture was imported from.
func (r *Registry) TexturePath(name string) (string, bool) {
	rec, ok := r.textures.get(name)
	if !ok {
		return "", false
	}
	return rec.path, true
}

// SpritesUsing returns, in binding order, the sprites cut from a texture.
func (r *Registry) SpritesUsing(name string) ([]string, bool) {
	rec, ok := r.textures.get(name)
	if !ok {
		return nil, false
	}
	return rec.refs.list(), true
}

// TexturePosition returns the texture's offset in TextureNames.
func (r *Registry) TexturePosition(name string) (int, bool) {
	return r.textures.position(name)
}

// DeleteTexture removes a texture together with every sprite cut from it.
func (r *Registry) DeleteTexture(name string) error {
	rec, ok := r.textures.get(name)
	if !ok {
		return errors.Wrapf(ErrNotFound, "delete texture %q", name)
	}
	for _, sprite := range rec.refs.list() {
		r.deleteSprite(sprite)
	}
	r.textures.remove(name)
	sprig.Logger().Debug("texture deleted", "name", name)
	r.emit(TextureDeleted, name, "")
	return nil
}

// CreateSprite cuts a sprite out of the texture named sheet. It fails
// without side effects when the sheet does not exist.
func (r *Registry) CreateSprite(name, sheet string, sel Selector) error {
	if r.sprites.has(name) {
		return errors.Wrapf(ErrDuplicate, "create sprite %q", name)
	}
	sheetRec, ok := r.textures.get(sheet)
	if !ok {
		return errors.Wrapf(ErrUnknownSheet, "create sprite %q on %q", name, sheet)
	}
	rec := &spriteRecord{}
	r.bind(name, rec, sheet, sheetRec, sel)
	r.sprites.insert(name, rec)
	sprig.Logger().Debug("sprite created", "name", name, "sheet", sheet)
	r.emit(SpriteCreated, name, sheet)
	return nil
}

// UpdateSprite rebinds a sprite to sheet with a new selector. sheet may be
// the sprite's current sheet. When sheet does not exist the sprite keeps its
// old binding.
func (r *Registry) UpdateSprite(name, sheet string, sel Selector) error {
	rec, ok := r.sprites.get(name)
	if !ok {
		return errors.Wrapf(ErrNotFound, "update sprite %q", name)
	}
	sheetRec, ok := r.textures.get(sheet)
	if !ok {
		return errors.Wrapf(ErrUnknownSheet, "update sprite %q on %q", name, sheet)
	}
	r.unbind(name, rec)
	r.bind(name, rec, sheet, sheetRec, sel)
	sprig.Logger().Debug("sprite updated", "name", name, "sheet", sheet)
	r.emit(SpriteUpdated, name, sheet)
	return nil
}

func (r *Registry) bind(name string, rec *spriteRecord, sheet string, sheetRec *textureRecord, sel Selector) {
	rec.handle = sprig.NewSpriteFromCoords(sheetRec.handle, sel.Coords, sel.CellSize, sel.SpriteSize)
	rec.sheet = sheet
	rec.sel = sel
	sheetRec.refs.insert(name, struct{}{})
}

func (r *Registry) unbind(name string, rec *spriteRecord) {
	if sheetRec, ok := r.textures.get(rec.sheet); ok {
		sheetRec.refs.remove(name)
	}
}

// Sprite returns the sprite named name.
func (r *Registry) Sprite(name string) (*sprig.Sprite, bool) {
	rec, ok := r.sprites.get(name)
	if !ok {
		return nil, false
	}
	return rec.handle, true
}

// SpriteSelector returns the selector a sprite was created with.
func (r *Registry) SpriteSelector(name string) (Selector, bool) {
	rec, ok := r.sprites.get(name)
	if !ok {
		return Selector{}, false
	}
	return rec.sel, true
}

// SheetName returns the name of the texture a sprite is cut from.
func (r *Registry) SheetName(name string) (string, bool) {
	rec, ok := r.sprites.get(name)
	if !ok {
		return "", false
	}
	return rec.sheet, true
}

// ReferrerIndex returns the sprite's position in its sheet's SpritesUsing.
func (r *Registry) ReferrerIndex(name string) (int, bool) {
	rec, ok := r.sprites.get(name)
	if !ok {
		return -1, false
	}
	sheetRec, ok := r.textures.get(rec.sheet)
	if !ok {
		return -1, false
	}
	return sheetRec.refs.position(name)
}

// SpritePosition returns the sprite's offset in SpriteNames.
func (r *Registry) SpritePosition(name string) (int, bool) {
	return r.sprites.position(name)
}

// DeleteSprite removes a sprite.
func (r *Registry) DeleteSprite(name string) error {
	if !r.sprites.has(name) {
		return errors.Wrapf(ErrNotFound, "delete sprite %q", name)
	}
	r.deleteSprite(name)
	return nil
}

func (r *Registry) deleteSprite(name string) {
	rec, _ := r.sprites.get(name)
	r.unbind(name, rec)
	r.sprites.remove(name)
	sprig.Logger().Debug("sprite deleted", "name", name, "sheet", rec.sheet)
	r.emit(SpriteDeleted, name, rec.sheet)
}

// TextureNames returns texture names in import order.
func (r *Registry) TextureNames() []string { return r.textures.list() }

// SpriteNames returns sprite names in creation order.
func (r *Registry) SpriteNames() []string { return r.sprites.list() }

// NumTextures returns the number of cataloged textures.
func (r *Registry) NumTextures() int { return r.textures.len() }

// NumSprites returns the number of cataloged sprites.
func (r *Registry) NumSprites() int { return r.sprites.len() }

// Clear empties both catalogs. No events are emitted. Texture handles are
// owned by the backend and are not released.
func (r *Registry) Clear() {
	r.sprites.clear()
	r.textures.clear()
}
