package asset

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

var spewConfig *spew.ConfigState

func init() {
	spewConfig = spew.NewDefaultConfig()
	spewConfig.DisableCapacities = true
	spewConfig.DisablePointerAddresses = true
	spewConfig.SortKeys = true
}

type textureDump struct {
	Name          string
	Path          string
	PositionIndex int
	Width, Height int
	SpritesUsing  []string
}

type spriteDump struct {
	Name          string
	Sheet         string
	PositionIndex int
	ReferrerIndex int
	Selector      Selector
}

// Dump writes a human-readable snapshot of both catalogs to w.
func (r *Registry) Dump(w io.Writer) {
	textures := make([]textureDump, 0, r.textures.len())
	for _, name := range r.textures.names {
		e := r.textures.byName[name]
		textures = append(textures, textureDump{
			Name:          name,
			Path:          e.value.path,
			PositionIndex: e.pos,
			Width:         e.value.handle.Width(),
			Height:        e.value.handle.Height(),
			SpritesUsing:  e.value.refs.list(),
		})
	}
	sprites := make([]spriteDump, 0, r.sprites.len())
	for _, name := range r.sprites.names {
		e := r.sprites.byName[name]
		ref, _ := r.ReferrerIndex(name)
		sprites = append(sprites, spriteDump{
			Name:          name,
			Sheet:         e.value.sheet,
			PositionIndex: e.pos,
			ReferrerIndex: ref,
			Selector:      e.value.sel,
		})
	}
	spewConfig.Fdump(w, textures, sprites)
}
