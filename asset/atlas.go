package asset

import (
	"encoding/json"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/sprig"
	"github.com/pkg/errors"
)

// --- TexturePacker JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}

// ImportAtlas creates one sprite per frame of a TexturePacker JSON atlas,
// named after the frame. Both export formats are accepted:
//
//   - hash format (a single "frames" object): frames are cut from the
//     texture named sheet.
//   - array format (a "textures" list of pages): each page's frames are cut
//     from the texture whose source path is the page's image. sheet is
//     ignored.
//
// Frames are created in name order. Rotated frames, frames whose name is
// taken and pages with no matching texture are skipped; their errors are
// returned together.
func (r *Registry) ImportAtlas(sheet string, data []byte) error {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return errors.Wrap(err, "parse atlas")
	}

	var errs errorList
	switch {
	case probe.Textures != nil:
		var pages []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &pages); err != nil {
			return errors.Wrap(err, "parse atlas pages")
		}
		for _, page := range pages {
			name, ok := r.textureByPath(page.Image)
			if !ok {
				errs = append(errs, errors.Wrapf(ErrUnknownSheet, "atlas page %q", page.Image))
				continue
			}
			errs = r.importFrames(name, page.Frames, errs)
		}
	case probe.Frames != nil:
		var frames map[string]jsonFrame
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return errors.Wrap(err, "parse atlas frames")
		}
		if !r.textures.has(sheet) {
			return errors.Wrapf(ErrUnknownSheet, "import atlas on %q", sheet)
		}
		errs = r.importFrames(sheet, frames, errs)
	default:
		return errors.New("atlas JSON has neither \"frames\" nor \"textures\" key")
	}

	if len(errs) > 0 {
		sprig.Logger().Warn("atlas frames skipped", "sheet", sheet, "err", errs)
		return errs
	}
	return nil
}

func (r *Registry) importFrames(sheet string, frames map[string]jsonFrame, errs errorList) errorList {
	rec, _ := r.textures.get(sheet)
	texH := float32(rec.handle.Height())

	names := make([]string, 0, len(frames))
	for name := range frames {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		f := frames[name]
		if f.Rotated {
			errs = append(errs, errors.Errorf("atlas frame %q: rotated frames are not supported", name))
			continue
		}
		if err := r.CreateSprite(name, sheet, frameSelector(f.Frame, texH)); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// frameSelector converts a top-left origin pixel rectangle into a selector
// over one-pixel cells. Texture v grows upwards, so y is flipped.
func frameSelector(f jsonRect, texH float32) Selector {
	return Selector{
		Coords:     mgl32.Vec2{float32(f.X), texH - float32(f.Y+f.H)},
		CellSize:   mgl32.Vec2{1, 1},
		SpriteSize: mgl32.Vec2{float32(f.W), float32(f.H)},
	}
}

// textureByPath returns the first texture imported from path.
func (r *Registry) textureByPath(path string) (string, bool) {
	for _, name := range r.textures.names {
		if rec, _ := r.textures.get(name); rec.path == path {
			return name, true
		}
	}
	return "", false
}
