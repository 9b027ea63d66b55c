package ecs

import (
	"sort"

	"github.com/phanxgames/sprig"
	"github.com/phanxgames/sprig/asset"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
	"github.com/yohamta/donburi/query"
)

// Scene owns a Donburi world whose visible entities draw sprites from an
// asset registry.
type Scene struct {
	world  donburi.World
	assets *asset.Registry

	drawables *query.Query
	scripted  *query.Query
	named     *query.Query

	drawList []*donburi.Entry
	tweens   []*TweenGroup
}

// NewScene creates an empty scene over assets. The scene adds itself to the
// registry's event sinks, next to any already installed, so that entities
// referring to deleted sprites or textures fall back to flat color quads.
func NewScene(assets *asset.Registry) *Scene {
	s := &Scene{
		world:     donburi.NewWorld(),
		assets:    assets,
		drawables: query.NewQuery(filter.Contains(Transform, SpriteRenderer)),
		scripted:  query.NewQuery(filter.Contains(Script)),
		named:     query.NewQuery(filter.Contains(Name)),
	}
	if assets != nil {
		assets.SetEventSink(asset.Sinks(assets.EventSink(), NewRegistrySink(s.world)))
	}
	AssetEventType.Subscribe(s.world, s.onAssetEvent)
	return s
}

// World returns the underlying Donburi world.
func (s *Scene) World() donburi.World { return s.world }

// Assets returns the registry sprites are resolved from.
func (s *Scene) Assets() *asset.Registry { return s.assets }

// Spawn creates a named entity with a transform.
func (s *Scene) Spawn(name string, t TransformData) donburi.Entity {
	e := s.world.Create(Name, Transform)
	entry := s.world.Entry(e)
	Name.SetValue(entry, NameData{Name: name})
	Transform.SetValue(entry, t)
	return e
}

// AddSprite makes e visible.
func (s *Scene) AddSprite(e donburi.Entity, sr SpriteRendererData) {
	entry := s.world.Entry(e)
	if entry.HasComponent(SpriteRenderer) {
		SpriteRenderer.SetValue(entry, sr)
		return
	}
	donburi.Add(entry, SpriteRenderer, &sr)
}

// AttachBehavior binds b to e. OnCreate runs on the next Update.
func (s *Scene) AttachBehavior(e donburi.Entity, b Behavior) {
	entry := s.world.Entry(e)
	data := ScriptData{Behavior: b}
	if entry.HasComponent(Script) {
		Script.SetValue(entry, data)
		return
	}
	donburi.Add(entry, Script, &data)
}

// Find returns the first entity named name.
func (s *Scene) Find(name string) (donburi.Entity, bool) {
	var (
		found donburi.Entity
		ok    bool
	)
	s.named.Each(s.world, func(entry *donburi.Entry) {
		if !ok && Name.Get(entry).Name == name {
			found, ok = entry.Entity(), true
		}
	})
	return found, ok
}

// Destroy runs e's OnDestroy, if it was created, and removes it.
func (s *Scene) Destroy(e donburi.Entity) {
	if !s.world.Valid(e) {
		return
	}
	entry := s.world.Entry(e)
	if entry.HasComponent(Script) {
		sc := Script.Get(entry)
		if sc.created && sc.Behavior != nil {
			sc.Behavior.OnDestroy(s, entry)
		}
	}
	s.world.Remove(e)
}

// Tween registers g to be advanced by Update until it is done.
func (s *Scene) Tween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// ActiveTweens returns the number of tweens still running.
func (s *Scene) ActiveTweens() int { return len(s.tweens) }

// Update delivers pending asset events, advances tweens and steps every
// behavior by dt.
func (s *Scene) Update(dt float32) {
	AssetEventType.ProcessEvents(s.world)

	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live

	var pending []*donburi.Entry
	s.scripted.Each(s.world, func(entry *donburi.Entry) {
		pending = append(pending, entry)
	})
	for _, entry := range pending {
		if !entry.Valid() {
			continue
		}
		sc := Script.Get(entry)
		if sc.Behavior == nil {
			continue
		}
		if !sc.created {
			sc.created = true
			sc.Behavior.OnCreate(s, entry)
			if !entry.Valid() {
				continue
			}
		}
		sc.Behavior.OnUpdate(s, entry, dt)
	}
}

// Render draws every visible entity in one scene, back to front by Z.
func (s *Scene) Render(r *sprig.Renderer, cam sprig.Camera) {
	s.drawList = s.drawList[:0]
	s.drawables.Each(s.world, func(entry *donburi.Entry) {
		s.drawList = append(s.drawList, entry)
	})
	sort.SliceStable(s.drawList, func(i, j int) bool {
		zi := Transform.Get(s.drawList[i]).Position[2]
		zj := Transform.Get(s.drawList[j]).Position[2]
		if zi != zj {
			return zi < zj
		}
		return s.drawList[i].Entity().Id() < s.drawList[j].Entity().Id()
	})

	r.BeginScene(cam)
	for _, entry := range s.drawList {
		s.draw(r, Transform.Get(entry), SpriteRenderer.Get(entry))
	}
	r.EndScene()
}

func (s *Scene) draw(r *sprig.Renderer, t *TransformData, sr *SpriteRendererData) {
	tiling := sr.Tiling
	if tiling == 0 {
		tiling = 1
	}
	if s.assets != nil {
		if sr.Sprite != "" {
			if sp, ok := s.assets.Sprite(sr.Sprite); ok {
				r.DrawRotatedSpriteQuad(t.Position, t.Size, t.Rotation, sp, tiling, sr.Color)
				return
			}
		}
		if sr.Texture != "" {
			if tex, ok := s.assets.Texture(sr.Texture); ok {
				r.DrawRotatedTexturedQuad(t.Position, t.Size, t.Rotation, tex, tiling, sr.Color)
				return
			}
		}
	}
	r.DrawRotatedQuad(t.Position, t.Size, t.Rotation, sr.Color)
}

func (s *Scene) onAssetEvent(w donburi.World, ev asset.Event) {
	var drop func(sr *SpriteRendererData)
	switch ev.Kind {
	case asset.SpriteDeleted:
		drop = func(sr *SpriteRendererData) {
			if sr.Sprite == ev.Name {
				sr.Sprite = ""
			}
		}
	case asset.TextureDeleted:
		drop = func(sr *SpriteRendererData) {
			if sr.Texture == ev.Name {
				sr.Texture = ""
			}
		}
	default:
		return
	}
	s.drawables.Each(w, func(entry *donburi.Entry) {
		drop(SpriteRenderer.Get(entry))
	})
	sprig.Logger().Debug("scene references cleared", "kind", ev.Kind, "name", ev.Name)
}
