package ecs

import (
	"github.com/phanxgames/sprig"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// TweenGroup animates up to 4 component fields of one entity
// simultaneously. Create one with the convenience constructors and either
// call Update(dt) yourself or hand it to Scene.Tween. If the entity is
// removed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(e *donburi.Entry, v *[4]float32)
	world  donburi.World
	entity donburi.Entity
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// entity's components.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if !g.world.Valid(g.entity) {
		g.Done = true
		return
	}

	var v [4]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		v[i] = val
		if !finished {
			allDone = false
		}
	}
	g.apply(g.world.Entry(g.entity), &v)
	g.Done = allDone
}

func newTweenGroup(w donburi.World, e donburi.Entity, from, to []float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: len(from), world: w, entity: e}
	for i := range from {
		g.tweens[i] = gween.New(from[i], to[i], duration, fn)
	}
	return g
}

// TweenPosition moves the entity's Transform to (toX, toY).
func TweenPosition(w donburi.World, e donburi.Entity, toX, toY, duration float32, fn ease.TweenFunc) *TweenGroup {
	t := Transform.Get(w.Entry(e))
	g := newTweenGroup(w, e, []float32{t.Position[0], t.Position[1]}, []float32{toX, toY}, duration, fn)
	g.apply = func(entry *donburi.Entry, v *[4]float32) {
		t := Transform.Get(entry)
		t.Position[0], t.Position[1] = v[0], v[1]
	}
	return g
}

// TweenSize scales the entity's Transform to (toW, toH).
func TweenSize(w donburi.World, e donburi.Entity, toW, toH, duration float32, fn ease.TweenFunc) *TweenGroup {
	t := Transform.Get(w.Entry(e))
	g := newTweenGroup(w, e, []float32{t.Size[0], t.Size[1]}, []float32{toW, toH}, duration, fn)
	g.apply = func(entry *donburi.Entry, v *[4]float32) {
		t := Transform.Get(entry)
		t.Size[0], t.Size[1] = v[0], v[1]
	}
	return g
}

// TweenRotation turns the entity's Transform to the given angle in radians.
func TweenRotation(w donburi.World, e donburi.Entity, to, duration float32, fn ease.TweenFunc) *TweenGroup {
	t := Transform.Get(w.Entry(e))
	g := newTweenGroup(w, e, []float32{t.Rotation}, []float32{to}, duration, fn)
	g.apply = func(entry *donburi.Entry, v *[4]float32) {
		Transform.Get(entry).Rotation = v[0]
	}
	return g
}

// TweenColor animates all four components of the entity's SpriteRenderer
// color.
func TweenColor(w donburi.World, e donburi.Entity, to sprig.Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	c := SpriteRenderer.Get(w.Entry(e)).Color
	g := newTweenGroup(w, e,
		[]float32{c.R, c.G, c.B, c.A},
		[]float32{to.R, to.G, to.B, to.A},
		duration, fn)
	g.apply = func(entry *donburi.Entry, v *[4]float32) {
		SpriteRenderer.Get(entry).Color = sprig.Color{R: v[0], G: v[1], B: v[2], A: v[3]}
	}
	return g
}
