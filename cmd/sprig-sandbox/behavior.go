package main

import (
	"github.com/phanxgames/sprig"
	"github.com/phanxgames/sprig/ecs"
	"github.com/yohamta/donburi"
)

// bouncer drifts an entity around a rectangle centered on the origin,
// spinning it and reflecting off the edges.
type bouncer struct {
	dx, dy float32
	spin   float32
	halfW  float32
	halfH  float32
}

func (b *bouncer) OnCreate(s *ecs.Scene, e *donburi.Entry) {}

func (b *bouncer) OnUpdate(s *ecs.Scene, e *donburi.Entry, dt float32) {
	t := ecs.Transform.Get(e)
	t.Position[0] += b.dx * dt
	t.Position[1] += b.dy * dt
	if t.Position[0] < -b.halfW || t.Position[0] > b.halfW {
		b.dx = -b.dx
		t.Position[0] = clamp(t.Position[0], -b.halfW, b.halfW)
	}
	if t.Position[1] < -b.halfH || t.Position[1] > b.halfH {
		b.dy = -b.dy
		t.Position[1] = clamp(t.Position[1], -b.halfH, b.halfH)
	}
	t.Rotation += b.spin * dt
}

func (b *bouncer) OnDestroy(s *ecs.Scene, e *donburi.Entry) {
	sprig.Logger().Debug("entity destroyed", "name", ecs.Name.Get(e).Name)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
