package ecs

import (
	"github.com/phanxgames/sprig/asset"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// AssetEventType is the Donburi event type for registry mutations.
// Subscribe to this in your ECS systems to react to imports and deletions.
var AssetEventType = events.NewEventType[asset.Event]()

type registrySink struct {
	world donburi.World
}

// NewRegistrySink creates an asset.EventSink backed by a Donburi world.
// Registry events are published to AssetEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewRegistrySink(world donburi.World) asset.EventSink {
	return &registrySink{world: world}
}

func (s *registrySink) EmitEvent(event asset.Event) {
	AssetEventType.Publish(s.world, event)
}
