// Package ecs is the scene layer of sprig, built on a [Donburi] world.
//
// Entities carry a [Transform] and, when visible, a [SpriteRenderer] naming
// a sprite or texture in an [asset.Registry]. [Scene.Render] walks them once
// per frame and issues draws through a [sprig.Renderer]. Entities may carry a
// [Behavior] that is created, updated and destroyed with them.
//
// Registry mutations are forwarded into the world as typed events by
// [NewRegistrySink]. Subscribe to [AssetEventType] to receive them.
//
// Usage:
//
//	scene := ecs.NewScene(registry)
//	e := scene.Spawn("hero", ecs.TransformData{Size: mgl32.Vec2{1, 1}})
//	scene.AddSprite(e, ecs.NewSpriteRenderer("hero_idle"))
//
//	scene.Update(dt)
//	scene.Render(renderer, camera)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
