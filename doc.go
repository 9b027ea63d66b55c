// Package sprig is a batched 2D quad renderer for [Ebitengine] and other
// backends.
//
// Sprig accumulates colored, textured and sprite quads into a single vertex
// buffer and submits them in as few draw calls as possible. Up to [MaxQuads]
// quads and [MaxTextureSlots] textures share one batch; when either limit is
// reached the batch is flushed and a new one begins.
//
// # Quick start
//
// Pick a backend, create a [Renderer], and draw between [Renderer.BeginScene]
// and [Renderer.EndScene]:
//
//	backend := sprig.MustBackend(sprig.BackendEbiten)
//	r, err := sprig.NewRenderer(backend)
//	if err != nil {
//		log.Fatal(err)
//	}
//	cam := sprig.NewOrthoCamera(1280, 720)
//
//	// in ebiten.Game.Draw:
//	backend.(*sprig.EbitenBackend).SetTarget(screen)
//	r.Clear(sprig.Color{R: 0.1, G: 0.1, B: 0.15, A: 1})
//	r.BeginScene(cam)
//	r.DrawQuad(sprig.Pos2(0, 0), mgl32.Vec2{64, 64}, sprig.ColorWhite)
//	r.DrawRotatedSpriteQuad(sprig.Pos2(100, 0), mgl32.Vec2{32, 32}, angle, sprite, 1, sprig.ColorWhite)
//	r.EndScene()
//
// # Backends
//
// A [Backend] owns textures and executes indexed draws. Two are built in:
// [BackendEbiten] draws to an *ebiten.Image and [BackendHeadless] records
// every call for tests and tooling. Others can be added with
// [RegisterBackend].
//
// # Coordinates
//
// World space is y-up. Quad positions are centers; rotations are in radians
// and positive values turn clockwise. Texture coordinates grow rightwards and
// upwards from the lower-left corner of a texture.
//
// # Assets and scenes
//
// Named textures and the sprites cut from them live in an asset registry
// (package sprig/asset), which can be saved to and loaded from YAML catalogs
// and filled from TexturePacker atlases. Package sprig/ecs draws a [Donburi]
// world of sprite entities through a Renderer and keeps them in step with
// the registry.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package sprig
