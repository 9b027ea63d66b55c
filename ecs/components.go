package ecs

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/sprig"
	"github.com/yohamta/donburi"
)

// NameData labels an entity.
type NameData struct {
	Name string
}

// TransformData places a quad in the world. Position is the quad's center;
// Rotation is in radians, positive values turn clockwise.
type TransformData struct {
	Position mgl32.Vec3
	Size     mgl32.Vec2
	Rotation float32
}

// SpriteRendererData makes an entity visible. Sprite takes precedence over
// Texture; when neither resolves in the registry a flat Color quad is drawn.
type SpriteRendererData struct {
	Color   sprig.Color
	Sprite  string
	Texture string
	Tiling  float32 // 0 means 1
}

// NewSpriteRenderer returns an untinted renderer for the named sprite.
func NewSpriteRenderer(sprite string) SpriteRendererData {
	return SpriteRendererData{Color: sprig.ColorWhite, Sprite: sprite, Tiling: 1}
}

// ScriptData attaches a Behavior to an entity.
type ScriptData struct {
	Behavior Behavior
	created  bool
}

// Behavior is the capability set of an entity script.
type Behavior interface {
	// OnCreate runs before the first OnUpdate.
	OnCreate(s *Scene, e *donburi.Entry)
	OnUpdate(s *Scene, e *donburi.Entry, dt float32)
	// OnDestroy runs when the entity is destroyed through Scene.Destroy.
	OnDestroy(s *Scene, e *donburi.Entry)
}

// Component types.
var (
	Name           = donburi.NewComponentType[NameData]()
	Transform      = donburi.NewComponentType[TransformData]()
	SpriteRenderer = donburi.NewComponentType[SpriteRendererData]()
	Script         = donburi.NewComponentType[ScriptData]()
)
