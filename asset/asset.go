// Package asset catalogs textures and the sprites cut from them under stable
// logical names.
//
// A [Registry] owns two catalogs. Textures are imported from a source path
// through a [TextureLoader]; sprites reference a texture (their sheet) by name
// and select a sub-rectangle of it with a [Selector]. Every texture keeps the
// names of the sprites bound to it, so deleting a texture cascades to its
// sprites and rebinding a sprite never scans the whole catalog.
//
// Registries are plain values: create as many as needed with [NewRegistry].
// They are not safe for concurrent use.
//
// Catalogs can be saved to and restored from YAML documents, see
// [Registry.Encode] and [Registry.Decode].
package asset

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned when a logical name is not in its catalog.
	ErrNotFound = errors.New("asset not found")
	// ErrUnknownSheet is returned when a sprite would be bound to a texture
	// that does not exist.
	ErrUnknownSheet = errors.New("unknown sprite sheet")
	// ErrDuplicate is returned when a logical name is already taken.
	ErrDuplicate = errors.New("duplicate asset name")
	// ErrLoad matches every LoadError.
	ErrLoad = errors.New("texture load failed")

	errNoLoader  = errors.New("registry has no texture loader")
	errNilHandle = errors.New("no texture returned")
)

// LoadError reports a texture source that could not be loaded.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrLoad) hold for any LoadError.
func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// Selector picks a sprite out of a sheet divided into cells. Coords and
// SpriteSize are measured in cells, CellSize in pixels.
type Selector struct {
	Coords     mgl32.Vec2
	CellSize   mgl32.Vec2
	SpriteSize mgl32.Vec2
}

// Cell is a Selector for a single-cell sprite at (x, y).
func Cell(x, y, cellW, cellH float32) Selector {
	return Selector{
		Coords:     mgl32.Vec2{x, y},
		CellSize:   mgl32.Vec2{cellW, cellH},
		SpriteSize: mgl32.Vec2{1, 1},
	}
}

// EventKind identifies a registry mutation.
type EventKind uint8

const (
	TextureImported EventKind = iota
	TextureDeleted
	SpriteCreated
	SpriteUpdated
	SpriteDeleted
)

func (k EventKind) String() string {
	switch k {
	case TextureImported:
		return "texture imported"
	case TextureDeleted:
		return "texture deleted"
	case SpriteCreated:
		return "sprite created"
	case SpriteUpdated:
		return "sprite updated"
	case SpriteDeleted:
		return "sprite deleted"
	}
	return "unknown event"
}

// Event describes a registry mutation. Sheet is set for sprite events.
type Event struct {
	Kind  EventKind
	Name  string
	Sheet string
}

// EventSink receives registry mutations, in the order they happen. Cascaded
// sprite deletions are emitted before the texture deletion that caused them.
type EventSink interface {
	EmitEvent(event Event)
}

type sinkList []EventSink

func (l sinkList) EmitEvent(event Event) {
	for _, s := range l {
		s.EmitEvent(event)
	}
}

// Sinks returns a sink that forwards every event to each non-nil sink in
// order.
func Sinks(sinks ...EventSink) EventSink {
	var l sinkList
	for _, s := range sinks {
		switch s := s.(type) {
		case nil:
		case sinkList:
			l = append(l, s...)
		default:
			l = append(l, s)
		}
	}
	if len(l) == 1 {
		return l[0]
	}
	return l
}

// Option configures a Registry.
type Option func(*Registry)

// WithEventSink sets the sink notified of every mutation.
func WithEventSink(sink EventSink) Option {
	return func(r *Registry) {
		r.sink = sink
	}
}

type errorList []error

func (e errorList) Error() string {
	var sb strings.Builder
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e errorList) Unwrap() []error { return e }
