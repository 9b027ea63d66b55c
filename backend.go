package sprig

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Backend is the narrow graphics contract the Renderer draws through. It owns
// every Texture it creates.
//
// Calls arrive from the render thread only; implementations need no locking.
type Backend interface {
	TextureFactory

	// Init prepares the backend. It is called once by NewRenderer.
	Init() error
	SetClearColor(c Color)
	Clear()

	// SetIndexData uploads the static index buffer shared by every batch.
	SetIndexData(indices []uint32)
	// SetViewProjection sets the matrix applied to every vertex position.
	SetViewProjection(m mgl32.Mat4)
	// SetVertexData uploads the vertices of the current batch.
	SetVertexData(vertices []QuadVertex)
	// BindTexture binds t to the given texture slot.
	BindTexture(slot int, t Texture)
	// DrawIndexed issues one draw call covering indexCount indices of the
	// uploaded vertex data.
	DrawIndexed(indexCount int)
}

// ErrUnsupportedBackend is returned by NewBackend for unregistered names.
var ErrUnsupportedBackend = errors.New("sprig: unsupported backend")

// BackendFactory creates a backend instance.
type BackendFactory func() Backend

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Built-in backend names.
const (
	BackendEbiten   = "ebiten"
	BackendHeadless = "headless"
)

func init() {
	RegisterBackend(BackendEbiten, func() Backend { return NewEbitenBackend() })
	RegisterBackend(BackendHeadless, func() Backend { return NewRecordingBackend() })
}

// RegisterBackend makes a backend available by name. It panics if factory is
// nil or the name is already taken.
func RegisterBackend(name string, factory BackendFactory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	if factory == nil {
		panic("sprig: RegisterBackend factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("sprig: RegisterBackend called twice for " + name)
	}
	backends[name] = factory
}

// NewBackend creates a backend by name.
func NewBackend(name string) (Backend, error) {
	backendsMu.RLock()
	factory, ok := backends[name]
	backendsMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnsupportedBackend, name, Backends())
	}
	Logger().Info("backend selected", "name", name)
	return factory(), nil
}

// exit is swapped out in tests.
var exit = os.Exit

// MustBackend creates a backend by name. An unknown name is fatal: the error
// is logged and the process exits with status 1.
func MustBackend(name string) Backend {
	b, err := NewBackend(name)
	if err != nil {
		Logger().Error("cannot start renderer", "err", err)
		fmt.Fprintln(os.Stderr, "[sprig]", err)
		exit(1)
		return nil
	}
	return b
}

// Backends returns the sorted names of registered backends.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
