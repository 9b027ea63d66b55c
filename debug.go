package sprig

import (
	"fmt"
	"log/slog"
)

// String formats the counters the way the debug overlay prints them.
func (s Statistics) String() string {
	return fmt.Sprintf("draw calls: %d | quads: %d | vertices: %d | indices: %d",
		s.DrawCalls, s.QuadCount, s.VertexCount(), s.IndexCount())
}

// LogValue implements slog.LogValuer.
func (s Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("drawCalls", s.DrawCalls),
		slog.Int("quads", s.QuadCount),
		slog.Int("vertices", s.VertexCount()),
		slog.Int("indices", s.IndexCount()),
	)
}
