package meshing

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is a finished chunk surface. Vertex positions are local to the chunk origin.
// A Mesh handed out by a Builder is a private copy; consumers may keep it.
type Mesh struct {
	Vertices  []mgl32.Vec3
	UVs       []mgl32.Vec2
	Shades    []float32
	Triangles []uint32
}

// FaceCount returns the number of emitted quads.
func (m *Mesh) FaceCount() int {
	return len(m.Vertices) / 4
}

// TriangleCount returns the number of triangles in the index list.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles) / 3
}

// Empty reports whether the mesh has no geometry.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Triangles) == 0
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	return &Mesh{
		Vertices:  slices.Clone(m.Vertices),
		UVs:       slices.Clone(m.UVs),
		Shades:    slices.Clone(m.Shades),
		Triangles: slices.Clone(m.Triangles),
	}
}
