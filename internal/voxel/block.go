package voxel

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ID identifies a block type in the registry. Zero is air.
type ID uint8

const Air ID = 0

// Face identifies one of the six faces of a voxel.
// Order matches the atlas indices of a block definition: back, front, top, bottom, left, right.
type Face int

const (
	FaceBack Face = iota
	FaceFront
	FaceTop
	FaceBottom
	FaceLeft
	FaceRight

	NumFaces = 6
)

var faceNames = [NumFaces]string{"back", "front", "top", "bottom", "left", "right"}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= 0 && f < NumFaces
}

func (f Face) String() string {
	if !f.Valid() {
		return "invalid"
	}
	return faceNames[f]
}

// ParseFace maps a face name back to its Face value.
func ParseFace(name string) (Face, bool) {
	for i, n := range faceNames {
		if n == name {
			return Face(i), true
		}
	}
	return 0, false
}

var (
	// Verts are the 8 corners of a unit cube anchored at its minimum corner.
	Verts = [8]mgl32.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 0, 1},
		{1, 1, 1},
		{0, 1, 1},
	}

	// Tris lists the 4 corners (indices into Verts) of each face.
	// Triangles are built as 0,1,2 and 2,1,3 over these four.
	Tris = [NumFaces][4]int{
		{0, 3, 1, 2}, // back
		{5, 6, 4, 7}, // front
		{3, 7, 2, 6}, // top
		{1, 5, 0, 4}, // bottom
		{4, 7, 0, 3}, // left
		{1, 2, 5, 6}, // right
	}

	// Normals holds the integer step to the neighbouring cell behind each face.
	Normals = [NumFaces][3]int{
		{0, 0, -1},
		{0, 0, 1},
		{0, 1, 0},
		{0, -1, 0},
		{-1, 0, 0},
		{1, 0, 0},
	}

	// UVs is the per-face texture template, in the same corner order as Tris.
	UVs = [4]mgl32.Vec2{
		{0, 0},
		{0, 1},
		{1, 0},
		{1, 1},
	}
)

// QuadIndices are the triangle indices of one face relative to its first vertex.
var QuadIndices = [6]uint32{0, 1, 2, 2, 1, 3}
