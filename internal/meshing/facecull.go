package meshing

import (
	"fmt"

	"voxelworld/internal/profiling"
	"voxelworld/internal/registry"
	"voxelworld/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

// Source is the voxel grid a Builder reads from.
type Source interface {
	// Size returns the chunk extent along x, y and z.
	Size() (width, height, length int)
	// Block returns the voxel at in-range local coordinates.
	Block(x, y, z int) voxel.ID
	// NeighborOccludes answers for local coordinates that fall outside the chunk
	// horizontally. Implementations resolve neighbouring chunks and treat
	// positions outside the world as air.
	NeighborOccludes(x, y, z int) bool
}

// Builder turns a voxel grid into a face-culled surface mesh. It owns its
// buffers and reuses them across builds; it is not safe for concurrent use.
type Builder struct {
	atlasSize int
	dark      float32

	vertices  []mgl32.Vec3
	uvs       []mgl32.Vec2
	shades    []float32
	triangles []uint32

	// highest solid y per column, -1 when the column is empty
	tops []int
}

// NewBuilder creates a builder for an atlas of atlasSizeInBlocks x atlasSizeInBlocks
// tiles. Faces shadowed from above are shaded at 1-occlusionDarkness.
func NewBuilder(atlasSizeInBlocks int, occlusionDarkness float32) *Builder {
	if atlasSizeInBlocks < 1 {
		atlasSizeInBlocks = 1
	}
	return &Builder{
		atlasSize: atlasSizeInBlocks,
		dark:      occlusionDarkness,
	}
}

func (b *Builder) reset() {
	b.vertices = b.vertices[:0]
	b.uvs = b.uvs[:0]
	b.shades = b.shades[:0]
	b.triangles = b.triangles[:0]
}

// Build regenerates the buffers from src. Only faces between a solid voxel and a
// non-occluding neighbour are emitted; faces pointing below y=0 never are.
func (b *Builder) Build(src Source, reg *registry.Registry) error {
	defer profiling.Track("meshing.Build")()
	b.reset()

	w, h, l := src.Size()
	b.scanColumns(src, reg, w, h, l)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			for z := 0; z < l; z++ {
				id := src.Block(x, y, z)
				if id == voxel.Air {
					continue
				}
				def, err := reg.Get(id)
				if err != nil {
					return fmt.Errorf("mesh voxel (%d,%d,%d): %w", x, y, z, err)
				}
				if !def.IsSolid {
					continue
				}

				shade := float32(1)
				if y < b.tops[x*l+z] {
					shade = 1 - b.dark
				}

				for f := voxel.Face(0); f < voxel.NumFaces; f++ {
					n := voxel.Normals[f]
					nx, ny, nz := x+n[0], y+n[1], z+n[2]
					if ny < 0 {
						continue
					}
					if b.occluded(src, reg, nx, ny, nz, w, h, l) {
						continue
					}
					if err := b.addFace(x, y, z, f, def, shade); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (b *Builder) scanColumns(src Source, reg *registry.Registry, w, h, l int) {
	if cap(b.tops) < w*l {
		b.tops = make([]int, w*l)
	}
	b.tops = b.tops[:w*l]
	for x := 0; x < w; x++ {
		for z := 0; z < l; z++ {
			top := -1
			for y := h - 1; y >= 0; y-- {
				if reg.IsSolid(src.Block(x, y, z)) {
					top = y
					break
				}
			}
			b.tops[x*l+z] = top
		}
	}
}

func (b *Builder) occluded(src Source, reg *registry.Registry, x, y, z, w, h, l int) bool {
	if y >= h {
		return false
	}
	if x < 0 || x >= w || z < 0 || z >= l {
		return src.NeighborOccludes(x, y, z)
	}
	return reg.Occludes(src.Block(x, y, z))
}

func (b *Builder) addFace(x, y, z int, face voxel.Face, def *registry.BlockDefinition, shade float32) error {
	tex, err := def.TextureID(face)
	if err != nil {
		return err
	}

	base := uint32(len(b.vertices))
	pos := mgl32.Vec3{float32(x), float32(y), float32(z)}
	for _, corner := range voxel.Tris[face] {
		b.vertices = append(b.vertices, pos.Add(voxel.Verts[corner]))
		b.shades = append(b.shades, shade)
	}
	b.addTexture(tex)
	for _, i := range voxel.QuadIndices {
		b.triangles = append(b.triangles, base+i)
	}
	return nil
}

// addTexture emits the 4 UV corners of an atlas tile. The atlas is authored
// top to bottom, so rows are flipped into bottom-up UV space.
func (b *Builder) addTexture(index int) {
	n := 1 / float32(b.atlasSize)
	row := index / b.atlasSize
	col := index - row*b.atlasSize

	x := float32(col) * n
	y := 1 - float32(row)*n - n

	for _, uv := range voxel.UVs {
		b.uvs = append(b.uvs, mgl32.Vec2{x + uv[0]*n, y + uv[1]*n})
	}
}

// FaceCount returns the number of quads produced by the last build.
func (b *Builder) FaceCount() int {
	return len(b.vertices) / 4
}

// Snapshot copies the current buffers into a Mesh the caller may retain.
func (b *Builder) Snapshot() *Mesh {
	m := &Mesh{
		Vertices:  b.vertices,
		UVs:       b.uvs,
		Shades:    b.shades,
		Triangles: b.triangles,
	}
	return m.Clone()
}
