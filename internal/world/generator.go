package world

import (
	"math"

	"voxelworld/internal/registry"
	"voxelworld/internal/voxel"
)

// dirtDepth is the band of dirt kept under the grass surface.
const dirtDepth = 4

// terrainBlocks are the ids Generate emits regardless of biome lodes.
var terrainBlocks = []voxel.ID{
	registry.BlockBedrock,
	registry.BlockStone,
	registry.BlockGrass,
	registry.BlockDirt,
}

// Generator maps world positions to block ids. It holds no mutable state and
// is safe for concurrent use.
type Generator struct {
	noise       Noise
	biome       *Biome
	height      int
	worldVoxels int
}

// NewGenerator creates a generator for a world worldVoxels blocks wide and
// chunkHeight blocks tall.
func NewGenerator(seed int64, biome *Biome, chunkWidth, chunkHeight, worldVoxels int) *Generator {
	return &Generator{
		noise:       NewNoise(seed, chunkWidth),
		biome:       biome,
		height:      chunkHeight,
		worldVoxels: worldVoxels,
	}
}

// Biome returns the biome the generator was built with.
func (g *Generator) Biome() *Biome {
	return g.biome
}

// InWorld reports whether a block position is inside the addressable world.
func (g *Generator) InWorld(x, y, z int) bool {
	return x >= 0 && x < g.worldVoxels &&
		y >= 0 && y < g.height &&
		z >= 0 && z < g.worldVoxels
}

// SurfaceHeight computes the grass level of column x, z.
func (g *Generator) SurfaceHeight(x, z int) int {
	n := g.noise.Get2D(x, z, 0, g.biome.TerrainScale)
	return int(math.Floor(float64(g.biome.TerrainHeight)*n)) + g.biome.SolidGroundHeight
}

// Generate returns the block at a world position.
func (g *Generator) Generate(x, y, z int) voxel.ID {
	if !g.InWorld(x, y, z) {
		return registry.BlockAir
	}
	if y == 0 {
		return registry.BlockBedrock
	}

	surface := g.SurfaceHeight(x, z)
	var id voxel.ID
	switch {
	case y == surface:
		id = registry.BlockGrass
	case y < surface && y > surface-dirtDepth:
		id = registry.BlockDirt
	case y > surface:
		return registry.BlockAir
	default:
		id = registry.BlockStone
	}

	if id != registry.BlockStone {
		return id
	}
	for i := range g.biome.Lodes {
		lode := &g.biome.Lodes[i]
		if y > lode.MinHeight && y < lode.MaxHeight &&
			g.noise.Above3D(x, y, z, lode.NoiseOffset, lode.Scale, lode.Threshold) {
			id = lode.BlockID
		}
	}
	return id
}
