package world

import (
	"fmt"

	"voxelworld/internal/registry"
	"voxelworld/internal/voxel"
	"voxelworld/pkg/worldfile"
)

// Biome defines the surface shape and ore placement of the terrain.
// It is treated as immutable once handed to a Generator.
type Biome struct {
	Name              string
	SolidGroundHeight int     // base surface height
	TerrainHeight     int     // surface amplitude above the base
	TerrainScale      float64 // 2D noise scale, features per chunk
	Lodes             []Lode  // applied in order, later lodes win
}

// Lode places BlockID in stone strictly between MinHeight and MaxHeight
// wherever 3D noise exceeds Threshold.
type Lode struct {
	Name        string
	BlockID     voxel.ID
	MinHeight   int
	MaxHeight   int
	Scale       float64
	Threshold   float64
	NoiseOffset float64
}

// DefaultBiome returns the built-in rolling-hills biome.
func DefaultBiome() *Biome {
	return &Biome{
		Name:              "Default",
		SolidGroundHeight: 42,
		TerrainHeight:     42,
		TerrainScale:      0.25,
		Lodes: []Lode{
			{Name: "dirt", BlockID: registry.BlockDirt, MinHeight: 1, MaxHeight: 255, Scale: 0.1, Threshold: 0.5},
			{Name: "sand", BlockID: registry.BlockSand, MinHeight: 30, MaxHeight: 60, Scale: 0.2, Threshold: 0.6, NoiseOffset: 500},
			{Name: "coal", BlockID: registry.BlockCoalOre, MinHeight: 5, MaxHeight: 40, Scale: 0.9, Threshold: 0.62, NoiseOffset: 300},
			{Name: "caves", BlockID: registry.BlockAir, MinHeight: 5, MaxHeight: 60, Scale: 0.1, Threshold: 0.55, NoiseOffset: 43},
		},
	}
}

// BiomeFromFile converts an on-disk biome, resolving lode block names through reg.
func BiomeFromFile(b *worldfile.Biome, reg *registry.Registry) (*Biome, error) {
	if b.SolidGroundHeight == nil || b.TerrainHeight == nil || b.TerrainScale == nil {
		return nil, fmt.Errorf("biome %q: solid_ground_height, terrain_height and terrain_scale are required", b.Name)
	}
	out := &Biome{
		Name:              b.Name,
		SolidGroundHeight: *b.SolidGroundHeight,
		TerrainHeight:     *b.TerrainHeight,
		TerrainScale:      *b.TerrainScale,
		Lodes:             make([]Lode, 0, len(b.Lodes)),
	}
	for _, l := range b.Lodes {
		id, ok := reg.Lookup(l.Block)
		if !ok {
			return nil, fmt.Errorf("biome %q lode %q: block %q: %w", b.Name, l.Name, l.Block, registry.ErrUnknownBlock)
		}
		out.Lodes = append(out.Lodes, Lode{
			Name:        l.Name,
			BlockID:     id,
			MinHeight:   l.MinHeight,
			MaxHeight:   l.MaxHeight,
			Scale:       l.Scale,
			Threshold:   l.Threshold,
			NoiseOffset: l.NoiseOffset,
		})
	}
	return out, nil
}
