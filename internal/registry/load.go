package registry

import (
	"fmt"

	"voxelworld/internal/voxel"
	"voxelworld/pkg/worldfile"
)

// FromFile builds a registry from an on-disk block set. Air is always present.
func FromFile(set *worldfile.BlockSet) (*Registry, error) {
	r := New()
	for i := range set.Blocks {
		b := &set.Blocks[i]
		if b.ID < 0 || b.ID > 255 {
			return nil, fmt.Errorf("block %q: id %d out of range", b.Name, b.ID)
		}
		def := &BlockDefinition{
			ID:            voxel.ID(b.ID),
			Name:          b.Name,
			IsSolid:       b.Solid,
			IsTransparent: b.Transparent,
			Textures:      b.FaceTextures(),
		}
		if err := r.Register(def); err != nil {
			return nil, err
		}
	}
	return r, nil
}
