package registry

import (
	"errors"
	"fmt"

	"voxelworld/internal/voxel"
)

var (
	// ErrUnknownBlock is returned for ids that have no registered definition.
	ErrUnknownBlock = errors.New("unknown block id")
	// ErrInvalidFace is returned for face indexes outside 0-5. It indicates a programming error.
	ErrInvalidFace = errors.New("invalid face index")
)

// Ids of the built-in block types used by terrain generation.
const (
	BlockAir     voxel.ID = 0
	BlockBedrock voxel.ID = 1
	BlockStone   voxel.ID = 2
	BlockGrass   voxel.ID = 3
	BlockDirt    voxel.ID = 4
	BlockSand    voxel.ID = 5
	BlockGlass   voxel.ID = 6
	BlockCoalOre voxel.ID = 7
)

// BlockDefinition defines the properties of a block type
type BlockDefinition struct {
	ID            voxel.ID
	Name          string
	IsSolid       bool
	IsTransparent bool
	// Textures holds the atlas index per face, in voxel.Face order.
	Textures [voxel.NumFaces]int
}

// Occludes reports whether the block hides the faces of solid neighbours.
func (d *BlockDefinition) Occludes() bool {
	return d.IsSolid && !d.IsTransparent
}

// TextureID returns the atlas index of the given face.
func (d *BlockDefinition) TextureID(face voxel.Face) (int, error) {
	if !face.Valid() {
		return 0, fmt.Errorf("block %q face %d: %w", d.Name, int(face), ErrInvalidFace)
	}
	return d.Textures[face], nil
}

// Registry maps block ids to their definitions. It is read-only once handed
// to a world and safe for concurrent lookups.
type Registry struct {
	blocks [256]*BlockDefinition
	names  map[string]voxel.ID
}

// New returns an empty registry with only air registered.
func New() *Registry {
	r := &Registry{names: make(map[string]voxel.ID)}
	r.blocks[BlockAir] = &BlockDefinition{ID: BlockAir, Name: "air", IsTransparent: true}
	r.names["air"] = BlockAir
	return r
}

// Register adds or replaces a block definition.
func (r *Registry) Register(def *BlockDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("register block %d: empty name", def.ID)
	}
	if def.ID == BlockAir && def.IsSolid {
		return fmt.Errorf("register block %q: air cannot be solid", def.Name)
	}
	if prev, ok := r.names[def.Name]; ok && prev != def.ID {
		return fmt.Errorf("register block %q: name already used by id %d", def.Name, prev)
	}
	if old := r.blocks[def.ID]; old != nil {
		delete(r.names, old.Name)
	}
	r.blocks[def.ID] = def
	r.names[def.Name] = def.ID
	return nil
}

// Get returns the definition for id.
func (r *Registry) Get(id voxel.ID) (*BlockDefinition, error) {
	def := r.blocks[id]
	if def == nil {
		return nil, fmt.Errorf("block %d: %w", id, ErrUnknownBlock)
	}
	return def, nil
}

// Lookup returns the id registered under name.
func (r *Registry) Lookup(name string) (voxel.ID, bool) {
	id, ok := r.names[name]
	return id, ok
}

// IsSolid reports whether id is a registered solid block. Unknown ids are not solid.
func (r *Registry) IsSolid(id voxel.ID) bool {
	def := r.blocks[id]
	return def != nil && def.IsSolid
}

// Occludes reports whether id hides neighbouring faces. Unknown ids do not.
func (r *Registry) Occludes(id voxel.ID) bool {
	def := r.blocks[id]
	return def != nil && def.Occludes()
}

// Len returns the number of registered block types, air included.
func (r *Registry) Len() int {
	return len(r.names)
}

func sides(side, top, bottom int) [voxel.NumFaces]int {
	return [voxel.NumFaces]int{side, side, top, bottom, side, side}
}

func all(tex int) [voxel.NumFaces]int {
	return sides(tex, tex, tex)
}

// Default returns the built-in block set laid out for a 16x16 atlas.
func Default() *Registry {
	r := New()
	for _, def := range []*BlockDefinition{
		{ID: BlockBedrock, Name: "bedrock", IsSolid: true, Textures: all(9)},
		{ID: BlockStone, Name: "stone", IsSolid: true, Textures: all(0)},
		{ID: BlockGrass, Name: "grass", IsSolid: true, Textures: sides(2, 7, 1)},
		{ID: BlockDirt, Name: "dirt", IsSolid: true, Textures: all(1)},
		{ID: BlockSand, Name: "sand", IsSolid: true, Textures: all(10)},
		{ID: BlockGlass, Name: "glass", IsSolid: true, IsTransparent: true, Textures: all(3)},
		{ID: BlockCoalOre, Name: "coal_ore", IsSolid: true, Textures: all(16)},
	} {
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}
