package worldfile

// Biome is the on-disk form of a biome. Pointer fields left unset are inherited
// from the parent biome.
type Biome struct {
	Parent            string   `json:"parent"`
	Name              string   `json:"name"`
	SolidGroundHeight *int     `json:"solid_ground_height"`
	TerrainHeight     *int     `json:"terrain_height"`
	TerrainScale      *float64 `json:"terrain_scale"`
	Lodes             []Lode   `json:"lodes"`
}

// Lode places Block inside (MinHeight, MaxHeight) where 3D noise exceeds Threshold.
type Lode struct {
	Name        string  `json:"name"`
	Block       string  `json:"block"`
	MinHeight   int     `json:"min_height"`
	MaxHeight   int     `json:"max_height"`
	Scale       float64 `json:"scale"`
	Threshold   float64 `json:"threshold"`
	NoiseOffset float64 `json:"noise_offset"`
}

// BlockSet is the on-disk block registry.
type BlockSet struct {
	Blocks []Block `json:"blocks"`
}

// Block describes one block type. Textures maps face names to atlas indices;
// "all" and "side" are shorthands resolved by Block.FaceTextures.
type Block struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Solid       bool           `json:"solid"`
	Transparent bool           `json:"transparent"`
	Textures    map[string]int `json:"textures"`
}

// FaceOrder is the face order used by FaceTextures.
var FaceOrder = [6]string{"back", "front", "top", "bottom", "left", "right"}

// FaceTextures resolves the texture map into one atlas index per face in FaceOrder.
// Explicit face names win over "side", which wins over "all".
func (b *Block) FaceTextures() [6]int {
	var out [6]int
	all := b.Textures["all"]
	for i := range out {
		out[i] = all
	}
	if side, ok := b.Textures["side"]; ok {
		for _, i := range []int{0, 1, 4, 5} {
			out[i] = side
		}
	}
	for i, face := range FaceOrder {
		if tex, ok := b.Textures[face]; ok {
			out[i] = tex
		}
	}
	return out
}
