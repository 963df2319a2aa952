package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ChunkCoord identifies a chunk column on the horizontal chunk grid.
type ChunkCoord struct {
	X, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Add returns c offset by dx, dz chunks.
func (c ChunkCoord) Add(dx, dz int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Z: c.Z + dz}
}

// CoordFromPosition returns the chunk containing a world-space position.
func CoordFromPosition(pos mgl32.Vec3, chunkWidth, chunkLength int) ChunkCoord {
	return CoordFromBlock(
		int(math.Floor(float64(pos[0]))),
		int(math.Floor(float64(pos[2]))),
		chunkWidth, chunkLength,
	)
}

// CoordFromBlock returns the chunk containing world block x, z.
func CoordFromBlock(x, z, chunkWidth, chunkLength int) ChunkCoord {
	return ChunkCoord{X: floorDiv(x, chunkWidth), Z: floorDiv(z, chunkLength)}
}

// BlockPos is an integer world position.
type BlockPos struct {
	X, Y, Z int
}

// BlockPosFromVec floors a world-space position onto the block grid.
func BlockPosFromVec(pos mgl32.Vec3) BlockPos {
	return BlockPos{
		X: int(math.Floor(float64(pos[0]))),
		Y: int(math.Floor(float64(pos[1]))),
		Z: int(math.Floor(float64(pos[2]))),
	}
}

func (p BlockPos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
