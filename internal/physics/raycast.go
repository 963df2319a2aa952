package physics

import (
	"math"

	"voxelworld/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// SolidQuery answers whether a world-space position lies inside a solid block.
type SolidQuery interface {
	IsSolid(pos mgl32.Vec3) bool
}

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition      [3]int
	AdjacentPosition [3]int // last empty block before the hit
	Distance         float32
	Hit              bool
}

func blockOf(pos mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(pos.X()))),
		int(math.Floor(float64(pos.Y()))),
		int(math.Floor(float64(pos.Z()))),
	}
}

func blockCenter(b [3]int) mgl32.Vec3 {
	return mgl32.Vec3{float32(b[0]) + 0.5, float32(b[1]) + 0.5, float32(b[2]) + 0.5}
}

// Raycast marches from start along direction and reports the first solid
// block between minDist and maxDist. Blocks span [n, n+1) on every axis.
func Raycast(start mgl32.Vec3, direction mgl32.Vec3, minDist, maxDist float32, q SolidQuery) RaycastResult {
	defer profiling.Track("physics.Raycast")()
	stepSize := float32(0.02)
	steps := int(maxDist / stepSize)

	lastEmptyPos := blockOf(start)
	result := RaycastResult{Hit: false}

	for i := 0; i <= steps; i++ {
		dist := float32(i) * stepSize
		if dist < minDist {
			continue
		}

		blockPos := blockOf(start.Add(direction.Mul(dist)))
		if q.IsSolid(blockCenter(blockPos)) {
			result.HitPosition = blockPos
			result.AdjacentPosition = lastEmptyPos
			result.Distance = dist
			result.Hit = true
			return result
		}

		lastEmptyPos = blockPos
	}

	return result
}
