package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// FindGroundLevel returns the top surface of the highest solid block in the
// column under x, z at or below fromY. It returns 0 when the column is empty.
func FindGroundLevel(x, z, fromY float32, q SolidQuery) float32 {
	bx := float32(math.Floor(float64(x))) + 0.5
	bz := float32(math.Floor(float64(z))) + 0.5
	for by := int(math.Floor(float64(fromY))); by >= 0; by-- {
		if q.IsSolid(mgl32.Vec3{bx, float32(by) + 0.5, bz}) {
			return float32(by + 1)
		}
	}
	return 0
}
