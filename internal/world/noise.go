package world

import (
	"math"
)

// Deterministic smooth value noise in [0,1], seeded by integer lattice hashing.

// fade is the quintic smoothing curve 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func hash2(x int64, z int64, seed int64) uint64 {
	// SplitMix64 style integer hash, stable across runs for same inputs
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x517CC1B727220A95 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue(x int64, z int64, seed int64) float64 {
	h := hash2(x, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise2D(x float64, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	x1 := x0 + 1
	z1 := z0 + 1

	fx := fade(x - x0)
	fz := fade(z - z0)

	v00 := latticeValue(int64(x0), int64(z0), seed)
	v10 := latticeValue(int64(x1), int64(z0), seed)
	v01 := latticeValue(int64(x0), int64(z1), seed)
	v11 := latticeValue(int64(x1), int64(z1), seed)

	i0 := lerp(v00, v10, fx)
	i1 := lerp(v01, v11, fx)
	return lerp(i0, i1, fz) // [0,1]
}

// Noise samples world coordinates at a biome-controlled scale. A block
// coordinate c maps to (c + 0.1) / chunkWidth * scale + offset, so scale is
// expressed in features per chunk.
type Noise struct {
	seed       int64
	chunkWidth float64
}

func NewNoise(seed int64, chunkWidth int) Noise {
	return Noise{seed: seed, chunkWidth: float64(chunkWidth)}
}

func (n Noise) sample(c, offset, scale float64) float64 {
	return (c+0.1)/n.chunkWidth*scale + offset
}

// Get2D returns coherent noise in [0,1] for the column x, z.
func (n Noise) Get2D(x, z int, offset, scale float64) float64 {
	return valueNoise2D(
		n.sample(float64(x), offset, scale),
		n.sample(float64(z), offset, scale),
		n.seed,
	)
}

// Get3D returns coherent noise in [0,1] for a block position, built as the
// mean of the six ordered axis-pair 2D samples.
func (n Noise) Get3D(x, y, z int, offset, scale float64) float64 {
	fx := n.sample(float64(x), offset, scale)
	fy := n.sample(float64(y), offset, scale)
	fz := n.sample(float64(z), offset, scale)

	ab := valueNoise2D(fx, fy, n.seed)
	bc := valueNoise2D(fy, fz, n.seed)
	ac := valueNoise2D(fx, fz, n.seed)
	ba := valueNoise2D(fy, fx, n.seed)
	cb := valueNoise2D(fz, fy, n.seed)
	ca := valueNoise2D(fz, fx, n.seed)

	return (ab + bc + ac + ba + cb + ca) / 6
}

// Above3D reports whether the 3D noise at a block position exceeds threshold.
func (n Noise) Above3D(x, y, z int, offset, scale, threshold float64) bool {
	return n.Get3D(x, y, z, offset, scale) > threshold
}
