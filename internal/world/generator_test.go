package world

import (
	"crypto/sha256"
	"sync"
	"testing"

	"voxelworld/internal/registry"
	"voxelworld/internal/voxel"
)

func flatBiome(ground int) *Biome {
	return &Biome{Name: "flat", SolidGroundHeight: ground, TerrainHeight: 0, TerrainScale: 1}
}

func TestGenerateOutOfBoundsIsAir(t *testing.T) {
	g := NewGenerator(1, flatBiome(10), 16, 64, 64)
	for _, p := range []BlockPos{
		{-1, 5, 5}, {5, -1, 5}, {5, 5, -1},
		{64, 5, 5}, {5, 64, 5}, {5, 5, 64},
	} {
		if id := g.Generate(p.X, p.Y, p.Z); id != registry.BlockAir {
			t.Errorf("Generate%v = %d, want air", p, id)
		}
	}
}

func TestGenerateFlatColumn(t *testing.T) {
	g := NewGenerator(1, flatBiome(10), 16, 64, 64)
	want := map[int]voxel.ID{
		0:  registry.BlockBedrock,
		1:  registry.BlockStone,
		6:  registry.BlockStone,
		7:  registry.BlockDirt,
		9:  registry.BlockDirt,
		10: registry.BlockGrass,
		11: registry.BlockAir,
		63: registry.BlockAir,
	}
	for x := 0; x < 64; x += 9 {
		for z := 0; z < 64; z += 13 {
			if h := g.SurfaceHeight(x, z); h != 10 {
				t.Fatalf("SurfaceHeight(%d,%d) = %d, want 10", x, z, h)
			}
			for y, id := range want {
				if got := g.Generate(x, y, z); got != id {
					t.Errorf("Generate(%d,%d,%d) = %d, want %d", x, y, z, got, id)
				}
			}
		}
	}
}

func TestLodeBoundsAreStrict(t *testing.T) {
	b := flatBiome(10)
	b.Lodes = []Lode{{Name: "coal", BlockID: registry.BlockCoalOre, MinHeight: 2, MaxHeight: 5, Scale: 1, Threshold: -1}}
	g := NewGenerator(1, b, 16, 64, 64)

	want := []voxel.ID{registry.BlockBedrock, registry.BlockStone, registry.BlockStone,
		registry.BlockCoalOre, registry.BlockCoalOre, registry.BlockStone}
	for y, id := range want {
		if got := g.Generate(3, y, 3); got != id {
			t.Errorf("y=%d: got %d, want %d", y, got, id)
		}
	}
}

func TestLodesLastWinsAndOnlyReplaceStone(t *testing.T) {
	b := flatBiome(10)
	b.Lodes = []Lode{
		{Name: "coal", BlockID: registry.BlockCoalOre, MinHeight: 0, MaxHeight: 20, Scale: 1, Threshold: -1},
		{Name: "sand", BlockID: registry.BlockSand, MinHeight: 0, MaxHeight: 20, Scale: 1, Threshold: -1},
	}
	g := NewGenerator(1, b, 16, 64, 64)
	if got := g.Generate(1, 3, 1); got != registry.BlockSand {
		t.Errorf("stone cell: got %d, want sand from the last lode", got)
	}
	if got := g.Generate(1, 8, 1); got != registry.BlockDirt {
		t.Errorf("dirt cell: got %d, lodes must not replace dirt", got)
	}
	if got := g.Generate(1, 10, 1); got != registry.BlockGrass {
		t.Errorf("grass cell: got %d", got)
	}
	if got := g.Generate(1, 0, 1); got != registry.BlockBedrock {
		t.Errorf("bedrock cell: got %d", got)
	}
}

func TestLodeNeverAboveThreshold(t *testing.T) {
	b := flatBiome(30)
	b.Lodes = []Lode{{Name: "none", BlockID: registry.BlockCoalOre, MinHeight: 0, MaxHeight: 64, Scale: 1, Threshold: 1}}
	g := NewGenerator(3, b, 16, 64, 64)
	for x := 0; x < 64; x += 3 {
		for y := 1; y < 26; y++ {
			if got := g.Generate(x, y, x); got != registry.BlockStone {
				t.Fatalf("(%d,%d,%d): got %d, want stone", x, y, x, got)
			}
		}
	}
}

func TestSurfaceHeightWithinBiomeRange(t *testing.T) {
	biome := DefaultBiome()
	g := NewGenerator(42, biome, 16, 128, 1600)
	for x := 0; x < 1600; x += 37 {
		for z := 0; z < 1600; z += 41 {
			h := g.SurfaceHeight(x, z)
			if h < biome.SolidGroundHeight || h > biome.SolidGroundHeight+biome.TerrainHeight {
				t.Fatalf("SurfaceHeight(%d,%d) = %d outside [%d,%d]", x, z, h,
					biome.SolidGroundHeight, biome.SolidGroundHeight+biome.TerrainHeight)
			}
		}
	}
}

// hashRegion computes a SHA-256 hash of every block in a 32x128x32 region.
func hashRegion(g *Generator, x0, z0 int) [32]byte {
	h := sha256.New()
	buf := make([]byte, 0, 128)
	for x := x0; x < x0+32; x++ {
		for z := z0; z < z0+32; z++ {
			buf = buf[:0]
			for y := 0; y < 128; y++ {
				buf = append(buf, byte(g.Generate(x, y, z)))
			}
			h.Write(buf)
		}
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func TestGeneratorDeterministic(t *testing.T) {
	a := NewGenerator(12345, DefaultBiome(), 16, 128, 1600)
	b := NewGenerator(12345, DefaultBiome(), 16, 128, 1600)
	if hashRegion(a, 100, 200) != hashRegion(b, 100, 200) {
		t.Fatalf("same seed produced different terrain")
	}
	c := NewGenerator(54321, DefaultBiome(), 16, 128, 1600)
	if hashRegion(a, 100, 200) == hashRegion(c, 100, 200) {
		t.Errorf("different seeds produced identical terrain")
	}
}

func TestGeneratorConcurrentCalls(t *testing.T) {
	g := NewGenerator(777, DefaultBiome(), 16, 128, 1600)
	want := hashRegion(g, 48, 48)

	var wg sync.WaitGroup
	results := make([][32]byte, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = hashRegion(g, 48, 48)
		}()
	}
	wg.Wait()
	for i, got := range results {
		if got != want {
			t.Errorf("goroutine %d saw different terrain", i)
		}
	}
}

func BenchmarkGenerateColumn(b *testing.B) {
	g := NewGenerator(1, DefaultBiome(), 16, 128, 1600)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x, z := i%1600, (i*31)%1600
		for y := 0; y < 128; y++ {
			_ = g.Generate(x, y, z)
		}
	}
}
