package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCoordFromPositionFloors(t *testing.T) {
	tests := []struct {
		pos  mgl32.Vec3
		want ChunkCoord
	}{
		{mgl32.Vec3{0, 0, 0}, ChunkCoord{0, 0}},
		{mgl32.Vec3{15.9, 100, 15.9}, ChunkCoord{0, 0}},
		{mgl32.Vec3{16, 0, 31.99}, ChunkCoord{1, 1}},
		{mgl32.Vec3{-0.1, 0, -16}, ChunkCoord{-1, -1}},
		{mgl32.Vec3{-16.5, 0, 800}, ChunkCoord{-2, 50}},
	}
	for _, tt := range tests {
		if got := CoordFromPosition(tt.pos, 16, 16); got != tt.want {
			t.Errorf("CoordFromPosition(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestCoordRoundTrip(t *testing.T) {
	const w = 16
	for x := -70; x <= 70; x++ {
		for z := -70; z <= 70; z += 5 {
			c := CoordFromBlock(x, z, w, w)
			if x < c.X*w || x >= (c.X+1)*w || z < c.Z*w || z >= (c.Z+1)*w {
				t.Fatalf("block (%d,%d) not inside chunk %v", x, z, c)
			}
			lx, lz := mod(x, w), mod(z, w)
			if c.X*w+lx != x || c.Z*w+lz != z {
				t.Fatalf("local (%d,%d) of chunk %v does not map back to (%d,%d)", lx, lz, c, x, z)
			}
		}
	}
}

func TestBlockPosFromVec(t *testing.T) {
	got := BlockPosFromVec(mgl32.Vec3{-0.5, 10.99, 3})
	if want := (BlockPos{-1, 10, 3}); got != want {
		t.Errorf("BlockPosFromVec = %v, want %v", got, want)
	}
}

func TestChunkCoordAdd(t *testing.T) {
	if got := (ChunkCoord{2, 3}).Add(-1, 4); got != (ChunkCoord{1, 7}) {
		t.Errorf("Add = %v", got)
	}
}
