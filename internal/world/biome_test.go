package world

import (
	"errors"
	"testing"

	"voxelworld/internal/registry"
	"voxelworld/pkg/worldfile"
)

func TestBiomeFromFile(t *testing.T) {
	loader := worldfile.NewLoader("../../pkg/worldfile/testdata")
	file, err := loader.LoadBiome("plains")
	if err != nil {
		t.Fatalf("LoadBiome: %v", err)
	}
	b, err := BiomeFromFile(file, registry.Default())
	if err != nil {
		t.Fatalf("BiomeFromFile: %v", err)
	}
	if b.TerrainHeight != 8 || b.SolidGroundHeight != 42 || b.TerrainScale != 0.25 {
		t.Errorf("inherited shape = %+v", b)
	}
	if len(b.Lodes) != 3 {
		t.Fatalf("got %d lodes, want 3", len(b.Lodes))
	}
	if b.Lodes[2].BlockID != registry.BlockAir || b.Lodes[0].BlockID != registry.BlockDirt {
		t.Errorf("lode blocks = %d, %d", b.Lodes[0].BlockID, b.Lodes[2].BlockID)
	}
}

func TestBiomeFromFileErrors(t *testing.T) {
	h, s := 10, 0.5
	incomplete := &worldfile.Biome{Name: "half", TerrainHeight: &h}
	if _, err := BiomeFromFile(incomplete, registry.Default()); err == nil {
		t.Errorf("missing fields accepted")
	}

	unknown := &worldfile.Biome{
		Name:              "odd",
		SolidGroundHeight: &h,
		TerrainHeight:     &h,
		TerrainScale:      &s,
		Lodes:             []worldfile.Lode{{Name: "gems", Block: "ruby"}},
	}
	if _, err := BiomeFromFile(unknown, registry.Default()); !errors.Is(err, registry.ErrUnknownBlock) {
		t.Errorf("err = %v, want ErrUnknownBlock", err)
	}
}

func TestDefaultBiomeLodesRegistered(t *testing.T) {
	reg := registry.Default()
	for _, l := range DefaultBiome().Lodes {
		if _, err := reg.Get(l.BlockID); err != nil {
			t.Errorf("lode %q: %v", l.Name, err)
		}
	}
}
