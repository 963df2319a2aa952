package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettingsAreValid(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if s.WorldSizeInVoxels() != 1600 {
		t.Errorf("WorldSizeInVoxels = %d, want 1600", s.WorldSizeInVoxels())
	}
	if s.InitPerTick != 1 {
		t.Errorf("InitPerTick = %d, want 1", s.InitPerTick)
	}
}

func TestValidateClampsBudgets(t *testing.T) {
	s := Default()
	s.ViewDistance = 500
	s.InitPerTick = 0
	s.Workers = -3
	s.OcclusionDarkness = 2
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if s.ViewDistance != 32 || s.InitPerTick != 1 || s.Workers != 1 || s.OcclusionDarkness != 1 {
		t.Errorf("clamped settings = %+v", s)
	}

	s = Default()
	s.ChunkHeight = 0
	if err := s.Validate(); err == nil {
		t.Errorf("expected zero chunk height to be rejected")
	}
	s = Default()
	s.ChunkLength = 8
	if err := s.Validate(); err == nil {
		t.Errorf("expected non-square chunks to be rejected")
	}
}

func TestLoadAndMerge(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	data := `{"world":{"chunk_width":8,"chunk_height":64,"chunk_length":8,"world_size_in_chunks":10,"view_distance":3,"atlas_size_in_blocks":4,"workers":2},"gen":{"seed":99,"biome":"hills"},"tick_rate":30}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	fromFile, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if fromFile.World.ChunkWidth != 8 || fromFile.Gen.Seed != 99 || fromFile.TickRate != 30 {
		t.Fatalf("loaded config = %+v", fromFile)
	}
	// Unset fields keep their defaults.
	if fromFile.World.InitPerTick != 1 {
		t.Errorf("InitPerTick = %d, want default 1", fromFile.World.InitPerTick)
	}

	cfg := DefaultConfig()
	cfg.Gen.Seed = 7
	cfg.World.ViewDistance = 9
	Merge(cfg, fromFile, map[string]bool{"seed": true, "view-distance": true})

	if cfg.Gen.Seed != 7 {
		t.Errorf("explicit seed overwritten: %d", cfg.Gen.Seed)
	}
	if cfg.World.ViewDistance != 9 {
		t.Errorf("explicit view distance overwritten: %d", cfg.World.ViewDistance)
	}
	if cfg.World.ChunkHeight != 64 || cfg.Gen.Biome != "hills" || cfg.TickRate != 30 {
		t.Errorf("file values not merged: %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Errorf("expected error for missing file")
	}
}
