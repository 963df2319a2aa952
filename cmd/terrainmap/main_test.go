package main

import (
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"voxelworld/internal/config"
)

func writeAssets(t *testing.T, blocks string) string {
	t.Helper()
	dir := t.TempDir()
	biome, err := os.ReadFile("../../assets/biomes/default.json")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "biomes"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "biomes", "default.json"), biome, 0o644); err != nil {
		t.Fatal(err)
	}
	if blocks != "" {
		if err := os.WriteFile(filepath.Join(dir, "blocks.json"), []byte(blocks), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunWithoutBlockFileUsesBuiltins(t *testing.T) {
	out := filepath.Join(t.TempDir(), "map.png")
	err := run(1, writeAssets(t, ""), "", 0, 0, 16, 2, out, config.Default(), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Errorf("image is %v, want 32x32", b)
	}
}

func TestRunRejectsMalformedBlockFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "map.png")
	err := run(1, writeAssets(t, "{"), "", 0, 0, 16, 2, out, config.Default(), slog.New(slog.DiscardHandler))
	if err == nil {
		t.Fatal("run accepted a malformed blocks.json")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("map written despite the error: %v", statErr)
	}
}
