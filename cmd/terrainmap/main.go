package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"runtime"

	"voxelworld/internal/config"
	"voxelworld/internal/registry"
	"voxelworld/internal/world"
	"voxelworld/pkg/worldfile"
)

func main() {
	settings := config.Default()
	var (
		seed   = flag.Int64("seed", 0, "world seed")
		assets = flag.String("assets", "", "asset directory holding biomes/ and blocks.json")
		biome  = flag.String("biome", "", "biome name under <assets>/biomes")
		x0     = flag.Int("x", settings.WorldSizeInVoxels()/2-128, "west edge of the map in blocks")
		z0     = flag.Int("z", settings.WorldSizeInVoxels()/2-128, "north edge of the map in blocks")
		size   = flag.Int("size", 256, "map edge length in blocks")
		scale  = flag.Int("scale", 2, "output pixels per block")
		out    = flag.String("o", "terrain.png", "output PNG path")
	)
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(*seed, *assets, *biome, *x0, *z0, *size, *scale, *out, settings, log); err != nil {
		log.Error("terrainmap", "error", err)
		os.Exit(1)
	}
}

func run(seed int64, assets, biomeName string, x0, z0, size, scale int, out string, s config.Settings, log *slog.Logger) error {
	if size <= 0 || scale <= 0 {
		return fmt.Errorf("size %d and scale %d must be positive", size, scale)
	}

	reg := registry.Default()
	biome := world.DefaultBiome()
	if assets != "" {
		loader := worldfile.NewLoader(assets)
		set, err := loader.LoadBlocks()
		switch {
		case err == nil:
			if reg, err = registry.FromFile(set); err != nil {
				return err
			}
		case !errors.Is(err, fs.ErrNotExist):
			return err
		}
		if biomeName == "" {
			biomeName = "default"
		}
		file, err := loader.LoadBiome(biomeName)
		if err != nil {
			return err
		}
		if biome, err = world.BiomeFromFile(file, reg); err != nil {
			return err
		}
	}

	gen := world.NewGenerator(seed, biome, s.ChunkWidth, s.ChunkHeight, s.WorldSizeInVoxels())
	m := surfaceMap{gen: gen, reg: reg, height: s.ChunkHeight}
	img, err := m.Render(context.Background(), x0, z0, size, runtime.NumCPU())
	if err != nil {
		return err
	}
	final := upscale(img, scale)
	caption(final, fmt.Sprintf("seed %d  %s  (%d,%d)", seed, biome.Name, x0, z0))

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	if err := png.Encode(f, final); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	log.Info("map written", "path", out, "blocks", size, "pixels", size*scale)
	return nil
}
