package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"voxelworld/internal/config"
	"voxelworld/internal/registry"
	"voxelworld/internal/world"
	"voxelworld/pkg/worldfile"

	getter "github.com/hashicorp/go-getter"
)

// loadAssets resolves the block registry and biome for a session. An empty
// asset source selects the built-in set. Remote sources are fetched into a
// temporary directory that cleanup removes.
func loadAssets(gen config.WorldGen, log *slog.Logger) (*registry.Registry, *world.Biome, func(), error) {
	cleanup := func() {}
	if gen.Assets == "" {
		if gen.Biome != "" {
			return nil, nil, cleanup, fmt.Errorf("biome %q requires -assets", gen.Biome)
		}
		return registry.Default(), world.DefaultBiome(), cleanup, nil
	}

	dir := gen.Assets
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		tmp, err := os.MkdirTemp("", "voxelworld-assets-")
		if err != nil {
			return nil, nil, cleanup, fmt.Errorf("create asset dir: %w", err)
		}
		cleanup = func() { os.RemoveAll(tmp) }
		dir = filepath.Join(tmp, "assets")

		log.Info("fetching assets", "src", gen.Assets, "dst", dir)
		if err := getter.Get(dir, gen.Assets); err != nil {
			cleanup()
			return nil, nil, func() {}, fmt.Errorf("fetch assets %s: %w", gen.Assets, err)
		}
	}

	loader := worldfile.NewLoader(dir)
	reg := registry.Default()
	if set, err := loader.LoadBlocks(); err == nil {
		if reg, err = registry.FromFile(set); err != nil {
			cleanup()
			return nil, nil, func() {}, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		cleanup()
		return nil, nil, func() {}, err
	}

	name := gen.Biome
	if name == "" {
		name = "default"
	}
	file, err := loader.LoadBiome(name)
	if err != nil {
		cleanup()
		return nil, nil, func() {}, err
	}
	biome, err := world.BiomeFromFile(file, reg)
	if err != nil {
		cleanup()
		return nil, nil, func() {}, err
	}
	log.Info("assets loaded", "dir", dir, "blocks", reg.Len(), "biome", biome.Name, "lodes", len(biome.Lodes))
	return reg, biome, cleanup, nil
}
