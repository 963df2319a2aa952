package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"
)

// Settings holds the fixed world geometry and scheduling budgets for a session.
type Settings struct {
	ChunkWidth        int `json:"chunk_width"`
	ChunkHeight       int `json:"chunk_height"`
	ChunkLength       int `json:"chunk_length"`
	WorldSizeInChunks int `json:"world_size_in_chunks"`
	ViewDistance      int `json:"view_distance"` // in chunks
	AtlasSizeInBlocks int `json:"atlas_size_in_blocks"`

	// Chunks fully initialized per scheduler tick.
	InitPerTick int `json:"init_per_tick"`
	// Finished meshes handed to the presenter per scheduler tick.
	CompletionsPerTick int `json:"completions_per_tick"`
	Workers            int `json:"workers"`

	OcclusionDarkness float32 `json:"occlusion_darkness"`
}

// Default returns the stock session settings.
func Default() Settings {
	return Settings{
		ChunkWidth:         16,
		ChunkHeight:        128,
		ChunkLength:        16,
		WorldSizeInChunks:  100,
		ViewDistance:       5,
		AtlasSizeInBlocks:  16,
		InitPerTick:        1,
		CompletionsPerTick: 4,
		Workers:            max(runtime.NumCPU()-1, 1),
		OcclusionDarkness:  0.4,
	}
}

// WorldSizeInVoxels returns the horizontal world extent in blocks.
func (s Settings) WorldSizeInVoxels() int {
	return s.WorldSizeInChunks * s.ChunkWidth
}

// Validate rejects impossible geometry and clamps budgets to usable values.
func (s *Settings) Validate() error {
	if s.ChunkWidth <= 0 || s.ChunkHeight <= 0 || s.ChunkLength <= 0 {
		return fmt.Errorf("chunk size %dx%dx%d: dimensions must be positive", s.ChunkWidth, s.ChunkHeight, s.ChunkLength)
	}
	if s.ChunkWidth != s.ChunkLength {
		return errors.New("chunk width and length must match")
	}
	if s.WorldSizeInChunks <= 0 {
		return fmt.Errorf("world size %d: must be positive", s.WorldSizeInChunks)
	}
	if s.AtlasSizeInBlocks <= 0 {
		return fmt.Errorf("atlas size %d: must be positive", s.AtlasSizeInBlocks)
	}

	// Clamp to reasonable values
	s.ViewDistance = min(max(s.ViewDistance, 1), 32)
	s.InitPerTick = max(s.InitPerTick, 1)
	s.CompletionsPerTick = max(s.CompletionsPerTick, 1)
	s.Workers = max(s.Workers, 1)
	s.OcclusionDarkness = min(max(s.OcclusionDarkness, 0), 1)
	return nil
}

// Config is the full session configuration as read from disk and flags.
type Config struct {
	World    Settings `json:"world"`
	Gen      WorldGen `json:"gen"`
	TickRate int      `json:"tick_rate"` // scheduler ticks per second
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		World:    Default(),
		Gen:      DefaultWorldGen(),
		TickRate: 60,
	}
}

// Load reads a JSON config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Merge applies file-loaded values into cfg, but only for settings that were
// NOT explicitly set via CLI flags. explicitFlags holds the flag names given.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	explicitView := cfg.World.ViewDistance
	explicitWorkers := cfg.World.Workers
	cfg.World = fromFile.World
	if explicitFlags["view-distance"] {
		cfg.World.ViewDistance = explicitView
	}
	if explicitFlags["workers"] {
		cfg.World.Workers = explicitWorkers
	}
	if !explicitFlags["tick-rate"] {
		cfg.TickRate = fromFile.TickRate
	}
	if !explicitFlags["seed"] {
		cfg.Gen.Seed = fromFile.Gen.Seed
	}
	if !explicitFlags["biome"] {
		cfg.Gen.Biome = fromFile.Gen.Biome
	}
	if !explicitFlags["assets"] {
		cfg.Gen.Assets = fromFile.Gen.Assets
	}
}
