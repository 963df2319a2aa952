package worldfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const maxParentDepth = 10

// Loader reads biome and block files from an asset directory:
//
//	<root>/blocks.json
//	<root>/biomes/<name>.json
type Loader struct {
	root string

	mu         sync.Mutex
	biomeCache map[string]*Biome
}

func NewLoader(root string) *Loader {
	return &Loader{
		root:       root,
		biomeCache: make(map[string]*Biome),
	}
}

// Root returns the asset directory.
func (l *Loader) Root() string {
	return l.root
}

// LoadBiome reads a biome and resolves its parent chain.
func (l *Loader) LoadBiome(name string) (*Biome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadBiome(name, 0)
}

func (l *Loader) loadBiome(name string, depth int) (*Biome, error) {
	if depth > maxParentDepth {
		return nil, fmt.Errorf("biome %q: parent chain deeper than %d", name, maxParentDepth)
	}
	if b, ok := l.biomeCache[name]; ok {
		return b, nil
	}

	path := filepath.Join(l.root, "biomes", name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read biome file: %w", err)
	}

	var biome Biome
	if err := json.Unmarshal(data, &biome); err != nil {
		return nil, fmt.Errorf("could not unmarshal biome json %s: %w", path, err)
	}
	if biome.Name == "" {
		biome.Name = name
	}

	if biome.Parent != "" {
		parent, err := l.loadBiome(biome.Parent, depth+1)
		if err != nil {
			return nil, fmt.Errorf("could not load parent biome '%s': %w", biome.Parent, err)
		}
		if biome.SolidGroundHeight == nil {
			biome.SolidGroundHeight = parent.SolidGroundHeight
		}
		if biome.TerrainHeight == nil {
			biome.TerrainHeight = parent.TerrainHeight
		}
		if biome.TerrainScale == nil {
			biome.TerrainScale = parent.TerrainScale
		}
		if len(biome.Lodes) == 0 {
			biome.Lodes = parent.Lodes
		}
	}

	l.biomeCache[name] = &biome
	return &biome, nil
}

// LoadBlocks reads <root>/blocks.json.
func (l *Loader) LoadBlocks() (*BlockSet, error) {
	path := filepath.Join(l.root, "blocks.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read block file: %w", err)
	}

	var set BlockSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("could not unmarshal block json %s: %w", path, err)
	}
	return &set, nil
}
