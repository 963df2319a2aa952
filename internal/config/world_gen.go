package config

// WorldGen holds world generation configuration
type WorldGen struct {
	Seed int64 `json:"seed"`
	// Biome names a file under <assets>/biomes; empty selects the built-in biome.
	Biome string `json:"biome"`
	// Assets is a local directory or a go-getter source (git::, https://, s3::).
	Assets string `json:"assets"`
}

// DefaultWorldGen returns generation settings for the built-in biome.
func DefaultWorldGen() WorldGen {
	return WorldGen{
		Seed: 0,
	}
}
