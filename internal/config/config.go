// Package config loads cdlint's optional TOML config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
)

// Config holds the user-tweakable knobs read from the config file.
type Config struct {
	// ExtraEnemyDescriptors adds names to the Enemy Descriptor vocabulary,
	// typically descriptors introduced by other installed mods, so the
	// reference lints do not flag them as undefined.
	ExtraEnemyDescriptors []string `toml:"extra_enemy_descriptors"`

	// GenerateCyclicReferenceGraph enables writing the Enemy Descriptor
	// "Base" reference graph out in Graphviz DOT format.
	GenerateCyclicReferenceGraph bool `toml:"generate_cyclic_reference_graph"`
}

// Load reads the config file at path.
//
// A missing file is not an error, the zero value [Config] is returned. A
// file that exists but fails to parse is.
func Load(path string) (Config, error) {
	var cfg Config

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}

		return Config{}, fmt.Errorf("could not load config from %s: %w", path, err)
	}

	return cfg, nil
}
