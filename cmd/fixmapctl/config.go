package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theflywheel/fixmap"
)

// fileConfig is the layout of a --config file:
//
//	[map]
//	initial_capacity = 13
//	load_factor = 33
//	hash = "xxhash"
//	memory_limit = 1048576
type fileConfig struct {
	Map fixmap.Config `toml:"map"`
}

func loadConfig(path string) (fixmap.Config, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return fixmap.Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fixmap.Config{}, fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return fc.Map, nil
}
