// Package config is the demo command's settings file, loaded the way
// _examples/noisetorch-NoiseTorch/config.go loads its TOML file: a flat
// struct with Go-side defaults applied before an optional file's values
// override them.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the demo command's full settings surface, read from the
// file named by cmd/voxelcore-demo's --config flag; no command-line flag
// sets its fields directly.
type Config struct {
	Seed              int64         `toml:"seed"`
	ChunkSideLength   int           `toml:"chunk_side_length"`
	LoadRadiusChunks  int32         `toml:"load_radius_chunks"`
	NumWorkerThreads  int           `toml:"num_worker_threads"`
	TickInterval      time.Duration `toml:"tick_interval"`
	StatsInterval     time.Duration `toml:"stats_interval"`
	DropRadiusFactor  float64       `toml:"drop_radius_factor"`
	RecentlyAccessedN int           `toml:"recently_accessed_n"`
}

// Default returns the settings this demo ships with when no config file
// is present, mirroring initializeConfigIfNot's baked-in defaults.
func Default() Config {
	return Config{
		Seed:              0x5eed,
		ChunkSideLength:   32,
		LoadRadiusChunks:  4,
		NumWorkerThreads:  0, // 0 means "use GOMAXPROCS", resolved by the caller
		TickInterval:      100 * time.Millisecond,
		StatsInterval:     5 * time.Second,
		DropRadiusFactor:  2.0,
		RecentlyAccessedN: 64,
	}
}

// Load reads path as TOML over the defaults, so a config file only
// needs to name the fields it wants to override. A missing file is not
// an error: Load silently returns the defaults, the same forgiving
// behavior as a first-run config directory.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "config: stat %s", path)
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config: decode %s", path)
	}
	return cfg, nil
}
