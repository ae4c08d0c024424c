package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/geal-ai/noisemap"
)

// options is the resolved command configuration.
type options struct {
	Source  string
	Seed    int64
	Scale   float64
	Width   int
	Height  int
	Bounds  noisemap.Bounds
	Workers int
	Border  float64
	Value   float64 // constant for the "const" source
}

func defaultOptions() options {
	return options{
		Source:  "simplex",
		Seed:    0,
		Scale:   1,
		Width:   360,
		Height:  180,
		Bounds:  noisemap.Bounds{South: -90, North: 90, West: -180, East: 180},
		Workers: 1,
	}
}

type fileConfig struct {
	Source  string  `toml:"source"`
	Seed    int64   `toml:"seed"`
	Scale   float64 `toml:"scale"`
	Width   int     `toml:"width"`
	Height  int     `toml:"height"`
	South   float64 `toml:"south"`
	North   float64 `toml:"north"`
	West    float64 `toml:"west"`
	East    float64 `toml:"east"`
	Workers int     `toml:"workers"`
	Border  float64 `toml:"border"`
	Value   float64 `toml:"value"`
}

// loadConfig overlays the keys present in the TOML file at path onto cfg.
func loadConfig(path string, cfg options) (options, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return options{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return options{}, fmt.Errorf("load config: unknown keys %v", undecoded)
	}

	if meta.IsDefined("source") {
		cfg.Source = strings.ToLower(strings.TrimSpace(raw.Source))
	}
	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
	}
	if meta.IsDefined("scale") {
		cfg.Scale = raw.Scale
	}
	if meta.IsDefined("width") {
		cfg.Width = raw.Width
	}
	if meta.IsDefined("height") {
		cfg.Height = raw.Height
	}
	if meta.IsDefined("south") {
		cfg.Bounds.South = raw.South
	}
	if meta.IsDefined("north") {
		cfg.Bounds.North = raw.North
	}
	if meta.IsDefined("west") {
		cfg.Bounds.West = raw.West
	}
	if meta.IsDefined("east") {
		cfg.Bounds.East = raw.East
	}
	if meta.IsDefined("workers") {
		cfg.Workers = raw.Workers
	}
	if meta.IsDefined("border") {
		cfg.Border = raw.Border
	}
	if meta.IsDefined("value") {
		cfg.Value = raw.Value
	}
	return cfg, nil
}

// validate checks everything that would otherwise fail deep inside a build.
func (o options) validate() error {
	if !knownSource(o.Source) {
		return fmt.Errorf("unknown source %q (see -list)", o.Source)
	}
	if o.Width < 1 || o.Height < 1 {
		return fmt.Errorf("size %dx%d: %w", o.Width, o.Height, noisemap.ErrInvalidParameter)
	}
	return o.Bounds.Validate()
}

// lonRange normalises a west/east pair to signed degrees. A pair that only
// stays ordered in 0-360 form, i.e. one crossing the antimeridian, is kept
// as given; the projection is periodic so East may exceed 180.
func lonRange(west, east float64) (float64, float64) {
	w, e := noisemap.NormLon(west), noisemap.NormLon(east)
	if w < e {
		return w, e
	}
	return west, east
}

func knownSource(key string) bool {
	for _, s := range knownSources {
		if s.key == key {
			return true
		}
	}
	return false
}
