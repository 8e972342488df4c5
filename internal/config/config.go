package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by Validate for every rejected setting.
var ErrInvalid = errors.New("invalid settings")

const (
	MinRenderDistance = 2
	MaxRenderDistance = 32
)

// Eviction controls unloading of chunks far from the player. Disabled by
// default: every chunk that was ever loaded stays resident.
type Eviction struct {
	Enabled bool `json:"enabled"`
	// Margin is added to the render distance to get the eviction radius.
	Margin int `json:"margin"`
}

// Settings holds the world and viewer configuration.
type Settings struct {
	Seed           int64    `json:"seed"`
	Generator      string   `json:"generator"` // "default" or "flat"
	FlatHeight     int      `json:"flat_height"`
	RenderDistance int      `json:"render_distance"` // in chunks
	Caves          bool     `json:"caves"`
	Ores           bool     `json:"ores"`
	Trees          bool     `json:"trees"`
	Eviction       Eviction `json:"eviction"`
	StreamWorkers  int      `json:"stream_workers"` // 0 = one per CPU
}

// Default returns Settings with sensible defaults.
func Default() *Settings {
	return &Settings{
		Seed:           42,
		Generator:      GeneratorDefault,
		FlatHeight:     32,
		RenderDistance: 6,
		Caves:          true,
		Ores:           true,
		Trees:          true,
		Eviction:       Eviction{Enabled: false, Margin: 4},
	}
}

// ClampRenderDistance limits a render distance to the supported range.
func ClampRenderDistance(distance int) int {
	if distance < MinRenderDistance {
		distance = MinRenderDistance
	}
	if distance > MaxRenderDistance {
		distance = MaxRenderDistance
	}
	return distance
}

// SetRenderDistance stores a clamped render distance.
func (s *Settings) SetRenderDistance(distance int) {
	s.RenderDistance = ClampRenderDistance(distance)
}

// LoadRadius returns the chunk loading radius around the player.
func (s *Settings) LoadRadius() int {
	return ClampRenderDistance(s.RenderDistance)
}

// EvictRadius returns the radius beyond which chunks may be unloaded, or -1
// when eviction is disabled.
func (s *Settings) EvictRadius() int {
	if !s.Eviction.Enabled {
		return -1
	}
	return s.LoadRadius() + max(s.Eviction.Margin, 1)
}

// Validate reports the first setting that cannot be used.
func (s *Settings) Validate() error {
	switch s.Generator {
	case GeneratorDefault, GeneratorFlat:
	default:
		return fmt.Errorf("%w: unknown generator %q", ErrInvalid, s.Generator)
	}
	if s.Generator == GeneratorFlat && (s.FlatHeight < 1 || s.FlatHeight >= MaxFlatHeight) {
		return fmt.Errorf("%w: flat_height %d outside [1,%d)", ErrInvalid, s.FlatHeight, MaxFlatHeight)
	}
	if s.StreamWorkers < 0 {
		return fmt.Errorf("%w: stream_workers must not be negative", ErrInvalid)
	}
	if s.Eviction.Margin < 0 {
		return fmt.Errorf("%w: eviction margin must not be negative", ErrInvalid)
	}
	return nil
}

// Merge copies values from fromFile into s for every field that was not
// explicitly set on the command line. explicit holds the flag names given.
func (s *Settings) Merge(fromFile *Settings, explicit map[string]bool) {
	if !explicit["seed"] {
		s.Seed = fromFile.Seed
	}
	if !explicit["generator"] {
		s.Generator = fromFile.Generator
	}
	if !explicit["flat-height"] {
		s.FlatHeight = fromFile.FlatHeight
	}
	if !explicit["render-distance"] {
		s.RenderDistance = fromFile.RenderDistance
	}
	if !explicit["caves"] {
		s.Caves = fromFile.Caves
	}
	if !explicit["ores"] {
		s.Ores = fromFile.Ores
	}
	if !explicit["trees"] {
		s.Trees = fromFile.Trees
	}
	// -evict only toggles eviction; the margin has no flag.
	s.Eviction.Margin = fromFile.Eviction.Margin
	if !explicit["evict"] {
		s.Eviction.Enabled = fromFile.Eviction.Enabled
	}
	if !explicit["workers"] {
		s.StreamWorkers = fromFile.StreamWorkers
	}
}

// AdoptWorld copies the settings that define world contents from o, keeping
// the viewer and streaming settings of s.
func (s *Settings) AdoptWorld(o *Settings) {
	s.Seed = o.Seed
	s.Generator = o.Generator
	s.FlatHeight = o.FlatHeight
	s.Caves = o.Caves
	s.Ores = o.Ores
	s.Trees = o.Trees
}
