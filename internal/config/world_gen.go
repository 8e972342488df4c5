package config

import (
	"mini-voxel/internal/world"
)

// Generator modes.
const (
	GeneratorDefault = "default"
	GeneratorFlat    = "flat"
)

// MaxFlatHeight is the exclusive upper bound of FlatHeight.
const MaxFlatHeight = world.WorldHeight

// Features returns the optional generation passes enabled in s.
func (s *Settings) Features() world.Features {
	return world.Features{Caves: s.Caves, Ores: s.Ores, Trees: s.Trees}
}

// NewGenerator builds the terrain generator selected by s.
func NewGenerator(s *Settings) world.TerrainGenerator {
	if s.Generator == GeneratorFlat {
		return world.NewFlatGenerator(s.FlatHeight)
	}
	return world.NewGenerator(s.Seed, s.Features())
}

// NewWorld creates an empty world configured by s.
func NewWorld(s *Settings, opts ...world.Option) *world.World {
	return world.New(s.Seed, NewGenerator(s), opts...)
}
