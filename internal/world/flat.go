package world

import (
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
)

// FlatGenerator builds a featureless world: bedrock at y=0, stone, three
// layers of dirt and grass on top at a fixed height.
type FlatGenerator struct {
	Height int
}

// NewFlatGenerator returns a flat generator with the surface at height,
// clamped to [1, WorldHeight-1].
func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{Height: clampInt(height, 1, WorldHeight-1)}
}

func (f *FlatGenerator) HeightAt(x, z int) int {
	return f.Height
}

func (f *FlatGenerator) BlockAt(x, y, z, surface int) registry.BlockType {
	switch {
	case y < 0 || y > surface || y >= WorldHeight:
		return registry.Air
	case y == 0:
		return registry.Bedrock
	case y == surface:
		return registry.Grass
	case y >= surface-DirtDepth:
		return registry.Dirt
	default:
		return registry.Stone
	}
}

func (f *FlatGenerator) PopulateChunk(c *Chunk) {
	defer profiling.Track("world.PopulateChunk")()
	for y := 0; y <= f.Height && y < WorldHeight; y++ {
		bt := f.BlockAt(0, y, 0, f.Height)
		for lz := range ChunkSize {
			for lx := range ChunkSize {
				c.fill(lx, y, lz, bt)
			}
		}
	}
	c.Invalidate()
}

// emptyGenerator leaves every chunk as air.
type emptyGenerator struct{}

func (emptyGenerator) HeightAt(x, z int) int                          { return -1 }
func (emptyGenerator) BlockAt(x, y, z, surface int) registry.BlockType { return registry.Air }
func (emptyGenerator) PopulateChunk(c *Chunk)                          {}
