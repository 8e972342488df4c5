package world

import (
	"math"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
)

// TerrainGenerator produces the deterministic initial contents of chunks.
// Implementations must be pure functions of their seed and coordinates and
// safe to call from several goroutines.
type TerrainGenerator interface {
	// HeightAt returns the y of the surface block of world column (x, z).
	HeightAt(x, z int) int
	// BlockAt returns the generated block at (x, y, z) given the column's
	// surface height.
	BlockAt(x, y, z, surface int) registry.BlockType
	// PopulateChunk fills every cell of c in one pass.
	PopulateChunk(c *Chunk)
}

// Terrain shape.
const (
	MinHeight    = 8
	HeightMargin = 16
	MaxHeight    = WorldHeight - HeightMargin

	baseHeight = 48.0

	hillScale     = 1.0 / 96.0
	hillOctaves   = 4
	hillAmplitude = 16.0

	mountainScale     = 1.0 / 256.0
	mountainOctaves   = 3
	mountainCutoff    = 0.55
	mountainAmplitude = 48.0

	detailScale     = 1.0 / 16.0
	detailOctaves   = 2
	detailAmplitude = 3.0

	persistence = 0.5
	lacunarity  = 2.0
)

// Material bands.
const (
	SeaLevel      = 44
	SnowLine      = 84
	DirtDepth     = 3
	BedrockLayers = 4
)

// Caves and ores.
const (
	CaveThreshold     = 0.74
	CaveMinY          = 5
	CaveSurfaceMargin = 8
	OreMinDepth       = 6

	caveScaleXZ = 1.0 / 24.0
	caveScaleY  = 1.0 / 16.0
	caveOctaves = 2
)

// Features toggles the optional passes of the default generator.
type Features struct {
	Caves bool
	Ores  bool
	Trees bool
}

// AllFeatures enables caves, ores and trees.
func AllFeatures() Features {
	return Features{Caves: true, Ores: true, Trees: true}
}

type oreVein struct {
	block      registry.BlockType
	minY, maxY int
	chance     float64
}

// Checked in order, rarest first.
var oreTable = [...]oreVein{
	{registry.DiamondOre, 1, 16, 0.0015},
	{registry.GoldOre, 1, 32, 0.003},
	{registry.IronOre, 1, 64, 0.008},
	{registry.CoalOre, 1, 96, 0.012},
}

// Generator is the default noise-driven terrain generator.
type Generator struct {
	seed     int64
	features Features

	hillSeed     uint64
	mountainSeed uint64
	detailSeed   uint64
	caveSeed     uint64
	bedrockSeed  uint64
	oreSeeds     [len(oreTable)]uint64
}

// NewGenerator creates a generator for seed with the given features.
func NewGenerator(seed int64, features Features) *Generator {
	g := &Generator{
		seed:         seed,
		features:     features,
		hillSeed:     deriveSeed(seed, purposeHills),
		mountainSeed: deriveSeed(seed, purposeMountains),
		detailSeed:   deriveSeed(seed, purposeDetail),
		caveSeed:     deriveSeed(seed, purposeCaves),
		bedrockSeed:  deriveSeed(seed, purposeBedrock),
	}
	for i := range oreTable {
		g.oreSeeds[i] = deriveSeed(seed, purposeOres+uint64(i))
	}
	return g
}

// Seed returns the generator's world seed.
func (g *Generator) Seed() int64 { return g.seed }

// Features returns the enabled optional passes.
func (g *Generator) Features() Features { return g.features }

// HeightAt computes the surface height at world column (x, z).
func (g *Generator) HeightAt(x, z int) int {
	fx, fz := float64(x), float64(z)

	hills := octaveNoise2D(fx*hillScale, fz*hillScale, g.hillSeed, hillOctaves, persistence, lacunarity)
	h := baseHeight + (hills*2-1)*hillAmplitude

	m := octaveNoise2D(fx*mountainScale, fz*mountainScale, g.mountainSeed, mountainOctaves, persistence, lacunarity)
	if m > mountainCutoff {
		h += (m - mountainCutoff) / (1 - mountainCutoff) * mountainAmplitude
	}

	d := octaveNoise2D(fx*detailScale, fz*detailScale, g.detailSeed, detailOctaves, persistence, lacunarity)
	h += (d*2 - 1) * detailAmplitude

	return clampInt(int(math.Floor(h)), MinHeight, MaxHeight)
}

// BlockAt returns the generated block at (x, y, z) for a column whose
// surface is at surface.
func (g *Generator) BlockAt(x, y, z, surface int) registry.BlockType {
	switch {
	case y < 0 || y >= WorldHeight:
		return registry.Air
	case y == 0:
		return registry.Bedrock
	case y < BedrockLayers && g.bedrockAt(x, y, z):
		return registry.Bedrock
	case y > surface:
		if y <= SeaLevel {
			return registry.Water
		}
		return registry.Air
	case y == surface:
		return surfaceBlock(surface)
	case y >= surface-DirtDepth:
		return registry.Dirt
	}

	if g.features.Caves && g.caveAt(x, y, z, surface) {
		return registry.Air
	}
	if g.features.Ores {
		if ore, ok := g.oreAt(x, y, z, surface); ok {
			return ore
		}
	}
	return registry.Stone
}

func surfaceBlock(surface int) registry.BlockType {
	switch {
	case surface <= SeaLevel+1:
		return registry.Sand
	case surface >= SnowLine:
		return registry.Snow
	default:
		return registry.Grass
	}
}

// bedrockAt thins the bedrock floor out: layer y is solid with chance 1/(y+1).
func (g *Generator) bedrockAt(x, y, z int) bool {
	return cellChance(x, y, z, g.bedrockSeed) < 1/float64(y+1)
}

func (g *Generator) caveAt(x, y, z, surface int) bool {
	if y < CaveMinY || y > surface-CaveSurfaceMargin {
		return false
	}
	n := octaveNoise3D(float64(x)*caveScaleXZ, float64(y)*caveScaleY, float64(z)*caveScaleXZ,
		g.caveSeed, caveOctaves, persistence, lacunarity)
	return n > CaveThreshold
}

func (g *Generator) oreAt(x, y, z, surface int) (registry.BlockType, bool) {
	if surface-y < OreMinDepth {
		return registry.Air, false
	}
	for i, ore := range oreTable {
		if y < ore.minY || y > ore.maxY {
			continue
		}
		if cellChance(x, y, z, g.oreSeeds[i]) < ore.chance {
			return ore.block, true
		}
	}
	return registry.Air, false
}

// PopulateChunk fills c column by column and then places trees.
func (g *Generator) PopulateChunk(c *Chunk) {
	defer profiling.Track("world.PopulateChunk")()
	ox, oz := c.Coord().Origin()
	for lz := range ChunkSize {
		for lx := range ChunkSize {
			wx, wz := ox+lx, oz+lz
			surface := g.HeightAt(wx, wz)
			for y := range WorldHeight {
				c.fill(lx, y, lz, g.BlockAt(wx, y, wz, surface))
			}
		}
	}
	if g.features.Trees {
		g.populateTrees(c)
	}
	c.Invalidate()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
