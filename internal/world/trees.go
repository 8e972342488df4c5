package world

import (
	"mini-voxel/internal/registry"
)

const (
	TreeLine         = 76
	maxTreesPerChunk = 3
	minTrunkHeight   = 4
	maxTrunkHeight   = 6
	canopyRadius     = 3
	canopyExtent     = 2
)

// populateTrees places up to maxTreesPerChunk trees using the chunk's own
// random stream. Trunks and leaves only replace air, and anything that would
// cross the chunk edge is clipped, so results do not depend on neighbors.
func (g *Generator) populateTrees(c *Chunk) {
	rng := chunkRand(g.seed, c.X, c.Z, purposeTrees)
	ox, oz := c.Coord().Origin()

	count := rng.IntN(maxTreesPerChunk + 1)
	for range count {
		// Draw everything up front so a rejected candidate does not shift
		// the stream for the next one.
		lx := rng.IntN(ChunkSize)
		lz := rng.IntN(ChunkSize)
		trunk := minTrunkHeight + rng.IntN(maxTrunkHeight-minTrunkHeight+1)

		surface := g.HeightAt(ox+lx, oz+lz)
		if surface < SeaLevel+2 || surface > TreeLine {
			continue
		}
		if c.GetLocal(lx, surface, lz) != registry.Grass {
			continue
		}
		if surface+trunk+canopyExtent >= WorldHeight {
			continue
		}
		placeTree(c, lx, surface+1, lz, trunk)
	}
}

func placeTree(c *Chunk, lx, baseY, lz, trunk int) {
	for y := baseY; y < baseY+trunk; y++ {
		setIfAir(c, lx, y, lz, registry.Wood)
	}

	topY := baseY + trunk - 1
	for dy := -canopyExtent; dy <= canopyExtent; dy++ {
		for dz := -canopyExtent; dz <= canopyExtent; dz++ {
			for dx := -canopyExtent; dx <= canopyExtent; dx++ {
				if absInt(dx)+absInt(dy)+absInt(dz) > canopyRadius {
					continue
				}
				setIfAir(c, lx+dx, topY+dy, lz+dz, registry.Leaves)
			}
		}
	}
}

func setIfAir(c *Chunk, x, y, z int, bt registry.BlockType) {
	if !inBounds(x, y, z) {
		return
	}
	if c.blocks[index(x, y, z)] != registry.Air {
		return
	}
	c.fill(x, y, z, bt)
}
