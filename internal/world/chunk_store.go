package world

import (
	"mini-voxel/internal/profiling"
)

// chunkStore is the map of loaded chunks. It has a single writer: the World's
// owning goroutine.
type chunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	modCount uint64 // increases on any chunk add/remove
}

func newChunkStore() *chunkStore {
	return &chunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

func (cs *chunkStore) get(coord ChunkCoord) (*Chunk, bool) {
	c, ok := cs.chunks[coord]
	return c, ok
}

// add inserts c unless a chunk already occupies its coordinate.
func (cs *chunkStore) add(c *Chunk) bool {
	coord := c.Coord()
	if _, ok := cs.chunks[coord]; ok {
		return false
	}
	cs.chunks[coord] = c
	cs.modCount++
	return true
}

func (cs *chunkStore) remove(coord ChunkCoord) {
	if _, ok := cs.chunks[coord]; !ok {
		return
	}
	delete(cs.chunks, coord)
	cs.modCount++
}

// appendInRange appends loaded chunks inside the Chebyshev square around
// center in row order (z outer, x inner).
func (cs *chunkStore) appendInRange(center ChunkCoord, radius int, dst []*Chunk) []*Chunk {
	defer profiling.Track("world.appendInRange")()
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			if c, ok := cs.chunks[center.Add(dx, dz)]; ok {
				dst = append(dst, c)
			}
		}
	}
	return dst
}

// outside returns the coordinates of loaded chunks farther than radius.
func (cs *chunkStore) outside(center ChunkCoord, radius int) []ChunkCoord {
	var out []ChunkCoord
	for coord := range cs.chunks {
		if coord.Chebyshev(center) > radius {
			out = append(out, coord)
		}
	}
	return out
}

// markDirty invalidates the loaded neighbor at coord, if any.
func (cs *chunkStore) markDirty(coord ChunkCoord) {
	if c, ok := cs.chunks[coord]; ok {
		c.Invalidate()
	}
}

// markNeighborsDirty invalidates the four horizontal neighbors of coord.
func (cs *chunkStore) markNeighborsDirty(coord ChunkCoord) {
	cs.markDirty(coord.Add(-1, 0))
	cs.markDirty(coord.Add(1, 0))
	cs.markDirty(coord.Add(0, -1))
	cs.markDirty(coord.Add(0, 1))
}
