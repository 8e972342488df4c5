package world

import (
	"mini-voxel/internal/registry"
)

// Chunk is a ChunkSize x WorldHeight x ChunkSize column of blocks. It owns a
// dirty flag and at most one cached mesh; any mutation drops the mesh.
type Chunk struct {
	X, Z   int
	blocks [ChunkVolume]registry.BlockType
	dirty  bool
	mesh   *MeshBuffer
}

// NewChunk creates an all-air chunk at the given chunk coordinates.
func NewChunk(x, z int) *Chunk {
	return &Chunk{
		X:     x,
		Z:     z,
		dirty: true,
	}
}

// index converts local coordinates to a flat index, x fastest.
func index(x, y, z int) int {
	return (y*ChunkSize+z)*ChunkSize + x
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < WorldHeight && z >= 0 && z < ChunkSize
}

// Coord returns the chunk's grid coordinate.
func (c *Chunk) Coord() ChunkCoord {
	return ChunkCoord{X: c.X, Z: c.Z}
}

// GetLocal returns the block at local coordinates, or Air when out of range.
func (c *Chunk) GetLocal(x, y, z int) registry.BlockType {
	if !inBounds(x, y, z) {
		return registry.Air
	}
	return c.blocks[index(x, y, z)]
}

// SetLocal stores a block at local coordinates. Out of range writes are
// ignored. The chunk becomes dirty and its cached mesh is dropped.
func (c *Chunk) SetLocal(x, y, z int, bt registry.BlockType) {
	if !inBounds(x, y, z) {
		return
	}
	c.blocks[index(x, y, z)] = bt
	c.Invalidate()
}

// fill writes without touching the mesh state. Used while populating.
func (c *Chunk) fill(x, y, z int, bt registry.BlockType) {
	c.blocks[index(x, y, z)] = bt
}

// Dirty reports whether the cached mesh is missing or stale.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// Invalidate marks the chunk dirty and releases its mesh.
func (c *Chunk) Invalidate() {
	c.dirty = true
	c.mesh = nil
}

// Mesh returns the cached mesh, or nil while the chunk is dirty.
func (c *Chunk) Mesh() *MeshBuffer {
	if c.dirty {
		return nil
	}
	return c.mesh
}

// StoreMesh caches m as the chunk's current mesh and clears the dirty flag.
func (c *Chunk) StoreMesh(m *MeshBuffer) {
	c.mesh = m
	c.dirty = false
}

// Blocks returns a copy of the raw block array.
func (c *Chunk) Blocks() [ChunkVolume]registry.BlockType {
	return c.blocks
}

// ForEachNonAir calls fn for every non-air cell in index order.
func (c *Chunk) ForEachNonAir(fn func(x, y, z int, bt registry.BlockType)) {
	i := 0
	for y := 0; y < WorldHeight; y++ {
		for z := 0; z < ChunkSize; z++ {
			for x := 0; x < ChunkSize; x++ {
				if bt := c.blocks[i]; bt != registry.Air {
					fn(x, y, z, bt)
				}
				i++
			}
		}
	}
}

// NonAirCount returns the number of non-air cells.
func (c *Chunk) NonAirCount() int {
	n := 0
	for _, bt := range c.blocks {
		if bt != registry.Air {
			n++
		}
	}
	return n
}

// TopY returns the y of the highest non-air block in a local column,
// or -1 for an empty column.
func (c *Chunk) TopY(x, z int) int {
	if x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize {
		return -1
	}
	for y := WorldHeight - 1; y >= 0; y-- {
		if c.blocks[index(x, y, z)] != registry.Air {
			return y
		}
	}
	return -1
}
