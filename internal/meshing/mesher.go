package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

// BlockSource answers block queries in world coordinates. *world.World
// implements it; reads outside [0, WorldHeight) must return air.
type BlockSource interface {
	GetBlock(x, y, z int) registry.BlockType
}

// Corner offsets per face, counter-clockwise seen from outside the block.
var faceCorners = [6][4][3]float32{
	registry.FaceNorth:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	registry.FaceSouth:  {{1, 0, 0}, {0, 0, 0}, {0, 1, 0}, {1, 1, 0}},
	registry.FaceEast:   {{1, 0, 1}, {1, 0, 0}, {1, 1, 0}, {1, 1, 1}},
	registry.FaceWest:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	registry.FaceTop:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	registry.FaceBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
}

// Build emits one quad for every block face whose neighbor is air or
// transparent. Neighbors across the chunk border are read through src; a nil
// src treats them as air.
func Build(c *world.Chunk, src BlockSource) *world.MeshBuffer {
	defer profiling.Track("meshing.Build")()
	if c == nil {
		return &world.MeshBuffer{}
	}

	vertices := make([]float32, 0, 4096)
	baseX, baseZ := c.Coord().Origin()

	c.ForEachNonAir(func(x, y, z int, bt registry.BlockType) {
		for _, face := range registry.Faces {
			dx, dy, dz := face.Normal()
			// Faces between two transparent blocks are kept even when both
			// are the same type, so a body of water meshes its inner faces.
			if registry.HidesNeighborFace(neighbor(c, src, baseX, baseZ, x+dx, y+dy, z+dz)) {
				continue
			}
			vertices = emitQuad(vertices, float32(baseX+x), float32(y), float32(baseZ+z), face,
				registry.ShadedFaceColor(bt, face))
		}
	})

	return &world.MeshBuffer{Vertices: vertices}
}

// BuildOrGet returns the chunk's cached mesh when it is clean. Otherwise it
// builds a new mesh, stores it on the chunk and clears the dirty flag.
func BuildOrGet(c *world.Chunk, src BlockSource) *world.MeshBuffer {
	if m := c.Mesh(); m != nil {
		return m
	}
	m := Build(c, src)
	c.StoreMesh(m)
	return m
}

func neighbor(c *world.Chunk, src BlockSource, baseX, baseZ, x, y, z int) registry.BlockType {
	if y < 0 || y >= world.WorldHeight {
		return registry.Air
	}
	if x >= 0 && x < world.ChunkSize && z >= 0 && z < world.ChunkSize {
		return c.GetLocal(x, y, z)
	}
	if src == nil {
		return registry.Air
	}
	return src.GetBlock(baseX+x, y, baseZ+z)
}

func emitQuad(vertices []float32, x, y, z float32, face registry.Face, color mgl32.Vec3) []float32 {
	for _, corner := range faceCorners[face] {
		vertices = append(vertices,
			x+corner[0], y+corner[1], z+corner[2],
			color.X(), color.Y(), color.Z(),
		)
	}
	return vertices
}

// QuadIndices returns triangle indices for quads laid out four vertices
// apiece: (0,1,2) and (2,3,0) per quad.
func QuadIndices(quads int) []uint32 {
	if quads <= 0 {
		return nil
	}
	indices := make([]uint32, 0, quads*6)
	for q := 0; q < quads; q++ {
		base := uint32(q * world.VerticesPerQuad)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return indices
}
