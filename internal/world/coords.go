package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// ChunkSize is the horizontal edge length of a chunk in blocks.
	ChunkSize = 16
	// WorldHeight is the vertical extent of every chunk column.
	WorldHeight = 128
	// ChunkVolume is the number of cells stored per chunk.
	ChunkVolume = ChunkSize * WorldHeight * ChunkSize
)

// ChunkCoord identifies a chunk column in the horizontal chunk grid.
type ChunkCoord struct {
	X, Z int
}

// Add returns the coordinate offset by (dx, dz).
func (c ChunkCoord) Add(dx, dz int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Z: c.Z + dz}
}

// Chebyshev returns the chessboard distance between two chunk coordinates.
func (c ChunkCoord) Chebyshev(o ChunkCoord) int {
	return max(absInt(c.X-o.X), absInt(c.Z-o.Z))
}

// Origin returns the world coordinates of the chunk's (0, *, 0) corner.
func (c ChunkCoord) Origin() (x, z int) {
	return c.X * ChunkSize, c.Z * ChunkSize
}

// ChunkCoordAt returns the chunk containing world column (x, z).
func ChunkCoordAt(x, z int) ChunkCoord {
	return ChunkCoord{X: floorDiv(x, ChunkSize), Z: floorDiv(z, ChunkSize)}
}

// ChunkCoordOf returns the chunk containing a world-space position.
func ChunkCoordOf(pos mgl32.Vec3) ChunkCoord {
	x, _, z := BlockPos(pos)
	return ChunkCoordAt(x, z)
}

// BlockPos floors a world-space position to the block cell containing it.
// Block (x, y, z) occupies [x,x+1) x [y,y+1) x [z,z+1).
func BlockPos(pos mgl32.Vec3) (x, y, z int) {
	return int(math.Floor(float64(pos.X()))),
		int(math.Floor(float64(pos.Y()))),
		int(math.Floor(float64(pos.Z())))
}

// toLocal splits a world column into chunk and local coordinates.
func toLocal(x, z int) (ChunkCoord, int, int) {
	return ChunkCoordAt(x, z), floorMod(x, ChunkSize), floorMod(z, ChunkSize)
}

// floorDiv rounds toward negative infinity so -1 maps to chunk -1.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
