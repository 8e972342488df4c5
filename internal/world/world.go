package world

import (
	"io"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
)

// World owns every loaded chunk and routes world coordinates to them.
// A World is not safe for concurrent use; see Streamer for background
// generation.
type World struct {
	seed    int64
	gen     TerrainGenerator
	store   *chunkStore
	log     *slog.Logger
	onEvict func(*Chunk)
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for chunk lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithEvictHook registers fn to be called with each chunk right before it
// is evicted.
func WithEvictHook(fn func(*Chunk)) Option {
	return func(w *World) {
		w.onEvict = fn
	}
}

// New creates an empty world that generates chunks with gen.
func New(seed int64, gen TerrainGenerator, opts ...Option) *World {
	w := &World{
		seed:  seed,
		gen:   gen,
		store: newChunkStore(),
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewDefault creates a world using the default generator with all features.
func NewDefault(seed int64, opts ...Option) *World {
	return New(seed, NewGenerator(seed, AllFeatures()), opts...)
}

// NewEmpty creates a world whose chunks are generated as pure air.
func NewEmpty(opts ...Option) *World {
	return New(0, emptyGenerator{}, opts...)
}

func (w *World) Seed() int64 { return w.seed }

func (w *World) Generator() TerrainGenerator { return w.gen }

// LoadedCount returns the number of loaded chunks.
func (w *World) LoadedCount() int { return len(w.store.chunks) }

// ModCount increases whenever a chunk is loaded or evicted.
func (w *World) ModCount() uint64 { return w.store.modCount }

// GetChunk looks up a loaded chunk without generating it.
func (w *World) GetChunk(coord ChunkCoord) (*Chunk, bool) {
	return w.store.get(coord)
}

// HasChunk reports whether the chunk at coord is loaded.
func (w *World) HasChunk(coord ChunkCoord) bool {
	_, ok := w.store.get(coord)
	return ok
}

// GetOrGenerate returns the chunk at coord, generating it synchronously if
// it is not loaded yet.
func (w *World) GetOrGenerate(coord ChunkCoord) *Chunk {
	if c, ok := w.store.get(coord); ok {
		return c
	}
	c := NewChunk(coord.X, coord.Z)
	w.gen.PopulateChunk(c)
	w.install(c)
	return c
}

// Install adds an externally built chunk. It returns false if a chunk
// already occupies the coordinate.
func (w *World) Install(c *Chunk) bool {
	return w.install(c)
}

func (w *World) install(c *Chunk) bool {
	if !w.store.add(c) {
		return false
	}
	// Neighbors built their border faces against unloaded air.
	w.store.markNeighborsDirty(c.Coord())
	w.log.Debug("chunk loaded", "x", c.X, "z", c.Z)
	return true
}

// GetBlock returns the block at world coordinates. Unloaded chunks and y
// outside [0, WorldHeight) read as air.
func (w *World) GetBlock(x, y, z int) registry.BlockType {
	if y < 0 || y >= WorldHeight {
		return registry.Air
	}
	coord, lx, lz := toLocal(x, z)
	c, ok := w.store.get(coord)
	if !ok {
		return registry.Air
	}
	return c.GetLocal(lx, y, lz)
}

// SetBlock writes a block at world coordinates. It returns false, changing
// nothing, when the chunk is not loaded or y is out of range. The owning
// chunk is marked dirty, and so is the loaded neighbor across any border the
// block touches.
func (w *World) SetBlock(x, y, z int, bt registry.BlockType) bool {
	if y < 0 || y >= WorldHeight {
		return false
	}
	coord, lx, lz := toLocal(x, z)
	c, ok := w.store.get(coord)
	if !ok {
		return false
	}
	c.SetLocal(lx, y, lz, bt)

	if lx == 0 {
		w.store.markDirty(coord.Add(-1, 0))
	} else if lx == ChunkSize-1 {
		w.store.markDirty(coord.Add(1, 0))
	}
	if lz == 0 {
		w.store.markDirty(coord.Add(0, -1))
	} else if lz == ChunkSize-1 {
		w.store.markDirty(coord.Add(0, 1))
	}
	return true
}

// IsSolid reports whether the block at world coordinates blocks movement.
func (w *World) IsSolid(x, y, z int) bool {
	return registry.IsSolid(w.GetBlock(x, y, z))
}

// BlockAt returns the block containing a world-space position.
func (w *World) BlockAt(pos mgl32.Vec3) registry.BlockType {
	x, y, z := BlockPos(pos)
	return w.GetBlock(x, y, z)
}

// IsSolidAt reports whether the block containing pos is solid.
func (w *World) IsSolidAt(pos mgl32.Vec3) bool {
	x, y, z := BlockPos(pos)
	return w.IsSolid(x, y, z)
}

// EnsureLoadedAround generates every missing chunk within Chebyshev distance
// radius of center and returns how many were generated. Loaded chunks are
// left untouched.
func (w *World) EnsureLoadedAround(center ChunkCoord, radius int) int {
	defer profiling.Track("world.EnsureLoadedAround")()
	if radius < 0 {
		return 0
	}
	generated := 0
	for dz := -radius; dz <= radius; dz++ {
		for dx := -radius; dx <= radius; dx++ {
			coord := center.Add(dx, dz)
			if w.HasChunk(coord) {
				continue
			}
			w.GetOrGenerate(coord)
			generated++
		}
	}
	if generated > 0 {
		w.log.Debug("chunks generated", "center_x", center.X, "center_z", center.Z,
			"radius", radius, "count", generated)
	}
	return generated
}

// ChunksInRange returns the loaded chunks within Chebyshev distance radius
// of center.
func (w *World) ChunksInRange(center ChunkCoord, radius int) []*Chunk {
	if radius < 0 {
		return nil
	}
	side := 2*radius + 1
	return w.store.appendInRange(center, radius, make([]*Chunk, 0, side*side))
}

// AppendChunksInRange is ChunksInRange appending to dst, for callers that
// reuse a buffer every frame.
func (w *World) AppendChunksInRange(center ChunkCoord, radius int, dst []*Chunk) []*Chunk {
	if radius < 0 {
		return dst
	}
	return w.store.appendInRange(center, radius, dst)
}

// ForEachChunk calls fn for every loaded chunk in unspecified order.
func (w *World) ForEachChunk(fn func(*Chunk)) {
	for _, c := range w.store.chunks {
		fn(c)
	}
}

// EvictOutside unloads chunks farther than radius from center and returns
// how many were removed. The evict hook sees each chunk before it goes.
func (w *World) EvictOutside(center ChunkCoord, radius int) int {
	defer profiling.Track("world.EvictOutside")()
	coords := w.store.outside(center, radius)
	for _, coord := range coords {
		c, _ := w.store.get(coord)
		if w.onEvict != nil {
			w.onEvict(c)
		}
		w.store.remove(coord)
	}
	// Border faces of survivors now face unloaded air.
	for _, coord := range coords {
		w.store.markNeighborsDirty(coord)
	}
	if len(coords) > 0 {
		w.log.Debug("chunks evicted", "center_x", center.X, "center_z", center.Z,
			"radius", radius, "count", len(coords))
	}
	return len(coords)
}
