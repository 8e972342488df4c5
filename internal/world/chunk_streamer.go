package world

import (
	"context"
	"io"
	"log/slog"
	"runtime"

	"github.com/alitto/pond/v2"

	"mini-voxel/internal/profiling"
)

const (
	defaultMaxPending = 1024
	maxJobsPerCall    = 256
)

// Streamer generates missing chunks on a worker pool. Workers only build
// fresh chunks; the World is touched exclusively by RequestAround, Poll and
// Drain, which must run on the World's owning goroutine.
type Streamer struct {
	world      *World
	gen        TerrainGenerator
	pool       pond.Pool
	results    chan *Chunk
	pending    map[ChunkCoord]struct{}
	maxPending int
	closed     bool
	log        *slog.Logger
}

// NewStreamer starts a pool of workers generating chunks for w. A
// non-positive worker count uses one worker per CPU. A nil logger discards.
func NewStreamer(w *World, workers int, log *slog.Logger) *Streamer {
	if workers <= 0 {
		workers = max(runtime.NumCPU(), 1)
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Streamer{
		world:      w,
		gen:        w.Generator(),
		pool:       pond.NewPool(workers),
		results:    make(chan *Chunk, defaultMaxPending),
		pending:    make(map[ChunkCoord]struct{}),
		maxPending: defaultMaxPending,
		log:        log,
	}
	log.Info("chunk streamer started", "workers", workers)
	return s
}

// Pending returns the number of requested chunks not yet installed.
func (s *Streamer) Pending() int {
	return len(s.pending)
}

// RequestAround queues every missing chunk within Chebyshev distance radius
// of center, nearest rings first, and returns how many were queued.
func (s *Streamer) RequestAround(center ChunkCoord, radius int) int {
	defer profiling.Track("world.RequestAround")()
	if s.closed || radius < 0 {
		return 0
	}

	queued := 0
	for r := 0; r <= radius; r++ {
		if queued >= maxJobsPerCall {
			break
		}
		if r == 0 {
			queued += s.request(center)
			continue
		}

		x0, x1 := center.X-r, center.X+r
		z0, z1 := center.Z-r, center.Z+r

		for x := x0; x <= x1; x++ {
			queued += s.request(ChunkCoord{X: x, Z: z0})
		}
		for z := z0 + 1; z <= z1-1; z++ {
			queued += s.request(ChunkCoord{X: x1, Z: z})
		}
		for x := x1; x >= x0; x-- {
			queued += s.request(ChunkCoord{X: x, Z: z1})
		}
		for z := z1 - 1; z >= z0+1; z-- {
			queued += s.request(ChunkCoord{X: x0, Z: z})
		}
	}
	return queued
}

// request submits one chunk unless it is loaded, already pending or the
// pending cap is reached.
func (s *Streamer) request(coord ChunkCoord) int {
	if s.world.HasChunk(coord) {
		return 0
	}
	if _, ok := s.pending[coord]; ok {
		return 0
	}
	if len(s.pending) >= s.maxPending {
		return 0
	}
	s.pending[coord] = struct{}{}

	gen := s.gen
	results := s.results
	s.pool.Submit(func() {
		c := NewChunk(coord.X, coord.Z)
		gen.PopulateChunk(c)
		// Never blocks: the buffer holds maxPending chunks.
		results <- c
	})
	return 1
}

// Poll installs every finished chunk without blocking and returns how many
// were added to the World.
func (s *Streamer) Poll() int {
	defer profiling.Track("world.Poll")()
	installed := 0
	for {
		select {
		case c := <-s.results:
			if s.accept(c) {
				installed++
			}
		default:
			return installed
		}
	}
}

// Drain blocks until every pending chunk is installed or ctx is done.
func (s *Streamer) Drain(ctx context.Context) (int, error) {
	installed := 0
	for len(s.pending) > 0 {
		select {
		case c := <-s.results:
			if s.accept(c) {
				installed++
			}
		case <-ctx.Done():
			return installed, ctx.Err()
		}
	}
	return installed, nil
}

func (s *Streamer) accept(c *Chunk) bool {
	delete(s.pending, c.Coord())
	// A synchronous load may have won the race.
	return s.world.install(c)
}

// Close stops the pool, waits for running workers and drops their results.
func (s *Streamer) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.pool.StopAndWait()
	dropped := 0
drain:
	for {
		select {
		case <-s.results:
			dropped++
		default:
			break drain
		}
	}
	clear(s.pending)
	s.log.Info("chunk streamer stopped", "dropped", dropped)
}
