package meshing

import (
	"runtime"

	"github.com/alitto/pond/v2"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

// Pool rebuilds the meshes of many dirty chunks in parallel. Building only
// reads the world, so the caller must not modify it during RebuildDirty.
type Pool struct {
	pool pond.Pool
}

// NewPool creates a mesh pool. A non-positive worker count uses one worker
// per CPU.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = max(runtime.NumCPU(), 1)
	}
	return &Pool{pool: pond.NewPool(workers)}
}

// RebuildDirty meshes every dirty chunk in chunks and stores the results on
// the chunks from the calling goroutine. It returns how many were rebuilt.
func (p *Pool) RebuildDirty(chunks []*world.Chunk, src BlockSource) int {
	defer profiling.Track("meshing.RebuildDirty")()

	dirty := make([]*world.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if c != nil && c.Dirty() {
			dirty = append(dirty, c)
		}
	}
	if len(dirty) == 0 {
		return 0
	}

	meshes := make([]*world.MeshBuffer, len(dirty))
	group := p.pool.NewGroup()
	for i, c := range dirty {
		group.Submit(func() {
			meshes[i] = Build(c, src)
		})
	}
	// Tasks do not return errors.
	_ = group.Wait()

	for i, c := range dirty {
		c.StoreMesh(meshes[i])
	}
	return len(dirty)
}

// Close stops the workers.
func (p *Pool) Close() {
	p.pool.StopAndWait()
}
