package save

import (
	"cmp"
	"slices"

	"mini-voxel/internal/world"
)

// Parked keeps the records of evicted chunks so their blocks survive until
// the chunk is loaded again or the world is saved.
type Parked struct {
	records map[world.ChunkCoord]ChunkRecord
}

func NewParked() *Parked {
	return &Parked{records: make(map[world.ChunkCoord]ChunkRecord)}
}

// Hook returns an evict hook for world.WithEvictHook.
func (p *Parked) Hook() func(*world.Chunk) {
	return func(c *world.Chunk) {
		p.records[c.Coord()] = RecordChunk(c)
	}
}

// Len returns the number of parked chunks.
func (p *Parked) Len() int {
	return len(p.records)
}

// Restore overlays every parked chunk that is loaded in w again and forgets
// it. It returns how many chunks were restored.
func (p *Parked) Restore(w *world.World) int {
	restored := 0
	for coord, rec := range p.records {
		if !w.HasChunk(coord) {
			continue
		}
		// Records were validated when captured.
		_ = OverlayChunk(w, coord, rec.Blocks)
		delete(p.records, coord)
		restored++
	}
	return restored
}

// AppendTo adds parked chunks missing from d and keeps d ordered by (x, z).
func (p *Parked) AppendTo(d *WorldData) {
	if len(p.records) == 0 {
		return
	}
	have := make(map[world.ChunkCoord]bool, len(d.Chunks))
	for _, rec := range d.Chunks {
		have[rec.Coord()] = true
	}
	for coord, rec := range p.records {
		if !have[coord] {
			d.Chunks = append(d.Chunks, rec)
		}
	}
	slices.SortFunc(d.Chunks, compareRecords)
}

func compareRecords(a, b ChunkRecord) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Z, b.Z)
}
