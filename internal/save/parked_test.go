package save

import (
	"testing"

	"github.com/google/uuid"

	"mini-voxel/internal/config"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

func TestParkedKeepsEvictedEdits(t *testing.T) {
	s := config.Default()
	s.Generator = config.GeneratorFlat
	s.FlatHeight = 10
	parked := NewParked()
	w := config.NewWorld(s, world.WithEvictHook(parked.Hook()))
	w.EnsureLoadedAround(world.ChunkCoord{}, 3)

	// (40, 11, 40) lives in chunk (2,2).
	w.SetBlock(40, 11, 40, registry.Planks)

	if n := w.EvictOutside(world.ChunkCoord{}, 1); n == 0 {
		t.Fatal("expected evictions")
	}
	if parked.Len() == 0 {
		t.Fatal("evicted chunks should be parked")
	}
	if w.HasChunk(world.ChunkCoord{X: 2, Z: 2}) {
		t.Fatal("chunk (2,2) should be evicted")
	}

	// Saving while evicted still includes the parked chunk.
	d := Snapshot(w, s, uuid.Nil)
	parked.AppendTo(d)
	found := false
	for i, rec := range d.Chunks {
		if i > 0 && compareRecords(d.Chunks[i-1], rec) >= 0 {
			t.Fatalf("records not strictly ordered at %d", i)
		}
		if rec.X == 2 && rec.Z == 2 {
			found = true
		}
	}
	if !found {
		t.Error("parked chunk (2,2) missing from the snapshot")
	}

	w.EnsureLoadedAround(world.ChunkCoord{}, 3)
	if got := w.GetBlock(40, 11, 40); got != registry.Air {
		t.Fatalf("regenerated chunk holds %v before restore", got)
	}
	total := parked.Len()
	if n := parked.Restore(w); n != total {
		t.Errorf("Restore = %d, want %d", n, total)
	}
	if got := w.GetBlock(40, 11, 40); got != registry.Planks {
		t.Errorf("after restore block = %v, want planks", got)
	}
	if parked.Len() != 0 {
		t.Errorf("%d chunks still parked", parked.Len())
	}
}

func TestParkedRestoreSkipsUnloaded(t *testing.T) {
	parked := NewParked()
	c := world.NewChunk(5, 5)
	c.SetLocal(1, 1, 1, registry.Stone)
	parked.Hook()(c)

	w := world.NewEmpty()
	if n := parked.Restore(w); n != 0 {
		t.Errorf("Restore = %d with nothing loaded", n)
	}
	if parked.Len() != 1 {
		t.Error("unloaded chunk must stay parked")
	}
}
