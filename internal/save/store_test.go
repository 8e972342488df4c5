package save

import (
	"crypto/sha256"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"mini-voxel/internal/config"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

func hashChunk(c *world.Chunk) [32]byte {
	blocks := c.Blocks()
	buf := make([]byte, len(blocks))
	for i, bt := range blocks {
		buf[i] = byte(bt)
	}
	return sha256.Sum256(buf)
}

func editedWorld(t *testing.T) (*world.World, *config.Settings) {
	t.Helper()
	s := config.Default()
	s.Seed = 42
	w := config.NewWorld(s)
	w.EnsureLoadedAround(world.ChunkCoord{}, 1)
	h := w.Generator().HeightAt(3, 3)
	w.SetBlock(3, h+1, 3, registry.Planks)
	w.SetBlock(-5, h+10, -5, registry.Glass)
	w.SetBlock(15, 100, 15, registry.Cobblestone) // chunk border
	return w, s
}

func checkRestored(t *testing.T, orig, got *world.World) {
	t.Helper()
	if got.Seed() != orig.Seed() {
		t.Errorf("seed = %d, want %d", got.Seed(), orig.Seed())
	}
	if got.LoadedCount() != orig.LoadedCount() {
		t.Errorf("loaded %d chunks, want %d", got.LoadedCount(), orig.LoadedCount())
	}
	orig.ForEachChunk(func(c *world.Chunk) {
		rc, ok := got.GetChunk(c.Coord())
		if !ok {
			t.Errorf("chunk %v missing after restore", c.Coord())
			return
		}
		if hashChunk(rc) != hashChunk(c) {
			t.Errorf("chunk %v differs after restore", c.Coord())
		}
	})
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	w, s := editedWorld(t)
	d := Snapshot(w, s, uuid.Nil)
	if d.ID == uuid.Nil {
		t.Error("Snapshot should assign an id")
	}
	if len(d.Chunks) != 9 {
		t.Fatalf("snapshot has %d chunks, want 9", len(d.Chunks))
	}
	for i := 1; i < len(d.Chunks); i++ {
		a, b := d.Chunks[i-1], d.Chunks[i]
		if a.X > b.X || (a.X == b.X && a.Z >= b.Z) {
			t.Fatalf("chunks not sorted at %d", i)
		}
	}

	got, err := Restore(d, nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	checkRestored(t, w, got)
	if bt := got.GetBlock(15, 100, 15); bt != registry.Cobblestone {
		t.Errorf("border edit = %v, want cobblestone", bt)
	}
}

// Saves only record non-air blocks, so a mined block reverts to its
// generated value on restore.
func TestRestoreRegeneratesMinedBlocks(t *testing.T) {
	s := config.Default()
	w := config.NewWorld(s)
	w.EnsureLoadedAround(world.ChunkCoord{}, 0)
	h := w.Generator().HeightAt(8, 8)
	want := w.GetBlock(8, h, 8)
	w.SetBlock(8, h, 8, registry.Air)

	got, err := Restore(Snapshot(w, s, uuid.New()), nil)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if bt := got.GetBlock(8, h, 8); bt != want {
		t.Errorf("mined block restored as %v, want %v", bt, want)
	}
}

func TestRestoreRejectsBadData(t *testing.T) {
	d := &WorldData{Settings: *config.Default()}
	d.Settings.Generator = "bogus"
	if _, err := Restore(d, nil); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("bad settings: err = %v, want ErrInvalid", err)
	}

	d = &WorldData{Settings: *config.Default(), Chunks: []ChunkRecord{
		{X: 0, Z: 0, Blocks: []BlockRecord{{X: 16, Y: 0, Z: 0, Block: registry.Stone}}},
	}}
	if _, err := Restore(d, nil); !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("bad record: err = %v, want ErrCorruptRecord", err)
	}
}

func TestOverlayChunkOverwrites(t *testing.T) {
	w := world.New(0, world.NewFlatGenerator(10))
	coord := world.ChunkCoord{X: -1, Z: 2}
	err := OverlayChunk(w, coord, []BlockRecord{{X: 0, Y: 10, Z: 0, Block: registry.Sand}})
	if err != nil {
		t.Fatalf("OverlayChunk: %v", err)
	}
	ox, oz := coord.Origin()
	if bt := w.GetBlock(ox, 10, oz); bt != registry.Sand {
		t.Errorf("overlaid block = %v, want sand", bt)
	}
	if bt := w.GetBlock(ox+1, 10, oz); bt != registry.Grass {
		t.Errorf("untouched block = %v, want grass", bt)
	}
}

func TestStores(t *testing.T) {
	open := map[string]func(t *testing.T) Store{
		"file": func(t *testing.T) Store {
			return NewFileStore(filepath.Join(t.TempDir(), "world.json"), nil)
		},
		"leveldb": func(t *testing.T) Store {
			s, err := OpenLevelStore(filepath.Join(t.TempDir(), "db"), nil)
			if err != nil {
				t.Fatalf("OpenLevelStore: %v", err)
			}
			return s
		},
	}
	for name, newStore := range open {
		t.Run(name, func(t *testing.T) {
			st := newStore(t)
			defer st.Close()

			if _, err := st.Load(); !errors.Is(err, ErrNoSave) {
				t.Fatalf("empty Load: err = %v, want ErrNoSave", err)
			}

			w, s := editedWorld(t)
			d := Snapshot(w, s, uuid.New())
			if err := st.Save(d); err != nil {
				t.Fatalf("Save: %v", err)
			}
			loaded, err := st.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if loaded.ID != d.ID {
				t.Errorf("id = %v, want %v", loaded.ID, d.ID)
			}
			if loaded.Settings != d.Settings {
				t.Errorf("settings = %+v, want %+v", loaded.Settings, d.Settings)
			}
			got, err := Restore(loaded, nil)
			if err != nil {
				t.Fatalf("Restore: %v", err)
			}
			checkRestored(t, w, got)

			// A smaller save replaces the previous one.
			small := config.NewWorld(s)
			small.GetOrGenerate(world.ChunkCoord{X: 4, Z: 4})
			if err := st.Save(Snapshot(small, s, uuid.New())); err != nil {
				t.Fatalf("second Save: %v", err)
			}
			loaded, err = st.Load()
			if err != nil {
				t.Fatalf("second Load: %v", err)
			}
			if len(loaded.Chunks) != 1 {
				t.Errorf("second load has %d chunks, want 1", len(loaded.Chunks))
			}
		})
	}
}

func TestOverlayChunkInstallsUnloaded(t *testing.T) {
	w := world.New(0, world.NewFlatGenerator(10))
	w.EnsureLoadedAround(world.ChunkCoord{}, 0)
	home, _ := w.GetChunk(world.ChunkCoord{})
	home.StoreMesh(&world.MeshBuffer{})

	coord := world.ChunkCoord{X: 1}
	before := w.ModCount()
	err := OverlayChunk(w, coord, []BlockRecord{{X: 0, Y: 11, Z: 4, Block: registry.Planks}})
	if err != nil {
		t.Fatalf("OverlayChunk: %v", err)
	}
	if w.ModCount() != before+1 {
		t.Errorf("ModCount = %d, want %d after one install", w.ModCount(), before+1)
	}
	if bt := w.GetBlock(16, 11, 4); bt != registry.Planks {
		t.Errorf("overlaid block = %v, want planks", bt)
	}
	if !home.Dirty() {
		t.Error("neighbor of an installed chunk should be dirty")
	}

	// A loaded chunk is edited in place.
	c, _ := w.GetChunk(coord)
	if err := OverlayChunk(w, coord, []BlockRecord{{X: 1, Y: 11, Z: 4, Block: registry.Glass}}); err != nil {
		t.Fatalf("second OverlayChunk: %v", err)
	}
	if got, _ := w.GetChunk(coord); got != c {
		t.Error("loaded chunk was replaced")
	}
	if bt := w.GetBlock(17, 11, 4); bt != registry.Glass {
		t.Errorf("second overlay = %v, want glass", bt)
	}
}

func TestChunkKey(t *testing.T) {
	if got := string(chunkKey(world.ChunkCoord{X: -3, Z: 12})); got != "chunk/-3/12" {
		t.Errorf("chunkKey = %q", got)
	}
}

func TestOpenPicksBackend(t *testing.T) {
	dir := t.TempDir()

	st, err := Open(filepath.Join(dir, "world.JSON"), nil)
	if err != nil {
		t.Fatalf("Open json: %v", err)
	}
	if _, ok := st.(*FileStore); !ok {
		t.Errorf("json path gave %T, want *FileStore", st)
	}
	st.Close()

	st, err = Open(filepath.Join(dir, "world.db"), nil)
	if err != nil {
		t.Fatalf("Open leveldb: %v", err)
	}
	if _, ok := st.(*LevelStore); !ok {
		t.Errorf("directory path gave %T, want *LevelStore", st)
	}
	if _, err := st.Load(); !errors.Is(err, ErrNoSave) {
		t.Errorf("fresh leveldb Load err = %v, want ErrNoSave", err)
	}
	st.Close()
}
