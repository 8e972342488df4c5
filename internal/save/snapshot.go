package save

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"mini-voxel/internal/config"
	"mini-voxel/internal/world"
)

// WorldData is a saved world: the settings needed to regenerate it plus the
// non-air contents of every chunk that was loaded.
type WorldData struct {
	ID       uuid.UUID
	SavedAt  time.Time
	Settings config.Settings
	Chunks   []ChunkRecord
}

// Snapshot captures every loaded chunk of w. Chunks are ordered by (x, z).
// A zero id gets a fresh random one.
func Snapshot(w *world.World, s *config.Settings, id uuid.UUID) *WorldData {
	if id == uuid.Nil {
		id = uuid.New()
	}
	d := &WorldData{
		ID:       id,
		SavedAt:  time.Now().UTC(),
		Settings: *s,
	}
	d.Settings.Seed = w.Seed()
	w.ForEachChunk(func(c *world.Chunk) {
		d.Chunks = append(d.Chunks, RecordChunk(c))
	})
	slices.SortFunc(d.Chunks, compareRecords)
	return d
}

// Restore rebuilds a world from d. Every saved chunk is regenerated from the
// seed first and its saved blocks are laid over the result.
func Restore(d *WorldData, log *slog.Logger, opts ...world.Option) (*world.World, error) {
	if err := d.Settings.Validate(); err != nil {
		return nil, fmt.Errorf("restore %s: %w", d.ID, err)
	}
	if log != nil {
		opts = append(opts, world.WithLogger(log))
	}
	w := config.NewWorld(&d.Settings, opts...)
	blocks := 0
	for _, rec := range d.Chunks {
		if err := OverlayChunk(w, rec.Coord(), rec.Blocks); err != nil {
			return nil, fmt.Errorf("restore %s: %w", d.ID, err)
		}
		blocks += len(rec.Blocks)
	}
	if log != nil {
		log.Info("world restored", "id", d.ID, "seed", d.Settings.Seed,
			"chunks", len(d.Chunks), "blocks", blocks)
	}
	return w, nil
}

// OverlayChunk writes records on top of the chunk at coord. A loaded chunk
// is edited in place; otherwise the chunk is generated, edited and then
// installed so neighbors are invalidated once.
func OverlayChunk(w *world.World, coord world.ChunkCoord, records []BlockRecord) error {
	for _, b := range records {
		if int(b.X) >= world.ChunkSize || int(b.Y) >= world.WorldHeight || int(b.Z) >= world.ChunkSize {
			return fmt.Errorf("%w: chunk %v block at (%d,%d,%d)", ErrCorruptRecord, coord, b.X, b.Y, b.Z)
		}
	}
	if _, ok := w.GetChunk(coord); ok {
		ox, oz := coord.Origin()
		for _, b := range records {
			w.SetBlock(ox+int(b.X), int(b.Y), oz+int(b.Z), b.Block)
		}
		return nil
	}
	c := world.NewChunk(coord.X, coord.Z)
	w.Generator().PopulateChunk(c)
	for _, b := range records {
		c.SetLocal(int(b.X), int(b.Y), int(b.Z), b.Block)
	}
	w.Install(c)
	return nil
}
