package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/df-mc/goleveldb/leveldb"
	"github.com/df-mc/goleveldb/leveldb/opt"
	"github.com/df-mc/goleveldb/leveldb/util"

	"mini-voxel/internal/world"
)

var (
	metaKey     = []byte("meta")
	chunkPrefix = []byte("chunk/")
)

// chunkKey returns "chunk/<x>/<z>".
func chunkKey(c world.ChunkCoord) []byte {
	key := append([]byte(nil), chunkPrefix...)
	key = strconv.AppendInt(key, int64(c.X), 10)
	key = append(key, '/')
	return strconv.AppendInt(key, int64(c.Z), 10)
}

// LevelStore keeps one LevelDB record per chunk plus a JSON metadata record.
type LevelStore struct {
	db  *leveldb.DB
	dir string
	log *slog.Logger
}

// OpenLevelStore opens or creates a LevelDB database in dir.
func OpenLevelStore(dir string, log *slog.Logger) (*LevelStore, error) {
	db, err := leveldb.OpenFile(dir, &opt.Options{Compression: opt.SnappyCompression})
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", dir, err)
	}
	return &LevelStore{db: db, dir: dir, log: orDiscard(log)}, nil
}

// Save replaces the stored world with d in one batch.
func (s *LevelStore) Save(d *WorldData) error {
	m, err := json.Marshal(metaOf(d))
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	batch := new(leveldb.Batch)
	iter := s.db.NewIterator(util.BytesPrefix(chunkPrefix), nil)
	for iter.Next() {
		batch.Delete(append([]byte(nil), iter.Key()...))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return fmt.Errorf("scan old chunks: %w", err)
	}

	batch.Put(metaKey, m)
	for _, rec := range d.Chunks {
		batch.Put(chunkKey(rec.Coord()), EncodeChunk(rec))
	}
	if err := s.db.Write(batch, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}
	s.log.Info("world saved", "dir", s.dir, "id", d.ID, "chunks", len(d.Chunks))
	return nil
}

func (s *LevelStore) Load() (*WorldData, error) {
	raw, err := s.db.Get(metaKey, nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		return nil, ErrNoSave
	case err != nil:
		return nil, fmt.Errorf("read meta: %w", err)
	}
	var m meta
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse meta: %w", err)
	}

	d := &WorldData{ID: m.ID, SavedAt: m.SavedAt, Settings: m.Settings}
	iter := s.db.NewIterator(util.BytesPrefix(chunkPrefix), nil)
	defer iter.Release()
	for iter.Next() {
		rec, err := DecodeChunk(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", iter.Key(), err)
		}
		if string(chunkKey(rec.Coord())) != string(iter.Key()) {
			return nil, fmt.Errorf("%w: key %s holds chunk %v", ErrCorruptRecord, iter.Key(), rec.Coord())
		}
		d.Chunks = append(d.Chunks, rec)
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("scan chunks: %w", err)
	}
	s.log.Info("world loaded", "dir", s.dir, "id", d.ID, "chunks", len(d.Chunks))
	return d, nil
}

func (s *LevelStore) Close() error {
	return s.db.Close()
}
