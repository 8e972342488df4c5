package save

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"mini-voxel/internal/config"
)

// Store persists saved worlds.
type Store interface {
	Save(d *WorldData) error
	// Load returns ErrNoSave when the store is empty.
	Load() (*WorldData, error)
	Close() error
}

// meta is the JSON header shared by both stores.
type meta struct {
	ID       uuid.UUID       `json:"id"`
	SavedAt  time.Time       `json:"saved_at"`
	Settings config.Settings `json:"settings"`
	Chunks   int             `json:"chunks"` // informational
}

func metaOf(d *WorldData) meta {
	return meta{ID: d.ID, SavedAt: d.SavedAt, Settings: d.Settings, Chunks: len(d.Chunks)}
}

// fileData is the on-disk layout of FileStore. Chunk records keep their
// binary encoding and appear base64-encoded in the JSON.
type fileData struct {
	meta
	Records [][]byte `json:"records"`
}

// FileStore keeps a whole world in a single JSON file.
type FileStore struct {
	path string
	log  *slog.Logger
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string, log *slog.Logger) *FileStore {
	return &FileStore{path: path, log: orDiscard(log)}
}

func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return log
}

func (s *FileStore) Save(d *WorldData) error {
	fd := fileData{meta: metaOf(d), Records: make([][]byte, 0, len(d.Chunks))}
	for _, rec := range d.Chunks {
		fd.Records = append(fd.Records, EncodeChunk(rec))
	}
	if err := config.WriteJSONAtomic(s.path, &fd); err != nil {
		return fmt.Errorf("save world: %w", err)
	}
	s.log.Info("world saved", "path", s.path, "id", d.ID, "chunks", len(d.Chunks))
	return nil
}

func (s *FileStore) Load() (*WorldData, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("read world: %w", err)
	}
	var fd fileData
	if err := json.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("parse world: %w", err)
	}
	d := &WorldData{ID: fd.ID, SavedAt: fd.SavedAt, Settings: fd.Settings}
	for i, raw := range fd.Records {
		rec, err := DecodeChunk(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		d.Chunks = append(d.Chunks, rec)
	}
	s.log.Info("world loaded", "path", s.path, "id", d.ID, "chunks", len(d.Chunks))
	return d, nil
}

func (s *FileStore) Close() error { return nil }

// Open picks the store for path: a ".json" file becomes a FileStore, any
// other path a LevelDB directory.
func Open(path string, log *slog.Logger) (Store, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewFileStore(path, log), nil
	}
	return OpenLevelStore(path, log)
}
