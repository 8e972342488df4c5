package save

import (
	"encoding/binary"
	"errors"
	"fmt"

	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

var (
	// ErrCorruptRecord is wrapped by every decoding failure.
	ErrCorruptRecord = errors.New("corrupt chunk record")
	// ErrNoSave is returned by Store.Load when nothing has been saved yet.
	ErrNoSave = errors.New("no saved world")
)

const (
	headerSize = 12 // int32 x, int32 z, uint32 count
	tupleSize  = 4  // lx, ly, lz, block
)

// BlockRecord is one non-air block in chunk-local coordinates.
type BlockRecord struct {
	X, Y, Z uint8
	Block   registry.BlockType
}

// ChunkRecord holds every non-air block of one chunk.
type ChunkRecord struct {
	X, Z   int32
	Blocks []BlockRecord
}

// Coord returns the chunk coordinate of the record.
func (r ChunkRecord) Coord() world.ChunkCoord {
	return world.ChunkCoord{X: int(r.X), Z: int(r.Z)}
}

// RecordChunk captures the non-air blocks of c.
func RecordChunk(c *world.Chunk) ChunkRecord {
	rec := ChunkRecord{X: int32(c.X), Z: int32(c.Z)}
	c.ForEachNonAir(func(x, y, z int, bt registry.BlockType) {
		rec.Blocks = append(rec.Blocks, BlockRecord{X: uint8(x), Y: uint8(y), Z: uint8(z), Block: bt})
	})
	return rec
}

// EncodeChunk serializes a record as little-endian int32 x, int32 z,
// uint32 count followed by count 4-byte (x, y, z, block) tuples.
func EncodeChunk(rec ChunkRecord) []byte {
	buf := make([]byte, headerSize, headerSize+tupleSize*len(rec.Blocks))
	binary.LittleEndian.PutUint32(buf[0:], uint32(rec.X))
	binary.LittleEndian.PutUint32(buf[4:], uint32(rec.Z))
	binary.LittleEndian.PutUint32(buf[8:], uint32(len(rec.Blocks)))
	for _, b := range rec.Blocks {
		buf = append(buf, b.X, b.Y, b.Z, byte(b.Block))
	}
	return buf
}

// DecodeChunk parses one record produced by EncodeChunk. Trailing bytes,
// truncated data and out of range local coordinates are rejected.
func DecodeChunk(data []byte) (ChunkRecord, error) {
	if len(data) < headerSize {
		return ChunkRecord{}, fmt.Errorf("%w: %d byte header", ErrCorruptRecord, len(data))
	}
	rec := ChunkRecord{
		X: int32(binary.LittleEndian.Uint32(data[0:])),
		Z: int32(binary.LittleEndian.Uint32(data[4:])),
	}
	count := binary.LittleEndian.Uint32(data[8:])
	body := data[headerSize:]
	if uint64(len(body)) != uint64(count)*tupleSize {
		return ChunkRecord{}, fmt.Errorf("%w: chunk (%d,%d) declares %d blocks in %d bytes",
			ErrCorruptRecord, rec.X, rec.Z, count, len(body))
	}
	if count > world.ChunkVolume {
		return ChunkRecord{}, fmt.Errorf("%w: chunk (%d,%d) has %d blocks", ErrCorruptRecord, rec.X, rec.Z, count)
	}

	rec.Blocks = make([]BlockRecord, 0, count)
	for i := 0; i < len(body); i += tupleSize {
		b := BlockRecord{X: body[i], Y: body[i+1], Z: body[i+2], Block: registry.BlockType(body[i+3])}
		if int(b.X) >= world.ChunkSize || int(b.Y) >= world.WorldHeight || int(b.Z) >= world.ChunkSize {
			return ChunkRecord{}, fmt.Errorf("%w: chunk (%d,%d) block at (%d,%d,%d)",
				ErrCorruptRecord, rec.X, rec.Z, b.X, b.Y, b.Z)
		}
		rec.Blocks = append(rec.Blocks, b)
	}
	return rec, nil
}
