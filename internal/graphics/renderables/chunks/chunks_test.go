package chunks

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"mini-voxel/internal/world"
)

func loadedWorld(radius int) *world.World {
	w := world.New(0, world.NewFlatGenerator(10))
	w.EnsureLoadedAround(world.ChunkCoord{}, radius)
	return w
}

func TestRebuildOnlyVisible(t *testing.T) {
	w := loadedWorld(3)
	c := NewChunks(nil, mgl32.Vec3{}, 64)
	center := world.ChunkCoord{X: 1}
	c.visible = w.AppendChunksInRange(center, 1, c.visible[:0])
	c.rebuild(w)

	w.ForEachChunk(func(ch *world.Chunk) {
		inRange := ch.Coord().Chebyshev(center) <= 1
		if inRange && ch.Mesh() == nil {
			t.Errorf("chunk %v in range was not meshed", ch.Coord())
		}
		if !inRange && !ch.Dirty() {
			t.Errorf("chunk %v out of range was meshed", ch.Coord())
		}
	})
}

func TestStaleMeshes(t *testing.T) {
	w := loadedWorld(2)
	c := NewChunks(nil, mgl32.Vec3{}, 64)
	for _, coord := range []world.ChunkCoord{
		{}, {X: 1}, {X: 2, Z: -2}, {X: -2}, {X: 9, Z: 9},
	} {
		c.meshes[coord] = &gpuMesh{}
	}

	tests := []struct {
		name   string
		center world.ChunkCoord
		radius int
		want   []world.ChunkCoord
	}{
		{"all in range", world.ChunkCoord{}, 2, []world.ChunkCoord{{X: 9, Z: 9}}},
		{"shrunk radius", world.ChunkCoord{}, 1, []world.ChunkCoord{{X: -2}, {X: 2, Z: -2}, {X: 9, Z: 9}}},
		{"moved", world.ChunkCoord{X: 2}, 1, []world.ChunkCoord{{X: -2}, {}, {X: 2, Z: -2}, {X: 9, Z: 9}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.stale(w, tt.center, tt.radius, nil)
			slices.SortFunc(got, compareCoords)
			if !slices.Equal(got, tt.want) {
				t.Errorf("stale = %v, want %v", got, tt.want)
			}
		})
	}
}

func compareCoords(a, b world.ChunkCoord) int {
	if a.X != b.X {
		return a.X - b.X
	}
	return a.Z - b.Z
}
