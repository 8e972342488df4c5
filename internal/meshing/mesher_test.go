package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

func emptyWorld(t testing.TB) *world.World {
	t.Helper()
	w := world.NewEmpty()
	w.EnsureLoadedAround(world.ChunkCoord{}, 1)
	return w
}

func chunkAt(t testing.TB, w *world.World, x, z int) *world.Chunk {
	t.Helper()
	c, ok := w.GetChunk(world.ChunkCoord{X: x, Z: z})
	if !ok {
		t.Fatalf("chunk (%d,%d) not loaded", x, z)
	}
	return c
}

func set(t testing.TB, w *world.World, x, y, z int, bt registry.BlockType) {
	t.Helper()
	if !w.SetBlock(x, y, z, bt) {
		t.Fatalf("SetBlock(%d,%d,%d) failed", x, y, z)
	}
}

func TestQuadCounts(t *testing.T) {
	tests := []struct {
		name   string
		blocks map[[3]int]registry.BlockType
		quads  int
	}{
		{"single block", map[[3]int]registry.BlockType{{1, 1, 1}: registry.Stone}, 6},
		{"on the floor", map[[3]int]registry.BlockType{{1, 0, 1}: registry.Stone}, 6},
		{"at the ceiling", map[[3]int]registry.BlockType{{1, world.WorldHeight - 1, 1}: registry.Stone}, 6},
		{"separated", map[[3]int]registry.BlockType{
			{1, 1, 1}: registry.Stone, {3, 1, 1}: registry.Stone,
		}, 12},
		{"touching", map[[3]int]registry.BlockType{
			{1, 1, 1}: registry.Stone, {2, 1, 1}: registry.Stone,
		}, 10},
		{"stone next to glass", map[[3]int]registry.BlockType{
			{1, 1, 1}: registry.Stone, {2, 1, 1}: registry.Glass,
		}, 11},
		{"glass next to glass", map[[3]int]registry.BlockType{
			{1, 1, 1}: registry.Glass, {2, 1, 1}: registry.Glass,
		}, 12},
		{"water next to water", map[[3]int]registry.BlockType{
			{1, 1, 1}: registry.Water, {2, 1, 1}: registry.Water,
		}, 12},
		{"stone under water", map[[3]int]registry.BlockType{
			{1, 1, 1}: registry.Stone, {1, 2, 1}: registry.Water,
		}, 11},
		{"surrounded", map[[3]int]registry.BlockType{
			{5, 5, 5}: registry.Stone,
			{4, 5, 5}: registry.Stone, {6, 5, 5}: registry.Stone,
			{5, 4, 5}: registry.Stone, {5, 6, 5}: registry.Stone,
			{5, 5, 4}: registry.Stone, {5, 5, 6}: registry.Stone,
		}, 30},
	}
	for _, tt := range tests {
		w := emptyWorld(t)
		for p, bt := range tt.blocks {
			set(t, w, p[0], p[1], p[2], bt)
		}
		m := Build(chunkAt(t, w, 0, 0), w)
		if got := m.QuadCount(); got != tt.quads {
			t.Errorf("%s: %d quads, want %d", tt.name, got, tt.quads)
		}
		if got, want := len(m.Vertices), tt.quads*world.VerticesPerQuad*world.VertexStride; got != want {
			t.Errorf("%s: %d floats, want %d", tt.name, got, want)
		}
	}
}

func TestSolidCubeOnlyShowsShell(t *testing.T) {
	w := emptyWorld(t)
	for x := 4; x <= 6; x++ {
		for y := 4; y <= 6; y++ {
			for z := 4; z <= 6; z++ {
				set(t, w, x, y, z, registry.Stone)
			}
		}
	}
	m := Build(chunkAt(t, w, 0, 0), w)
	// 3x3 faces on each of 6 sides.
	if got := m.QuadCount(); got != 54 {
		t.Errorf("cube shell has %d quads, want 54", got)
	}
}

func TestCrossChunkFaceCulling(t *testing.T) {
	w := emptyWorld(t)
	set(t, w, world.ChunkSize-1, 10, 0, registry.Stone)
	set(t, w, world.ChunkSize, 10, 0, registry.Stone)

	if got := Build(chunkAt(t, w, 0, 0), w).QuadCount(); got != 5 {
		t.Errorf("chunk (0,0): %d quads, want 5", got)
	}
	if got := Build(chunkAt(t, w, 1, 0), w).QuadCount(); got != 5 {
		t.Errorf("chunk (1,0): %d quads, want 5", got)
	}
	if got := Build(chunkAt(t, w, 0, 0), nil).QuadCount(); got != 6 {
		t.Errorf("without a block source: %d quads, want 6", got)
	}
}

func TestUnloadedNeighborCountsAsAir(t *testing.T) {
	w := world.NewEmpty()
	c := w.GetOrGenerate(world.ChunkCoord{})
	set(t, w, 0, 10, 0, registry.Stone)
	if got := Build(c, w).QuadCount(); got != 6 {
		t.Errorf("%d quads, want 6", got)
	}
}

func TestVerticesAreWorldSpace(t *testing.T) {
	w := emptyWorld(t)
	set(t, w, -1, 5, -1, registry.Stone)
	m := Build(chunkAt(t, w, -1, -1), w)
	if m.VertexCount() != 24 {
		t.Fatalf("%d vertices, want 24", m.VertexCount())
	}
	lo := mgl32.Vec3{-1, 5, -1}
	hi := mgl32.Vec3{0, 6, 0}
	for i := 0; i < m.VertexCount(); i++ {
		p := m.Position(i)
		for a := 0; a < 3; a++ {
			if p[a] != lo[a] && p[a] != hi[a] {
				t.Fatalf("vertex %v is not a corner of [%v,%v]", p, lo, hi)
			}
		}
	}
}

func TestWindingFacesOutward(t *testing.T) {
	w := emptyWorld(t)
	set(t, w, 3, 7, 9, registry.Grass)
	m := Build(chunkAt(t, w, 0, 0), w)
	center := mgl32.Vec3{3.5, 7.5, 9.5}
	for q := 0; q < m.QuadCount(); q++ {
		v0, v1, v2 := m.Position(q*4), m.Position(q*4+1), m.Position(q*4+2)
		v3 := m.Position(q*4 + 3)
		n := v1.Sub(v0).Cross(v2.Sub(v0))
		mid := v0.Add(v1).Add(v2).Add(v3).Mul(0.25)
		if n.Dot(mid.Sub(center)) <= 0 {
			t.Errorf("quad %d is wound clockwise from outside", q)
		}
		// second triangle (2,3,0) keeps the same orientation
		n2 := v3.Sub(v2).Cross(v0.Sub(v2))
		if n2.Dot(n) <= 0 {
			t.Errorf("quad %d second triangle flips", q)
		}
	}
}

func TestFaceColorsAreShaded(t *testing.T) {
	w := emptyWorld(t)
	set(t, w, 3, 7, 9, registry.Grass)
	m := Build(chunkAt(t, w, 0, 0), w)

	want := map[registry.Face]mgl32.Vec3{}
	for _, f := range registry.Faces {
		want[f] = registry.ShadedFaceColor(registry.Grass, f)
	}
	seen := 0
	for q := 0; q < m.QuadCount(); q++ {
		col := m.Color(q * 4)
		for _, f := range registry.Faces {
			if col.ApproxEqual(want[f]) {
				seen |= 1 << f
			}
		}
		for v := 1; v < 4; v++ {
			if m.Color(q*4+v) != col {
				t.Errorf("quad %d has mixed vertex colors", q)
			}
		}
	}
	if top := registry.ShadedFaceColor(registry.Grass, registry.FaceTop); !top.ApproxEqual(registry.FaceColor(registry.Grass, registry.FaceTop)) {
		t.Errorf("top face should be unshaded, got %v", top)
	}
	if seen&(1<<registry.FaceTop) == 0 || seen&(1<<registry.FaceBottom) == 0 {
		t.Errorf("missing top or bottom face colors, mask %b", seen)
	}
}

func TestBuildOrGetCaches(t *testing.T) {
	w := emptyWorld(t)
	set(t, w, 2, 2, 2, registry.Stone)
	c := chunkAt(t, w, 0, 0)

	m1 := BuildOrGet(c, w)
	if c.Dirty() {
		t.Fatal("BuildOrGet should leave the chunk clean")
	}
	m2 := BuildOrGet(c, w)
	if m1 != m2 {
		t.Error("clean chunk should return the cached mesh pointer")
	}
	if allocs := testing.AllocsPerRun(10, func() { BuildOrGet(c, w) }); allocs != 0 {
		t.Errorf("cached BuildOrGet allocated %v times", allocs)
	}

	c.SetLocal(3, 2, 2, registry.Stone)
	m3 := BuildOrGet(c, w)
	if m3 == m1 {
		t.Error("mesh must be rebuilt after SetLocal")
	}
	if m3.QuadCount() != 10 {
		t.Errorf("rebuilt mesh has %d quads, want 10", m3.QuadCount())
	}
}

func TestBorderEditRebuildsNeighbor(t *testing.T) {
	w := emptyWorld(t)
	set(t, w, 0, 20, 4, registry.Stone)
	west := chunkAt(t, w, -1, 0)
	set(t, w, -1, 20, 4, registry.Stone)

	before := BuildOrGet(west, w)
	if before.QuadCount() != 5 {
		t.Fatalf("west chunk: %d quads, want 5", before.QuadCount())
	}
	set(t, w, 0, 20, 4, registry.Air)
	if !west.Dirty() {
		t.Fatal("editing the border should dirty the neighbor")
	}
	if after := BuildOrGet(west, w); after.QuadCount() != 6 {
		t.Errorf("west chunk after edit: %d quads, want 6", after.QuadCount())
	}
}

func TestQuadIndices(t *testing.T) {
	got := QuadIndices(2)
	want := []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %d, want %d", i, got[i], want[i])
		}
	}
	if QuadIndices(0) != nil {
		t.Error("zero quads should yield nil")
	}
}

func TestPoolRebuildDirty(t *testing.T) {
	w := world.New(1, world.NewFlatGenerator(20))
	w.EnsureLoadedAround(world.ChunkCoord{}, 2)
	chunks := w.ChunksInRange(world.ChunkCoord{}, 2)

	p := NewPool(4)
	defer p.Close()

	if n := p.RebuildDirty(chunks, w); n != len(chunks) {
		t.Fatalf("rebuilt %d chunks, want %d", n, len(chunks))
	}
	for _, c := range chunks {
		if c.Dirty() {
			t.Fatalf("chunk %v still dirty", c.Coord())
		}
		want := Build(c, w)
		if got := c.Mesh(); len(got.Vertices) != len(want.Vertices) {
			t.Errorf("chunk %v: pooled mesh has %d floats, want %d", c.Coord(), len(got.Vertices), len(want.Vertices))
		}
	}
	if n := p.RebuildDirty(chunks, w); n != 0 {
		t.Errorf("second pass rebuilt %d clean chunks", n)
	}
}

func BenchmarkBuildTerrainChunk(b *testing.B) {
	w := world.NewDefault(12345)
	w.EnsureLoadedAround(world.ChunkCoord{}, 1)
	c := chunkAt(b, w, 0, 0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Build(c, w)
	}
}
