package chunks

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"mini-voxel/internal/graphics"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

// gpuMesh mirrors one chunk's MeshBuffer in GL buffers. src is the buffer
// that was uploaded; a different pointer on the chunk means re-upload.
type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	src           *world.MeshBuffer
}

// viewState is what the mesh set was last pruned against.
type viewState struct {
	center world.ChunkCoord
	radius int
	mods   uint64
}

// Chunks draws the loaded chunks within render distance of the viewer,
// rebuilding their dirty meshes first. Meshes of chunks that leave the
// range or get unloaded are freed.
type Chunks struct {
	shader  *graphics.Shader
	meshes  map[world.ChunkCoord]*gpuMesh
	pool    *meshing.Pool
	indices []uint32

	visible      []*world.Chunk
	dirtyScratch []*world.Chunk
	staleScratch []world.ChunkCoord
	pruned       viewState

	Wireframe bool
	FogColor  mgl32.Vec3
	// FogEnd is the distance in blocks where geometry fully fades to FogColor.
	FogEnd float32

	// Stats for the last frame.
	Drawn    int
	Uploaded int
}

// NewChunks returns a chunk renderer. With a nil pool meshes are rebuilt on
// the render thread.
func NewChunks(pool *meshing.Pool, fogColor mgl32.Vec3, fogEnd float32) *Chunks {
	return &Chunks{
		meshes:   make(map[world.ChunkCoord]*gpuMesh),
		pool:     pool,
		FogColor: fogColor,
		FogEnd:   fogEnd,
	}
}

func (c *Chunks) Init() error {
	var err error
	c.shader, err = graphics.LoadShader("chunk")
	return err
}

func (c *Chunks) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderChunks")()

	c.visible = ctx.World.AppendChunksInRange(ctx.Center, ctx.Radius, c.visible[:0])
	c.rebuild(ctx.World)
	c.sync(ctx.World, ctx.Center, ctx.Radius)

	if c.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	c.shader.Use()
	c.shader.SetMatrix4("proj", &ctx.Proj[0])
	c.shader.SetMatrix4("view", &ctx.View[0])
	c.shader.SetVector3("fogColor", c.FogColor.X(), c.FogColor.Y(), c.FogColor.Z())
	c.shader.SetFloat("fogStart", c.FogEnd*0.6)
	c.shader.SetFloat("fogEnd", c.FogEnd)

	c.Drawn = 0
	for coord, m := range c.meshes {
		if m.indexCount == 0 {
			continue
		}
		lo, hi := chunkBounds(coord)
		if !ctx.Frustum.IntersectsAABB(lo, hi) {
			continue
		}
		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
		c.Drawn++
	}
	gl.BindVertexArray(0)
}

// rebuild meshes every dirty visible chunk, in parallel when a pool is set.
func (c *Chunks) rebuild(w *world.World) {
	defer profiling.Track("renderer.renderChunks.rebuild")()
	dirty := c.dirtyScratch[:0]
	for _, ch := range c.visible {
		if ch.Dirty() {
			dirty = append(dirty, ch)
		}
	}
	c.dirtyScratch = dirty
	if len(dirty) == 0 {
		return
	}
	if c.pool != nil {
		c.pool.RebuildDirty(dirty, w)
		return
	}
	for _, ch := range dirty {
		meshing.BuildOrGet(ch, w)
	}
}

// sync uploads changed meshes of visible chunks and frees the buffers of
// chunks that are out of range or unloaded.
func (c *Chunks) sync(w *world.World, center world.ChunkCoord, radius int) {
	defer profiling.Track("renderer.renderChunks.upload")()
	c.Uploaded = 0
	for _, ch := range c.visible {
		mesh := ch.Mesh()
		if mesh == nil {
			continue
		}
		m := c.meshes[ch.Coord()]
		if m != nil && m.src == mesh {
			continue
		}
		if m == nil {
			m = newGPUMesh()
			c.meshes[ch.Coord()] = m
		}
		c.upload(m, mesh)
		c.Uploaded++
	}

	view := viewState{center: center, radius: radius, mods: w.ModCount()}
	if view == c.pruned {
		return
	}
	c.pruned = view
	c.staleScratch = c.stale(w, center, radius, c.staleScratch[:0])
	for _, coord := range c.staleScratch {
		c.meshes[coord].delete()
		delete(c.meshes, coord)
	}
}

// stale appends the coordinates of meshes whose chunk is farther than radius
// from center or no longer loaded.
func (c *Chunks) stale(w *world.World, center world.ChunkCoord, radius int, dst []world.ChunkCoord) []world.ChunkCoord {
	for coord := range c.meshes {
		if coord.Chebyshev(center) > radius || !w.HasChunk(coord) {
			dst = append(dst, coord)
		}
	}
	return dst
}

func newGPUMesh() *gpuMesh {
	m := &gpuMesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	stride := int32(world.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BindVertexArray(0)
	return m
}

func (c *Chunks) upload(m *gpuMesh, mesh *world.MeshBuffer) {
	m.src = mesh
	quads := mesh.QuadCount()
	m.indexCount = int32(quads * 6)
	if quads == 0 {
		return
	}
	// Index pattern is the same for every chunk; grow one shared slice.
	if len(c.indices) < quads*6 {
		c.indices = meshing.QuadIndices(quads)
	}

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*4, gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, quads*6*4, gl.Ptr(c.indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
}

func (m *gpuMesh) delete() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

func chunkBounds(coord world.ChunkCoord) (lo, hi mgl32.Vec3) {
	x, z := coord.Origin()
	lo = mgl32.Vec3{float32(x), 0, float32(z)}
	hi = lo.Add(mgl32.Vec3{world.ChunkSize, world.WorldHeight, world.ChunkSize})
	return lo, hi
}

// Meshes returns how many chunks currently own GPU buffers.
func (c *Chunks) Meshes() int {
	return len(c.meshes)
}

func (c *Chunks) Dispose() {
	for coord, m := range c.meshes {
		m.delete()
		delete(c.meshes, coord)
	}
	if c.shader != nil {
		c.shader.Delete()
	}
}
