package world

import "github.com/go-gl/mathgl/mgl32"

const (
	// VertexStride is the number of float32 values per vertex: x,y,z,r,g,b.
	VertexStride = 6
	// VerticesPerQuad is the number of vertices emitted per visible face.
	VerticesPerQuad = 4
)

// MeshBuffer is the CPU-side mesh of one chunk: interleaved world-space
// positions and colors, four vertices per quad.
type MeshBuffer struct {
	Vertices []float32
}

// VertexCount returns the number of vertices in the buffer.
func (m *MeshBuffer) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Vertices) / VertexStride
}

// QuadCount returns the number of quads in the buffer.
func (m *MeshBuffer) QuadCount() int {
	return m.VertexCount() / VerticesPerQuad
}

// Position returns the position of vertex i.
func (m *MeshBuffer) Position(i int) mgl32.Vec3 {
	o := i * VertexStride
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}

// Color returns the color of vertex i.
func (m *MeshBuffer) Color(i int) mgl32.Vec3 {
	o := i*VertexStride + 3
	return mgl32.Vec3{m.Vertices[o], m.Vertices[o+1], m.Vertices[o+2]}
}
