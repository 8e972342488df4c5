package renderer

import (
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera  *graphics.Camera
	World   *world.World
	Target  physics.RaycastResult
	DT      float64
	View    mgl32.Mat4
	Proj    mgl32.Mat4
	Frustum graphics.Frustum
	// Framebuffer size in pixels
	Width, Height int
	// Center is the viewer's chunk; only chunks within Radius of it are drawn.
	Center world.ChunkCoord
	Radius int
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
}
