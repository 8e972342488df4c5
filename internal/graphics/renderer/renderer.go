package renderer

import (
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// SkyColor is the clear color; chunk fog blends toward it.
var SkyColor = mgl32.Vec3{0.53, 0.81, 0.92}

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
	width       int
	height      int
}

// NewRenderer configures GL state and initializes every renderable in order.
func NewRenderer(camera *graphics.Camera, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	r := &Renderer{
		renderables: rs,
		camera:      camera,
	}
	for i, rb := range rs {
		if err := rb.Init(); err != nil {
			// Dispose what was already set up.
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, err
		}
	}
	return r, nil
}

// Render clears the frame and draws every renderable. Chunks farther than
// radius from center are not drawn.
func (r *Renderer) Render(w *world.World, center world.ChunkCoord, radius int, target physics.RaycastResult, dt float64) {
	defer profiling.Track("renderer.Render")()

	gl.ClearColor(SkyColor.X(), SkyColor.Y(), SkyColor.Z(), 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := r.camera.GetViewMatrix()
	proj := r.camera.GetProjectionMatrix()
	ctx := RenderContext{
		Camera:  r.camera,
		World:   w,
		Target:  target,
		DT:      dt,
		View:    view,
		Proj:    proj,
		Frustum: graphics.ExtractFrustum(proj.Mul4(view)),
		Width:   r.width,
		Height:  r.height,
		Center:  center,
		Radius:  radius,
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}

// UpdateViewport resizes the GL viewport and the camera aspect ratio.
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.width, r.height = width, height
	r.camera.SetViewport(width, height)
}
