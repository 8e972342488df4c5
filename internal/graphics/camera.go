package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = 89.0

// Camera is a free-flying perspective camera. Yaw 0 looks down +X, yaw 90
// down +Z; angles are in degrees.
type Camera struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		FOV:       70.0,
		NearPlane: 0.1,
		FarPlane:  1000.0,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio; a zero height (minimized window) is ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}

// Rotate turns the camera, keeping pitch inside (-90, 90).
func (c *Camera) Rotate(dYaw, dPitch float32) {
	c.Yaw = float32(math.Mod(float64(c.Yaw+dYaw), 360))
	c.Pitch = mgl32.Clamp(c.Pitch+dPitch, -maxPitch, maxPitch)
}

func (c *Camera) Front() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(c.Yaw))
	p := float64(mgl32.DegToRad(c.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(p)),
		float32(math.Sin(p)),
		float32(math.Sin(y) * math.Cos(p)),
	}.Normalize()
}

// Flat returns the horizontal forward and right vectors used for walking.
func (c *Camera) Flat() (forward, right mgl32.Vec3) {
	y := float64(mgl32.DegToRad(c.Yaw))
	forward = mgl32.Vec3{float32(math.Cos(y)), 0, float32(math.Sin(y))}
	right = mgl32.Vec3{-forward.Z(), 0, forward.X()}
	return forward, right
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front()), mgl32.Vec3{0, 1, 0})
}

// Frustum returns the view frustum for the current matrices.
func (c *Camera) Frustum() Frustum {
	return ExtractFrustum(c.GetProjectionMatrix().Mul4(c.GetViewMatrix()))
}
