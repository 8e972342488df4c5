package graphics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFrustumCulling(t *testing.T) {
	c := NewCamera(800, 600)
	c.Position = mgl32.Vec3{0, 0, 0}
	c.FarPlane = 100
	f := c.Frustum()

	tests := []struct {
		name     string
		min, max mgl32.Vec3
		want     bool
	}{
		{"ahead", mgl32.Vec3{9, -1, -1}, mgl32.Vec3{11, 1, 1}, true},
		{"behind", mgl32.Vec3{-11, -1, -1}, mgl32.Vec3{-9, 1, 1}, false},
		{"beyond far plane", mgl32.Vec3{150, -1, -1}, mgl32.Vec3{160, 1, 1}, false},
		{"far to the side", mgl32.Vec3{9, -1, 50}, mgl32.Vec3{11, 1, 52}, false},
		{"around the eye", mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, true},
		{"straddling the far plane", mgl32.Vec3{90, -1, -1}, mgl32.Vec3{110, 1, 1}, true},
	}
	for _, tt := range tests {
		if got := f.IntersectsAABB(tt.min, tt.max); got != tt.want {
			t.Errorf("%s: IntersectsAABB = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFrustumPlanesAreNormalized(t *testing.T) {
	f := NewCamera(1280, 720).Frustum()
	for i, p := range f {
		n := mgl32.Vec3{p.A, p.B, p.C}.Len()
		if n < 0.999 || n > 1.001 {
			t.Errorf("plane %d normal length = %v", i, n)
		}
	}
}
