package graphics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Plane struct {
	A, B, C, D float32
}

// Frustum holds six inward-facing planes: left, right, bottom, top, near, far.
type Frustum [6]Plane

// ExtractFrustum builds the planes from a combined projection*view matrix.
func ExtractFrustum(clip mgl32.Mat4) Frustum {
	// mgl32 matrices are column-major
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	return Frustum{
		normalizePlane(Plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}),
		normalizePlane(Plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}),
		normalizePlane(Plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}),
		normalizePlane(Plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}),
		normalizePlane(Plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}),
		normalizePlane(Plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}),
	}
}

func normalizePlane(p Plane) Plane {
	l := float32(math.Sqrt(float64(p.A*p.A + p.B*p.B + p.C*p.C)))
	if l == 0 {
		return p
	}
	return Plane{p.A / l, p.B / l, p.C / l, p.D / l}
}

// IntersectsAABB reports whether the box is at least partly inside. It is
// conservative: some boxes near frustum corners pass without being visible.
func (f *Frustum) IntersectsAABB(min, max mgl32.Vec3) bool {
	for _, p := range f {
		// positive vertex
		px := max.X()
		if p.A < 0 {
			px = min.X()
		}
		py := max.Y()
		if p.B < 0 {
			py = min.Y()
		}
		pz := max.Z()
		if p.C < 0 {
			pz = min.Z()
		}
		if p.A*px+p.B*py+p.C*pz+p.D < 0 {
			return false
		}
	}
	return true
}
