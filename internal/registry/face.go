package registry

import "github.com/go-gl/mathgl/mgl32"

// Face identifies a face of a block
type Face int

const (
	FaceNorth Face = iota // +Z
	FaceSouth             // -Z
	FaceEast              // +X
	FaceWest              // -X
	FaceTop               // +Y
	FaceBottom            // -Y
)

// Faces lists all six faces in mesh emission order.
var Faces = [6]Face{FaceNorth, FaceSouth, FaceEast, FaceWest, FaceTop, FaceBottom}

var faceNormals = [6][3]int{
	FaceNorth:  {0, 0, 1},
	FaceSouth:  {0, 0, -1},
	FaceEast:   {1, 0, 0},
	FaceWest:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
}

// Fake directional light: top brightest, bottom darkest.
var faceShade = [6]float32{
	FaceNorth:  0.8,
	FaceSouth:  0.8,
	FaceEast:   0.65,
	FaceWest:   0.65,
	FaceTop:    1.0,
	FaceBottom: 0.5,
}

// Normal returns the integer offset to the neighbor cell behind the face.
func (f Face) Normal() (dx, dy, dz int) {
	n := faceNormals[f]
	return n[0], n[1], n[2]
}

// Shade returns the brightness multiplier applied to the face.
func (f Face) Shade() float32 {
	return faceShade[f]
}

func (f Face) String() string {
	switch f {
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	case FaceEast:
		return "east"
	case FaceWest:
		return "west"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "invalid"
	}
}

// FaceColor returns the unshaded color for one face of a block.
func FaceColor(bt BlockType, face Face) mgl32.Vec3 {
	c := Lookup(bt).Colors
	switch face {
	case FaceTop:
		return c.Top
	case FaceBottom:
		return c.Bottom
	default:
		return c.Side
	}
}

// ShadedFaceColor returns the face color with the directional shade applied.
func ShadedFaceColor(bt BlockType, face Face) mgl32.Vec3 {
	return FaceColor(bt, face).Mul(face.Shade())
}
