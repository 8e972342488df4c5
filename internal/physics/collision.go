package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SolidSource reports solidity of world blocks. *world.World implements it.
type SolidSource interface {
	IsSolid(x, y, z int) bool
}

const (
	// PlayerHalfWidth is half the horizontal extent of the player box.
	PlayerHalfWidth = 0.3
	// PlayerHeight is the default height of the player box.
	PlayerHeight = 1.8

	skin = 1e-3
)

// Contact reports which axes were blocked during Move.
type Contact struct {
	X, Y, Z  bool
	OnGround bool
}

func floorInt(v float32) int {
	return int(math.Floor(float64(v)))
}

// Collides reports whether a player box with feet centered at pos overlaps
// any solid block. Block (x, y, z) spans [x,x+1) on each axis.
func Collides(pos mgl32.Vec3, height float32, w SolidSource) bool {
	minX := floorInt(pos.X() - PlayerHalfWidth)
	maxX := floorInt(pos.X() + PlayerHalfWidth - skin)
	minY := floorInt(pos.Y())
	maxY := floorInt(pos.Y() + height - skin)
	minZ := floorInt(pos.Z() - PlayerHalfWidth)
	maxZ := floorInt(pos.Z() + PlayerHalfWidth - skin)

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if w.IsSolid(x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// Move displaces the player box by delta one axis at a time (Y, then X,
// then Z), stopping flush against solid blocks.
func Move(pos, delta mgl32.Vec3, height float32, w SolidSource) (mgl32.Vec3, Contact) {
	var contact Contact

	// Keep each step under one block so no cell is skipped.
	steps := int(math.Ceil(float64(max(abs32(delta.X()), abs32(delta.Y()), abs32(delta.Z())) / 0.5)))
	steps = max(steps, 1)
	step := delta.Mul(1 / float32(steps))

	for range steps {
		pos = moveAxis(pos, 1, step.Y(), height, w, &contact)
		pos = moveAxis(pos, 0, step.X(), height, w, &contact)
		pos = moveAxis(pos, 2, step.Z(), height, w, &contact)
	}
	return pos, contact
}

func moveAxis(pos mgl32.Vec3, axis int, d, height float32, w SolidSource, contact *Contact) mgl32.Vec3 {
	if d == 0 {
		return pos
	}
	next := pos
	next[axis] += d
	if !Collides(next, height, w) {
		return next
	}

	switch axis {
	case 0:
		contact.X = true
		if d > 0 {
			next[0] = float32(floorInt(next[0]+PlayerHalfWidth)) - PlayerHalfWidth - skin
		} else {
			next[0] = float32(floorInt(next[0]-PlayerHalfWidth)+1) + PlayerHalfWidth + skin
		}
	case 1:
		contact.Y = true
		if d > 0 {
			next[1] = float32(floorInt(next[1]+height)) - height - skin
		} else {
			next[1] = float32(floorInt(next[1]) + 1)
			contact.OnGround = true
		}
	case 2:
		contact.Z = true
		if d > 0 {
			next[2] = float32(floorInt(next[2]+PlayerHalfWidth)) - PlayerHalfWidth - skin
		} else {
			next[2] = float32(floorInt(next[2]-PlayerHalfWidth)+1) + PlayerHalfWidth + skin
		}
	}
	if Collides(next, height, w) {
		return pos
	}
	return next
}

// FindGroundLevel returns the top surface of the highest solid block under
// the player footprint at or below fromY. ok is false when there is none.
func FindGroundLevel(x, z, fromY float32, w SolidSource) (ground float32, ok bool) {
	minX := floorInt(x - PlayerHalfWidth)
	maxX := floorInt(x + PlayerHalfWidth - skin)
	minZ := floorInt(z - PlayerHalfWidth)
	maxZ := floorInt(z + PlayerHalfWidth - skin)

	best := -1
	for bx := minX; bx <= maxX; bx++ {
		for bz := minZ; bz <= maxZ; bz++ {
			for by := floorInt(fromY); by >= 0 && by > best; by-- {
				if w.IsSolid(bx, by, bz) {
					best = by
					break
				}
			}
		}
	}
	if best < 0 {
		return 0, false
	}
	return float32(best + 1), true
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// IntersectsBlock reports whether the player box at pos overlaps block
// cell (x, y, z).
func IntersectsBlock(pos mgl32.Vec3, height float32, x, y, z int) bool {
	return pos.X()+PlayerHalfWidth > float32(x) && pos.X()-PlayerHalfWidth < float32(x+1) &&
		pos.Y()+height > float32(y) && pos.Y() < float32(y+1) &&
		pos.Z()+PlayerHalfWidth > float32(z) && pos.Z()-PlayerHalfWidth < float32(z+1)
}
