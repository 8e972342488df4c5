package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"mini-voxel/internal/profiling"
)

const (
	MinReachDistance = 0.1
	MaxReachDistance = 5.0
)

// RaycastResult stores the result of a raycast operation
type RaycastResult struct {
	HitPosition [3]int
	// AdjacentPosition is the empty cell the ray passed through last; new
	// blocks are placed there.
	AdjacentPosition [3]int
	Distance         float32
	Hit              bool
}

// Raycast walks the voxel grid cell by cell from start along direction and
// returns the first solid block whose entry distance lies in
// [minDist, maxDist].
func Raycast(start, direction mgl32.Vec3, minDist, maxDist float32, w SolidSource) RaycastResult {
	defer profiling.Track("physics.Raycast")()

	if direction.Len() == 0 {
		return RaycastResult{}
	}
	dir := direction.Normalize()

	cell := [3]int{floorInt(start.X()), floorInt(start.Y()), floorInt(start.Z())}
	var step [3]int
	var tMax, tDelta [3]float64
	for a := 0; a < 3; a++ {
		d := float64(dir[a])
		s := float64(start[a])
		switch {
		case d > 0:
			step[a] = 1
			tMax[a] = (math.Floor(s) + 1 - s) / d
			tDelta[a] = 1 / d
		case d < 0:
			step[a] = -1
			tMax[a] = (s - math.Floor(s)) / -d
			tDelta[a] = 1 / -d
		default:
			tMax[a] = math.Inf(1)
			tDelta[a] = math.Inf(1)
		}
	}

	prev := cell
	t := 0.0
	for t <= float64(maxDist) {
		if t >= float64(minDist) && w.IsSolid(cell[0], cell[1], cell[2]) {
			return RaycastResult{
				HitPosition:      cell,
				AdjacentPosition: prev,
				Distance:         float32(t),
				Hit:              true,
			}
		}

		axis := 0
		if tMax[1] < tMax[axis] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}
		prev = cell
		cell[axis] += step[axis]
		t = tMax[axis]
		tMax[axis] += tDelta[axis]
	}
	return RaycastResult{}
}
