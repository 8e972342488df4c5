package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"mini-voxel/internal/physics"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

const (
	PlayerEyeHeight  = 1.62
	MouseSensitivity = 0.1
)

// Palette is the block set bound to the number keys.
var Palette = [9]registry.BlockType{
	registry.Grass,
	registry.Dirt,
	registry.Stone,
	registry.Cobblestone,
	registry.Planks,
	registry.Wood,
	registry.Glass,
	registry.Sand,
	registry.Leaves,
}

// Player is the viewer's avatar: a flying box that can mine and place
// blocks. Position is the center of the feet.
type Player struct {
	World *world.World

	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32

	// Collide enables sweeping against solid blocks; off means noclip.
	Collide  bool
	Sprint   bool
	OnGround bool

	Selected registry.BlockType
	Hovered  physics.RaycastResult
}

// New places a player at pos in w with collision on and grass selected.
func New(w *world.World, pos mgl32.Vec3) *Player {
	return &Player{
		World:    w,
		Position: pos,
		Collide:  true,
		Selected: Palette[0],
	}
}

// Spawn returns a position standing on the highest solid block of column
// (x, z), loading nothing. Columns without ground spawn at the top of the world.
func Spawn(w *world.World, x, z float32) mgl32.Vec3 {
	y, ok := physics.FindGroundLevel(x, z, world.WorldHeight-1, w)
	if !ok {
		y = world.WorldHeight
	}
	return mgl32.Vec3{x, y, z}
}

func (p *Player) EyePosition() mgl32.Vec3 {
	return p.Position.Add(mgl32.Vec3{0, PlayerEyeHeight, 0})
}

func (p *Player) GetFrontVector() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(p.Yaw))
	pt := float64(mgl32.DegToRad(p.Pitch))
	return mgl32.Vec3{
		float32(math.Cos(y) * math.Cos(pt)),
		float32(math.Sin(pt)),
		float32(math.Sin(y) * math.Cos(pt)),
	}.Normalize()
}

// Look applies a cursor movement in screen pixels.
func (p *Player) Look(dx, dy float64) {
	p.Yaw = float32(math.Mod(float64(p.Yaw)+dx*MouseSensitivity, 360))
	p.Pitch = mgl32.Clamp(p.Pitch-float32(dy*MouseSensitivity), -89, 89)
}

// ChunkCoord returns the chunk the player stands in.
func (p *Player) ChunkCoord() world.ChunkCoord {
	return world.ChunkCoordOf(p.Position)
}

// UpdateTarget recasts the reach ray from the eye.
func (p *Player) UpdateTarget() {
	p.Hovered = physics.Raycast(p.EyePosition(), p.GetFrontVector(), physics.MinReachDistance, physics.MaxReachDistance, p.World)
}
