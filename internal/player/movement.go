package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"mini-voxel/internal/input"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/profiling"
)

const (
	FlySpeed         = 10.0
	SprintMultiplier = 2.5
)

// wishDir returns the normalized movement direction requested by input.
func (p *Player) wishDir(im *input.InputManager) mgl32.Vec3 {
	y := float64(mgl32.DegToRad(p.Yaw))
	forward := mgl32.Vec3{float32(math.Cos(y)), 0, float32(math.Sin(y))}
	right := mgl32.Vec3{-forward.Z(), 0, forward.X()}

	var dir mgl32.Vec3
	if im.IsActive(input.ActionMoveForward) {
		dir = dir.Add(forward)
	}
	if im.IsActive(input.ActionMoveBackward) {
		dir = dir.Sub(forward)
	}
	if im.IsActive(input.ActionMoveRight) {
		dir = dir.Add(right)
	}
	if im.IsActive(input.ActionMoveLeft) {
		dir = dir.Sub(right)
	}
	if im.IsActive(input.ActionMoveUp) {
		dir = dir.Add(mgl32.Vec3{0, 1, 0})
	}
	if im.IsActive(input.ActionMoveDown) {
		dir = dir.Sub(mgl32.Vec3{0, 1, 0})
	}
	if dir.Len() == 0 {
		return dir
	}
	return dir.Normalize()
}

// UpdatePosition moves the player for one frame of dt seconds.
func (p *Player) UpdatePosition(dt float64, im *input.InputManager) {
	defer profiling.Track("player.Update.Position")()

	p.Sprint = im.IsActive(input.ActionSprint)
	speed := float32(FlySpeed)
	if p.Sprint {
		speed *= SprintMultiplier
	}
	p.Move(p.wishDir(im).Mul(speed * float32(dt)))
}

// Move displaces the player, sweeping against blocks when Collide is set.
func (p *Player) Move(delta mgl32.Vec3) {
	if !p.Collide {
		p.Position = p.Position.Add(delta)
		p.OnGround = false
		return
	}
	var contact physics.Contact
	p.Position, contact = physics.Move(p.Position, delta, physics.PlayerHeight, p.World)
	p.OnGround = contact.OnGround
}

// Update runs one frame: look, move, retarget, then block interaction.
func (p *Player) Update(dt float64, im *input.InputManager) {
	defer profiling.Track("player.Update")()
	p.Look(im.MouseDelta())
	p.UpdatePosition(dt, im)
	p.UpdateTarget()
	p.HandleActions(im)
}
