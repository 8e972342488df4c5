package player

import (
	"mini-voxel/internal/input"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/registry"
)

// HandleActions applies the edge-triggered actions of this frame.
func (p *Player) HandleActions(im *input.InputManager) {
	for i := range Palette {
		if im.JustPressed(input.ActionSlot1 + input.Action(i)) {
			p.Selected = Palette[i]
		}
	}
	if im.JustPressed(input.ActionToggleCollision) {
		p.Collide = !p.Collide
	}
	if im.JustPressed(input.ActionMine) && p.Mine() {
		p.UpdateTarget()
	}
	if im.JustPressed(input.ActionPlace) && p.Place() {
		p.UpdateTarget()
	}
	if im.JustPressed(input.ActionPickBlock) {
		p.PickBlock()
	}
}

// Mine replaces the hovered block with air. Unbreakable blocks stay.
func (p *Player) Mine() bool {
	if !p.Hovered.Hit {
		return false
	}
	x, y, z := p.Hovered.HitPosition[0], p.Hovered.HitPosition[1], p.Hovered.HitPosition[2]
	if !registry.IsBreakable(p.World.GetBlock(x, y, z)) {
		return false
	}
	return p.World.SetBlock(x, y, z, registry.Air)
}

// Place puts the selected block in the cell in front of the hovered face.
// The cell must be empty (air or water) and must not overlap the player,
// except when it lies entirely below the feet.
func (p *Player) Place() bool {
	if !p.Hovered.Hit || p.Selected == registry.Air {
		return false
	}
	ax, ay, az := p.Hovered.AdjacentPosition[0], p.Hovered.AdjacentPosition[1], p.Hovered.AdjacentPosition[2]
	if registry.IsSolid(p.World.GetBlock(ax, ay, az)) {
		return false
	}
	underFeet := float32(ay+1) <= p.Position.Y()+0.001
	if p.Collide && registry.IsSolid(p.Selected) && !underFeet &&
		physics.IntersectsBlock(p.Position, physics.PlayerHeight, ax, ay, az) {
		return false
	}
	return p.World.SetBlock(ax, ay, az, p.Selected)
}

// PickBlock selects the hovered block type for placing.
func (p *Player) PickBlock() {
	if !p.Hovered.Hit {
		return
	}
	h := p.Hovered.HitPosition
	if bt := p.World.GetBlock(h[0], h[1], h[2]); registry.IsBreakable(bt) {
		p.Selected = bt
	}
}
