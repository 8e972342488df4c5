package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/google/uuid"

	"mini-voxel/internal/config"
	"mini-voxel/internal/graphics/renderables/chunks"
	"mini-voxel/internal/graphics/renderables/overlay"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/input"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/player"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/save"
	"mini-voxel/internal/world"
)

const evictEvery = 750 * time.Millisecond

// GameLoop manages the main loop state
type GameLoop struct {
	window   *glfw.Window
	renderer *renderer.Renderer
	chunks   *chunks.Chunks
	overlay  *overlay.Overlay
	pool     *meshing.Pool
	player   *player.Player
	world    *world.World
	input    *input.InputManager
	streamer *world.Streamer
	settings *config.Settings
	parked   *save.Parked
	store    save.Store
	saveID   uuid.UUID
	log      *slog.Logger

	paused     bool
	fpsLimiter *FPSLimiter

	// Timing
	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
	lastEvict        time.Time
}

// Run ticks until the window closes or ctx is cancelled.
func (g *GameLoop) Run(ctx context.Context) {
	now := time.Now()
	g.lastTime, g.lastFPSCheckTime, g.lastEvict = now, now, now
	for !g.window.ShouldClose() && ctx.Err() == nil {
		g.tick()
	}
}

func (g *GameLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(g.lastTime).Seconds()
	g.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	g.handleInputActions()
	if !g.paused {
		g.player.Update(dt, g.input)
	}
	g.processWorldUpdates()

	cam := g.renderer.GetCamera()
	cam.Position = g.player.EyePosition()
	cam.Yaw, cam.Pitch = g.player.Yaw, g.player.Pitch
	g.overlay.Status = g.statusLines(g.overlay.Status[:0])
	g.renderer.Render(g.world, g.player.ChunkCoord(), g.settings.LoadRadius(), g.player.Hovered, dt)

	func() { defer profiling.Track("glfw.SwapBuffers")(); g.window.SwapBuffers() }()
	g.input.PostUpdate()

	g.frames++
	if time.Since(g.lastFPSCheckTime) >= time.Second {
		g.updateTitle()
		g.frames = 0
		g.lastFPSCheckTime = time.Now()
	}

	g.fpsLimiter.Wait(g.paused)
}

func (g *GameLoop) handleInputActions() {
	if g.input.JustPressed(input.ActionPause) {
		g.paused = !g.paused
		if g.paused {
			g.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		} else {
			g.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		}
		g.input.ResetCursor()
	}
	if g.input.JustPressed(input.ActionToggleWireframe) {
		g.chunks.Wireframe = !g.chunks.Wireframe
	}
	if g.input.JustPressed(input.ActionToggleProfiling) {
		g.overlay.ShowProfiling = !g.overlay.ShowProfiling
	}
	if g.input.JustPressed(input.ActionToggleOverlay) {
		g.overlay.Visible = !g.overlay.Visible
	}
	if g.input.JustPressed(input.ActionSave) {
		if err := g.Save(); err != nil {
			g.log.Error("save failed", "error", err)
		}
	}
	if g.paused {
		// Drop mouse movement made while the cursor was free.
		g.input.MouseDelta()
	}
}

// processWorldUpdates loads chunks around the player, restores parked edits
// and evicts far chunks.
func (g *GameLoop) processWorldUpdates() {
	defer profiling.Track("world.Update")()
	center := g.player.ChunkCoord()
	radius := g.settings.LoadRadius()

	if g.streamer != nil {
		g.streamer.RequestAround(center, radius)
		g.streamer.Poll()
	} else {
		g.world.EnsureLoadedAround(center, radius)
	}
	if g.parked.Len() > 0 {
		g.parked.Restore(g.world)
	}

	if evict := g.settings.EvictRadius(); evict >= 0 && time.Since(g.lastEvict) > evictEvery {
		g.world.EvictOutside(center, evict)
		g.lastEvict = time.Now()
	}
}

func (g *GameLoop) updateTitle() {
	pos := g.player.Position
	title := fmt.Sprintf("voxelview | %d fps | %d chunks (%d drawn) | %.1f %.1f %.1f | %s",
		g.frames, g.world.LoadedCount(), g.chunks.Drawn, pos.X(), pos.Y(), pos.Z(), g.player.Selected)
	if g.streamer != nil {
		title += fmt.Sprintf(" | %d pending", g.streamer.Pending())
	}
	if g.paused {
		title += " | paused"
	}
	g.window.SetTitle(title)
	if g.overlay.ShowProfiling {
		g.log.Info("frame profile", "top", profiling.TopN(6))
	}
}

// statusLines appends the viewer state shown under the overlay's own lines.
func (g *GameLoop) statusLines(dst []string) []string {
	mode := "fly"
	if g.player.Collide {
		mode = "walk"
	}
	if g.player.Sprint {
		mode += " sprint"
	}
	dst = append(dst, fmt.Sprintf("block %s  %s  drawn %d  uploaded %d",
		g.player.Selected, mode, g.chunks.Drawn, g.chunks.Uploaded))
	if g.streamer != nil {
		dst = append(dst, fmt.Sprintf("pending %d", g.streamer.Pending()))
	}
	if g.parked.Len() > 0 {
		dst = append(dst, fmt.Sprintf("parked %d", g.parked.Len()))
	}
	if g.paused {
		dst = append(dst, "paused")
	}
	return dst
}

// Save writes the loaded and parked chunks to the store, if there is one.
func (g *GameLoop) Save() error {
	if g.store == nil {
		return nil
	}
	d := save.Snapshot(g.world, g.settings, g.saveID)
	g.parked.AppendTo(d)
	return g.store.Save(d)
}

// Close releases workers, GL resources and the store.
func (g *GameLoop) Close() {
	if g.streamer != nil {
		g.streamer.Close()
	}
	g.renderer.Dispose()
	g.pool.Close()
	if g.store != nil {
		if err := g.store.Close(); err != nil {
			g.log.Error("close store", "error", err)
		}
	}
}
