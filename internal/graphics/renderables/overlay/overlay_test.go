package overlay

import (
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font/basicfont"

	"mini-voxel/internal/graphics"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

func TestFrameStats(t *testing.T) {
	f := NewFrameStats(3)
	if f.FPS() != 0 {
		t.Fatalf("empty FPS = %v", f.FPS())
	}
	for _, d := range []time.Duration{10, 20, 30} {
		f.Add(d * time.Millisecond)
	}
	if f.Avg != 20*time.Millisecond || f.Min != 10*time.Millisecond || f.Max != 30*time.Millisecond {
		t.Fatalf("stats = avg %v min %v max %v", f.Avg, f.Min, f.Max)
	}
	if got := f.FPS(); got != 50 {
		t.Fatalf("FPS = %v, want 50", got)
	}

	// The oldest frame falls out of the window.
	f.Add(40 * time.Millisecond)
	if f.Min != 20*time.Millisecond || f.Avg != 30*time.Millisecond || f.Last != 40*time.Millisecond {
		t.Fatalf("after wrap: avg %v min %v last %v", f.Avg, f.Min, f.Last)
	}
}

func TestLines(t *testing.T) {
	w := world.New(3, world.NewFlatGenerator(10))
	w.EnsureLoadedAround(world.ChunkCoord{}, 0)

	cam := graphics.NewCamera(800, 600)
	cam.Position = mgl32.Vec3{20.5, 12, -3}
	ctx := renderer.RenderContext{
		Camera: cam,
		World:  w,
		Target: physics.RaycastResult{Hit: true, HitPosition: [3]int{1, 10, 2}, Distance: 2.5},
	}

	o := NewOverlay(basicfont.Face7x13)
	o.Status = []string{"selected stone"}
	o.frames.Add(16 * time.Millisecond)
	lines := o.Lines(ctx, nil)

	want := []string{"fps", "chunk 1 -1", "chunks 1  seed 3", "target grass at 1 10 2", "selected stone"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %q", lines)
	}
	for i, sub := range want {
		if !strings.Contains(lines[i], sub) {
			t.Errorf("line %d = %q, want it to contain %q", i, lines[i], sub)
		}
	}
}

func TestLinesProfiling(t *testing.T) {
	profiling.ResetFrame()
	func() {
		defer profiling.Track("overlay.test")()
		time.Sleep(2 * time.Millisecond)
	}()

	o := NewOverlay(basicfont.Face7x13)
	base := len(o.Lines(renderer.RenderContext{}, nil))
	o.ShowProfiling = true
	lines := o.Lines(renderer.RenderContext{}, nil)
	if len(lines) <= base || !strings.HasPrefix(lines[len(lines)-1], "overlay.test:") {
		t.Fatalf("profiling lines = %q", lines[base:])
	}
	if !strings.HasPrefix(lines[base], "generated 0  meshed 0") {
		t.Errorf("counts line = %q", lines[base])
	}
}
