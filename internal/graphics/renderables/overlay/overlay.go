package overlay

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"

	"mini-voxel/internal/graphics"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

const (
	marginX  = 8
	marginY  = 18
	lineStep = 15
	topN     = 10
)

var textColor = mgl32.Vec3{1, 1, 1}

// Overlay draws debug text in the top-left corner: frame timing, position,
// loaded chunks and the targeted block, plus the busiest profiling trackers
// when ShowProfiling is set.
type Overlay struct {
	face   font.Face
	text   *graphics.TextRenderer
	frames *FrameStats
	lines  []string

	// Status is appended below the built-in lines.
	Status        []string
	Visible       bool
	ShowProfiling bool
}

// NewOverlay creates an overlay drawing with face.
func NewOverlay(face font.Face) *Overlay {
	return &Overlay{face: face, frames: NewFrameStats(60), Visible: true}
}

func (o *Overlay) Init() error {
	var err error
	o.text, err = graphics.NewTextRenderer(o.face)
	return err
}

// Frames returns the rolling frame statistics.
func (o *Overlay) Frames() *FrameStats { return o.frames }

func (o *Overlay) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderOverlay")()
	o.frames.Add(time.Duration(ctx.DT * float64(time.Second)))
	if !o.Visible {
		return
	}
	o.lines = o.Lines(ctx, o.lines[:0])
	o.text.SetViewport(ctx.Width, ctx.Height)
	o.text.RenderLines(o.lines, marginX, marginY, lineStep, 1, textColor)
}

// Lines appends the text shown for ctx to dst.
func (o *Overlay) Lines(ctx renderer.RenderContext, dst []string) []string {
	f := o.frames
	dst = append(dst, fmt.Sprintf("%.0f fps  %.1fms avg  %.1fms max",
		f.FPS(), ms(f.Avg), ms(f.Max)))

	if cam := ctx.Camera; cam != nil {
		pos := cam.Position
		cc := world.ChunkCoordOf(pos)
		dst = append(dst, fmt.Sprintf("xyz %.2f %.2f %.2f  chunk %d %d  yaw %.0f pitch %.0f",
			pos.X(), pos.Y(), pos.Z(), cc.X, cc.Z, cam.Yaw, cam.Pitch))
	}
	if w := ctx.World; w != nil {
		dst = append(dst, fmt.Sprintf("chunks %d  seed %d", w.LoadedCount(), w.Seed()))
		if t := ctx.Target; t.Hit {
			x, y, z := t.HitPosition[0], t.HitPosition[1], t.HitPosition[2]
			dst = append(dst, fmt.Sprintf("target %s at %d %d %d  %.1fm",
				w.GetBlock(x, y, z), x, y, z, t.Distance))
		}
	}
	dst = append(dst, o.Status...)

	if o.ShowProfiling {
		dst = append(dst, fmt.Sprintf("generated %d  meshed %d  world %.1fms",
			profiling.Count("world.PopulateChunk"), profiling.Count("meshing.Build"),
			ms(profiling.SumWithPrefix("world."))))
		for entry := range strings.SplitSeq(profiling.TopN(topN), ", ") {
			if entry != "" && !strings.HasSuffix(entry, ":0ms") {
				dst = append(dst, entry)
			}
		}
	}
	return dst
}

func ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

// Dispose cleans up OpenGL resources
func (o *Overlay) Dispose() {
	if o.text != nil {
		o.text.Delete()
	}
}
