package main

import (
	"cmp"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	"mini-voxel/internal/meshing"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

// areaStats summarizes the loaded chunks of a world.
type areaStats struct {
	Chunks   int
	Blocks   map[registry.BlockType]int
	Quads    int
	Vertices int
}

func runStats(ctx context.Context, args []string, log *slog.Logger) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	wf := bindWorldFlags(fs)
	top := fs.Int("top", 10, "profiling entries to print")
	if err := wf.parse(fs, args); err != nil {
		return err
	}

	profiling.ResetFrame()
	w, err := wf.generate(ctx, log)
	if err != nil {
		return err
	}

	pool := meshing.NewPool(wf.settings.StreamWorkers)
	defer pool.Close()
	start := time.Now()
	built := pool.RebuildDirty(w.ChunksInRange(wf.center(), wf.radius), w)
	log.Info("area meshed", "chunks", built, "took", time.Since(start).Round(time.Millisecond))

	printStats(os.Stdout, collectStats(w))
	fmt.Fprintln(os.Stdout)
	printPhases(os.Stdout, collectPhases())
	fmt.Fprintf(os.Stdout, "\ntimings: %s\n", profiling.TopN(*top))
	return nil
}

// phases names the trackers that run once per chunk.
var phases = [...]struct{ label, tracker string }{
	{"generate", "world.PopulateChunk"},
	{"mesh", "meshing.Build"},
}

type phaseStats struct {
	Label  string
	Chunks int
	CPU    time.Duration
}

// collectPhases reads per-chunk counts and summed CPU time from the
// profiler. Worker time adds up, so CPU can exceed wall time.
func collectPhases() []phaseStats {
	out := make([]phaseStats, 0, len(phases))
	for _, p := range phases {
		out = append(out, phaseStats{
			Label:  p.label,
			Chunks: profiling.Count(p.tracker),
			CPU:    profiling.SumWithPrefix(p.tracker),
		})
	}
	return out
}

func printPhases(out io.Writer, ps []phaseStats) {
	for _, p := range ps {
		per := time.Duration(0)
		if p.Chunks > 0 {
			per = p.CPU / time.Duration(p.Chunks)
		}
		fmt.Fprintf(out, "%-9s %5d chunks  %10v cpu  %8v/chunk\n", p.Label+":", p.Chunks,
			p.CPU.Round(time.Microsecond), per.Round(time.Microsecond))
	}
}

// collectStats counts blocks per type over every loaded chunk and sums the
// sizes of their cached meshes.
func collectStats(w *world.World) areaStats {
	st := areaStats{Blocks: make(map[registry.BlockType]int)}
	w.ForEachChunk(func(c *world.Chunk) {
		st.Chunks++
		c.ForEachNonAir(func(_, _, _ int, bt registry.BlockType) {
			st.Blocks[bt]++
		})
		if m := c.Mesh(); m != nil {
			st.Quads += m.QuadCount()
			st.Vertices += m.VertexCount()
		}
	})
	return st
}

func printStats(out io.Writer, st areaStats) {
	fmt.Fprintf(out, "chunks:   %d\n", st.Chunks)
	fmt.Fprintf(out, "quads:    %d\n", st.Quads)
	fmt.Fprintf(out, "vertices: %d\n\n", st.Vertices)

	types := make([]registry.BlockType, 0, len(st.Blocks))
	total := 0
	for bt, n := range st.Blocks {
		types = append(types, bt)
		total += n
	}
	slices.SortFunc(types, func(a, b registry.BlockType) int {
		if c := cmp.Compare(st.Blocks[b], st.Blocks[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for _, bt := range types {
		n := st.Blocks[bt]
		fmt.Fprintf(out, "%-10s %10d  %5.1f%%\n", bt, n, 100*float64(n)/float64(total))
	}
}
