package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/world"
)

const maxRadius = 64

// worldFlags are shared by every command that generates an area.
type worldFlags struct {
	settings   *config.Settings
	configPath string
	radius     int
	chunkX     int
	chunkZ     int
	stream     bool
}

func bindWorldFlags(fs *flag.FlagSet) *worldFlags {
	wf := &worldFlags{settings: config.RegisterFlags(fs)}
	fs.StringVar(&wf.configPath, "config", "", "settings file (JSON)")
	fs.IntVar(&wf.radius, "radius", 4, "area radius in chunks around the center")
	fs.IntVar(&wf.chunkX, "cx", 0, "center chunk x")
	fs.IntVar(&wf.chunkZ, "cz", 0, "center chunk z")
	fs.BoolVar(&wf.stream, "stream", false, "generate on background workers")
	return wf
}

// parse parses args and resolves the settings.
func (wf *worldFlags) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if wf.radius < 0 || wf.radius > maxRadius {
		return fmt.Errorf("radius %d outside [0,%d]", wf.radius, maxRadius)
	}
	return config.Resolve(fs, wf.settings, wf.configPath)
}

func (wf *worldFlags) center() world.ChunkCoord {
	return world.ChunkCoord{X: wf.chunkX, Z: wf.chunkZ}
}

// generate builds a world and loads every chunk of the area.
func (wf *worldFlags) generate(ctx context.Context, log *slog.Logger) (*world.World, error) {
	w := config.NewWorld(wf.settings, world.WithLogger(log))
	start := time.Now()
	if wf.stream {
		st := world.NewStreamer(w, wf.settings.StreamWorkers, log)
		defer st.Close()
		for st.RequestAround(wf.center(), wf.radius) > 0 {
			if _, err := st.Drain(ctx); err != nil {
				return nil, fmt.Errorf("generate: %w", err)
			}
		}
	} else {
		w.EnsureLoadedAround(wf.center(), wf.radius)
	}
	log.Info("area generated", "seed", w.Seed(), "generator", wf.settings.Generator,
		"chunks", w.LoadedCount(), "took", time.Since(start).Round(time.Millisecond))
	return w, nil
}
