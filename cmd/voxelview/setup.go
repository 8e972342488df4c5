package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/google/uuid"

	"mini-voxel/internal/config"
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/graphics/renderables/chunks"
	"mini-voxel/internal/graphics/renderables/crosshair"
	"mini-voxel/internal/graphics/renderables/overlay"
	"mini-voxel/internal/graphics/renderables/wireframe"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/input"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/player"
	"mini-voxel/internal/save"
	"mini-voxel/internal/world"
)

// spawnRadius chunks are generated synchronously before the first frame.
const spawnRadius = 2

// openWorld restores the save at path when there is one, or creates a new
// world from s. It returns the store to write back to (nil without a path)
// and the world's save id.
func openWorld(s *config.Settings, path string, log *slog.Logger, opts ...world.Option) (*world.World, save.Store, uuid.UUID, error) {
	if path == "" {
		return config.NewWorld(s, opts...), nil, uuid.New(), nil
	}
	store, err := save.Open(path, log)
	if err != nil {
		return nil, nil, uuid.Nil, err
	}
	d, err := store.Load()
	switch {
	case errors.Is(err, save.ErrNoSave):
		log.Info("no save found, generating a new world", "path", path, "seed", s.Seed)
		return config.NewWorld(s, opts...), store, uuid.New(), nil
	case err != nil:
		store.Close()
		return nil, nil, uuid.Nil, fmt.Errorf("load %s: %w", path, err)
	}
	w, err := save.Restore(d, log, opts...)
	if err != nil {
		store.Close()
		return nil, nil, uuid.Nil, err
	}
	s.AdoptWorld(&d.Settings)
	return w, store, d.ID, nil
}

func setupGame(window *glfw.Window, opts options, log *slog.Logger) (*GameLoop, error) {
	s := opts.settings
	parked := save.NewParked()
	w, store, id, err := openWorld(s, opts.savePath, log, world.WithLogger(log), world.WithEvictHook(parked.Hook()))
	if err != nil {
		return nil, err
	}

	w.EnsureLoadedAround(world.ChunkCoord{}, spawnRadius)
	p := player.New(w, player.Spawn(w, 0.5, 0.5))

	width, height := window.GetFramebufferSize()
	camera := graphics.NewCamera(width, height)
	viewBlocks := float32((s.LoadRadius() + 1) * world.ChunkSize)
	camera.FarPlane = viewBlocks * 1.5

	face, err := graphics.LoadFace(opts.fontPath, opts.fontSize)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}

	pool := meshing.NewPool(0)
	chunkRenderer := chunks.NewChunks(pool, renderer.SkyColor, viewBlocks)
	debug := overlay.NewOverlay(face)
	r, err := renderer.NewRenderer(camera,
		chunkRenderer,
		wireframe.NewWireframe(),
		crosshair.NewCrosshair(),
		debug,
	)
	if err != nil {
		pool.Close()
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("init renderer: %w", err)
	}
	r.UpdateViewport(width, height)

	im := input.NewInputManager()
	im.Attach(window)

	g := &GameLoop{
		window:     window,
		renderer:   r,
		chunks:     chunkRenderer,
		overlay:    debug,
		pool:       pool,
		player:     p,
		world:      w,
		input:      im,
		settings:   s,
		parked:     parked,
		store:      store,
		saveID:     id,
		log:        log,
		fpsLimiter: NewFPSLimiter(opts.fpsLimit),
	}
	if opts.stream {
		g.streamer = world.NewStreamer(w, s.StreamWorkers, log)
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		r.UpdateViewport(width, height)
	})

	log.Info("viewer ready", "seed", w.Seed(), "generator", s.Generator,
		"render_distance", s.LoadRadius(), "evict_radius", s.EvictRadius(),
		"stream", opts.stream, "spawn", p.Position)
	return g, nil
}
