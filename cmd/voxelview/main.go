// Command voxelview opens a window onto a generated voxel world. Fly with
// WASD, Space and Shift, mine with the left button, place with the right.
// F3 toggles the debug overlay and V adds profiling to it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"mini-voxel/internal/config"
)

func init() {
	// GLFW and GL calls must stay on the main thread.
	runtime.LockOSThread()
}

type options struct {
	settings   *config.Settings
	configPath string
	savePath   string
	stream     bool
	fpsLimit   int
	fontPath   string
	fontSize   float64
}

func main() {
	fs := flag.NewFlagSet("voxelview", flag.ExitOnError)
	opts := options{settings: config.RegisterFlags(fs)}
	fs.StringVar(&opts.configPath, "config", "", "settings file (JSON)")
	fs.StringVar(&opts.savePath, "save", "", "world save: a .json file or a LevelDB directory")
	fs.BoolVar(&opts.stream, "stream", false, "generate chunks on background workers")
	fs.IntVar(&opts.fpsLimit, "fps", 120, "frame rate cap, 0 for unlimited")
	fs.StringVar(&opts.fontPath, "font", "", "OpenType/TrueType font for the debug overlay (default: built-in 7x13)")
	fs.Float64Var(&opts.fontSize, "font-size", 14, "overlay font size in pixels")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Parse(os.Args[1:])

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := config.Resolve(fs, opts.settings, opts.configPath); err != nil {
		log.Error("bad configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, log); err != nil {
		log.Error("voxelview failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, log *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		return err
	}

	game, err := setupGame(window, opts, log)
	if err != nil {
		return err
	}
	defer game.Close()

	game.Run(ctx)
	return game.Save()
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(1280, 720, "voxelview", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init gl: %w", err)
	}

	// The FPS limiter paces frames instead of V-Sync.
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	return window, nil
}
