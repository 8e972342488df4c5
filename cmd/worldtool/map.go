package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"

	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"
)

func runMap(ctx context.Context, args []string, log *slog.Logger) error {
	fs := flag.NewFlagSet("map", flag.ContinueOnError)
	wf := bindWorldFlags(fs)
	out := fs.String("o", "map.png", "output PNG")
	scale := fs.Int("scale", 2, "pixels per block")
	if err := wf.parse(fs, args); err != nil {
		return err
	}
	if *scale < 1 || *scale > 16 {
		return fmt.Errorf("scale %d outside [1,16]", *scale)
	}

	w, err := wf.generate(ctx, log)
	if err != nil {
		return err
	}
	img := scaleImage(renderMap(w, wf.center(), wf.radius), *scale)
	if err := writePNG(*out, img); err != nil {
		return err
	}
	log.Info("map written", "path", *out, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

// renderMap draws one pixel per column of the area, north (-Z) up.
func renderMap(w *world.World, center world.ChunkCoord, radius int) *image.RGBA {
	size := (2*radius + 1) * world.ChunkSize
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	ox, oz := center.Add(-radius, -radius).Origin()
	for pz := 0; pz < size; pz++ {
		for px := 0; px < size; px++ {
			img.SetRGBA(px, pz, columnColor(w, ox+px, oz+pz))
		}
	}
	return img
}

// columnColor returns the top face color of the highest block in column
// (x, z), brighter with height. Water darkens with depth. Unloaded or empty
// columns are black.
func columnColor(w *world.World, x, z int) color.RGBA {
	c, ok := w.GetChunk(world.ChunkCoordAt(x, z))
	if !ok {
		return color.RGBA{A: 255}
	}
	ox, oz := c.Coord().Origin()
	y := c.TopY(x-ox, z-oz)
	if y < 0 {
		return color.RGBA{A: 255}
	}
	bt := w.GetBlock(x, y, z)
	col := registry.FaceColor(bt, registry.FaceTop).Mul(heightShade(y))
	if bt == registry.Water {
		depth := 0
		for yy := y; yy >= 0 && w.GetBlock(x, yy, z) == registry.Water; yy-- {
			depth++
		}
		col = col.Mul(1 - 0.05*float32(min(depth, 10)))
	}
	return toRGBA(col)
}

// heightShade maps y to a brightness in [0.6, 1.0].
func heightShade(y int) float32 {
	return 0.6 + 0.4*float32(y)/float32(world.WorldHeight-1)
}

func toRGBA(c mgl32.Vec3) color.RGBA {
	to8 := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.RGBA{R: to8(c.X()), G: to8(c.Y()), B: to8(c.Z()), A: 255}
}

func scaleImage(src *image.RGBA, scale int) *image.RGBA {
	if scale == 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
