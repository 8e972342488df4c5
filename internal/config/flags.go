package config

import (
	"flag"
)

// RegisterFlags binds the world settings to flags on fs. The returned
// Settings starts at the defaults and is filled in by fs.Parse.
func RegisterFlags(fs *flag.FlagSet) *Settings {
	s := Default()
	fs.Int64Var(&s.Seed, "seed", s.Seed, "world seed")
	fs.StringVar(&s.Generator, "generator", s.Generator, `terrain generator: "default" or "flat"`)
	fs.IntVar(&s.FlatHeight, "flat-height", s.FlatHeight, "surface height of the flat generator")
	fs.IntVar(&s.RenderDistance, "render-distance", s.RenderDistance, "chunk load radius")
	fs.BoolVar(&s.Caves, "caves", s.Caves, "carve caves")
	fs.BoolVar(&s.Ores, "ores", s.Ores, "place ore veins")
	fs.BoolVar(&s.Trees, "trees", s.Trees, "grow trees")
	fs.BoolVar(&s.Eviction.Enabled, "evict", s.Eviction.Enabled, "unload chunks far from the player")
	fs.IntVar(&s.StreamWorkers, "workers", s.StreamWorkers, "background generation workers (0 = one per CPU)")
	return s
}

// Resolve layers the config file at path under the flags that were set
// explicitly on fs, clamps the render distance and validates the result.
// An empty path skips the file.
func Resolve(fs *flag.FlagSet, s *Settings, path string) error {
	if path != "" {
		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) {
			explicit[f.Name] = true
		})
		fromFile, err := Load(path)
		if err != nil {
			return err
		}
		s.Merge(fromFile, explicit)
	}
	s.SetRenderDistance(s.RenderDistance)
	return s.Validate()
}
