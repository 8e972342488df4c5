package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mini-voxel/internal/world"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestClampRenderDistance(t *testing.T) {
	tests := []struct{ in, want int }{
		{-5, MinRenderDistance},
		{0, MinRenderDistance},
		{2, 2},
		{12, 12},
		{32, 32},
		{100, MaxRenderDistance},
	}
	for _, tt := range tests {
		if got := ClampRenderDistance(tt.in); got != tt.want {
			t.Errorf("ClampRenderDistance(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	s := Default()
	s.SetRenderDistance(99)
	if s.RenderDistance != MaxRenderDistance {
		t.Errorf("SetRenderDistance stored %d", s.RenderDistance)
	}
}

func TestRadii(t *testing.T) {
	s := Default()
	s.RenderDistance = 1
	if got := s.LoadRadius(); got != MinRenderDistance {
		t.Errorf("LoadRadius = %d, want %d", got, MinRenderDistance)
	}
	if got := s.EvictRadius(); got != -1 {
		t.Errorf("EvictRadius with eviction disabled = %d, want -1", got)
	}
	s.RenderDistance = 8
	s.Eviction = Eviction{Enabled: true, Margin: 3}
	if got := s.EvictRadius(); got != 11 {
		t.Errorf("EvictRadius = %d, want 11", got)
	}
	s.Eviction.Margin = 0
	if got := s.EvictRadius(); got <= s.LoadRadius() {
		t.Errorf("EvictRadius %d must exceed LoadRadius %d", got, s.LoadRadius())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		ok     bool
	}{
		{"default", func(*Settings) {}, true},
		{"flat", func(s *Settings) { s.Generator = GeneratorFlat }, true},
		{"unknown generator", func(s *Settings) { s.Generator = "amplified" }, false},
		{"flat too high", func(s *Settings) { s.Generator = GeneratorFlat; s.FlatHeight = world.WorldHeight }, false},
		{"flat zero", func(s *Settings) { s.Generator = GeneratorFlat; s.FlatHeight = 0 }, false},
		{"negative workers", func(s *Settings) { s.StreamWorkers = -1 }, false},
		{"negative margin", func(s *Settings) { s.Eviction.Margin = -2 }, false},
	}
	for _, tt := range tests {
		s := Default()
		tt.mutate(s)
		err := s.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("%s: Validate() = %v, want ok=%v", tt.name, err, tt.ok)
		}
		if err != nil && !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: error %v does not wrap ErrInvalid", tt.name, err)
		}
	}
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *s != *Default() {
		t.Errorf("Load = %+v, want defaults", s)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := Default()
	want.Seed = -77
	want.Generator = GeneratorFlat
	want.FlatHeight = 20
	want.Trees = false
	want.Eviction = Eviction{Enabled: true, Margin: 2}
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"seed": 9}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Seed != 9 || !s.Caves || s.RenderDistance != Default().RenderDistance {
		t.Errorf("partial load = %+v", s)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.json")
	os.WriteFile(garbage, []byte("{not json"), 0o644)
	if _, err := Load(garbage); err == nil {
		t.Error("Load should fail on malformed JSON")
	}

	invalid := filepath.Join(dir, "invalid.json")
	os.WriteFile(invalid, []byte(`{"generator": "caves-only"}`), 0o644)
	if _, err := Load(invalid); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load invalid = %v, want ErrInvalid", err)
	}
}

func TestMergeRespectsExplicitFlags(t *testing.T) {
	cli := Default()
	cli.Seed = 1
	cli.RenderDistance = 10
	file := Default()
	file.Seed = 2
	file.RenderDistance = 4
	file.Trees = false

	cli.Merge(file, map[string]bool{"seed": true})
	if cli.Seed != 1 {
		t.Errorf("explicit seed overwritten: %d", cli.Seed)
	}
	if cli.RenderDistance != 4 || cli.Trees {
		t.Errorf("file values not merged: %+v", cli)
	}
}

func TestNewGenerator(t *testing.T) {
	s := Default()
	if _, ok := NewGenerator(s).(*world.Generator); !ok {
		t.Error("default mode should build *world.Generator")
	}
	s.Generator = GeneratorFlat
	s.FlatHeight = 12
	g, ok := NewGenerator(s).(*world.FlatGenerator)
	if !ok {
		t.Fatal("flat mode should build *world.FlatGenerator")
	}
	if g.HeightAt(0, 0) != 12 {
		t.Errorf("flat height = %d, want 12", g.HeightAt(0, 0))
	}
	w := NewWorld(s)
	if w.Seed() != s.Seed {
		t.Errorf("world seed = %d, want %d", w.Seed(), s.Seed)
	}
}
