package config

import (
	"errors"
	"flag"
	"io"
	"path/filepath"
	"testing"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxel.json")
	file := Default()
	file.Seed = 7
	file.Trees = false
	file.RenderDistance = 10
	if err := file.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	fs := newFlagSet()
	s := RegisterFlags(fs)
	if err := fs.Parse([]string{"-seed", "99", "-render-distance", "100"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := Resolve(fs, s, path); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.Seed != 99 {
		t.Errorf("seed = %d, want the flag value 99", s.Seed)
	}
	if s.Trees {
		t.Error("trees should come from the file")
	}
	if s.RenderDistance != MaxRenderDistance {
		t.Errorf("render distance = %d, want clamped %d", s.RenderDistance, MaxRenderDistance)
	}
}

func TestResolveWithoutFile(t *testing.T) {
	fs := newFlagSet()
	s := RegisterFlags(fs)
	if err := fs.Parse([]string{"-generator", "flat", "-flat-height", "20"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := Resolve(fs, s, ""); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.Generator != GeneratorFlat || s.FlatHeight != 20 {
		t.Errorf("got %+v", s)
	}
}

func TestResolveRejectsBadGenerator(t *testing.T) {
	fs := newFlagSet()
	s := RegisterFlags(fs)
	if err := fs.Parse([]string{"-generator", "islands"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := Resolve(fs, s, ""); !errors.Is(err, ErrInvalid) {
		t.Errorf("Resolve err = %v, want ErrInvalid", err)
	}
}

func TestAdoptWorld(t *testing.T) {
	s := Default()
	s.RenderDistance = 12
	saved := Default()
	saved.Seed = 5
	saved.Generator = GeneratorFlat
	saved.Caves = false
	s.AdoptWorld(saved)
	if s.Seed != 5 || s.Generator != GeneratorFlat || s.Caves {
		t.Errorf("world fields not adopted: %+v", s)
	}
	if s.RenderDistance != 12 {
		t.Errorf("render distance changed to %d", s.RenderDistance)
	}
}

func TestResolveKeepsFileEvictionMargin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voxel.json")
	file := Default()
	file.Eviction = Eviction{Enabled: false, Margin: 9}
	if err := file.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tests := []struct {
		name        string
		args        []string
		wantEnabled bool
	}{
		{"flag", []string{"-evict"}, true},
		{"no flag", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := newFlagSet()
			s := RegisterFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if err := Resolve(fs, s, path); err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if s.Eviction.Enabled != tt.wantEnabled {
				t.Errorf("eviction enabled = %v, want %v", s.Eviction.Enabled, tt.wantEnabled)
			}
			if s.Eviction.Margin != 9 {
				t.Errorf("eviction margin = %d, want 9 from the file", s.Eviction.Margin)
			}
		})
	}
}
