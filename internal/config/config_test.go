package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Lx != 10e-6 || cfg.Ly != 10e-6 {
		t.Errorf("expected 10µm domain, got %g x %g", cfg.Lx, cfg.Ly)
	}
	if cfg.NStop != 150 {
		t.Errorf("expected 150 steps, got %d", cfg.NStop)
	}
	if cfg.Boundary != "mur" {
		t.Errorf("expected mur boundary, got %s", cfg.Boundary)
	}
	if !cfg.Source.Centered {
		t.Error("default source should be centered")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.yaml")
	data := []byte("n_stop: 25\nboundary: reflecting\nsource:\n  ix: 50\n  iy: 50\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.NStop != 25 {
		t.Errorf("expected n_stop 25, got %d", cfg.NStop)
	}
	if cfg.Boundary != "reflecting" {
		t.Errorf("expected reflecting boundary, got %s", cfg.Boundary)
	}
	if cfg.Source.IX != 50 || cfg.Source.IY != 50 {
		t.Errorf("expected literal source (50,50), got (%d,%d)", cfg.Source.IX, cfg.Source.IY)
	}
	// Unset keys keep their defaults.
	if cfg.Lx != DefaultLx {
		t.Errorf("expected default Lx, got %g", cfg.Lx)
	}
}

func TestLoadPhysicalSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.yaml")
	data := []byte("source:\n  x: 5.0e-6\n  y: 0\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Source.Centered {
		t.Error("explicit x/y should clear the centered default")
	}

	g, err := cfg.Grid()
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}
	wi, wj := g.NearestIndex(5.0e-6, 0)
	i, j := cfg.SourceIndex(g)
	if i != wi || j != wj {
		t.Errorf("expected source (%d,%d) from coordinates, got (%d,%d)", wi, wj, i, j)
	}
}

func TestLoadExplicitCenteredWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.yaml")
	data := []byte("source:\n  centered: true\n  x: 5.0e-6\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !cfg.Source.Centered {
		t.Error("an explicit centered key should be honored")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.yaml")
	cfg := DefaultConfig()
	cfg.NStop = 42

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.NStop != 42 {
		t.Errorf("expected n_stop 42, got %d", loaded.NStop)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("vacuum")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Wavelength != 1e-6 {
		t.Errorf("expected wavelength 1e-6, got %g", cfg.Wavelength)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) == 0 {
		t.Error("expected presets")
	}
}

func TestSourceIndex(t *testing.T) {
	cfg := DefaultConfig()
	g, err := cfg.Grid()
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}

	ci, cj := g.CenterIndex()
	i, j := cfg.SourceIndex(g)
	if i != ci || j != cj {
		t.Errorf("centered source: expected (%d,%d), got (%d,%d)", ci, cj, i, j)
	}

	cfg.Source.IX, cfg.Source.IY = 50, 50
	i, j = cfg.SourceIndex(g)
	if i != 50 || j != 50 {
		t.Errorf("literal source: expected (50,50), got (%d,%d)", i, j)
	}

	cfg.Source.IX, cfg.Source.IY = -1, -1
	cfg.Source.Centered = false
	cfg.Source.X, cfg.Source.Y = 0.12e-6, -5e-6
	i, j = cfg.SourceIndex(g)
	if i != 1 || j != 0 {
		t.Errorf("physical source: expected (1,0), got (%d,%d)", i, j)
	}
}

func TestBuildIntegrator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NStop = 3

	integ, err := cfg.BuildIntegrator()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if integ.NSteps() != 3 {
		t.Errorf("expected 3 steps, got %d", integ.NSteps())
	}
	if integ.Grid().Nx != 85 {
		t.Errorf("expected 85-point x axis, got %d", integ.Grid().Nx)
	}
}

func TestBuildIntegratorInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dx = -1
	if _, err := cfg.BuildIntegrator(); err == nil {
		t.Error("expected error for negative dx")
	}

	cfg = DefaultConfig()
	cfg.Boundary = "periodic"
	if _, err := cfg.BuildIntegrator(); err == nil {
		t.Error("expected error for unknown boundary")
	}
}
