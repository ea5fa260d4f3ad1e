package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/brickforge/pkg/brick"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Pipeline.Resolution != 48 {
		t.Errorf("Resolution = %d, want 48", cfg.Pipeline.Resolution)
	}
	if cfg.Pipeline.Family != brick.Plate {
		t.Errorf("Family = %v, want plate", cfg.Pipeline.Family)
	}
	if cfg.Pipeline.ColorMode != "none" {
		t.Errorf("ColorMode = %s, want none", cfg.Pipeline.ColorMode)
	}
	if cfg.Pipeline.DefaultColor != 71 {
		t.Errorf("DefaultColor = %d, want 71", cfg.Pipeline.DefaultColor)
	}
	if cfg.Limits.MaxColumns != 1<<20 {
		t.Errorf("MaxColumns = %d, want %d", cfg.Limits.MaxColumns, 1<<20)
	}
	if cfg.Output.Name != "model.ldr" {
		t.Errorf("Output.Name = %s, want model.ldr", cfg.Output.Name)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %s, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
pipeline:
  resolution: 96
  family: brick
  color_mode: uniform
  uniform_color: "#ff0000"
logging:
  level: debug
`
	path := filepath.Join(t.TempDir(), "brickforge.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("loadFromFile failed: %v", err)
	}

	if cfg.Pipeline.Resolution != 96 {
		t.Errorf("Resolution = %d, want 96", cfg.Pipeline.Resolution)
	}
	if cfg.Pipeline.Family != brick.Brick {
		t.Errorf("Family = %v, want brick", cfg.Pipeline.Family)
	}
	if cfg.Pipeline.ColorMode != "uniform" {
		t.Errorf("ColorMode = %s, want uniform", cfg.Pipeline.ColorMode)
	}
	if cfg.Pipeline.UniformColor != "#ff0000" {
		t.Errorf("UniformColor = %s, want #ff0000", cfg.Pipeline.UniformColor)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Limits.MaxVoxels != 1<<24 {
		t.Errorf("MaxVoxels = %d, want default %d", cfg.Limits.MaxVoxels, 1<<24)
	}
}

func TestLoadFromFileBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("pipeline: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := loadFromFile(Default(), path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestApplyFlags(t *testing.T) {
	defer func(d bool, r int, f, m, c string, dc bool) {
		*flagDebug, *flagResolution, *flagFamily, *flagColorMode, *flagColor, *flagDirect = d, r, f, m, c, dc
	}(*flagDebug, *flagResolution, *flagFamily, *flagColorMode, *flagColor, *flagDirect)

	*flagDebug = true
	*flagResolution = 64
	*flagFamily = "brick"
	*flagColorMode = "surface"
	*flagColor = "#00ff00"
	*flagDirect = true

	cfg := Default()
	applyFlags(cfg)

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
	if cfg.Pipeline.Resolution != 64 {
		t.Errorf("Resolution = %d, want 64", cfg.Pipeline.Resolution)
	}
	if cfg.Pipeline.Family != brick.Brick {
		t.Errorf("Family = %v, want brick", cfg.Pipeline.Family)
	}
	if cfg.Pipeline.ColorMode != "surface" {
		t.Errorf("ColorMode = %s, want surface", cfg.Pipeline.ColorMode)
	}
	if cfg.Pipeline.UniformColor != "#00ff00" {
		t.Errorf("UniformColor = %s, want #00ff00", cfg.Pipeline.UniformColor)
	}
	if !cfg.Pipeline.DirectColor {
		t.Error("DirectColor not applied")
	}
}

func TestApplyFlagsIgnoresBadFamily(t *testing.T) {
	defer func(f string) { *flagFamily = f }(*flagFamily)
	*flagFamily = "tile"

	cfg := Default()
	applyFlags(cfg)
	if cfg.Pipeline.Family != brick.Plate {
		t.Errorf("Family = %v, want unchanged plate", cfg.Pipeline.Family)
	}
}
