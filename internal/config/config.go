// Package config handles pipeline configuration loading and management.
package config

import "github.com/Faultbox/brickforge/pkg/brick"

// Config holds all converter settings.
type Config struct {
	Pipeline PipelineConfig `yaml:"pipeline"`
	Limits   LimitsConfig   `yaml:"limits"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PipelineConfig holds the geometry and color settings for a conversion.
type PipelineConfig struct {
	// Resolution is the number of footprint cells along the longer
	// horizontal extent of the model.
	Resolution int `yaml:"resolution"`

	Family brick.Family `yaml:"family"`

	// ColorMode is one of "none", "uniform" or "surface". "uniform" colors
	// every voxel with UniformColor; "surface" colors only surface voxels
	// and leaves the interior at DefaultColor.
	ColorMode string `yaml:"color_mode"`

	// UniformColor is a "#rrggbb" hex color applied by the uniform and
	// surface modes.
	UniformColor string `yaml:"uniform_color"`

	// DirectColor emits literal colors instead of quantizing against the
	// curated palette.
	DirectColor bool `yaml:"direct_color"`

	// DefaultColor is the palette code for voxels with no sampled color.
	DefaultColor int `yaml:"default_color"`
}

// LimitsConfig bounds the voxelization workload. Conversions that would
// exceed these are rejected before any sampling happens.
type LimitsConfig struct {
	MaxColumns int `yaml:"max_columns"`
	MaxVoxels  int `yaml:"max_voxels"`
}

// OutputConfig holds document output settings.
type OutputConfig struct {
	// Name is the model name written into the document header.
	Name   string `yaml:"name"`
	Author string `yaml:"author"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Pipeline: PipelineConfig{
			Resolution:   48,
			Family:       brick.Plate,
			ColorMode:    "none",
			UniformColor: "#969696",
			DefaultColor: 71,
		},
		Limits: LimitsConfig{
			MaxColumns: 1 << 20,
			MaxVoxels:  1 << 24,
		},
		Output: OutputConfig{
			Name:   "model.ldr",
			Author: "brickforge",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
