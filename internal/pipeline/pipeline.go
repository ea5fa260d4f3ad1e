// Package pipeline wires the conversion stages together: normalize,
// voxelize, colorize, encode, serialize.
package pipeline

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/brickforge/internal/config"
	"github.com/Faultbox/brickforge/internal/logger"
	"github.com/Faultbox/brickforge/pkg/ldraw"
	"github.com/Faultbox/brickforge/pkg/mesh"
	"github.com/Faultbox/brickforge/pkg/palette"
	"github.com/Faultbox/brickforge/pkg/voxel"
)

// ErrCapacity is returned when the requested resolution and mesh extent
// would produce an intractable sampling workload. Malformed geometry never
// errors; capacity exhaustion is the one caller-visible failure class.
var ErrCapacity = errors.New("voxel capacity exceeded")

// Stats summarizes a conversion.
type Stats struct {
	Triangles int
	Columns   int
	Voxels    int
}

// Result is the output of a conversion run.
type Result struct {
	Records  []ldraw.Record
	Document string
	Stats    Stats
}

// Run converts a raw mesh into a placement document. The pipeline is
// synchronous; the mesh is owned by this invocation and no stage retains it.
func Run(cfg *config.Config, raw *mesh.Mesh) (*Result, error) {
	pc := cfg.Pipeline

	done := stage("normalize")
	normalized := mesh.Normalize(raw)
	done()

	if err := checkCapacity(cfg, normalized); err != nil {
		return nil, err
	}

	done = stage("voxelize")
	grid := voxel.Voxelize(normalized, pc.Resolution, pc.Family)
	done()
	if cfg.Limits.MaxVoxels > 0 && len(grid.Voxels) > cfg.Limits.MaxVoxels {
		return nil, fmt.Errorf("%w: %d voxels exceed limit %d", ErrCapacity, len(grid.Voxels), cfg.Limits.MaxVoxels)
	}

	done = stage("colorize")
	if err := colorize(grid, pc); err != nil {
		return nil, err
	}
	done()

	done = stage("encode")
	encoder := ldraw.NewEncoder()
	encoder.DefaultCode = pc.DefaultColor
	if pc.DirectColor {
		encoder.Mode = ldraw.ModeDirect
	}
	records := encoder.Encode(grid, pc.Family)
	done()

	done = stage("serialize")
	document := ldraw.Serialize(records, cfg.Output.Name, cfg.Output.Author)
	done()

	result := &Result{
		Records:  records,
		Document: document,
		Stats: Stats{
			Triangles: normalized.TriangleCount(),
			Columns:   grid.XCount * grid.ZCount,
			Voxels:    len(grid.Voxels),
		},
	}
	logger.Info("conversion complete",
		zap.Int("triangles", result.Stats.Triangles),
		zap.Int("columns", result.Stats.Columns),
		zap.Int("voxels", result.Stats.Voxels))
	return result, nil
}

// checkCapacity bounds the sampling workload before any rays are cast.
func checkCapacity(cfg *config.Config, m *mesh.Mesh) error {
	pc := cfg.Pipeline
	if m.IsEmpty() {
		return nil
	}

	columns := pc.Resolution * pc.Resolution
	if cfg.Limits.MaxColumns > 0 && columns > cfg.Limits.MaxColumns {
		return fmt.Errorf("%w: %d columns exceed limit %d", ErrCapacity, columns, cfg.Limits.MaxColumns)
	}

	// Worst-case voxel estimate: every column filled over the full height.
	size := m.Bounds.Size()
	maxDim := math.Max(size.X, size.Z)
	if maxDim > 0 && cfg.Limits.MaxVoxels > 0 {
		unitHeight := maxDim / float64(pc.Resolution) * pc.Family.HeightRatio()
		layers := int(math.Ceil(size.Y / unitHeight))
		if layers > 0 && columns > cfg.Limits.MaxVoxels/layers {
			return fmt.Errorf("%w: %d columns x %d layers exceed limit %d", ErrCapacity, columns, layers, cfg.Limits.MaxVoxels)
		}
	}
	return nil
}

// colorize tags voxels according to the configured color mode.
func colorize(grid *voxel.Grid, pc config.PipelineConfig) error {
	switch pc.ColorMode {
	case "", "none":
		return nil
	case "uniform":
		c, err := palette.ParseHex(pc.UniformColor)
		if err != nil {
			return err
		}
		for i := range grid.Voxels {
			grid.SetColor(i, c)
		}
		return nil
	case "surface":
		c, err := palette.ParseHex(pc.UniformColor)
		if err != nil {
			return err
		}
		for i, isSurface := range grid.SurfaceMask() {
			if isSurface {
				grid.SetColor(i, c)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown color mode %q", pc.ColorMode)
	}
}

// stage logs the start of a pipeline stage and returns a completion
// callback that records its duration.
func stage(name string) func() {
	start := time.Now()
	logger.Log.Debug("stage start", zap.String("stage", name))
	return func() {
		logger.Log.Debug("stage done", zap.String("stage", name), zap.Duration("took", time.Since(start)))
	}
}
