// Package voxel converts a normalized mesh into a solid occupancy grid via
// scanline ray-parity sampling.
package voxel

import (
	"github.com/Faultbox/brickforge/pkg/palette"
)

// Voxel is one occupied cell of the occupancy grid: footprint column (I, K)
// and vertical layer J. Color is optional and assigned after sampling.
type Voxel struct {
	I, J, K int

	Color   palette.RGB
	Colored bool
}

// Grid is the occupancy set produced by Voxelize, together with the grid
// geometry needed to place parts.
type Grid struct {
	Voxels []Voxel

	XCount, ZCount int

	// UnitSize is the footprint cell edge length in normalized mesh units;
	// UnitHeight is the vertical layer height (UnitSize times the family
	// height ratio).
	UnitSize   float64
	UnitHeight float64

	occupied map[[3]int]int
}

// index builds the occupancy lookup. Called once after sampling.
func (g *Grid) index() {
	g.occupied = make(map[[3]int]int, len(g.Voxels))
	for i, v := range g.Voxels {
		g.occupied[[3]int{v.I, v.J, v.K}] = i
	}
}

// Occupied reports whether cell (i, j, k) is filled.
func (g *Grid) Occupied(i, j, k int) bool {
	_, ok := g.occupied[[3]int{i, j, k}]
	return ok
}

// SetColor tags the voxel at slice position idx with a color.
func (g *Grid) SetColor(idx int, c palette.RGB) {
	g.Voxels[idx].Color = c
	g.Voxels[idx].Colored = true
}

// SurfaceMask classifies each voxel as surface or interior. A voxel is
// surface when any of its six neighbors is unoccupied.
func (g *Grid) SurfaceMask() []bool {
	mask := make([]bool, len(g.Voxels))
	for i, v := range g.Voxels {
		if !g.Occupied(v.I+1, v.J, v.K) || !g.Occupied(v.I-1, v.J, v.K) ||
			!g.Occupied(v.I, v.J+1, v.K) || !g.Occupied(v.I, v.J-1, v.K) ||
			!g.Occupied(v.I, v.J, v.K+1) || !g.Occupied(v.I, v.J, v.K-1) {
			mask[i] = true
		}
	}
	return mask
}
