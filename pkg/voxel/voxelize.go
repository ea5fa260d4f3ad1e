package voxel

import (
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/Faultbox/brickforge/pkg/brick"
	"github.com/Faultbox/brickforge/pkg/geom"
	"github.com/Faultbox/brickforge/pkg/mesh"
)

const (
	// extentEpsilon guards against voxelizing a mesh with no horizontal
	// footprint.
	extentEpsilon = 1e-9

	// rayMargin pushes the ray origin below the bounding box so the first
	// surface hit is always in front of the origin.
	rayMargin = 1.0
)

// Voxelize samples the mesh into a solid occupancy grid. The footprint cell
// size derives from the longer horizontal extent divided by resolution, so
// cells are square in the horizontal plane; the layer height is the cell
// size scaled by the family height ratio.
//
// Each footprint column is sampled with a single upward ray. Sorted
// ray-triangle intersections are treated as alternating enter/exit events of
// solid material; a trailing unmatched intersection (non-watertight
// geometry) is discarded rather than reported as an error.
func Voxelize(m *mesh.Mesh, resolution int, family brick.Family) *Grid {
	grid := &Grid{}
	box := m.Bounds
	if m.IsEmpty() || box.IsEmpty() || resolution <= 0 {
		grid.index()
		return grid
	}

	size := box.Size()
	maxDim := math.Max(size.X, size.Z)
	if maxDim <= extentEpsilon {
		grid.index()
		return grid
	}

	unitSize := maxDim / float64(resolution)
	grid.UnitSize = unitSize
	grid.UnitHeight = unitSize * family.HeightRatio()
	grid.XCount = int(math.Ceil(size.X / unitSize))
	grid.ZCount = int(math.Ceil(size.Z / unitSize))

	tris := make([]geom.Triangle, m.TriangleCount())
	triBounds := make([]geom.Box3, len(tris))
	for i := range tris {
		tris[i] = m.Triangle(i)
		triBounds[i] = tris[i].Bounds()
	}

	// Columns are independent pure functions of the immutable triangle
	// list, so they are sampled concurrently and merged afterwards.
	columns := grid.XCount * grid.ZCount
	workers := runtime.NumCPU()
	if workers > columns {
		workers = columns
	}
	results := make([][]Voxel, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var out []Voxel
			for col := w; col < columns; col += workers {
				i := col % grid.XCount
				k := col / grid.XCount
				out = sampleColumn(out, tris, triBounds, box, grid, i, k)
			}
			results[w] = out
		}(w)
	}
	wg.Wait()

	for _, out := range results {
		grid.Voxels = append(grid.Voxels, out...)
	}
	grid.index()
	return grid
}

// dedupHits collapses sorted intersection distances that are effectively
// equal. A ray through a shared triangle edge reports the same surface once
// per triangle; counting it twice would flip the parity of everything above.
func dedupHits(hits []float64) []float64 {
	const eps = 1e-9
	kept := hits[:1]
	for _, h := range hits[1:] {
		if h-kept[len(kept)-1] > eps {
			kept = append(kept, h)
		}
	}
	return kept
}

// sampleColumn casts the upward ray for footprint cell (i, k) and appends
// the occupied voxels to out.
func sampleColumn(out []Voxel, tris []geom.Triangle, triBounds []geom.Box3, box geom.Box3, grid *Grid, i, k int) []Voxel {
	cx := box.Min.X + (float64(i)+0.5)*grid.UnitSize
	cz := box.Min.Z + (float64(k)+0.5)*grid.UnitSize
	oy := box.Min.Y - rayMargin

	var hits []float64
	for t := range tris {
		b := triBounds[t]
		if cx < b.Min.X || cx > b.Max.X || cz < b.Min.Z || cz > b.Max.Z {
			continue
		}
		if dist, ok := tris[t].IntersectRayUp(cx, oy, cz); ok {
			hits = append(hits, dist)
		}
	}
	if len(hits) < 2 {
		return out
	}
	sort.Float64s(hits)
	hits = dedupHits(hits)

	// Parity rule: consecutive pairs bound solid intervals. An odd trailing
	// hit has no exit and is dropped.
	for p := 0; p+1 < len(hits); p += 2 {
		yEnter := oy + hits[p]
		yExit := oy + hits[p+1]

		jStart := int(math.Ceil((yEnter-box.Min.Y)/grid.UnitHeight - 0.5))
		jEnd := int(math.Floor((yExit-box.Min.Y)/grid.UnitHeight - 0.5))
		if jStart < 0 {
			jStart = 0
		}
		for j := jStart; j <= jEnd; j++ {
			out = append(out, Voxel{I: i, J: j, K: k})
		}
	}
	return out
}
