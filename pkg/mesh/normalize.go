package mesh

import (
	"math"

	"github.com/Faultbox/brickforge/pkg/geom"
)

const (
	// TargetSize is the canonical max extent after normalization. Rescaling
	// every input to the same extent keeps voxelization density independent
	// of the source file's units.
	TargetSize = 40.0

	// degenerateAreaSq is the squared cross-product length below which a
	// triangle is treated as zero-area and dropped.
	degenerateAreaSq = 1e-12

	// weldEpsilonRel is the vertex merge tolerance relative to the bounding
	// box diagonal. Small enough not to collapse visually distinct features.
	weldEpsilonRel = 1e-4
)

// Normalize sanitizes and rescales a raw mesh into the canonical frame the
// voxelizer consumes: non-indexed garbage is filtered out, coincident
// vertices are welded back into an indexed mesh, vertex normals are
// recomputed, and the result is scaled to TargetSize and floored at Y=0
// with its XZ center at the origin.
//
// A mesh that filters down to zero triangles, or whose bounding box has no
// extent, normalizes to an empty mesh. That is not an error; it propagates
// through the voxelizer as an empty occupancy set.
func Normalize(m *Mesh) *Mesh {
	flat := flatten(m)
	flat = dropInvalidTriangles(flat)
	out := weld(flat)
	recomputeNormals(out)
	box := out.ComputeBounds()

	maxDim := box.MaxDim()
	if out.IsEmpty() || maxDim <= 0 {
		return &Mesh{Bounds: geom.EmptyBox()}
	}

	scale := TargetSize / maxDim
	for i := range out.Positions {
		out.Positions[i] = out.Positions[i].Scale(scale)
	}
	box = out.ComputeBounds()

	center := box.Center()
	offset := geom.Vec3{X: -center.X, Y: -box.Min.Y, Z: -center.Z}
	for i := range out.Positions {
		out.Positions[i] = out.Positions[i].Add(offset)
	}
	out.ComputeBounds()

	return out
}

// flatten expands an indexed mesh so every triangle owns three independent
// vertex records. Per-triangle filtering then never has to fix up indices.
func flatten(m *Mesh) *Mesh {
	if len(m.Indices) == 0 {
		out := &Mesh{
			Positions: append([]geom.Vec3(nil), m.Positions...),
			Bounds:    m.Bounds,
		}
		if len(m.Normals) == len(m.Positions) {
			out.Normals = append([]geom.Vec3(nil), m.Normals...)
		}
		if len(m.UVs) == len(m.Positions) {
			out.UVs = append([]geom.Vec2(nil), m.UVs...)
		}
		return out
	}

	out := &Mesh{Positions: make([]geom.Vec3, 0, len(m.Indices))}
	hasNormals := len(m.Normals) == len(m.Positions)
	hasUVs := len(m.UVs) == len(m.Positions)
	for _, idx := range m.Indices {
		out.Positions = append(out.Positions, m.Positions[idx])
		if hasNormals {
			out.Normals = append(out.Normals, m.Normals[idx])
		}
		if hasUVs {
			out.UVs = append(out.UVs, m.UVs[idx])
		}
	}
	return out
}

// dropInvalidTriangles removes triangles with non-finite coordinates or
// near-zero area from a non-indexed mesh.
func dropInvalidTriangles(m *Mesh) *Mesh {
	out := &Mesh{}
	hasNormals := len(m.Normals) == len(m.Positions)
	hasUVs := len(m.UVs) == len(m.Positions)

	for i := 0; i+2 < len(m.Positions); i += 3 {
		a, b, c := m.Positions[i], m.Positions[i+1], m.Positions[i+2]
		if !a.IsFinite() || !b.IsFinite() || !c.IsFinite() {
			continue
		}
		cross := b.Sub(a).Cross(c.Sub(a))
		if cross.LengthSq() < degenerateAreaSq {
			continue
		}
		out.Positions = append(out.Positions, a, b, c)
		if hasNormals {
			out.Normals = append(out.Normals, m.Normals[i], m.Normals[i+1], m.Normals[i+2])
		}
		if hasUVs {
			out.UVs = append(out.UVs, m.UVs[i], m.UVs[i+1], m.UVs[i+2])
		}
	}
	return out
}

// weld merges coincident vertices within a positional epsilon, producing an
// indexed mesh with shared topology suitable for normal recomputation.
func weld(m *Mesh) *Mesh {
	if len(m.Positions) == 0 {
		return &Mesh{Bounds: geom.EmptyBox()}
	}

	diag := m.ComputeBounds().Diagonal()
	eps := diag * weldEpsilonRel
	if eps <= 0 {
		eps = weldEpsilonRel
	}

	type cellKey [3]int64
	seen := make(map[cellKey]uint32)
	out := &Mesh{
		Indices: make([]uint32, 0, len(m.Positions)),
	}
	hasUVs := len(m.UVs) == len(m.Positions)

	for i, p := range m.Positions {
		key := cellKey{
			int64(math.Floor(p.X / eps)),
			int64(math.Floor(p.Y / eps)),
			int64(math.Floor(p.Z / eps)),
		}
		idx, ok := seen[key]
		if !ok {
			idx = uint32(len(out.Positions))
			seen[key] = idx
			out.Positions = append(out.Positions, p)
			if hasUVs {
				out.UVs = append(out.UVs, m.UVs[i])
			}
		}
		out.Indices = append(out.Indices, idx)
	}
	return out
}

// recomputeNormals rebuilds per-vertex normals as the face-area-weighted
// average of adjacent face normals. An unnormalized cross product already
// carries the area weight.
func recomputeNormals(m *Mesh) {
	if len(m.Indices) == 0 {
		m.Normals = nil
		return
	}
	normals := make([]geom.Vec3, len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		face := geom.Triangle{A: m.Positions[ia], B: m.Positions[ib], C: m.Positions[ic]}.Normal()
		normals[ia] = normals[ia].Add(face)
		normals[ib] = normals[ib].Add(face)
		normals[ic] = normals[ic].Add(face)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}
	m.Normals = normals
}
