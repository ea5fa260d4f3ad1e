// Package mesh provides the triangle mesh model and the normalization pass
// that prepares raw geometry for voxelization.
package mesh

import "github.com/Faultbox/brickforge/pkg/geom"

// Mesh is a triangle mesh. Positions holds one Vec3 per vertex; when Indices
// is non-empty the mesh is indexed and every consecutive index triple forms a
// triangle, otherwise every consecutive position triple does. Normals and UVs
// are optional and, when present, parallel to Positions.
type Mesh struct {
	Positions []geom.Vec3
	Normals   []geom.Vec3
	UVs       []geom.Vec2
	Indices   []uint32

	Bounds geom.Box3
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 3
}

// Triangle returns the i-th triangle.
func (m *Mesh) Triangle(i int) geom.Triangle {
	if len(m.Indices) > 0 {
		return geom.Triangle{
			A: m.Positions[m.Indices[3*i]],
			B: m.Positions[m.Indices[3*i+1]],
			C: m.Positions[m.Indices[3*i+2]],
		}
	}
	return geom.Triangle{
		A: m.Positions[3*i],
		B: m.Positions[3*i+1],
		C: m.Positions[3*i+2],
	}
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return m.TriangleCount() == 0
}

// ComputeBounds recomputes and caches the bounding box over all vertices
// referenced by triangles.
func (m *Mesh) ComputeBounds() geom.Box3 {
	box := geom.EmptyBox()
	if len(m.Indices) > 0 {
		for _, idx := range m.Indices {
			box = box.ExpandByPoint(m.Positions[idx])
		}
	} else {
		for _, p := range m.Positions {
			box = box.ExpandByPoint(p)
		}
	}
	m.Bounds = box
	return box
}
