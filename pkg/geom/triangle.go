package geom

import "math"

const intersectEpsilon = 1e-9

// Triangle is a triangle in 3D space.
type Triangle struct {
	A, B, C Vec3
}

// Bounds returns the axis-aligned bounding box of the triangle.
func (t Triangle) Bounds() Box3 {
	return EmptyBox().ExpandByPoint(t.A).ExpandByPoint(t.B).ExpandByPoint(t.C)
}

// Normal returns the unnormalized face normal (cross of the two edges).
// Its length is twice the triangle area.
func (t Triangle) Normal() Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// IntersectRayUp intersects the triangle with a vertical ray cast straight up
// (+Y) from origin (ox, oy, oz) using the Möller–Trumbore algorithm. It
// returns the distance along the ray and whether the ray hits the triangle.
// Back faces are reported as hits; the parity rule needs both sides.
func (t Triangle) IntersectRayUp(ox, oy, oz float64) (float64, bool) {
	// Ray direction is (0, 1, 0), so the usual cross products collapse.
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)

	// pvec = dir × e2 = (e2.Z, 0, -e2.X)
	det := e1.X*e2.Z - e1.Z*e2.X
	if math.Abs(det) < intersectEpsilon {
		return 0, false // ray parallel to triangle plane
	}
	invDet := 1.0 / det

	tx := ox - t.A.X
	ty := oy - t.A.Y
	tz := oz - t.A.Z

	u := (tx*e2.Z - tz*e2.X) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	// qvec = tvec × e1
	qx := ty*e1.Z - tz*e1.Y
	qy := tz*e1.X - tx*e1.Z
	qz := tx*e1.Y - ty*e1.X

	v := qy * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := (e2.X*qx + e2.Y*qy + e2.Z*qz) * invDet
	if dist < 0 {
		return 0, false
	}
	return dist, true
}
