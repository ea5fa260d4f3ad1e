package geom

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	if l := n.Length(); math.Abs(l-1) > 1e-12 {
		t.Errorf("Vec3.Normalize().Length() = %v, want 1", l)
	}
	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("zero vector Normalize() = %v, want zero", zero)
	}
}

func TestVec3IsFinite(t *testing.T) {
	if !(Vec3{1, 2, 3}).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if (Vec3{math.NaN(), 0, 0}).IsFinite() {
		t.Error("NaN vector reported as finite")
	}
	if (Vec3{0, math.Inf(1), 0}).IsFinite() {
		t.Error("Inf vector reported as finite")
	}
}

func TestBox3ExpandByPoint(t *testing.T) {
	box := EmptyBox()
	if !box.IsEmpty() {
		t.Fatal("EmptyBox() should be empty")
	}
	box = box.ExpandByPoint(Vec3{1, 2, 3})
	box = box.ExpandByPoint(Vec3{-1, 0, 5})

	if box.Min != (Vec3{-1, 0, 3}) {
		t.Errorf("Min = %v, want {-1 0 3}", box.Min)
	}
	if box.Max != (Vec3{1, 2, 5}) {
		t.Errorf("Max = %v, want {1 2 5}", box.Max)
	}
	if got := box.MaxDim(); got != 2 {
		t.Errorf("MaxDim() = %v, want 2", got)
	}
	if got := box.Center(); got != (Vec3{0, 1, 4}) {
		t.Errorf("Center() = %v, want {0 1 4}", got)
	}
}

func TestBox3EmptySize(t *testing.T) {
	if got := EmptyBox().Size(); got != (Vec3{}) {
		t.Errorf("empty box Size() = %v, want zero", got)
	}
}

func TestIntersectRayUpHit(t *testing.T) {
	// Horizontal triangle at y=5 covering the origin column.
	tri := Triangle{
		A: Vec3{-1, 5, -1},
		B: Vec3{1, 5, -1},
		C: Vec3{0, 5, 1},
	}
	dist, ok := tri.IntersectRayUp(0, 0, 0)
	if !ok {
		t.Fatal("expected hit")
	}
	if math.Abs(dist-5) > 1e-12 {
		t.Errorf("hit distance = %v, want 5", dist)
	}
}

func TestIntersectRayUpMiss(t *testing.T) {
	tri := Triangle{
		A: Vec3{-1, 5, -1},
		B: Vec3{1, 5, -1},
		C: Vec3{0, 5, 1},
	}
	if _, ok := tri.IntersectRayUp(10, 0, 10); ok {
		t.Error("expected miss for ray outside the triangle footprint")
	}
}

func TestIntersectRayUpBehindOrigin(t *testing.T) {
	tri := Triangle{
		A: Vec3{-1, -5, -1},
		B: Vec3{1, -5, -1},
		C: Vec3{0, -5, 1},
	}
	if _, ok := tri.IntersectRayUp(0, 0, 0); ok {
		t.Error("expected miss for triangle below the ray origin")
	}
}

func TestIntersectRayUpParallel(t *testing.T) {
	// Vertical triangle: its plane contains the ray direction.
	tri := Triangle{
		A: Vec3{0, 0, 0},
		B: Vec3{0, 1, 0},
		C: Vec3{0, 0, 1},
	}
	if _, ok := tri.IntersectRayUp(0, -1, 0.5); ok {
		t.Error("expected miss for triangle parallel to the ray")
	}
}

func TestTriangleNormalArea(t *testing.T) {
	tri := Triangle{A: Vec3{0, 0, 0}, B: Vec3{2, 0, 0}, C: Vec3{0, 2, 0}}
	// Cross length is twice the area (area = 2 here).
	if got := tri.Normal().Length(); math.Abs(got-4) > 1e-12 {
		t.Errorf("Normal().Length() = %v, want 4", got)
	}
}
