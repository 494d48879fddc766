package geom

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.W != 1 || q.X != 0 || q.Y != 0 || q.Z != 0 {
		t.Errorf("QuatIdentity() = %v, want (0,0,0,1)", q)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	l := math.Sqrt(q.Dot(q))
	if math.Abs(l-1) > eps {
		t.Errorf("normalized quaternion length = %v, want 1", l)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90° about Z should take X to Y.
	q := QuatFromAxisAngle(ZAxis, math.Pi/2)
	got := q.ToMat4().TransformPoint(Vec3{1, 0, 0})
	want := Vec3{0, 1, 0}
	if !vecNear(got, want) {
		t.Errorf("axis-angle rotation: got %v, want %v", got, want)
	}
}

func TestRotationBetween(t *testing.T) {
	from := ZAxis
	to := Vec3{1, 0, 1}.Normalize()
	q := RotationBetween(from, to)
	got := q.ToMat4().TransformPoint(from)
	if !vecNear(got, to) {
		t.Errorf("RotationBetween: got %v, want %v", got, to)
	}
}

func TestRotationBetweenParallel(t *testing.T) {
	q := RotationBetween(ZAxis, ZAxis)
	if q != QuatIdentity() {
		t.Errorf("parallel vectors should yield identity, got %v", q)
	}
}

func TestRotationBetweenAntiparallel(t *testing.T) {
	to := Vec3{0, 0, -1}
	q := RotationBetween(ZAxis, to)
	got := q.ToMat4().TransformPoint(ZAxis)
	if !vecNear(got, to) {
		t.Errorf("antiparallel rotation: got %v, want %v", got, to)
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(ZAxis, math.Pi/2)
	b := QuatFromAxisAngle(ZAxis, math.Pi/2)
	got := a.Mul(b).ToMat4().TransformPoint(Vec3{1, 0, 0})
	want := Vec3{-1, 0, 0}
	if !vecNear(got, want) {
		t.Errorf("composed rotation: got %v, want %v", got, want)
	}
}
