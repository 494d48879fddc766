package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func vecNear(a, b Vec3) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps && math.Abs(a.Z-b.Z) < eps
}

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	p := Vec3{1, 2, 3}
	result := m.TransformPoint(p)

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := UniformScale(2)
	p := Vec3{1, 2, 3}
	result := m.TransformPoint(p)

	expected := Vec3{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(math.Pi / 2)
	got := m.TransformPoint(Vec3{1, 0, 0})
	want := Vec3{0, 1, 0}
	if !vecNear(got, want) {
		t.Errorf("RotateZ(90°): got %v, want %v", got, want)
	}
}

func TestRotateAxisMatchesRotateZ(t *testing.T) {
	a := RotateAxis(ZAxis, 0.7)
	b := RotateZ(0.7)
	for i := 0; i < 16; i++ {
		if math.Abs(a[i]-b[i]) > eps {
			t.Fatalf("RotateAxis(Z) element %d: got %f, want %f", i, a[i], b[i])
		}
	}
}

func TestPivotFixesPivotPoint(t *testing.T) {
	p := Vec3{3, -2, 5}
	m := Pivot(p, RotateZ(1.3).Mul(UniformScale(2)))

	got := m.TransformPoint(p)
	if !vecNear(got, p) {
		t.Errorf("pivot point should be a fixed point: got %v, want %v", got, p)
	}
}

func TestPivotScaleDoublesDistance(t *testing.T) {
	p := Vec3{1, 1, 0}
	m := Pivot(p, UniformScale(2))

	got := m.TransformPoint(Vec3{2, 1, 0})
	want := Vec3{3, 1, 0}
	if !vecNear(got, want) {
		t.Errorf("Pivot scale: got %v, want %v", got, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(100, 100, 100)
	got := m.TransformDirection(Vec3{0, 0, 1})
	want := Vec3{0, 0, 1}
	if !vecNear(got, want) {
		t.Errorf("TransformDirection: got %v, want %v", got, want)
	}
}
