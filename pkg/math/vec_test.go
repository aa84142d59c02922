package math

import (
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

func TestVec3Sub(t *testing.T) {
	got := Vec3{3, 2, 1}.Sub(Vec3{1, 1, 1})
	want := Vec3{2, 1, 0}
	if got != want {
		t.Errorf("Vec3.Sub() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	// Receiver is untouched.
	if v != (Vec3{3, 0, 4}) {
		t.Errorf("Normalize mutated receiver: %v", v)
	}

	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero Normalize() = %v, want zero", got)
	}
}

func TestVec3Mul(t *testing.T) {
	got := Vec3{1, 2, 3}.Mul(Vec3{2, 0.5, -1})
	want := Vec3{2, 1, -3}
	if got != want {
		t.Errorf("Vec3.Mul() = %v, want %v", got, want)
	}
}

func TestVec3Axis(t *testing.T) {
	v := Vec3{1, 2, 3}
	for axis, want := range []float32{1, 2, 3} {
		if got := v.Axis(axis); got != want {
			t.Errorf("Axis(%d) = %v, want %v", axis, got, want)
		}
	}

	if got := v.WithAxis(1, 9); got != (Vec3{1, 9, 3}) {
		t.Errorf("WithAxis(1, 9) = %v", got)
	}
	if got := v.WithAxis(7, 9); got != v {
		t.Errorf("WithAxis(7, 9) should be a no-op, got %v", got)
	}
}
