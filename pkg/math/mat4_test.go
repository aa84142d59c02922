package math

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-4

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

func TestMulOrder(t *testing.T) {
	// Translate * Scale scales first, then translates.
	m := Translate(10, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint([3]float32{1, 0, 0})
	if got != [3]float32{12, 0, 0} {
		t.Errorf("T*S applied to (1,0,0) = %v, want (12, 0, 0)", got)
	}

	m = Scale(2, 2, 2).Mul(Translate(10, 0, 0))
	got = m.TransformPoint([3]float32{1, 0, 0})
	if got != [3]float32{22, 0, 0} {
		t.Errorf("S*T applied to (1,0,0) = %v, want (22, 0, 0)", got)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	p := [3]float32{1, 0, 0}           // Point on X axis
	result := m.TransformPoint(p)

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotationOrder(t *testing.T) {
	// X first: (0,1,0) -> (0,0,1); then Y: (0,0,1) -> (1,0,0).
	m := Rotation(DegToRad(90), DegToRad(90), 0)
	got := m.TransformVec3(Vec3{0, 1, 0})
	if !got.ApproxEqual(Vec3{1, 0, 0}, eps) {
		t.Errorf("Rotation(90,90,0) applied to +Y = %v, want (1, 0, 0)", got)
	}

	// Reversed order would give a different point.
	rev := RotateX(DegToRad(90)).Mul(RotateY(DegToRad(90))).TransformVec3(Vec3{0, 1, 0})
	if rev.ApproxEqual(got, eps) {
		t.Error("Rotation should not commute with the reversed composition")
	}
}

func TestRotationMatchesMathgl(t *testing.T) {
	tests := [][3]float32{
		{0, 0, 0},
		{0.3, 0, 0},
		{0, 1.1, 0},
		{0, 0, -0.7},
		{0.4, -1.2, 2.5},
	}

	for _, r := range tests {
		want := mgl32.HomogRotate3DZ(r[2]).Mul4(mgl32.HomogRotate3DY(r[1])).Mul4(mgl32.HomogRotate3DX(r[0]))
		got := Rotation(r[0], r[1], r[2])
		assertMatNear(t, "Rotation", got, Mat4(want))
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(45, 1.0, 0.1, 100.0)

	// Should be a valid projection matrix (not identity)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero elements")
	}
	// Element [15] should be 0 for perspective projection
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	// Element [11] should be -1 for perspective projection
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}

	assertMatNear(t, "Perspective", m, Mat4(mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100)))
}

func TestOrtho(t *testing.T) {
	m := Ortho(-300, 300, -300, 300, 1, 2000)
	assertMatNear(t, "Ortho", m, Mat4(mgl32.Ortho(-300, 300, -300, 300, 1, 2000)))

	// Unit box maps x and y unchanged and flips z.
	unit := Ortho(-1, 1, -1, 1, -1, 1)
	got := unit.TransformPoint([3]float32{0.5, -0.25, 0.5})
	if got != [3]float32{0.5, -0.25, -0.5} {
		t.Errorf("unit Ortho: got %v, want (0.5, -0.25, -0.5)", got)
	}
}

func TestOblique(t *testing.T) {
	m := Oblique(DegToRad(45), DegToRad(45))

	// Points on the z=0 plane are untouched.
	if got := m.TransformPoint([3]float32{0.3, 0.4, 0}); got != [3]float32{0.3, 0.4, 0} {
		t.Errorf("Oblique z=0: got %v, want (0.3, 0.4, 0)", got)
	}

	// tan(45) = 1 so depth shears one-to-one into x and y.
	got := m.TransformVec3(Vec3{0, 0, 1})
	if !got.ApproxEqual(Vec3{-1, -1, 1}, eps) {
		t.Errorf("Oblique z=1: got %v, want (-1, -1, 1)", got)
	}

	// No perspective term.
	if m[3] != 0 || m[7] != 0 || m[11] != 0 || m[15] != 1 {
		t.Errorf("Oblique bottom row should be (0, 0, 0, 1), got (%f, %f, %f, %f)", m[3], m[7], m[11], m[15])
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	center := Vec3{0, 0, 0}
	up := Vec3{0, 1, 0}

	m := LookAt(eye, center, up)

	if m[15] != 1 {
		t.Errorf("LookAt [15] should be 1, got %f", m[15])
	}

	assertMatNear(t, "LookAt", m, Mat4(mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})))
}

func TestLookAtInverseRecoversEye(t *testing.T) {
	tests := []Vec3{
		{0, 0, 5},
		{3, 2, 1},
		{-0.3, 0.1, 0.3},
	}

	for _, eye := range tests {
		view := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

		// The view matrix moves the eye to the origin...
		if got := view.TransformVec3(eye); !got.ApproxEqual(Vec3{}, eps) {
			t.Errorf("LookAt(%v) applied to eye = %v, want origin", eye, got)
		}

		// ...and its inverse, the camera matrix, puts the origin back at the eye.
		camera := view.Inverse()
		if got := camera.TransformVec3(Vec3{}); !got.ApproxEqual(eye, eps) {
			t.Errorf("Inverse(LookAt(%v)) applied to origin = %v, want eye", eye, got)
		}
		if got := (Vec3{camera[12], camera[13], camera[14]}); !got.ApproxEqual(eye, eps) {
			t.Errorf("camera translation = %v, want %v", got, eye)
		}
	}
}

func TestInverse(t *testing.T) {
	m := Translate(1, -2, 3).Mul(Rotation(0.2, 0.5, -0.4)).Mul(Scale(2, 3, 0.5))
	assertMatNear(t, "M * Inverse(M)", m.Mul(m.Inverse()), Identity())
	assertMatNear(t, "Inverse", m.Inverse(), Mat4(mgl32.Mat4(m).Inv()))
}

func TestInverseSingular(t *testing.T) {
	if got := Scale(0, 1, 1).Inverse(); got != Identity() {
		t.Errorf("singular Inverse should return identity, got %v", got)
	}
	if _, ok := Scale(1, 0, 1).TryInverse(); ok {
		t.Error("TryInverse of a singular matrix reported success")
	}
	if _, ok := Translate(1, 2, 3).TryInverse(); !ok {
		t.Error("TryInverse of a translation failed")
	}
}

func assertMatNear(t *testing.T, name string, got, want Mat4) {
	t.Helper()
	for i := range got {
		if abs(got[i]-want[i]) > eps {
			t.Errorf("%s element %d: got %f, want %f", name, i, got[i], want[i])
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
