package model

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/articula/pkg/math"
)

func TestComposeTranslateAddsAndScales(t *testing.T) {
	own := IdentityTransform()
	own.Translate = math.Vec3{X: 1}
	parent := IdentityTransform()
	parent.Translate = math.Vec3{X: 2}

	c := Compose(own, &parent)
	assert.InDelta(t, 0.03, c.Translate.X, 1e-6)
	assert.Zero(t, c.Translate.Y)
	assert.Zero(t, c.Translate.Z)

	// Order of contribution does not matter for translate.
	swapped := Compose(parent, &own)
	assert.Equal(t, c.Translate, swapped.Translate)
}

func TestComposeScaleMultiplies(t *testing.T) {
	own := IdentityTransform()
	own.Scale = math.Vec3{X: 2, Y: 3, Z: 1}
	parent := IdentityTransform()
	parent.Scale = math.Vec3{X: 2, Y: 0.5, Z: 4}

	c := Compose(own, &parent)
	assert.Equal(t, math.Vec3{X: 4, Y: 1.5, Z: 4}, c.Scale)
}

func TestComposeRotateInRadians(t *testing.T) {
	own := IdentityTransform()
	own.Rotate = math.Vec3{Y: 30}
	parent := IdentityTransform()
	parent.Rotate = math.Vec3{Y: 60, Z: 180}

	c := Compose(own, &parent)
	assert.InDelta(t, gomath.Pi/2, c.Rotate.Y, 1e-6)
	assert.InDelta(t, gomath.Pi, c.Rotate.Z, 1e-6)
}

func TestComposeNilParent(t *testing.T) {
	own := Transform{
		Translate: math.Vec3{X: 50, Y: -100},
		Rotate:    math.Vec3{X: 90},
		Scale:     math.Vec3{X: 2, Y: 2, Z: 2},
	}

	c := Compose(own, nil)
	assert.InDelta(t, 0.5, c.Translate.X, 1e-6)
	assert.InDelta(t, -1, c.Translate.Y, 1e-6)
	assert.Equal(t, own.Scale, c.Scale)
	assert.InDelta(t, gomath.Pi/2, c.Rotate.X, 1e-6)
}

func TestCombinedMatrixOrder(t *testing.T) {
	c := Combined{
		Translate: math.Vec3{X: 0.1, Y: 0.2, Z: -0.3},
		Rotate:    math.Vec3{X: 0.3, Y: -0.8, Z: 1.2},
		Scale:     math.Vec3{X: 2, Y: 0.5, Z: 1.5},
	}

	want := mgl32.Ident4().
		Mul4(mgl32.Translate3D(0.1, 0.2, -0.3)).
		Mul4(mgl32.HomogRotate3DZ(1.2)).
		Mul4(mgl32.HomogRotate3DY(-0.8)).
		Mul4(mgl32.HomogRotate3DX(0.3)).
		Mul4(mgl32.Scale3D(2, 0.5, 1.5))

	got := c.Matrix()
	for i := range got {
		assert.InDelta(t, want[i], got[i], 1e-5, "element %d", i)
	}
}

func TestTransformSetters(t *testing.T) {
	tr := IdentityTransform()

	require.NoError(t, tr.SetTranslate(AxisZ, 12))
	require.NoError(t, tr.SetRotate(AxisX, 45))
	require.NoError(t, tr.SetScale(AxisY, 3))

	assert.Equal(t, math.Vec3{Z: 12}, tr.Translate)
	assert.Equal(t, math.Vec3{X: 45}, tr.Rotate)
	assert.Equal(t, math.Vec3{X: 1, Y: 3, Z: 1}, tr.Scale)

	assert.ErrorIs(t, tr.SetRotate(Axis(3), 1), ErrInvalidAxis)
	assert.ErrorIs(t, tr.SetScale(Axis(-1), 1), ErrInvalidAxis)
	assert.Equal(t, math.Vec3{X: 45}, tr.Rotate)
}
