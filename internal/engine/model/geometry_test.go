package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/articula/pkg/math"
)

// unitQuad lies in the XY plane, counter-clockwise seen from +Z.
func unitQuad(t *testing.T) Geometry {
	t.Helper()
	g, err := NewGeometry([]math.Vec3{
		{X: 0, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 1, Y: 1, Z: 0},
		{X: 0, Y: 1, Z: 0},
	}, []uint16{0, 1, 2, 3, 0, 2})
	require.NoError(t, err)
	return g
}

func TestNewGeometryErrors(t *testing.T) {
	four := []math.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}

	tests := []struct {
		name      string
		positions []math.Vec3
		indices   []uint16
		want      error
	}{
		{"no positions", nil, []uint16{0, 0, 0, 0, 0, 0}, ErrEmptyGeometry},
		{"no indices", four, nil, ErrEmptyGeometry},
		{"short face", four, []uint16{0, 1, 2}, ErrIndexCount},
		{"seven indices", four, []uint16{0, 1, 2, 3, 0, 2, 1}, ErrIndexCount},
		{"out of range", four, []uint16{0, 1, 2, 4, 0, 2}, ErrIndexRange},
		{"too many", four, make([]uint16, 65538), ErrTooManyVertices},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGeometry(tt.positions, tt.indices)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewGeometryLargest(t *testing.T) {
	four := []math.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}

	g, err := NewGeometry(four, make([]uint16, 65532))
	require.NoError(t, err)
	assert.Equal(t, 65532/FaceSize, g.FaceCount())
}

func TestNewGeometryCopies(t *testing.T) {
	positions := []math.Vec3{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}
	indices := []uint16{0, 1, 2, 3, 0, 2}

	g, err := NewGeometry(positions, indices)
	require.NoError(t, err)

	positions[0] = math.Vec3{X: 9}
	indices[0] = 3

	assert.Equal(t, math.Vec3{}, g.Positions()[0])
	assert.Equal(t, uint16(0), g.Indices()[0])
	assert.Equal(t, 1, g.FaceCount())
	assert.Equal(t, 6, g.VertexCount())
}

func TestGeometryBounds(t *testing.T) {
	lo, hi := unitQuad(t).Bounds()
	assert.Equal(t, math.Vec3{}, lo)
	assert.Equal(t, math.Vec3{X: 1, Y: 1}, hi)
}

func TestMustGeometryPanics(t *testing.T) {
	assert.Panics(t, func() {
		MustGeometry([]math.Vec3{{}}, []uint16{0, 1, 2, 3, 4, 5})
	})
}
