package model

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/articula/pkg/math"
)

// FaceSize is the number of indices per face: two triangles forming a quad.
const FaceSize = 6

// MaxVertices is the largest expanded vertex count addressable by 16-bit indices.
// Index counts are multiples of FaceSize, so the largest valid count is 65532.
const MaxVertices = 1 << 16

// Geometry validation errors.
var (
	ErrEmptyGeometry   = errors.New("empty geometry")
	ErrIndexCount      = errors.New("index count is not a multiple of face size")
	ErrIndexRange      = errors.New("index out of range")
	ErrTooManyVertices = errors.New("too many vertices")
)

// Geometry is an immutable position list plus indices grouped into quads of
// FaceSize indices each. Construct it with NewGeometry.
type Geometry struct {
	positions []math.Vec3
	indices   []uint16
}

// NewGeometry validates and copies positions and indices.
// Every index must address a position and the index count must be a
// non-zero multiple of FaceSize.
func NewGeometry(positions []math.Vec3, indices []uint16) (Geometry, error) {
	if len(positions) == 0 || len(indices) == 0 {
		return Geometry{}, errors.Wrapf(ErrEmptyGeometry, "%d positions, %d indices", len(positions), len(indices))
	}
	if len(indices)%FaceSize != 0 {
		return Geometry{}, errors.Wrapf(ErrIndexCount, "%d indices, face size %d", len(indices), FaceSize)
	}
	if len(indices) > MaxVertices {
		return Geometry{}, errors.Wrapf(ErrTooManyVertices, "%d expanded vertices, limit %d", len(indices), MaxVertices)
	}
	for i, idx := range indices {
		if int(idx) >= len(positions) {
			return Geometry{}, errors.Wrapf(ErrIndexRange, "index %d at offset %d, %d positions", idx, i, len(positions))
		}
	}

	g := Geometry{
		positions: make([]math.Vec3, len(positions)),
		indices:   make([]uint16, len(indices)),
	}
	copy(g.positions, positions)
	copy(g.indices, indices)
	return g, nil
}

// MustGeometry is NewGeometry for static tables; it panics on invalid input.
func MustGeometry(positions []math.Vec3, indices []uint16) Geometry {
	g, err := NewGeometry(positions, indices)
	if err != nil {
		panic(err)
	}
	return g
}

// Positions returns the position list. Callers must not modify it.
func (g Geometry) Positions() []math.Vec3 { return g.positions }

// Indices returns the index list. Callers must not modify it.
func (g Geometry) Indices() []uint16 { return g.indices }

// FaceCount returns the number of quads.
func (g Geometry) FaceCount() int { return len(g.indices) / FaceSize }

// VertexCount returns the number of expanded vertices, one per index.
func (g Geometry) VertexCount() int { return len(g.indices) }

// Bounds returns the axis-aligned box around all positions.
func (g Geometry) Bounds() (lo, hi math.Vec3) {
	if len(g.positions) == 0 {
		return math.Vec3{}, math.Vec3{}
	}
	lo, hi = g.positions[0], g.positions[0]
	for _, p := range g.positions[1:] {
		lo = math.Vec3{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = math.Vec3{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}
