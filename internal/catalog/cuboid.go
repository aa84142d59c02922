package catalog

import (
	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/pkg/math"
)

// cuboidFaces lists each face counter-clockwise seen from outside. Corner i
// takes max on X when bit 0 is set, on Y for bit 1 and on Z for bit 2.
var cuboidFaces = [6][4]uint16{
	{4, 5, 7, 6}, // +Z
	{1, 0, 2, 3}, // -Z
	{5, 1, 3, 7}, // +X
	{0, 4, 6, 2}, // -X
	{6, 7, 3, 2}, // +Y
	{0, 1, 5, 4}, // -Y
}

// Cuboid returns the box spanning lo to hi as six quads with outward
// winding. Each quad a, b, c, d is indexed a, b, c, d, a, c.
func Cuboid(lo, hi math.Vec3) (model.Geometry, error) {
	positions := make([]math.Vec3, 8)
	for i := range positions {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		positions[i] = p
	}

	indices := make([]uint16, 0, len(cuboidFaces)*model.FaceSize)
	for _, f := range cuboidFaces {
		indices = append(indices, f[0], f[1], f[2], f[3], f[0], f[2])
	}
	return model.NewGeometry(positions, indices)
}
