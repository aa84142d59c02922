// Package picking finds the component drawn under a point of a view.
package picking

import (
	gomath "math"

	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/pkg/math"
)

// Ray is a segment from Origin to Origin+Direction. Rays built by ClipRay
// run from the near clip plane (t = 0) to the far plane (t = 1).
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// At returns the point at parameter t.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Transform maps both ends of the ray through an affine matrix.
func (r Ray) Transform(m math.Mat4) Ray {
	o := m.TransformVec3(r.Origin)
	e := m.TransformVec3(r.At(1))
	return Ray{Origin: o, Direction: e.Sub(o)}
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates a box from two opposite corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// IntersectAABB returns the parameter range over which the ray's line lies
// inside box. The range may extend outside [0, 1].
func (r Ray) IntersectAABB(box AABB) (tmin, tmax float32, hit bool) {
	tmin = float32(-gomath.MaxFloat32)
	tmax = float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o := r.Origin.Axis(axis)
		d := r.Direction.Axis(axis)
		lo, hi := box.Min.Axis(axis), box.Max.Axis(axis)

		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		t1 := (lo - o) / d
		t2 := (hi - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// ClipRay returns the clip-space line of points drawn at normalized device
// coordinates (x, y). The shader divides x and y by 1 + z·fudge, so the
// line is straight in clip space for any fudge factor.
func ClipRay(x, y, fudge float32) Ray {
	near := math.Vec3{X: x * (1 - fudge), Y: y * (1 - fudge), Z: -1}
	far := math.Vec3{X: x * (1 + fudge), Y: y * (1 + fudge), Z: 1}
	return Ray{Origin: near, Direction: far.Sub(near)}
}

// Hit is a picked node and its depth, 0 at the near plane and 1 at the far.
type Hit struct {
	Node  *model.Node
	Depth float32
}

// PickNode tests n's mesh alone. viewProj must be affine, which holds for
// every projection mode the viewer offers.
func PickNode(n *model.Node, viewProj math.Mat4, fudge, x, y float32) (Hit, bool) {
	if n.Mesh == nil {
		return Hit{}, false
	}
	full := viewProj.Mul(n.Mesh.Matrix(&n.Joint))
	inv, ok := full.TryInverse()
	if !ok {
		// Collapsed by a zero scale; nothing is drawn.
		return Hit{}, false
	}

	local := ClipRay(x, y, fudge).Transform(inv)
	lo, hi := n.Mesh.Geometry().Bounds()
	tmin, tmax, hit := local.IntersectAABB(NewAABB(lo, hi))
	if !hit || tmax < 0 || tmin > 1 {
		return Hit{}, false
	}
	return Hit{Node: n, Depth: max(tmin, 0)}, true
}

// Pick returns the nearest node of root's subtree under (x, y).
func Pick(root *model.Node, viewProj math.Mat4, fudge, x, y float32) (Hit, bool) {
	var best Hit
	found := false
	root.Walk(func(n *model.Node, _ int) bool {
		if h, ok := PickNode(n, viewProj, fudge, x, y); ok && (!found || h.Depth < best.Depth) {
			best, found = h, true
		}
		return true
	})
	return best, found
}
