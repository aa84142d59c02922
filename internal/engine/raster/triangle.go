package raster

import (
	"image"
	gomath "math"

	"github.com/pkg/errors"

	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/pkg/math"
)

// vertex is one fetched vertex after the transform stage.
type vertex struct {
	// Screen position in image pixels and window depth in [0, 1].
	sx, sy, depth float64
	clipped       bool

	normal    math.Vec3
	tangent   math.Vec3
	bitangent math.Vec3
	uv        [2]float32
	color     [4]float32
}

// fetch reads vertex idx from the bound attributes and runs the vertex stage:
// clip = projection · transform · position, then the xy perspective divide by
// 1 + z·fudge.
func (b *Backend) fetch(idx int) (vertex, error) {
	var raw [numAttribs][4]float32
	for loc := range b.attribs {
		a := b.attribs[loc]
		if !a.set {
			continue
		}
		data := b.buffers[a.buf].floats
		start := idx*a.stride + a.offset
		if start < 0 || start+a.size > len(data) {
			return vertex{}, errors.Errorf("vertex %d outside attribute %d data", idx, loc)
		}
		copy(raw[loc][:], data[start:start+a.size])
	}
	if !b.attribs[locColor].set {
		raw[locColor] = model.White
	}

	p := raw[locPosition]
	clip := b.u.projection.Mul(b.u.transform).MulVec4(math.Vec4{p[0], p[1], p[2], 1})

	divide := 1 + clip[2]*b.u.fudge
	if divide == 0 || clip[3] == 0 {
		return vertex{clipped: true}, nil
	}
	x := float64(clip[0]/divide) / float64(clip[3])
	y := float64(clip[1]/divide) / float64(clip[3])
	z := float64(clip[2]) / float64(clip[3])

	vp := b.viewport
	v := vertex{
		sx:        float64(vp.Min.X) + (x+1)/2*float64(vp.Dx()),
		sy:        float64(vp.Max.Y) - (y+1)/2*float64(vp.Dy()),
		depth:     (z + 1) / 2,
		normal:    b.direction(raw[locNormal]),
		tangent:   b.direction(raw[locTangent]),
		bitangent: b.direction(raw[locBitangent]),
		uv:        [2]float32{raw[locTexCoord][0], raw[locTexCoord][1]},
		color:     raw[locColor],
	}
	return v, nil
}

// direction moves a model-space direction into world space.
func (b *Backend) direction(d [4]float32) math.Vec3 {
	w := b.u.transform.TransformDirection([3]float32{d[0], d[1], d[2]})
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}.Normalize()
}

// rasterize fills one triangle with a barycentric edge walk over its
// bounding box, clipped to the viewport.
func (b *Backend) rasterize(tri *[3]vertex) {
	v0, v1, v2 := &tri[0], &tri[1], &tri[2]
	if v0.clipped || v1.clipped || v2.clipped {
		return
	}

	det := (v1.sy-v2.sy)*(v0.sx-v2.sx) + (v2.sx-v1.sx)*(v0.sy-v2.sy)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1 / det

	area := b.viewport.Intersect(b.fb.Color.Rect)
	bounds := image.Rect(
		int(gomath.Floor(min(v0.sx, v1.sx, v2.sx))),
		int(gomath.Floor(min(v0.sy, v1.sy, v2.sy))),
		int(gomath.Ceil(max(v0.sx, v1.sx, v2.sx)))+1,
		int(gomath.Ceil(max(v0.sy, v1.sy, v2.sy)))+1,
	).Intersect(area)
	if bounds.Empty() {
		return
	}

	f := b.setupFace(tri)

	dy12 := v1.sy - v2.sy
	dx21 := v2.sx - v1.sx
	dy20 := v2.sy - v0.sy
	dx02 := v0.sx - v2.sx

	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		dsy := float64(py) + 0.5 - v2.sy
		row := py * b.fb.Width
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			dsx := float64(px) + 0.5 - v2.sx
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			depth := w0*v0.depth + w1*v1.depth + w2*v2.depth
			if depth < 0 || depth > 1 {
				continue
			}
			zi := row + px
			if b.depthTest {
				if float32(depth) >= b.fb.Depth[zi] {
					continue
				}
				b.fb.Depth[zi] = float32(depth)
			}

			u := w0*float64(v0.uv[0]) + w1*float64(v1.uv[0]) + w2*float64(v2.uv[0])
			v := w0*float64(v0.uv[1]) + w1*float64(v1.uv[1]) + w2*float64(v2.uv[1])
			b.fb.Color.SetNRGBA(px, py, b.shade(&f, u, v))
		}
	}
}
