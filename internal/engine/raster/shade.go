package raster

import (
	"image"
	"image/color"

	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/pkg/math"
)

// face is the per-triangle state of the fragment stage. Shading is flat:
// the provoking vertex supplies the basis and colour.
type face struct {
	normal    math.Vec3
	tangent   math.Vec3
	bitangent math.Vec3
	base      [3]float64
	alpha     float64
	mode      model.TextureMode
	tex       *image.NRGBA
}

func (b *Backend) setupFace(tri *[3]vertex) face {
	v := &tri[0]
	f := face{
		normal:    v.normal,
		tangent:   v.tangent,
		bitangent: v.bitangent,
		alpha:     float64(v.color[3]),
		mode:      b.u.textureType,
	}
	for c := range f.base {
		f.base[c] = float64(b.u.color[c]) * float64(v.color[c])
	}
	if b.bound == f.mode {
		f.tex = b.textures[f.mode]
	}
	return f
}

// shade runs the fragment stage for texture coordinate (u, v). Modes with no
// bound texture fall back to the flat colour.
func (b *Backend) shade(f *face, u, v float64) color.NRGBA {
	rgb := f.base
	n := f.normal

	switch f.mode {
	case model.TextureBump:
		if f.tex != nil {
			s := sample(f.tex, u, v)
			n = f.tangent.Scale(float32(s[0]*2 - 1)).
				Add(f.bitangent.Scale(float32(s[1]*2 - 1))).
				Add(f.normal.Scale(float32(s[2]*2 - 1))).
				Normalize()
		}
	case model.TextureReflective:
		if b.bound == model.TextureReflective {
			r := reflect(b.u.viewDir, n)
			s := sampleCube(&b.cube, r)
			for c := range rgb {
				rgb[c] *= s[c]
			}
		}
	case model.TextureImage:
		if f.tex != nil {
			s := sample(f.tex, u, v)
			for c := range rgb {
				rgb[c] *= s[c]
			}
		}
	}

	if b.u.useShading {
		k := float64(b.light.Intensity(n))
		for c := range rgb {
			rgb[c] *= k
		}
	}

	return color.NRGBA{
		R: unit8(rgb[0]),
		G: unit8(rgb[1]),
		B: unit8(rgb[2]),
		A: unit8(f.alpha),
	}
}

// reflect mirrors incident direction i about unit normal n.
func reflect(i, n math.Vec3) math.Vec3 {
	return i.Sub(n.Scale(2 * n.Dot(i)))
}

func unit8(v float64) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
