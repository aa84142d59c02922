package raster

import (
	"image"

	"github.com/Faultbox/articula/internal/engine/texture"
	"github.com/Faultbox/articula/pkg/math"
)

// sample performs bilinear filtering with repeat wrapping and returns
// channels in [0, 1].
func sample(tex *image.NRGBA, u, v float64) [4]float64 {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()

	u -= float64(int(u))
	if u < 0 {
		u += 1
	}
	v -= float64(int(v))
	if v < 0 {
		v += 1
	}

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	stride := tex.Stride
	pix := tex.Pix
	i00 := y0*stride + x0*4
	i10 := y0*stride + x1*4
	i01 := y1*stride + x0*4
	i11 := y1*stride + x1*4

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	var out [4]float64
	for c := range out {
		out[c] = (float64(pix[i00+c])*w00 + float64(pix[i10+c])*w10 +
			float64(pix[i01+c])*w01 + float64(pix[i11+c])*w11) / 255
	}
	return out
}

// sampleCube looks up a direction in six cubemap faces ordered +X -X +Y -Y +Z -Z.
// Missing faces read as white.
func sampleCube(faces *[texture.CubeFaces]*image.NRGBA, d math.Vec3) [4]float64 {
	ax, ay, az := abs64(d.X), abs64(d.Y), abs64(d.Z)

	var face int
	var sc, tc, ma float64
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if d.X > 0 {
			face, sc, tc = texture.FacePosX, -float64(d.Z), -float64(d.Y)
		} else {
			face, sc, tc = texture.FaceNegX, float64(d.Z), -float64(d.Y)
		}
	case ay >= az:
		ma = ay
		if d.Y > 0 {
			face, sc, tc = texture.FacePosY, float64(d.X), float64(d.Z)
		} else {
			face, sc, tc = texture.FaceNegY, float64(d.X), -float64(d.Z)
		}
	default:
		ma = az
		if d.Z > 0 {
			face, sc, tc = texture.FacePosZ, float64(d.X), -float64(d.Y)
		} else {
			face, sc, tc = texture.FaceNegZ, -float64(d.X), -float64(d.Y)
		}
	}

	tex := faces[face]
	if tex == nil || ma == 0 {
		return [4]float64{1, 1, 1, 1}
	}
	return sample(tex, (sc/ma+1)/2, (tc/ma+1)/2)
}

func abs64(v float32) float64 {
	if v < 0 {
		return float64(-v)
	}
	return float64(v)
}
