package renderer

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/Faultbox/articula/internal/engine/texture"
)

// cubeFaces stages the six cube map faces at one square size. GL samples an
// incomplete cube map as black, so a face that changes the size forces every
// face to be uploaded again.
type cubeFaces struct {
	size   int
	faces  [texture.CubeFaces]*image.NRGBA
	loaded [texture.CubeFaces]bool
}

func newCubeFaces() *cubeFaces {
	c := &cubeFaces{size: 1}
	for i := range c.faces {
		c.faces[i] = placeholderSquare(1)
	}
	return c
}

// set stores img as face and returns the faces that need uploading. The
// first decoded face picks the size; later faces are scaled to it.
func (c *cubeFaces) set(face int, img *image.NRGBA) []int {
	if face < 0 || face >= texture.CubeFaces {
		return nil
	}

	anyLoaded := false
	for _, l := range c.loaded {
		anyLoaded = anyLoaded || l
	}

	resized := false
	if !anyLoaded {
		b := img.Rect
		if size := max(b.Dx(), b.Dy()); size != c.size {
			c.size = size
			resized = true
		}
	}

	c.faces[face] = square(img, c.size)
	c.loaded[face] = true

	if !resized {
		return []int{face}
	}
	all := make([]int, 0, texture.CubeFaces)
	for i := range c.faces {
		if !c.loaded[i] {
			c.faces[i] = placeholderSquare(c.size)
		}
		all = append(all, i)
	}
	return all
}

func square(img *image.NRGBA, size int) *image.NRGBA {
	b := img.Rect
	if b.Dx() == size && b.Dy() == size && b.Min == (image.Point{}) {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func placeholderSquare(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		copy(img.Pix[i:i+4], texture.PlaceholderTexel[:])
	}
	return img
}
