// Package texture decodes and caches the images behind each texture mode.
// GPU upload lives with the backends; this package never touches a context.
package texture

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// PlaceholderTexel is the colour shown until an image finishes loading.
var PlaceholderTexel = [4]uint8{0, 0, 255, 255}

// Placeholder returns a fresh 1x1 image holding PlaceholderTexel.
func Placeholder() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, PlaceholderTexel[:])
	return img
}

// LoadImage reads and decodes a PNG, JPEG, BMP or TGA file.
func LoadImage(path string) (*image.NRGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// Decode decodes PNG, JPEG, BMP or TGA data into NRGBA. The format is
// chosen from the leading signature; data with none is read as TGA.
func Decode(data []byte) (*image.NRGBA, error) {
	r := bytes.NewReader(data)

	var img image.Image
	var err error
	switch {
	case bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")):
		img, err = png.Decode(r)
	case bytes.HasPrefix(data, []byte{0xff, 0xd8}):
		img, err = jpeg.Decode(r)
	case bytes.HasPrefix(data, []byte("BM")):
		img, err = bmp.Decode(r)
	default:
		img, err = tga.Decode(bytes.NewReader(padTGA(data)))
	}
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img), nil
}

// tgaFooterSize is the TGA 2.0 footer the decoder seeks to from the end.
const tgaFooterSize = 26

// padTGA zero-pads files shorter than the footer so the footer seek stays
// in range. Trailing zeros never match the signature and are not read as pixels.
func padTGA(data []byte) []byte {
	if len(data) >= tgaFooterSize {
		return data
	}
	padded := make([]byte, tgaFooterSize)
	copy(padded, data)
	return padded
}

// ToNRGBA converts img to *image.NRGBA with its origin at (0, 0).
// An NRGBA input already at the origin is returned as is.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if n, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// IsPowerOfTwo reports whether both sides are powers of two, the condition
// for generating mipmaps instead of clamping.
func IsPowerOfTwo(width, height int) bool {
	return width > 0 && height > 0 && width&(width-1) == 0 && height&(height-1) == 0
}
