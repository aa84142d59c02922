package texture

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/Faultbox/articula/internal/engine/model"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
			} else {
				img.SetNRGBA(x, y, color.NRGBA{G: 255, A: 255})
			}
		}
	}
	return img
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestDecodePNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), "c.png", checker(4, 2))

	img, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.NRGBAAt(1, 0))
}

func TestDecodeBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, checker(2, 2)))

	img, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, img.NRGBAAt(0, 1))
}

// tgaPixel is an uncompressed true-colour 1x1 TGA, 32 bits, top-left
// origin. Pixels are BGRA.
var tgaPixel = []byte{
	0, 0, 2, 0, 0, 0, 0, 0,
	0, 0, 0, 0,
	1, 0, 1, 0,
	32, 0x28,
	30, 20, 10, 255,
}

func TestDecodeTGA(t *testing.T) {
	data := append([]byte(nil), tgaPixel...)
	data = append(data, 0, 0, 0, 0, 0, 0, 0, 0)
	data = append(data, "TRUEVISION-XFILE.\x00"...)
	require.Len(t, data, len(tgaPixel)+26)

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, img.NRGBAAt(0, 0))
}

func TestDecodeShortTGA(t *testing.T) {
	require.Less(t, len(tgaPixel), 26)

	img, err := Decode(tgaPixel)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, img.NRGBAAt(0, 0))
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte("not an image"))
	assert.Error(t, err)

	_, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestToNRGBAOffsetOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.SetRGBA(5, 5, color.RGBA{B: 255, A: 255})

	img := ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), img.Bounds())
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 0))
}

func TestPlaceholder(t *testing.T) {
	img := Placeholder()
	assert.Equal(t, []uint8{0, 0, 255, 255}, img.Pix)
}

func TestIsPowerOfTwo(t *testing.T) {
	tests := []struct {
		w, h int
		want bool
	}{
		{1, 1, true},
		{256, 512, true},
		{300, 256, false},
		{256, 0, false},
		{3, 4, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPowerOfTwo(tt.w, tt.h), "%dx%d", tt.w, tt.h)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	bump := writePNG(t, dir, "bump.png", checker(2, 2))
	face := writePNG(t, dir, "face.png", checker(1, 1))

	src := Sources{Bump: bump}
	src.Cube[FacePosX] = face
	src.Cube[FaceNegZ] = face

	cache := NewCache()
	results, err := LoadAll(context.Background(), cache, src)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 2, cache.Len())

	var faces []int
	for _, r := range results {
		if r.Mode == model.TextureReflective {
			faces = append(faces, r.Face)
		} else {
			assert.Equal(t, model.TextureBump, r.Mode)
		}
	}
	assert.ElementsMatch(t, []int{FacePosX, FaceNegZ}, faces)
}

func TestLoadAllReportsFailure(t *testing.T) {
	dir := t.TempDir()
	src := Sources{
		Bump:  writePNG(t, dir, "bump.png", checker(2, 2)),
		Image: filepath.Join(dir, "missing.png"),
	}

	results, err := LoadAll(context.Background(), NewCache(), src)
	assert.Error(t, err)
	assert.Len(t, results, 1)
}

func TestLoadAsyncCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := Sources{Image: writePNG(t, t.TempDir(), "img.png", checker(2, 2))}
	_, err := LoadAll(ctx, NewCache(), src)
	assert.ErrorIs(t, err, context.Canceled)
}
