package snapshot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", PNG, false},
		{".PNG", PNG, false},
		{"webp", WebP, false},
		{"gif", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	assert.Equal(t, WebP, FormatFromPath("out/frame.webp"))
	assert.Equal(t, PNG, FormatFromPath("frame"))
	assert.Equal(t, ".webp", WebP.Ext())
}

func TestEncodePNGRoundTrip(t *testing.T) {
	src := solid(3, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, src, PNG))

	got, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, src.Bounds(), got.Bounds())
	r, g, b, _ := got.At(2, 1).RGBA()
	assert.Equal(t, []uint32{10, 20, 30}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestEncodeWebP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, solid(4, 4, color.NRGBA{R: 200, A: 255}), WebP))

	data := buf.Bytes()
	require.Greater(t, len(data), 12)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WEBP", string(data[8:12]))
}

func TestSaveCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "frame.png")
	require.NoError(t, Save(path, solid(1, 1, color.NRGBA{A: 255}), PNG))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestFromBottomUp(t *testing.T) {
	// Two rows: bottom red, top blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromBottomUp(pixels, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 1))

	_, err = FromBottomUp(pixels, 2, 2)
	assert.Error(t, err)
}

func TestDownsample(t *testing.T) {
	src := solid(8, 4, color.NRGBA{R: 40, G: 80, B: 120, A: 255})

	got := Downsample(src, 2)
	assert.Equal(t, image.Rect(0, 0, 4, 2), got.Bounds())
	px := got.NRGBAAt(1, 1)
	assert.InDelta(t, 40, px.R, 1)
	assert.InDelta(t, 80, px.G, 1)
	assert.InDelta(t, 120, px.B, 1)
	assert.Equal(t, uint8(255), px.A)

	assert.Same(t, src, Downsample(src, 1))
}

func TestDownsampleKeepsTransparentEdgesClean(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	got := Downsample(src, 2)
	edge := got.NRGBAAt(1, 0)
	if edge.A > 0 {
		assert.Equal(t, uint8(255), edge.R, "visible edge pixel keeps full red")
	}
}

func TestCaptureFilename(t *testing.T) {
	c := NewCapture("shots", "articula", WebP)
	c.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC) }

	assert.Equal(t, filepath.Join("shots", "articula_2024-03-09_14-05-06.webp"), c.Filename())

	c.OutputDir = t.TempDir()
	c.Format = PNG
	name, err := c.Save(solid(2, 2, color.NRGBA{G: 255, A: 255}))
	require.NoError(t, err)
	assert.FileExists(t, name)
}
