// Package snapshot encodes rendered frames to PNG or WebP files.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Format is an output image encoding.
type Format int

// Formats.
const (
	PNG Format = iota
	WebP
)

func (f Format) String() string {
	if f == WebP {
		return "webp"
	}
	return "png"
}

// Ext returns the file extension, with the dot.
func (f Format) Ext() string { return "." + f.String() }

// ParseFormat maps "png" or "webp" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "png":
		return PNG, nil
	case "webp":
		return WebP, nil
	}
	return 0, errors.Errorf("unknown image format %q", s)
}

// FormatFromPath picks the format from a file extension, defaulting to PNG.
func FormatFromPath(path string) Format {
	if f, err := ParseFormat(filepath.Ext(path)); err == nil {
		return f
	}
	return PNG
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case WebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return errors.Wrap(err, "encode webp")
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return errors.Wrap(err, "encode png")
		}
	}
	return nil
}

// Save writes img to path, creating parent directories.
func Save(path string, img image.Image, f Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(err, "creating output dir")
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating file")
	}
	if err := Encode(file, img, f); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "closing file")
}

// FromBottomUp copies RGBA rows stored bottom to top, as OpenGL reads them,
// into an image with rows top to bottom.
func FromBottomUp(pixels []byte, width, height int) (*image.NRGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, errors.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcOffset := (height - 1 - y) * rowSize
		dstOffset := y * img.Stride
		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img, nil
}

// Downsample shrinks img by an integer factor with CatmullRom filtering in
// premultiplied alpha, so transparent edges do not darken.
func Downsample(img *image.NRGBA, factor int) *image.NRGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	w, h := max(b.Dx()/factor, 1), max(b.Dy()/factor, 1)

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	scaled := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(scaled, scaled.Bounds(), premul, b, draw.Src, nil)

	out := image.NewNRGBA(scaled.Bounds())
	draw.Draw(out, out.Bounds(), scaled, image.Point{}, draw.Src)
	return out
}

// Capture writes timestamped frames into a directory.
type Capture struct {
	OutputDir string
	Prefix    string
	Format    Format

	now func() time.Time
}

// NewCapture creates a capture handler writing prefix_<timestamp> files.
func NewCapture(outputDir, prefix string, f Format) *Capture {
	return &Capture{OutputDir: outputDir, Prefix: prefix, Format: f, now: time.Now}
}

// Filename generates the next file name without saving.
func (c *Capture) Filename() string {
	timestamp := c.now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s%s", c.Prefix, timestamp, c.Format.Ext())
	if c.OutputDir != "" {
		filename = filepath.Join(c.OutputDir, filename)
	}
	return filename
}

// Save writes img under a fresh file name and returns it.
func (c *Capture) Save(img image.Image) (string, error) {
	filename := c.Filename()
	if err := Save(filename, img, c.Format); err != nil {
		return "", err
	}
	return filename, nil
}
