// Package raster is a software gpu.Backend. It rasterizes indexed triangle
// lists into an in-memory RGBA image with a depth buffer, for headless
// snapshots and tests.
package raster

import (
	"image"
	"image/color"
)

// FrameBuffer holds the render target. Color rows run top to bottom; Depth
// has one entry per pixel, 1 being the far plane.
type FrameBuffer struct {
	Width  int
	Height int
	Color  *image.NRGBA
	Depth  []float32
}

// NewFrameBuffer allocates a transparent colour buffer with depth at the far plane.
func NewFrameBuffer(w, h int) *FrameBuffer {
	depth := make([]float32, w*h)
	for i := range depth {
		depth[i] = 1
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  image.NewNRGBA(image.Rect(0, 0, w, h)),
		Depth:  depth,
	}
}

// rect converts a bottom-left origin rectangle into image space.
func (fb *FrameBuffer) rect(x, y, w, h int) image.Rectangle {
	return image.Rect(x, fb.Height-y-h, x+w, fb.Height-y)
}

// fill clears the part of r inside the buffer to c and resets its depth.
func (fb *FrameBuffer) fill(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(fb.Color.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		row := py * fb.Width
		for px := r.Min.X; px < r.Max.X; px++ {
			fb.Color.SetNRGBA(px, py, c)
			fb.Depth[row+px] = 1
		}
	}
}
