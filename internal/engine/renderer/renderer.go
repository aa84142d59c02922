// Package renderer provides the OpenGL implementation of gpu.Backend.
package renderer

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/articula/internal/engine/gpu"
	"github.com/Faultbox/articula/internal/engine/shader"
	"github.com/Faultbox/articula/internal/engine/snapshot"
	"github.com/Faultbox/articula/internal/logger"
	"github.com/Faultbox/articula/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

// GL draws through an OpenGL 4.1 core context. All methods must run on the
// thread that owns the context.
type GL struct {
	config Config
	log    *zap.Logger

	// A single VAO holds every attribute binding; meshes rebind per draw.
	vao uint32

	viewport [4]int32
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*GL, error) {
	r := &GL{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initialize OpenGL")
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.DepthFunc(gl.LESS)
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	r.Viewport(0, 0, cfg.Width, cfg.Height)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return nil, errors.Errorf("renderer setup: gl error 0x%x", code)
	}
	return r, nil
}

// Close cleans up renderer resources.
func (r *GL) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
}

// Resize records the new drawable size.
func (r *GL) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the drawable size in pixels.
func (r *GL) Size() (width, height int) {
	return r.config.Width, r.config.Height
}

// Viewport implements gpu.Backend. The scissor box follows the viewport so
// Clear only touches the current view.
func (r *GL) Viewport(x, y, width, height int) {
	r.viewport = [4]int32{int32(x), int32(y), int32(width), int32(height)}
	gl.Viewport(r.viewport[0], r.viewport[1], r.viewport[2], r.viewport[3])
	gl.Scissor(r.viewport[0], r.viewport[1], r.viewport[2], r.viewport[3])
}

// Clear implements gpu.Backend.
func (r *GL) Clear(red, green, blue, alpha float32) {
	gl.Enable(gl.SCISSOR_TEST)
	gl.ClearColor(red, green, blue, alpha)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Disable(gl.SCISSOR_TEST)
}

// EnableDepthTest implements gpu.Backend.
func (r *GL) EnableDepthTest() {
	gl.Enable(gl.DEPTH_TEST)
}

// UseProgram implements gpu.Backend. Programs not built by package shader
// are ignored.
func (r *GL) UseProgram(p gpu.Program) {
	if sp, ok := p.(*shader.Program); ok {
		gl.UseProgram(sp.ID())
	}
}

// CreateBuffer implements gpu.Backend.
func (r *GL) CreateBuffer() (gpu.Buffer, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, errors.Errorf("glGenBuffers failed: gl error 0x%x", gl.GetError())
	}
	return gpu.Buffer(id), nil
}

// DeleteBuffer implements gpu.Backend.
func (r *GL) DeleteBuffer(b gpu.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

// ArrayData implements gpu.Backend.
func (r *GL) ArrayData(b gpu.Buffer, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

// ElementData implements gpu.Backend.
func (r *GL) ElementData(b gpu.Buffer, data []uint16) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(b))
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
}

// VertexAttrib implements gpu.Backend.
func (r *GL) VertexAttrib(loc int32, b gpu.Buffer, size, stride, offset int) {
	if loc < 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b))
	gl.VertexAttribPointer(uint32(loc), int32(size), gl.FLOAT, false, int32(stride*4), gl.PtrOffset(offset*4))
	gl.EnableVertexAttribArray(uint32(loc))
}

// Uniform1f implements gpu.Backend.
func (r *GL) Uniform1f(loc int32, v float32) {
	gl.Uniform1f(loc, v)
}

// Uniform1i implements gpu.Backend.
func (r *GL) Uniform1i(loc int32, v int32) {
	gl.Uniform1i(loc, v)
}

// Uniform3f implements gpu.Backend.
func (r *GL) Uniform3f(loc int32, v [3]float32) {
	gl.Uniform3f(loc, v[0], v[1], v[2])
}

// UniformMat4 implements gpu.Backend.
func (r *GL) UniformMat4(loc int32, m math.Mat4) {
	gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
}

// DrawElements implements gpu.Backend.
func (r *GL) DrawElements(b gpu.Buffer, count int) error {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(b))
	gl.DrawElements(gl.TRIANGLES, int32(count), gl.UNSIGNED_SHORT, nil)
	if code := gl.GetError(); code != gl.NO_ERROR {
		return errors.Errorf("glDrawElements: gl error 0x%x", code)
	}
	return nil
}

// ReadPixels reads the default framebuffer into an image with rows top to bottom.
func (r *GL) ReadPixels() (*image.NRGBA, error) {
	w, h := r.config.Width, r.config.Height
	raw := make([]uint8, w*h*4)
	if len(raw) > 0 {
		gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
		gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(raw))
	}
	return snapshot.FromBottomUp(raw, w, h)
}
