// Package gputest provides a recording gpu.Backend for tests.
package gputest

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/articula/internal/engine/gpu"
	"github.com/Faultbox/articula/pkg/math"
)

var names = []string{
	gpu.AttribPosition,
	gpu.AttribNormal,
	gpu.AttribTangent,
	gpu.AttribBitangent,
	gpu.AttribTexCoord,
	gpu.AttribColor,
	gpu.UniformColor,
	gpu.UniformTransform,
	gpu.UniformProjection,
	gpu.UniformFudgeFactor,
	gpu.UniformUseShading,
	gpu.UniformTextureType,
	gpu.UniformLightDir,
	gpu.UniformAmbient,
	gpu.UniformDiffuse,
	gpu.UniformViewDir,
}

// Program resolves every known shader name to a stable location.
type Program struct{}

// Attrib implements gpu.Program.
func (Program) Attrib(name string) int32 { return lookup(name) }

// Uniform implements gpu.Program.
func (Program) Uniform(name string) int32 { return lookup(name) }

func lookup(name string) int32 {
	for i, n := range names {
		if n == name {
			return int32(i)
		}
	}
	return -1
}

// Draw is one recorded DrawElements call with the uniforms bound at the time.
type Draw struct {
	Buffer   gpu.Buffer
	Count    int
	Uniforms map[string]any
}

// Mat4 returns a matrix uniform of the draw.
func (d Draw) Mat4(name string) math.Mat4 {
	m, _ := d.Uniforms[name].(math.Mat4)
	return m
}

// Recorder is a gpu.Backend that keeps every call in memory.
type Recorder struct {
	Viewports    [][4]int
	Clears       int
	DepthTests   int
	Draws        []Draw
	Arrays       map[gpu.Buffer][]float32
	Elements     map[gpu.Buffer][]uint16
	Live         map[gpu.Buffer]bool
	Created      int
	Deleted      int
	ArrayUploads int

	// DrawErr, when set, is returned by every DrawElements call.
	DrawErr error

	next     gpu.Buffer
	uniforms map[string]any
}

// New returns an empty recorder.
func New() *Recorder {
	return &Recorder{
		Arrays:   make(map[gpu.Buffer][]float32),
		Elements: make(map[gpu.Buffer][]uint16),
		Live:     make(map[gpu.Buffer]bool),
		uniforms: make(map[string]any),
	}
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.Viewports = append(r.Viewports, [4]int{x, y, width, height})
}

func (r *Recorder) Clear(_, _, _, _ float32) { r.Clears++ }

func (r *Recorder) EnableDepthTest() { r.DepthTests++ }

func (r *Recorder) UseProgram(gpu.Program) {}

func (r *Recorder) CreateBuffer() (gpu.Buffer, error) {
	r.next++
	r.Created++
	r.Live[r.next] = true
	return r.next, nil
}

func (r *Recorder) DeleteBuffer(b gpu.Buffer) {
	if r.Live[b] {
		r.Deleted++
	}
	delete(r.Live, b)
	delete(r.Arrays, b)
	delete(r.Elements, b)
}

func (r *Recorder) ArrayData(b gpu.Buffer, data []float32) {
	r.ArrayUploads++
	r.Arrays[b] = append([]float32(nil), data...)
}

func (r *Recorder) ElementData(b gpu.Buffer, data []uint16) {
	r.Elements[b] = append([]uint16(nil), data...)
}

func (r *Recorder) VertexAttrib(loc int32, _ gpu.Buffer, size, _, _ int) {
	r.set(loc, size)
}

func (r *Recorder) Uniform1f(loc int32, v float32) { r.set(loc, v) }
func (r *Recorder) Uniform1i(loc int32, v int32) { r.set(loc, v) }
func (r *Recorder) Uniform3f(loc int32, v [3]float32) { r.set(loc, v) }
func (r *Recorder) UniformMat4(loc int32, m math.Mat4) { r.set(loc, m) }

func (r *Recorder) set(loc int32, v any) {
	if loc < 0 || int(loc) >= len(names) {
		return
	}
	r.uniforms[names[loc]] = v
}

func (r *Recorder) DrawElements(b gpu.Buffer, count int) error {
	if r.DrawErr != nil {
		return r.DrawErr
	}
	if !r.Live[b] {
		return errors.Errorf("draw from deleted buffer %d", b)
	}
	u := make(map[string]any, len(r.uniforms))
	for k, v := range r.uniforms {
		u[k] = v
	}
	r.Draws = append(r.Draws, Draw{Buffer: b, Count: count, Uniforms: u})
	return nil
}

// Reset forgets recorded draws and frame calls but keeps live buffers.
func (r *Recorder) Reset() {
	r.Viewports = nil
	r.Clears = 0
	r.DepthTests = 0
	r.Draws = nil
}
