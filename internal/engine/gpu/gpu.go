// Package gpu defines the rasterization backend contract the scene graph draws through.
//
// Two implementations exist: renderer.GL for an OpenGL 4.1 context and
// raster.Backend, a software rasterizer used for headless snapshots and tests.
package gpu

import "github.com/Faultbox/articula/pkg/math"

// Shader interface names shared by every backend and the GLSL sources.
const (
	AttribPosition  = "aPosition"
	AttribNormal    = "aNormal"
	AttribTangent   = "aTangent"
	AttribBitangent = "aBitangent"
	AttribTexCoord  = "aTexCoord"
	AttribColor     = "aColor"

	UniformColor        = "uColor"
	UniformTransform    = "uTransform"
	UniformProjection   = "uProjection"
	UniformFudgeFactor  = "uFudgeFactor"
	UniformUseShading   = "uUseShading"
	UniformTextureType  = "uTextureType"
	UniformLightDir     = "uLightDirection"
	UniformSampler      = "uSampler"
	UniformCubeSampler  = "uCubeSampler"
	UniformAmbient      = "uAmbient"
	UniformDiffuse      = "uDiffuse"
	UniformViewDir      = "uViewDirection"
)

// Buffer is an opaque GPU buffer handle. Zero is never a valid buffer.
type Buffer uint32

// Program exposes named attribute and uniform locations of a linked shader
// program. Unknown or inactive names return -1, which every Backend ignores.
type Program interface {
	Attrib(name string) int32
	Uniform(name string) int32
}

// Backend is the subset of a rasterization API the scene graph needs.
// Methods must be called from the goroutine that owns the context.
type Backend interface {
	// Viewport sets the target rectangle in pixels, origin bottom-left.
	Viewport(x, y, width, height int)
	// Clear fills the current viewport with a colour and resets its depth.
	Clear(r, g, b, a float32)
	EnableDepthTest()
	UseProgram(p Program)

	CreateBuffer() (Buffer, error)
	DeleteBuffer(b Buffer)
	// ArrayData uploads interleaved vertex floats.
	ArrayData(b Buffer, data []float32)
	// ElementData uploads 16-bit triangle-list indices.
	ElementData(b Buffer, data []uint16)
	// VertexAttrib binds loc to size floats at offset within each stride-float vertex of b.
	VertexAttrib(loc int32, b Buffer, size, stride, offset int)

	Uniform1f(loc int32, v float32)
	Uniform1i(loc int32, v int32)
	Uniform3f(loc int32, v [3]float32)
	UniformMat4(loc int32, m math.Mat4)

	// DrawElements submits count indices of b as a triangle list.
	DrawElements(b Buffer, count int) error
}
