package raster

import (
	"image"
	"image/color"

	"github.com/pkg/errors"

	"github.com/Faultbox/articula/internal/engine/gpu"
	"github.com/Faultbox/articula/internal/engine/lighting"
	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/internal/engine/texture"
	"github.com/Faultbox/articula/pkg/math"
)

// Draw errors.
var (
	ErrUnknownBuffer  = errors.New("unknown buffer")
	ErrForeignProgram = errors.New("program not built for the software backend")
	ErrNoPosition     = errors.New("position attribute not bound")
)

const (
	locPosition int32 = iota
	locNormal
	locTangent
	locBitangent
	locTexCoord
	locColor
	numAttribs
)

const (
	locUColor int32 = iota
	locTransform
	locProjection
	locFudge
	locUseShading
	locTextureType
	locLightDir
	locAmbient
	locDiffuse
	locViewDir
)

var attribLocations = map[string]int32{
	gpu.AttribPosition:  locPosition,
	gpu.AttribNormal:    locNormal,
	gpu.AttribTangent:   locTangent,
	gpu.AttribBitangent: locBitangent,
	gpu.AttribTexCoord:  locTexCoord,
	gpu.AttribColor:     locColor,
}

var uniformLocations = map[string]int32{
	gpu.UniformColor:       locUColor,
	gpu.UniformTransform:   locTransform,
	gpu.UniformProjection:  locProjection,
	gpu.UniformFudgeFactor: locFudge,
	gpu.UniformUseShading:  locUseShading,
	gpu.UniformTextureType: locTextureType,
	gpu.UniformLightDir:    locLightDir,
	gpu.UniformAmbient:     locAmbient,
	gpu.UniformDiffuse:     locDiffuse,
	gpu.UniformViewDir:     locViewDir,
}

// Program is the fixed-function program of the software backend.
type Program struct{}

// Attrib implements gpu.Program.
func (Program) Attrib(name string) int32 {
	if loc, ok := attribLocations[name]; ok {
		return loc
	}
	return -1
}

// Uniform implements gpu.Program.
func (Program) Uniform(name string) int32 {
	if loc, ok := uniformLocations[name]; ok {
		return loc
	}
	return -1
}

type buffer struct {
	floats  []float32
	indices []uint16
}

type binding struct {
	buf                  gpu.Buffer
	size, stride, offset int
	set                  bool
}

type uniforms struct {
	color       [3]float32
	transform   math.Mat4
	projection  math.Mat4
	fudge       float32
	useShading  bool
	textureType model.TextureMode
	viewDir     math.Vec3
}

// Backend renders into a FrameBuffer. It is not safe for concurrent use.
type Backend struct {
	fb        *FrameBuffer
	viewport  image.Rectangle
	depthTest bool
	program   gpu.Program

	buffers map[gpu.Buffer]*buffer
	next    gpu.Buffer

	attribs [numAttribs]binding
	u       uniforms
	light   lighting.Light

	textures map[model.TextureMode]*image.NRGBA
	cube     [texture.CubeFaces]*image.NRGBA
	bound    model.TextureMode

	draws     int
	triangles int
}

// NewBackend creates a backend with a w×h target covering the full viewport.
func NewBackend(w, h int) *Backend {
	fb := NewFrameBuffer(w, h)
	return &Backend{
		fb:       fb,
		viewport: fb.Color.Rect,
		buffers:  make(map[gpu.Buffer]*buffer),
		u: uniforms{
			transform:  math.Identity(),
			projection: math.Identity(),
			viewDir:    math.Vec3{Z: -1},
		},
		light:    lighting.Default(),
		textures: make(map[model.TextureMode]*image.NRGBA),
	}
}

// Image returns the colour buffer. It is overwritten by subsequent draws.
func (b *Backend) Image() *image.NRGBA { return b.fb.Color }

// FrameBuffer returns the render target.
func (b *Backend) FrameBuffer() *FrameBuffer { return b.fb }

// Draws returns the number of successful DrawElements calls.
func (b *Backend) Draws() int { return b.draws }

// Triangles returns the number of triangles submitted so far.
func (b *Backend) Triangles() int { return b.triangles }

// Buffers returns the number of live buffers.
func (b *Backend) Buffers() int { return len(b.buffers) }

// SetLight replaces the light used when shading is enabled.
func (b *Backend) SetLight(l lighting.Light) { b.light = l }

// SetTexture installs the 2D texture used by a bump or image texture mode.
func (b *Backend) SetTexture(mode model.TextureMode, img image.Image) {
	b.textures[mode] = texture.ToNRGBA(img)
}

// SetCubeFace installs one face of the reflective cubemap.
func (b *Backend) SetCubeFace(face int, img image.Image) {
	if face < 0 || face >= texture.CubeFaces {
		return
	}
	b.cube[face] = texture.ToNRGBA(img)
}

// BindTexture selects the texture sampled by later draws.
func (b *Backend) BindTexture(mode model.TextureMode) error {
	b.bound = mode
	return nil
}

// Viewport implements gpu.Backend.
func (b *Backend) Viewport(x, y, width, height int) {
	b.viewport = b.fb.rect(x, y, width, height)
}

// Clear implements gpu.Backend. Only the current viewport is cleared.
func (b *Backend) Clear(r, g, bl, a float32) {
	b.fb.fill(b.viewport, color.NRGBA{R: unit8(float64(r)), G: unit8(float64(g)), B: unit8(float64(bl)), A: unit8(float64(a))})
}

// EnableDepthTest implements gpu.Backend.
func (b *Backend) EnableDepthTest() { b.depthTest = true }

// UseProgram implements gpu.Backend.
func (b *Backend) UseProgram(p gpu.Program) { b.program = p }

// CreateBuffer implements gpu.Backend.
func (b *Backend) CreateBuffer() (gpu.Buffer, error) {
	b.next++
	b.buffers[b.next] = &buffer{}
	return b.next, nil
}

// DeleteBuffer implements gpu.Backend.
func (b *Backend) DeleteBuffer(id gpu.Buffer) {
	delete(b.buffers, id)
	for i := range b.attribs {
		if b.attribs[i].buf == id {
			b.attribs[i] = binding{}
		}
	}
}

// ArrayData implements gpu.Backend.
func (b *Backend) ArrayData(id gpu.Buffer, data []float32) {
	if buf, ok := b.buffers[id]; ok {
		buf.floats = append(buf.floats[:0], data...)
	}
}

// ElementData implements gpu.Backend.
func (b *Backend) ElementData(id gpu.Buffer, data []uint16) {
	if buf, ok := b.buffers[id]; ok {
		buf.indices = append(buf.indices[:0], data...)
	}
}

// VertexAttrib implements gpu.Backend.
func (b *Backend) VertexAttrib(loc int32, id gpu.Buffer, size, stride, offset int) {
	if loc < 0 || loc >= numAttribs {
		return
	}
	b.attribs[loc] = binding{buf: id, size: size, stride: stride, offset: offset, set: true}
}

// Uniform1f implements gpu.Backend.
func (b *Backend) Uniform1f(loc int32, v float32) {
	switch loc {
	case locFudge:
		b.u.fudge = v
	case locAmbient:
		b.light.Ambient = v
	case locDiffuse:
		b.light.Diffuse = v
	}
}

// Uniform1i implements gpu.Backend.
func (b *Backend) Uniform1i(loc int32, v int32) {
	switch loc {
	case locUseShading:
		b.u.useShading = v != 0
	case locTextureType:
		b.u.textureType = model.TextureMode(v)
	}
}

// Uniform3f implements gpu.Backend.
func (b *Backend) Uniform3f(loc int32, v [3]float32) {
	switch loc {
	case locUColor:
		b.u.color = v
	case locLightDir:
		b.light.Direction = math.Vec3{X: v[0], Y: v[1], Z: v[2]}.Normalize()
	case locViewDir:
		b.u.viewDir = math.Vec3{X: v[0], Y: v[1], Z: v[2]}.Normalize()
	}
}

// UniformMat4 implements gpu.Backend.
func (b *Backend) UniformMat4(loc int32, m math.Mat4) {
	switch loc {
	case locTransform:
		b.u.transform = m
	case locProjection:
		b.u.projection = m
	}
}

// DrawElements implements gpu.Backend.
func (b *Backend) DrawElements(id gpu.Buffer, count int) error {
	if _, ok := b.program.(Program); !ok {
		return ErrForeignProgram
	}
	buf, ok := b.buffers[id]
	if !ok {
		return errors.Wrapf(ErrUnknownBuffer, "element buffer %d", id)
	}
	if count > len(buf.indices) {
		return errors.Errorf("draw %d indices from a buffer of %d", count, len(buf.indices))
	}
	if !b.attribs[locPosition].set {
		return ErrNoPosition
	}
	for loc, a := range b.attribs {
		if a.set {
			if _, ok := b.buffers[a.buf]; !ok {
				return errors.Wrapf(ErrUnknownBuffer, "attribute %d buffer %d", loc, a.buf)
			}
		}
	}

	var tri [3]vertex
	for i := 0; i+2 < count; i += 3 {
		for k := range tri {
			v, err := b.fetch(int(buf.indices[i+k]))
			if err != nil {
				return err
			}
			tri[k] = v
		}
		b.rasterize(&tri)
		b.triangles++
	}
	b.draws++
	return nil
}
