package model

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/articula/internal/engine/gpu"
	"github.com/Faultbox/articula/pkg/math"
)

// DrawParams carries the per-context state every mesh draw binds.
type DrawParams struct {
	// Projection is the composed projection · camera matrix.
	Projection math.Mat4
	// Color is the flat base colour.
	Color   math.Vec3
	Mode    ProjectionMode
	Shading bool
	Texture TextureMode
	// View is the world-space direction the camera looks along. Zero means -Z.
	View math.Vec3
}

// ViewDirection returns the unit view direction used by reflective shading.
func (p DrawParams) ViewDirection() math.Vec3 {
	if p.View == (math.Vec3{}) {
		return math.Vec3{Z: -1}
	}
	return p.View.Normalize()
}

// FudgeFactor returns the shader perspective-correction factor for the mode.
func (p DrawParams) FudgeFactor() float32 {
	if p.Mode == Perspective {
		return 1
	}
	return 0
}

// Mesh is a mesh node: immutable geometry plus a mesh-local transform that
// offsets the visual mesh from the joint that owns it.
type Mesh struct {
	Name string
	// Local is blended with the owner's joint transform at draw time.
	Local Transform

	geometry Geometry
	color    [4]float32

	// Uploaded buffers per backend. Entries are rebuilt when the vertex
	// colour changes; geometry never changes after construction.
	buffers map[gpu.Backend]*meshBuffers
}

type meshBuffers struct {
	vbo   gpu.Buffer
	ibo   gpu.Buffer
	count int
	color [4]float32
}

// NewMesh creates a mesh with identity local transform and white vertices.
func NewMesh(name string, g Geometry) *Mesh {
	return &Mesh{
		Name:     name,
		Local:    IdentityTransform(),
		geometry: g,
		color:    White,
	}
}

// Geometry returns the mesh geometry.
func (m *Mesh) Geometry() Geometry { return m.geometry }

// VertexColor returns the per-vertex colour attribute.
func (m *Mesh) VertexColor() [4]float32 { return m.color }

// SetVertexColor overrides the per-vertex colour attribute.
func (m *Mesh) SetVertexColor(c [4]float32) { m.color = c }

// Vertices returns the derived per-vertex attributes for the current colour.
func (m *Mesh) Vertices() []Vertex {
	return DeriveVertices(m.geometry, m.color)
}

// Matrix composes the mesh-local transform with parent.
func (m *Mesh) Matrix(parent *Transform) math.Mat4 {
	return Compose(m.Local, parent).Matrix()
}

// Draw uploads the mesh if needed, binds attributes and uniforms on program
// and submits one indexed draw.
func (m *Mesh) Draw(b gpu.Backend, program gpu.Program, params DrawParams, parent *Transform) error {
	b.UseProgram(program)

	buf, err := m.upload(b)
	if err != nil {
		return err
	}

	attribs := [...]struct {
		name         string
		size, offset int
	}{
		{gpu.AttribPosition, 3, OffsetPosition},
		{gpu.AttribNormal, 3, OffsetNormal},
		{gpu.AttribTangent, 3, OffsetTangent},
		{gpu.AttribBitangent, 3, OffsetBitangent},
		{gpu.AttribTexCoord, 2, OffsetTexCoord},
		{gpu.AttribColor, 4, OffsetColor},
	}
	for _, a := range attribs {
		if loc := program.Attrib(a.name); loc >= 0 {
			b.VertexAttrib(loc, buf.vbo, a.size, VertexStride, a.offset)
		}
	}

	b.Uniform3f(program.Uniform(gpu.UniformColor), params.Color.Array())
	b.UniformMat4(program.Uniform(gpu.UniformTransform), m.Matrix(parent))
	b.UniformMat4(program.Uniform(gpu.UniformProjection), params.Projection)
	b.Uniform1f(program.Uniform(gpu.UniformFudgeFactor), params.FudgeFactor())
	b.Uniform1i(program.Uniform(gpu.UniformUseShading), boolToInt(params.Shading))
	b.Uniform1i(program.Uniform(gpu.UniformTextureType), int32(params.Texture))
	b.Uniform3f(program.Uniform(gpu.UniformViewDir), params.ViewDirection().Array())

	if err := b.DrawElements(buf.ibo, buf.count); err != nil {
		return errors.Wrapf(err, "draw mesh %q", m.Name)
	}
	return nil
}

func (m *Mesh) upload(b gpu.Backend) (*meshBuffers, error) {
	if buf, ok := m.buffers[b]; ok {
		if buf.color != m.color {
			b.ArrayData(buf.vbo, Interleave(m.Vertices()))
			buf.color = m.color
		}
		return buf, nil
	}

	vbo, err := b.CreateBuffer()
	if err != nil {
		return nil, errors.Wrapf(err, "mesh %q: vertex buffer", m.Name)
	}
	ibo, err := b.CreateBuffer()
	if err != nil {
		b.DeleteBuffer(vbo)
		return nil, errors.Wrapf(err, "mesh %q: index buffer", m.Name)
	}

	vertices := m.Vertices()
	b.ArrayData(vbo, Interleave(vertices))
	b.ElementData(ibo, SequentialIndices(len(vertices)))

	buf := &meshBuffers{vbo: vbo, ibo: ibo, count: len(vertices), color: m.color}
	if m.buffers == nil {
		m.buffers = make(map[gpu.Backend]*meshBuffers)
	}
	m.buffers[b] = buf
	return buf, nil
}

// Release frees the buffers uploaded to b. The mesh re-uploads on its next draw.
func (m *Mesh) Release(b gpu.Backend) {
	buf, ok := m.buffers[b]
	if !ok {
		return
	}
	b.DeleteBuffer(buf.vbo)
	b.DeleteBuffer(buf.ibo)
	delete(m.buffers, b)
}

// Uploaded reports whether the mesh currently holds buffers on b.
func (m *Mesh) Uploaded(b gpu.Backend) bool {
	_, ok := m.buffers[b]
	return ok
}

func boolToInt(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
