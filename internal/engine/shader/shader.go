// Package shader provides OpenGL shader compilation and the linked program
// the scene graph draws with.
package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	"github.com/Faultbox/articula/internal/engine/gpu"
	"github.com/Faultbox/articula/internal/engine/shader/shaders"
)

// Texture units the articulated program samples from.
const (
	UnitImage = 0
	UnitCube  = 1
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, errors.Errorf("link: %s", string(log))
	}

	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, errors.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// Program is a linked GL program implementing gpu.Program. Locations are
// queried once per name and cached. Use it only on the GL thread.
type Program struct {
	id       uint32
	attribs  *locations
	uniforms *locations
}

// NewProgram compiles and links a program from GLSL sources.
func NewProgram(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Program{
		id: id,
		attribs: newLocations(func(name string) int32 {
			return gl.GetAttribLocation(id, gl.Str(name+"\x00"))
		}),
		uniforms: newLocations(func(name string) int32 {
			return gl.GetUniformLocation(id, gl.Str(name+"\x00"))
		}),
	}, nil
}

// Articulated builds the program every mesh node draws with and binds its
// samplers to UnitImage and UnitCube.
func Articulated() (*Program, error) {
	p, err := NewProgram(shaders.ArticulatedVertexShader, shaders.ArticulatedFragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "articulated program")
	}

	gl.UseProgram(p.id)
	if loc := p.Uniform(gpu.UniformSampler); loc >= 0 {
		gl.Uniform1i(loc, UnitImage)
	}
	if loc := p.Uniform(gpu.UniformCubeSampler); loc >= 0 {
		gl.Uniform1i(loc, UnitCube)
	}
	gl.UseProgram(0)

	return p, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 { return p.id }

// Attrib implements gpu.Program.
func (p *Program) Attrib(name string) int32 { return p.attribs.get(name) }

// Uniform implements gpu.Program.
func (p *Program) Uniform(name string) int32 { return p.uniforms.get(name) }

// Delete frees the GL program.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// locations caches name lookups, including misses.
type locations struct {
	lookup func(string) int32
	cache  map[string]int32
}

func newLocations(lookup func(string) int32) *locations {
	return &locations{lookup: lookup, cache: make(map[string]int32)}
}

func (l *locations) get(name string) int32 {
	if loc, ok := l.cache[name]; ok {
		return loc
	}
	loc := l.lookup(name)
	l.cache[name] = loc
	return loc
}
