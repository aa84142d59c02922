// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// ArticulatedVertexShader transforms mesh vertices and applies the
// perspective fudge divide.
//
//go:embed articulated.vert
var ArticulatedVertexShader string

// ArticulatedFragmentShader implements the flat, bump, reflective and image
// texture paths with optional Lambert shading.
//
//go:embed articulated.frag
var ArticulatedFragmentShader string
