// Package model implements the articulated scene graph: mesh nodes with
// immutable geometry, joint nodes arranged in a tree, and the per-draw
// transform composition and shading attribute derivation.
package model

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Axis addresses one component of a transform vector.
type Axis int

// Axes in setter order.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ErrInvalidAxis is returned by setters given an axis outside X, Y, Z.
var ErrInvalidAxis = errors.New("invalid axis")

// Valid reports whether a is X, Y or Z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "axis(" + strconv.Itoa(int(a)) + ")"
}

func checkAxis(a Axis) error {
	if !a.Valid() {
		return errors.Wrapf(ErrInvalidAxis, "axis %d", int(a))
	}
	return nil
}

// ProjectionMode selects how a render context projects the scene.
type ProjectionMode int

// Projection modes.
const (
	Orthographic ProjectionMode = iota
	Oblique
	// Perspective currently renders with an identity projection; depth
	// foreshortening comes only from the shader fudge factor.
	Perspective
)

var projectionNames = [...]string{"orthographic", "oblique", "perspective"}

// NumProjections is the number of projection modes.
const NumProjections = ProjectionMode(len(projectionNames))

// Valid reports whether m is a known projection mode.
func (m ProjectionMode) Valid() bool { return m >= 0 && int(m) < len(projectionNames) }

func (m ProjectionMode) String() string {
	if m < 0 || int(m) >= len(projectionNames) {
		return "projection(" + strconv.Itoa(int(m)) + ")"
	}
	return projectionNames[m]
}

// ParseProjection maps a name such as "oblique" to its mode.
func ParseProjection(s string) (ProjectionMode, error) {
	for i, name := range projectionNames {
		if strings.EqualFold(s, name) {
			return ProjectionMode(i), nil
		}
	}
	return 0, errors.Errorf("unknown projection mode %q", s)
}

// TextureMode selects the fragment shading path.
type TextureMode int

// Texture modes, numbered as the shader's uTextureType expects.
const (
	TextureFlat TextureMode = iota
	TextureBump
	TextureReflective
	TextureImage
)

var textureNames = [...]string{"flat", "bump", "reflective", "image"}

// NumTextures is the number of texture modes.
const NumTextures = TextureMode(len(textureNames))

// Valid reports whether m is a known texture mode.
func (m TextureMode) Valid() bool { return m >= 0 && int(m) < len(textureNames) }

func (m TextureMode) String() string {
	if m < 0 || int(m) >= len(textureNames) {
		return "texture(" + strconv.Itoa(int(m)) + ")"
	}
	return textureNames[m]
}

// ParseTexture maps a name such as "bump" to its mode.
func ParseTexture(s string) (TextureMode, error) {
	for i, name := range textureNames {
		if strings.EqualFold(s, name) {
			return TextureMode(i), nil
		}
	}
	return 0, errors.Errorf("unknown texture mode %q", s)
}

// Vertex is one expanded vertex as uploaded to the GPU.
type Vertex struct {
	Position  [3]float32
	Normal    [3]float32
	Tangent   [3]float32
	Bitangent [3]float32
	TexCoord  [2]float32
	Color     [4]float32
}
