package scene

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/Faultbox/articula/internal/engine/camera"
	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/pkg/math"
)

// View identifies one of the two render contexts.
type View int

// Views.
const (
	// ViewModel draws the whole articulated tree.
	ViewModel View = iota
	// ViewComponent draws the selected component's mesh alone.
	ViewComponent
	NumViews
)

// ErrUnknownView is returned for a View outside [0, NumViews).
var ErrUnknownView = errors.New("unknown view")

func (v View) String() string {
	switch v {
	case ViewModel:
		return "model"
	case ViewComponent:
		return "component"
	}
	return "view(" + strconv.Itoa(int(v)) + ")"
}

func (v View) valid() bool { return v >= 0 && v < NumViews }

// Oblique projection angles, degrees.
const (
	ObliqueAlpha = 64
	ObliqueBeta  = 64
)

// ProjectionMatrix returns the projection used for mode. Perspective is the
// identity; its depth cue comes from the shader fudge factor alone.
func ProjectionMatrix(mode model.ProjectionMode) math.Mat4 {
	switch mode {
	case model.Orthographic:
		return math.Ortho(-1, 1, -1, 1, -1, 1)
	case model.Oblique:
		return math.Oblique(math.DegToRad(ObliqueAlpha), math.DegToRad(ObliqueBeta))
	default:
		return math.Identity()
	}
}

// Viewport is a pixel rectangle with a bottom-left origin.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// SideBySide splits a width×height surface into the model view on the left
// and the component view on the right.
func SideBySide(width, height int) [NumViews]Viewport {
	half := width / 2
	return [NumViews]Viewport{
		ViewModel:     {X: 0, Y: 0, Width: half, Height: height},
		ViewComponent: {X: half, Y: 0, Width: width - half, Height: height},
	}
}

// Settings are the user-facing parameters of one context.
type Settings struct {
	Projection model.ProjectionMode
	Texture    model.TextureMode
	Shading    bool
	// Angle in degrees, Radius in scene units.
	Angle  float32
	Radius float32
}

// DefaultSettings returns orthographic projection, bump texture, a camera
// at angle 0 and radius 300, and shading on.
func DefaultSettings() Settings {
	return Settings{
		Projection: model.Orthographic,
		Texture:    model.TextureBump,
		Shading:    true,
		Angle:      0,
		Radius:     300,
	}
}

func (s Settings) validate() error {
	if !s.Projection.Valid() {
		return errors.Errorf("invalid projection %d", int(s.Projection))
	}
	if !s.Texture.Valid() {
		return errors.Errorf("invalid texture %d", int(s.Texture))
	}
	return nil
}

// Context is the state of one render context.
type Context struct {
	Projection model.ProjectionMode
	Texture    model.TextureMode
	Shading    bool
	Viewport   Viewport
	Camera     *camera.Turntable
}

func newContext(s Settings, vp Viewport) *Context {
	cam := camera.NewTurntable()
	cam.Angle = s.Angle
	cam.Radius = s.Radius
	return &Context{
		Projection: s.Projection,
		Texture:    s.Texture,
		Shading:    s.Shading,
		Viewport:   vp,
		Camera:     cam,
	}
}

// Settings returns the context's current parameters.
func (c *Context) Settings() Settings {
	return Settings{
		Projection: c.Projection,
		Texture:    c.Texture,
		Shading:    c.Shading,
		Angle:      c.Camera.Angle,
		Radius:     c.Camera.Radius,
	}
}

// Matrix returns projection · camera for the context.
func (c *Context) Matrix() math.Mat4 {
	return ProjectionMatrix(c.Projection).Mul(c.Camera.Transform())
}
