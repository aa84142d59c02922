// Package camera provides the turntable camera used by the render contexts.
package camera

import (
	gomath "math"

	"github.com/Faultbox/articula/pkg/math"
)

// RadiusScale converts the camera radius from scene units to clip units.
const RadiusScale = 1000

// Turntable orbits the origin on the XZ plane.
type Turntable struct {
	// Angle around the Y axis, degrees.
	Angle float32
	// Radius is the distance from the origin in scene units.
	Radius float32

	// Constraints for interactive zoom
	MinRadius float32
	MaxRadius float32

	// Sensitivity
	DragSensitivity float32 // degrees per pixel
	ZoomSensitivity float32
}

// NewTurntable creates a turntable with default settings.
func NewTurntable() *Turntable {
	return &Turntable{
		Angle:           0,
		Radius:          300,
		MinRadius:       10,
		MaxRadius:       1000,
		DragSensitivity: 0.5,
		ZoomSensitivity: 0.1,
	}
}

// Transform returns Rotation(0, angle, 0) · Translate(0, 0, radius/RadiusScale).
func (c *Turntable) Transform() math.Mat4 {
	rot := math.Rotation(0, math.DegToRad(c.Angle), 0)
	return rot.Mul(math.Translate(0, 0, c.Radius/RadiusScale))
}

// ViewDirection returns the world-space direction the turntable looks
// along: view-space -Z carried back through the inverse transform.
func (c *Turntable) ViewDirection() math.Vec3 {
	d := c.Transform().Inverse().TransformDirection([3]float32{0, 0, -1})
	return math.Vec3{X: d[0], Y: d[1], Z: d[2]}.Normalize()
}

// HandleDrag rotates the turntable by a horizontal mouse delta.
func (c *Turntable) HandleDrag(deltaX float32) {
	c.Angle = WrapAngle(c.Angle + deltaX*c.DragSensitivity)
}

// HandleZoom updates the radius based on scroll wheel delta.
func (c *Turntable) HandleZoom(delta float32) {
	c.Radius -= delta * c.Radius * c.ZoomSensitivity
	if c.Radius < c.MinRadius {
		c.Radius = c.MinRadius
	}
	if c.Radius > c.MaxRadius {
		c.Radius = c.MaxRadius
	}
}

// Advance spins the turntable at rate degrees per second for dt seconds.
func (c *Turntable) Advance(dt, rate float32) {
	c.Angle = WrapAngle(c.Angle + dt*rate)
}

// WrapAngle maps degrees into [0, 360).
func WrapAngle(deg float32) float32 {
	w := float32(gomath.Mod(float64(deg), 360))
	if w < 0 {
		w += 360
	}
	return w
}
