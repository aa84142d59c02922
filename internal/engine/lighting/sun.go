// Package lighting provides the directional light used for shading.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/articula/pkg/math"
)

// Light is a directional light with ambient and diffuse terms.
type Light struct {
	// Direction points from the surface towards the light, normalized.
	Direction math.Vec3
	Ambient   float32
	Diffuse   float32
}

// Default is a key light from the upper right front.
func Default() Light {
	return New(35, 40, 0.35, 0.75)
}

// New builds a light from azimuth and elevation in degrees.
func New(azimuth, elevation, ambient, diffuse float32) Light {
	return Light{
		Direction: SunDirection(azimuth, elevation),
		Ambient:   ambient,
		Diffuse:   diffuse,
	}
}

// SunDirection converts an azimuth around Y (0 faces +Z) and an elevation
// above the horizon, both in degrees, into a unit direction vector.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	lonRad := float64(math.DegToRad(azimuth))
	latRad := float64(math.DegToRad(elevation))

	return math.Vec3{
		X: float32(gomath.Cos(latRad) * gomath.Sin(lonRad)),
		Y: float32(gomath.Sin(latRad)),
		Z: float32(gomath.Cos(latRad) * gomath.Cos(lonRad)),
	}
}

// Intensity returns the Lambert factor for a unit normal, clamped to [0, 1].
func (l Light) Intensity(normal math.Vec3) float32 {
	ndl := normal.Dot(l.Direction)
	if ndl < 0 {
		ndl = 0
	}
	return min(l.Ambient+l.Diffuse*ndl, 1)
}
