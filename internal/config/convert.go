package config

import (
	"fmt"

	"github.com/Faultbox/articula/internal/catalog"
	"github.com/Faultbox/articula/internal/engine/lighting"
	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/internal/engine/scene"
	"github.com/Faultbox/articula/internal/engine/snapshot"
	"github.com/Faultbox/articula/internal/engine/texture"
	"github.com/Faultbox/articula/pkg/math"
)

// Validate checks the names and sizes a viewer cannot start without.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if _, err := snapshot.ParseFormat(c.Viewer.ScreenshotFormat); err != nil {
		return err
	}
	_, err := c.SceneOptions()
	return err
}

// Settings converts the view to scene settings.
func (v ViewConfig) Settings() (scene.Settings, error) {
	proj, err := model.ParseProjection(v.Projection)
	if err != nil {
		return scene.Settings{}, err
	}
	tex, err := model.ParseTexture(v.Texture)
	if err != nil {
		return scene.Settings{}, err
	}
	return scene.Settings{
		Projection: proj,
		Texture:    tex,
		Shading:    v.Shading,
		Angle:      v.CameraAngle,
		Radius:     v.CameraRadius,
	}, nil
}

// Light converts the light angles to a directional light.
func (l LightConfig) Light() lighting.Light {
	return lighting.New(l.Azimuth, l.Elevation, l.Ambient, l.Diffuse)
}

// SceneOptions converts the viewer section to controller options sized to
// the window.
func (c *Config) SceneOptions() (scene.Options, error) {
	kind, err := catalog.Parse(c.Viewer.Model)
	if err != nil {
		return scene.Options{}, err
	}

	opts := scene.DefaultOptions()
	opts.Model = kind
	opts.Width = c.Window.Width
	opts.Height = c.Window.Height
	opts.ClearColor = c.Viewer.ClearColor
	opts.BaseColor = math.Vec3{X: c.Viewer.BaseColor[0], Y: c.Viewer.BaseColor[1], Z: c.Viewer.BaseColor[2]}
	opts.Light = c.Viewer.Light.Light()
	opts.Animation = c.Viewer.Animation
	opts.AnimationRate = c.Viewer.AnimationRate

	for v, vc := range map[scene.View]ViewConfig{
		scene.ViewModel:     c.Viewer.ModelView,
		scene.ViewComponent: c.Viewer.ComponentView,
	} {
		s, err := vc.Settings()
		if err != nil {
			return scene.Options{}, fmt.Errorf("%s view: %w", v, err)
		}
		opts.Views[v] = s
	}
	return opts, nil
}

// Sources converts the texture paths for the texture loader.
func (t TexturesConfig) Sources() texture.Sources {
	return texture.Sources{
		Bump:  t.Bump,
		Image: t.Image,
		Cube:  t.Cube.Faces(),
	}
}
