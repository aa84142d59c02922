// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Textures TexturesConfig `yaml:"textures"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// ViewerConfig holds the scene shown at startup.
type ViewerConfig struct {
	Model            string      `yaml:"model"`
	Animation        bool        `yaml:"animation"`
	AnimationRate    float32     `yaml:"animation_rate"`    // degrees per second
	BaseColor        [3]float32  `yaml:"base_color"`
	ClearColor       [4]float32  `yaml:"clear_color"`
	Light            LightConfig `yaml:"light"`
	ModelView        ViewConfig  `yaml:"model_view"`
	ComponentView    ViewConfig  `yaml:"component_view"`
	ShowFPS          bool        `yaml:"show_fps"`
	ScreenshotDir    string      `yaml:"screenshot_dir"`
	ScreenshotFormat string      `yaml:"screenshot_format"` // png or webp
	PoseFile         string      `yaml:"pose_file"`
}

// LightConfig places the directional light in degrees.
type LightConfig struct {
	Azimuth   float32 `yaml:"azimuth"`
	Elevation float32 `yaml:"elevation"`
	Ambient   float32 `yaml:"ambient"`
	Diffuse   float32 `yaml:"diffuse"`
}

// ViewConfig holds the settings of one render context. Modes are names
// such as "oblique" or "reflective".
type ViewConfig struct {
	Projection   string  `yaml:"projection"`
	Texture      string  `yaml:"texture"`
	Shading      bool    `yaml:"shading"`
	CameraAngle  float32 `yaml:"camera_angle"`
	CameraRadius float32 `yaml:"camera_radius"`
}

// TexturesConfig names the image files behind the textured modes. Empty
// paths keep a 1×1 placeholder.
type TexturesConfig struct {
	Bump  string     `yaml:"bump"`
	Image string     `yaml:"image"`
	Cube  CubeConfig `yaml:"cube"`
}

// CubeConfig holds the six cubemap faces.
type CubeConfig struct {
	PosX string `yaml:"pos_x"`
	NegX string `yaml:"neg_x"`
	PosY string `yaml:"pos_y"`
	NegY string `yaml:"neg_y"`
	PosZ string `yaml:"pos_z"`
	NegZ string `yaml:"neg_z"`
}

// Faces returns the faces in +X, -X, +Y, -Y, +Z, -Z order.
func (c CubeConfig) Faces() [6]string {
	return [6]string{c.PosX, c.NegX, c.PosY, c.NegY, c.PosZ, c.NegZ}
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// DefaultView returns orthographic projection with the bump texture, shading
// on and the camera at angle 0, radius 300.
func DefaultView() ViewConfig {
	return ViewConfig{
		Projection:   "orthographic",
		Texture:      "bump",
		Shading:      true,
		CameraAngle:  0,
		CameraRadius: 300,
	}
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Articula",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Viewer: ViewerConfig{
			Model:         "person",
			Animation:     false,
			AnimationRate: 30,
			BaseColor:     [3]float32{1, 1, 1},
			ClearColor:    [4]float32{0.1, 0.1, 0.15, 1},
			Light: LightConfig{
				Azimuth:   35,
				Elevation: 40,
				Ambient:   0.35,
				Diffuse:   0.75,
			},
			ModelView:        DefaultView(),
			ComponentView:    DefaultView(),
			ScreenshotDir:    "screenshots",
			ScreenshotFormat: "png",
			PoseFile:         "pose.yaml",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
