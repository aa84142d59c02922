// snapshot renders a catalog model headless and writes the frame to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/articula/internal/config"
	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/internal/engine/raster"
	"github.com/Faultbox/articula/internal/engine/scene"
	"github.com/Faultbox/articula/internal/engine/snapshot"
	"github.com/Faultbox/articula/internal/engine/texture"
	"github.com/Faultbox/articula/internal/logger"
)

var (
	flagOut         = flag.String("out", "", "Output file (default: timestamped file in the screenshot dir)")
	flagFormat      = flag.String("format", "", "Image format: png or webp (default: from -out extension)")
	flagView        = flag.String("view", "both", "Views to keep: both, model or component")
	flagProjection  = flag.String("projection", "", "Projection for both views")
	flagTexture     = flag.String("texture", "", "Texture mode for both views")
	flagFlat        = flag.Bool("noshade", false, "Disable shading in both views")
	flagAngle       = flag.Float64("angle", 0, "Model view camera angle in degrees")
	flagRadius      = flag.Float64("radius", 0, "Camera radius for both views")
	flagComponent   = flag.String("component", "", "Component shown in the component view")
	flagPose        = flag.String("pose", "", "Pose file to apply before rendering")
	flagSupersample = flag.Int("supersample", 2, "Render at N times the size and downsample")
	flagTree        = flag.Bool("tree", false, "Print the component tree and exit")
	flagTimeout     = flag.Duration("timeout", 10*time.Second, "Texture loading timeout")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Stdout carries the output path only.
	logOpts := logger.Options{Level: cfg.Logging.Level, Console: zapcore.AddSync(os.Stderr)}
	if cfg.Logging.LogFile != "" {
		logOpts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
		logOpts.File.JSON = cfg.Logging.JSON
	}
	if err := logger.Setup(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	path, err := run(cfg)
	if err != nil {
		logger.Error("snapshot failed", zap.Error(err))
		os.Exit(1)
	}
	if path != "" {
		fmt.Println(path)
	}
}

func run(cfg *config.Config) (string, error) {
	opts, err := cfg.SceneOptions()
	if err != nil {
		return "", err
	}
	if err := overrideViews(&opts); err != nil {
		return "", err
	}

	factor := *flagSupersample
	if factor < 1 {
		return "", errors.Errorf("supersample factor %d", factor)
	}
	opts.Width *= factor
	opts.Height *= factor

	backend := raster.NewBackend(opts.Width, opts.Height)
	backend.SetLight(opts.Light)
	if err := loadTextures(backend, cfg.Textures.Sources()); err != nil {
		// Missing textures fall back to placeholders.
		logger.Warn("texture loading incomplete", zap.Error(err))
	}

	ctrl, err := scene.NewController(backend, raster.Program{}, backend, opts)
	if err != nil {
		return "", err
	}
	defer ctrl.Release()

	if *flagTree {
		fmt.Print(ctrl.Tree())
		return "", nil
	}

	if *flagComponent != "" {
		if err := ctrl.SelectComponent(*flagComponent); err != nil {
			return "", err
		}
	}
	if *flagPose != "" {
		p, err := model.LoadPose(*flagPose)
		if err != nil {
			return "", err
		}
		if err := ctrl.ApplyPose(p); err != nil {
			return "", err
		}
	}

	start := time.Now()
	if err := ctrl.Tick(0); err != nil {
		return "", err
	}
	logger.Info("frame rendered",
		zap.Int("width", opts.Width),
		zap.Int("height", opts.Height),
		zap.Int("triangles", backend.Triangles()),
		zap.Duration("took", time.Since(start)),
	)

	img, err := crop(backend.Image(), opts.Width, opts.Height)
	if err != nil {
		return "", err
	}
	img = snapshot.Downsample(img, factor)

	return save(cfg, img)
}

func overrideViews(opts *scene.Options) error {
	for v := range opts.Views {
		s := &opts.Views[v]
		if *flagProjection != "" {
			p, err := model.ParseProjection(*flagProjection)
			if err != nil {
				return err
			}
			s.Projection = p
		}
		if *flagTexture != "" {
			t, err := model.ParseTexture(*flagTexture)
			if err != nil {
				return err
			}
			s.Texture = t
		}
		if *flagFlat {
			s.Shading = false
		}
		if *flagRadius > 0 {
			s.Radius = float32(*flagRadius)
		}
	}
	if *flagAngle != 0 {
		opts.Views[scene.ViewModel].Angle = float32(*flagAngle)
	}
	return nil
}

func loadTextures(b *raster.Backend, src texture.Sources) error {
	ctx, cancel := context.WithTimeout(context.Background(), *flagTimeout)
	defer cancel()

	results, err := texture.LoadAll(ctx, texture.NewCache(), src)
	for _, r := range results {
		if r.Mode == model.TextureReflective {
			b.SetCubeFace(r.Face, r.Image)
		} else {
			b.SetTexture(r.Mode, r.Image)
		}
	}
	return err
}

// crop keeps the requested half of the side-by-side frame.
func crop(img *image.NRGBA, width, height int) (*image.NRGBA, error) {
	vps := scene.SideBySide(width, height)
	var vp scene.Viewport
	switch *flagView {
	case "both":
		return img, nil
	case "model":
		vp = vps[scene.ViewModel]
	case "component":
		vp = vps[scene.ViewComponent]
	default:
		return nil, errors.Errorf("unknown view %q", *flagView)
	}
	r := image.Rect(vp.X, height-vp.Y-vp.Height, vp.X+vp.Width, height-vp.Y)
	sub := img.SubImage(r).(*image.NRGBA)
	out := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+r.Dx()*4], sub.Pix[y*sub.Stride:y*sub.Stride+r.Dx()*4])
	}
	return out, nil
}

func save(cfg *config.Config, img image.Image) (string, error) {
	if *flagOut == "" {
		name := *flagFormat
		if name == "" {
			name = cfg.Viewer.ScreenshotFormat
		}
		f, err := snapshot.ParseFormat(name)
		if err != nil {
			return "", err
		}
		return snapshot.NewCapture(cfg.Viewer.ScreenshotDir, cfg.Viewer.Model, f).Save(img)
	}

	f := snapshot.FormatFromPath(*flagOut)
	if *flagFormat != "" {
		var err error
		if f, err = snapshot.ParseFormat(*flagFormat); err != nil {
			return "", err
		}
	}
	if err := snapshot.Save(*flagOut, img, f); err != nil {
		return "", err
	}
	return *flagOut, nil
}
