// Package viewer runs the interactive two-view model viewer.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/articula/internal/config"
	"github.com/Faultbox/articula/internal/engine/input"
	"github.com/Faultbox/articula/internal/engine/renderer"
	"github.com/Faultbox/articula/internal/engine/scene"
	"github.com/Faultbox/articula/internal/engine/shader"
	"github.com/Faultbox/articula/internal/engine/snapshot"
	"github.com/Faultbox/articula/internal/engine/window"
	"github.com/Faultbox/articula/internal/logger"
)

// Viewer is the main viewer instance.
type Viewer struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.GL
	program  *shader.Program
	textures *renderer.Textures
	ctrl     *scene.Controller
	input    *input.Input
	bindings input.Bindings
	session  *Session

	cancel context.CancelFunc
	log    *zap.Logger
}

// New opens the window and builds the scene described by cfg.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config:   cfg,
		bindings: input.DefaultBindings(),
		log:      logger.Named("viewer"),
	}

	v.log.Info("initializing viewer",
		zap.String("model", cfg.Viewer.Model),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	opts, err := cfg.SceneOptions()
	if err != nil {
		return nil, err
	}
	format, err := snapshot.ParseFormat(cfg.Viewer.ScreenshotFormat)
	if err != nil {
		return nil, err
	}

	// Window first: it creates the GL context everything else needs.
	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create window")
	}

	width, height := v.window.DrawableSize()
	v.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		VSync:  cfg.Window.VSync,
	})
	if err != nil {
		v.Close()
		return nil, errors.Wrap(err, "create renderer")
	}

	v.program, err = shader.Articulated()
	if err != nil {
		v.Close()
		return nil, err
	}

	v.textures = renderer.NewTextures()
	var ctx context.Context
	ctx, v.cancel = context.WithCancel(context.Background())
	v.textures.Load(ctx, cfg.Textures.Sources())

	opts.Width, opts.Height = width, height
	v.ctrl, err = scene.NewController(v.renderer, v.program, v.textures, opts)
	if err != nil {
		v.Close()
		return nil, errors.Wrap(err, "create scene")
	}

	capture := snapshot.NewCapture(cfg.Viewer.ScreenshotDir, "articula", format)
	v.session = NewSession(v.ctrl, capture, v.renderer.ReadPixels, cfg.Viewer.PoseFile)
	v.input = input.New()

	v.log.Info("viewer initialized")
	return v, nil
}

// Run starts the main loop and returns when the window closes.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if v.config.Window.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(v.config.Window.FPSLimit)
	}

	v.log.Info("starting viewer loop")

	for v.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()
		if !v.running {
			break
		}

		if n := v.textures.Poll(); n > 0 {
			v.log.Debug("textures uploaded", zap.Int("count", n))
		}

		if err := v.ctrl.Tick(float32(dt)); err != nil {
			return errors.Wrap(err, "tick")
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if v.config.Viewer.ShowFPS {
				snap := v.ctrl.Snapshot()
				v.window.SetTitle(fmt.Sprintf("%s | %s/%s | %d fps",
					v.config.Window.Title, snap.Model, snap.Component, frameCount))
			}
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	_, winHeight := v.window.GetSize()
	vps := v.viewports()

	for _, event := range v.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			v.resize()
			vps = v.viewports()
			_, winHeight = v.window.GetSize()

		case input.EventMouseMove:
			if !v.input.IsButtonHeld(sdl.BUTTON_LEFT) || event.RelX == 0 {
				continue
			}
			if view, ok := v.viewAt(vps, event.MouseX, event.MouseY, winHeight); ok {
				v.report(v.session.Drag(view, float32(event.RelX)))
			}

		case input.EventMouseDown:
			if event.Button != sdl.BUTTON_RIGHT {
				continue
			}
			x, y := v.toDrawable(event.MouseX, event.MouseY, winHeight)
			_, dh := v.renderer.Size()
			if view, ok := ViewAt(vps, x, y, dh); ok {
				v.session.SelectAt(view, x, FlipY(y, dh))
			}

		case input.EventMouseWheel:
			if view, ok := v.viewAt(vps, event.MouseX, event.MouseY, winHeight); ok {
				v.report(v.session.Zoom(view, float32(event.Wheel)))
			}
		}
	}

	for _, cmd := range v.bindings.Commands(v.input.Events()) {
		if err := v.session.Apply(cmd); err != nil {
			if errors.Is(err, ErrQuit) {
				v.running = false
				return
			}
			v.log.Warn("command failed", zap.Stringer("action", cmd.Action), zap.Error(err))
		}
	}
}

// viewAt maps a window point to a view.
func (v *Viewer) viewAt(vps [scene.NumViews]scene.Viewport, x, y, winHeight int) (scene.View, bool) {
	x, y = v.toDrawable(x, y, winHeight)
	_, dh := v.renderer.Size()
	return ViewAt(vps, x, y, dh)
}

// toDrawable scales window coordinates to drawable pixels for high-DPI surfaces.
func (v *Viewer) toDrawable(x, y, winHeight int) (int, int) {
	winWidth, _ := v.window.GetSize()
	dw, dh := v.renderer.Size()
	if winWidth > 0 && winHeight > 0 {
		x = x * dw / winWidth
		y = y * dh / winHeight
	}
	return x, y
}

func (v *Viewer) viewports() [scene.NumViews]scene.Viewport {
	w, h := v.renderer.Size()
	return scene.SideBySide(w, h)
}

func (v *Viewer) resize() {
	w, h := v.window.DrawableSize()
	v.renderer.Resize(w, h)
	for view, vp := range scene.SideBySide(w, h) {
		v.report(v.ctrl.SetViewport(scene.View(view), vp))
	}
}

func (v *Viewer) report(err error) {
	if err != nil {
		v.log.Warn("input ignored", zap.Error(err))
	}
}

// Close releases GPU resources and closes the window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.cancel != nil {
		v.cancel()
	}
	if v.ctrl != nil {
		v.ctrl.Release()
	}
	if v.textures != nil {
		v.textures.Close()
	}
	if v.program != nil {
		v.program.Delete()
	}
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
