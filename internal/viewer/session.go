package viewer

import (
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/articula/internal/catalog"
	"github.com/Faultbox/articula/internal/engine/input"
	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/internal/engine/scene"
	"github.com/Faultbox/articula/internal/engine/snapshot"
	"github.com/Faultbox/articula/internal/logger"
)

// Step sizes for keyboard edits.
const (
	RotateStep = 15  // degrees per component rotate
	OrbitStep  = 10  // degrees per camera orbit
	ZoomStep   = 2.5 // wheel notches per zoom key
)

// ErrQuit is returned by Apply when the user asks to leave.
var ErrQuit = errors.New("quit")

// Session turns input commands into controller calls. It holds the
// keyboard focus and edit axis, which belong to the UI rather than the
// scene.
type Session struct {
	ctrl *scene.Controller

	focus scene.View
	axis  model.Axis

	capture  *snapshot.Capture
	grab     func() (*image.NRGBA, error)
	posePath string

	log *zap.Logger
}

// NewSession wraps ctrl. grab reads the current frame for screenshots and
// may be nil when screenshots are unavailable.
func NewSession(ctrl *scene.Controller, capture *snapshot.Capture, grab func() (*image.NRGBA, error), posePath string) *Session {
	return &Session{
		ctrl:     ctrl,
		focus:    scene.ViewModel,
		axis:     model.AxisY,
		capture:  capture,
		grab:     grab,
		posePath: posePath,
		log:      logger.Named("viewer"),
	}
}

// Focus returns the view keyboard edits apply to.
func (s *Session) Focus() scene.View { return s.focus }

// Axis returns the component edit axis.
func (s *Session) Axis() model.Axis { return s.axis }

// Apply runs one command. It returns ErrQuit for ActionQuit.
func (s *Session) Apply(cmd input.Command) error {
	switch cmd.Action {
	case input.ActionQuit:
		return ErrQuit

	case input.ActionSelectModel:
		kinds := catalog.Kinds()
		if cmd.Arg < 0 || cmd.Arg >= len(kinds) {
			return errors.Wrapf(catalog.ErrUnknownModel, "index %d", cmd.Arg)
		}
		return s.ctrl.SetModel(kinds[cmd.Arg])

	case input.ActionToggleView:
		s.focus = (s.focus + 1) % scene.NumViews
		s.log.Debug("focus", zap.Stringer("view", s.focus))
		return nil

	case input.ActionCycleProjection:
		return s.ctrl.Update(func(st *scene.State) error {
			ctx, err := st.Context(s.focus)
			if err != nil {
				return err
			}
			return st.SetProjection(s.focus, (ctx.Projection+1)%model.NumProjections)
		})

	case input.ActionCycleTexture:
		return s.ctrl.Update(func(st *scene.State) error {
			ctx, err := st.Context(s.focus)
			if err != nil {
				return err
			}
			return st.SetTexture(s.focus, (ctx.Texture+1)%model.NumTextures)
		})

	case input.ActionToggleShading:
		return s.ctrl.Update(func(st *scene.State) error {
			ctx, err := st.Context(s.focus)
			if err != nil {
				return err
			}
			return st.SetShading(s.focus, !ctx.Shading)
		})

	case input.ActionToggleAnimation:
		s.ctrl.SetAnimation(!s.ctrl.Snapshot().Animation)
		return nil

	case input.ActionStepComponent:
		return s.ctrl.Update(func(st *scene.State) error {
			names := st.Root().Names()
			cur := st.Target().Name()
			i := 0
			for j, n := range names {
				if n == cur {
					i = j
					break
				}
			}
			next := ((i+cmd.Arg)%len(names) + len(names)) % len(names)
			return st.SelectComponent(names[next])
		})

	case input.ActionSelectAxis:
		a := model.Axis(cmd.Arg)
		if !a.Valid() {
			return errors.Wrapf(model.ErrInvalidAxis, "%d", cmd.Arg)
		}
		s.axis = a
		return nil

	case input.ActionRotateComponent:
		return s.ctrl.Update(func(st *scene.State) error {
			t := st.Target()
			cur := t.Joint.Rotate.Axis(int(s.axis))
			return t.SetRotate(s.axis, cur+float32(cmd.Arg*RotateStep))
		})

	case input.ActionOrbit:
		return s.Drag(s.focus, float32(cmd.Arg*OrbitStep))

	case input.ActionZoom:
		return s.Zoom(s.focus, float32(cmd.Arg)*ZoomStep)

	case input.ActionScreenshot:
		_, err := s.Screenshot()
		return err

	case input.ActionSavePose:
		if err := model.SavePose(s.posePath, s.ctrl.Pose()); err != nil {
			return err
		}
		s.log.Info("pose saved", zap.String("path", s.posePath))
		return nil

	case input.ActionLoadPose:
		p, err := model.LoadPose(s.posePath)
		if err != nil {
			return err
		}
		return s.ctrl.ApplyPose(p)

	case input.ActionResetPose:
		return s.ResetPose()

	case input.ActionPrintTree:
		s.log.Info("component tree\n" + s.ctrl.Tree())
		return nil
	}
	return nil
}

// Drag turns the camera of view v by a drag of dx pixels.
func (s *Session) Drag(v scene.View, dx float32) error {
	return s.ctrl.Update(func(st *scene.State) error {
		ctx, err := st.Context(v)
		if err != nil {
			return err
		}
		ctx.Camera.HandleDrag(dx)
		return nil
	})
}

// Zoom moves the camera of view v by wheel notches; positive moves closer.
func (s *Session) Zoom(v scene.View, notches float32) error {
	return s.ctrl.Update(func(st *scene.State) error {
		ctx, err := st.Context(v)
		if err != nil {
			return err
		}
		ctx.Camera.HandleZoom(notches)
		return nil
	})
}

// SelectAt selects the component drawn at surface pixel (x, y), counted
// from the bottom-left corner, in view v. A miss keeps the selection.
func (s *Session) SelectAt(v scene.View, x, y int) (string, bool) {
	name, ok := s.ctrl.SelectAt(v, x, y)
	if ok {
		s.log.Debug("picked", zap.Stringer("view", v), zap.String("component", name))
	}
	return name, ok
}

// ResetPose restores the catalog pose of the current model.
func (s *Session) ResetPose() error {
	kind := s.ctrl.Snapshot().Model
	fresh, err := catalog.Build(kind)
	if err != nil {
		return err
	}
	return s.ctrl.ApplyPose(model.CapturePose(string(kind), fresh))
}

// Screenshot saves the current frame and returns the file name.
func (s *Session) Screenshot() (string, error) {
	if s.grab == nil || s.capture == nil {
		return "", errors.New("screenshots unavailable")
	}
	img, err := s.grab()
	if err != nil {
		return "", errors.Wrap(err, "read frame")
	}
	name, err := s.capture.Save(img)
	if err != nil {
		return "", err
	}
	s.log.Info("screenshot saved", zap.String("path", name))
	return name, nil
}

// ViewAt returns the view whose viewport contains the window point (x, y),
// measured from the top-left corner of a surface of the given height.
func ViewAt(vps [scene.NumViews]scene.Viewport, x, y, height int) (scene.View, bool) {
	fy := FlipY(y, height)
	for v, vp := range vps {
		if x >= vp.X && x < vp.X+vp.Width && fy >= vp.Y && fy < vp.Y+vp.Height {
			return scene.View(v), true
		}
	}
	return 0, false
}

// FlipY converts a top-left row to the bottom-left row used by viewports.
func FlipY(y, height int) int { return height - 1 - y }
