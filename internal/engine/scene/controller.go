// Package scene drives the two render contexts of the viewer: the model view
// draws the whole articulated tree, the component view draws one selected
// component in isolation.
package scene

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Faultbox/articula/internal/catalog"
	"github.com/Faultbox/articula/internal/engine/gpu"
	"github.com/Faultbox/articula/internal/engine/lighting"
	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/internal/logger"
	"github.com/Faultbox/articula/pkg/math"
)

// ErrUnknownComponent is returned when selecting a name absent from the tree.
var ErrUnknownComponent = errors.New("unknown component")

// ErrPoseModel is returned when a pose was captured from another model.
var ErrPoseModel = errors.New("pose belongs to another model")

// TextureBinder makes the texture sampled by a texture mode current.
type TextureBinder interface {
	BindTexture(mode model.TextureMode) error
}

// Options configure a Controller.
type Options struct {
	Model catalog.Kind
	Views [NumViews]Settings
	// Viewports default to SideBySide(Width, Height).
	Width, Height int

	ClearColor [4]float32
	BaseColor  math.Vec3
	Light      lighting.Light

	// Animation spins the model view camera at AnimationRate degrees per second.
	Animation     bool
	AnimationRate float32
}

// DefaultOptions returns a person model with default contexts on a 1280×720 surface.
func DefaultOptions() Options {
	return Options{
		Model:         catalog.Person,
		Views:         [NumViews]Settings{DefaultSettings(), DefaultSettings()},
		Width:         1280,
		Height:        720,
		ClearColor:    [4]float32{0.1, 0.1, 0.15, 1},
		BaseColor:     math.One(),
		Light:         lighting.Default(),
		AnimationRate: 30,
	}
}

// Snapshot is a read-only copy of the controller settings.
type Snapshot struct {
	Model     catalog.Kind
	Component string
	Animation bool
	Views     [NumViews]Settings
}

// State is the controller state. It is only reachable while the controller
// lock is held: through Controller methods or inside Update.
type State struct {
	kind   catalog.Kind
	root   *model.Node
	target *model.Node
	views  [NumViews]*Context

	baseColor     math.Vec3
	clearColor    [4]float32
	light         lighting.Light
	animation     bool
	animationRate float32

	// Trees replaced by SetModel; their buffers are released on the next Tick.
	retired []*model.Node

	log *zap.Logger
}

// Controller owns the current model and both contexts and renders them
// through a gpu.Backend. Setters may be called from any goroutine; Tick must
// run on the goroutine that owns the backend.
type Controller struct {
	mu sync.Mutex
	s  State

	backend  gpu.Backend
	program  gpu.Program
	textures TextureBinder
}

// NewController builds the model named by opts.Model. textures may be nil,
// in which case no texture is bound before drawing.
func NewController(b gpu.Backend, p gpu.Program, textures TextureBinder, opts Options) (*Controller, error) {
	for v, s := range opts.Views {
		if err := s.validate(); err != nil {
			return nil, errors.Wrapf(err, "%s view", View(v))
		}
	}

	root, err := catalog.Build(opts.Model)
	if err != nil {
		return nil, err
	}
	part, err := catalog.DefaultPart(opts.Model)
	if err != nil {
		return nil, err
	}
	target, ok := root.Find(part)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownComponent, "default part %q of %s", part, opts.Model)
	}

	c := &Controller{
		backend:  b,
		program:  p,
		textures: textures,
		s: State{
			kind:          opts.Model,
			root:          root,
			target:        target,
			baseColor:     opts.BaseColor,
			clearColor:    opts.ClearColor,
			light:         opts.Light,
			animation:     opts.Animation,
			animationRate: opts.AnimationRate,
			log:           logger.Named("scene"),
		},
	}

	vps := SideBySide(opts.Width, opts.Height)
	for v := range c.s.views {
		c.s.views[v] = newContext(opts.Views[v], vps[v])
	}
	return c, nil
}

// Update runs fn with the lock held so several mutations land between two
// ticks atomically.
func (c *Controller) Update(fn func(s *State) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(&c.s)
}

// Snapshot returns the current settings.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.s.Snapshot()
}

// Tick advances the animation by dt seconds and renders both contexts.
func (c *Controller) Tick(dt float32) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, old := range c.s.retired {
		old.Release(c.backend)
	}
	c.s.retired = nil

	if c.s.animation {
		c.s.views[ViewModel].Camera.Advance(dt, c.s.animationRate)
	}

	for v := View(0); v < NumViews; v++ {
		if err := c.render(v); err != nil {
			return errors.Wrapf(err, "render %s view", v)
		}
	}
	return nil
}

func (c *Controller) render(v View) error {
	ctx := c.s.views[v]
	b := c.backend
	p := c.program

	vp := ctx.Viewport
	b.Viewport(vp.X, vp.Y, vp.Width, vp.Height)
	cc := c.s.clearColor
	b.Clear(cc[0], cc[1], cc[2], cc[3])
	b.EnableDepthTest()

	b.UseProgram(p)
	b.Uniform3f(p.Uniform(gpu.UniformLightDir), c.s.light.Direction.Array())
	b.Uniform1f(p.Uniform(gpu.UniformAmbient), c.s.light.Ambient)
	b.Uniform1f(p.Uniform(gpu.UniformDiffuse), c.s.light.Diffuse)

	if c.textures != nil {
		if err := c.textures.BindTexture(ctx.Texture); err != nil {
			return err
		}
	}

	params := model.DrawParams{
		Projection: ctx.Matrix(),
		Color:      c.s.baseColor,
		Mode:       ctx.Projection,
		Shading:    ctx.Shading,
		Texture:    ctx.Texture,
		View:       ctx.Camera.ViewDirection(),
	}
	if v == ViewModel {
		return c.s.root.DrawSubtree(b, p, params)
	}
	return c.s.target.DrawSingle(b, p, params)
}

// Release frees the GPU buffers of the current and retired trees. Call it on
// the backend goroutine before discarding the backend.
func (c *Controller) Release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, old := range c.s.retired {
		old.Release(c.backend)
	}
	c.s.retired = nil
	c.s.root.Release(c.backend)
}

// SetViewport places view's context on the surface.
func (c *Controller) SetViewport(v View, vp Viewport) error {
	return c.Update(func(s *State) error { return s.SetViewport(v, vp) })
}

// SetProjection selects view's projection mode.
func (c *Controller) SetProjection(v View, mode model.ProjectionMode) error {
	return c.Update(func(s *State) error { return s.SetProjection(v, mode) })
}

// SetTexture selects view's texture mode.
func (c *Controller) SetTexture(v View, mode model.TextureMode) error {
	return c.Update(func(s *State) error { return s.SetTexture(v, mode) })
}

// SetShading turns view's lighting on or off.
func (c *Controller) SetShading(v View, on bool) error {
	return c.Update(func(s *State) error { return s.SetShading(v, on) })
}

// SetCameraAngle sets view's turntable angle in degrees.
func (c *Controller) SetCameraAngle(v View, deg float32) error {
	return c.Update(func(s *State) error { return s.SetCameraAngle(v, deg) })
}

// SetCameraRadius sets view's turntable radius in scene units.
func (c *Controller) SetCameraRadius(v View, r float32) error {
	return c.Update(func(s *State) error { return s.SetCameraRadius(v, r) })
}

// SetModel swaps the displayed model. See State.SetModel.
func (c *Controller) SetModel(kind catalog.Kind) error {
	return c.Update(func(s *State) error { return s.SetModel(kind) })
}

// SelectComponent retargets the component view. See State.SelectComponent.
func (c *Controller) SelectComponent(name string) error {
	return c.Update(func(s *State) error { return s.SelectComponent(name) })
}

// SetModelTranslate broadcasts a translate value from the model root.
func (c *Controller) SetModelTranslate(axis model.Axis, v float32) error {
	return c.Update(func(s *State) error { return s.root.SetTranslate(axis, v) })
}

// SetModelRotate broadcasts a rotate value in degrees from the model root.
func (c *Controller) SetModelRotate(axis model.Axis, v float32) error {
	return c.Update(func(s *State) error { return s.root.SetRotate(axis, v) })
}

// SetModelScale broadcasts a scale value from the model root.
func (c *Controller) SetModelScale(axis model.Axis, v float32) error {
	return c.Update(func(s *State) error { return s.root.SetScale(axis, v) })
}

// SetComponentTranslate broadcasts a translate value from the component target.
func (c *Controller) SetComponentTranslate(axis model.Axis, v float32) error {
	return c.Update(func(s *State) error { return s.target.SetTranslate(axis, v) })
}

// SetComponentRotate broadcasts a rotate value in degrees from the component target.
func (c *Controller) SetComponentRotate(axis model.Axis, v float32) error {
	return c.Update(func(s *State) error { return s.target.SetRotate(axis, v) })
}

// SetComponentScale broadcasts a scale value from the component target.
func (c *Controller) SetComponentScale(axis model.Axis, v float32) error {
	return c.Update(func(s *State) error { return s.target.SetScale(axis, v) })
}

// SetAnimation starts or stops the model view turntable animation.
func (c *Controller) SetAnimation(on bool) {
	_ = c.Update(func(s *State) error {
		s.SetAnimation(on)
		return nil
	})
}

// Pose captures every joint and mesh transform of the current model.
func (c *Controller) Pose() model.Pose {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.CapturePose(string(c.s.kind), c.s.root)
}

// ApplyPose writes p into the current model. A pose naming another model
// is rejected before anything is written; an unnamed pose applies as is.
func (c *Controller) ApplyPose(p model.Pose) error {
	return c.Update(func(s *State) error {
		if p.Model != "" && p.Model != string(s.kind) {
			return errors.Wrapf(ErrPoseModel, "%s pose on %s", p.Model, s.kind)
		}
		return p.Apply(s.root)
	})
}

// Tree returns the indented component listing of the current model.
func (c *Controller) Tree() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return catalog.FormatTree(c.s.root)
}

// Snapshot returns the current settings.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Model:     s.kind,
		Component: s.target.Name(),
		Animation: s.animation,
	}
	for v, ctx := range s.views {
		snap.Views[v] = ctx.Settings()
	}
	return snap
}

// Root returns the current model tree.
func (s *State) Root() *model.Node { return s.root }

// Target returns the component view's node.
func (s *State) Target() *model.Node { return s.target }

// Context returns view's context.
func (s *State) Context(v View) (*Context, error) {
	if !v.valid() {
		return nil, errors.Wrapf(ErrUnknownView, "%d", int(v))
	}
	return s.views[v], nil
}

// SetViewport places view's context on the surface.
func (s *State) SetViewport(v View, vp Viewport) error {
	ctx, err := s.Context(v)
	if err != nil {
		return err
	}
	ctx.Viewport = vp
	return nil
}

// SetProjection selects view's projection mode.
func (s *State) SetProjection(v View, mode model.ProjectionMode) error {
	ctx, err := s.Context(v)
	if err != nil {
		return err
	}
	if !mode.Valid() {
		return errors.Errorf("invalid projection %d", int(mode))
	}
	ctx.Projection = mode
	return nil
}

// SetTexture selects view's texture mode.
func (s *State) SetTexture(v View, mode model.TextureMode) error {
	ctx, err := s.Context(v)
	if err != nil {
		return err
	}
	if !mode.Valid() {
		return errors.Errorf("invalid texture %d", int(mode))
	}
	ctx.Texture = mode
	return nil
}

// SetShading turns view's lighting on or off.
func (s *State) SetShading(v View, on bool) error {
	ctx, err := s.Context(v)
	if err != nil {
		return err
	}
	ctx.Shading = on
	return nil
}

// SetCameraAngle sets view's turntable angle in degrees.
func (s *State) SetCameraAngle(v View, deg float32) error {
	ctx, err := s.Context(v)
	if err != nil {
		return err
	}
	ctx.Camera.Angle = deg
	return nil
}

// SetCameraRadius sets view's turntable radius in scene units.
func (s *State) SetCameraRadius(v View, r float32) error {
	ctx, err := s.Context(v)
	if err != nil {
		return err
	}
	ctx.Camera.Radius = r
	return nil
}

// SetModel replaces the model with a fresh tree of kind and retargets the
// component view to the kind's default part. Selecting the current kind is
// a no-op; an unknown kind leaves the state unchanged.
func (s *State) SetModel(kind catalog.Kind) error {
	if kind == s.kind {
		return nil
	}

	root, err := catalog.Build(kind)
	if err != nil {
		return err
	}
	part, err := catalog.DefaultPart(kind)
	if err != nil {
		return err
	}
	target, ok := root.Find(part)
	if !ok {
		return errors.Wrapf(ErrUnknownComponent, "default part %q of %s", part, kind)
	}

	s.retired = append(s.retired, s.root)
	s.log.Info("model swapped",
		zap.String("from", string(s.kind)),
		zap.String("to", string(kind)),
		zap.String("component", part),
	)
	s.kind = kind
	s.root = root
	s.target = target
	return nil
}

// SelectComponent points the component view at the node named name. The
// previous target is kept when no such node exists.
func (s *State) SelectComponent(name string) error {
	n, ok := s.root.Find(name)
	if !ok {
		s.log.Warn("component not found",
			zap.String("name", name),
			zap.String("model", string(s.kind)),
		)
		return errors.Wrapf(ErrUnknownComponent, "%q in %s", name, s.kind)
	}
	s.target = n
	return nil
}

// SetAnimation starts or stops the model view turntable animation.
func (s *State) SetAnimation(on bool) { s.animation = on }
