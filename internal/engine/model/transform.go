package model

import (
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/articula/pkg/math"
)

// UnitScale divides composed translations: transforms are authored in
// centi-units and the scene spans roughly [-1, 1].
const UnitScale = 100

// Transform is an editable translate/rotate/scale triple.
// Translate is in centi-units, Rotate in degrees applied X then Y then Z,
// Scale is a component-wise multiplier.
type Transform struct {
	Translate math.Vec3 `yaml:"translate"`
	Rotate    math.Vec3 `yaml:"rotate"`
	Scale     math.Vec3 `yaml:"scale"`
}

// IdentityTransform returns zero translate and rotate with unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: math.One()}
}

// UnmarshalYAML decodes over the identity triple, so omitted fields keep
// zero translate and rotate and unit scale.
func (t *Transform) UnmarshalYAML(value *yaml.Node) error {
	type plain Transform
	p := plain(IdentityTransform())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*t = Transform(p)
	return nil
}

// SetTranslate overwrites one translate component.
func (t *Transform) SetTranslate(axis Axis, value float32) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	t.Translate = t.Translate.WithAxis(int(axis), value)
	return nil
}

// SetRotate overwrites one rotate component, in degrees.
func (t *Transform) SetRotate(axis Axis, value float32) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	t.Rotate = t.Rotate.WithAxis(int(axis), value)
	return nil
}

// SetScale overwrites one scale component.
func (t *Transform) SetScale(axis Axis, value float32) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	t.Scale = t.Scale.WithAxis(int(axis), value)
	return nil
}

// Combined is the result of blending a transform with its parent: translate
// in scene units, rotate in radians, scale as a product.
type Combined struct {
	Translate math.Vec3
	Rotate    math.Vec3
	Scale     math.Vec3
}

// Compose blends own with a single parent transform. A nil parent is
// treated as the identity triple. Only one level is blended; ancestors of
// the parent do not contribute.
func Compose(own Transform, parent *Transform) Combined {
	p := IdentityTransform()
	if parent != nil {
		p = *parent
	}

	t := own.Translate.Add(p.Translate)
	deg := own.Rotate.Add(p.Rotate)
	return Combined{
		Translate: math.Vec3{X: t.X / UnitScale, Y: t.Y / UnitScale, Z: t.Z / UnitScale},
		Rotate:    math.Vec3{X: math.DegToRad(deg.X), Y: math.DegToRad(deg.Y), Z: math.DegToRad(deg.Z)},
		Scale:     own.Scale.Mul(p.Scale),
	}
}

// Matrix returns Identity · T · R · S for the combined triple.
func (c Combined) Matrix() math.Mat4 {
	m := math.Identity()
	m = m.Mul(math.Translate(c.Translate.X, c.Translate.Y, c.Translate.Z))
	m = m.Mul(math.Rotation(c.Rotate.X, c.Rotate.Y, c.Rotate.Z))
	m = m.Mul(math.Scale(c.Scale.X, c.Scale.Y, c.Scale.Z))
	return m
}
