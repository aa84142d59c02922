// Package catalog builds the canonical articulated trees for each creature.
//
// Part geometry is laid out around the part's pivot in scene units. The
// pivot itself is placed with the mesh-local translate, in centi-units, so
// whole-model broadcasts on joint transforms keep parts in place.
package catalog

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/pkg/math"
)

// Kind names a creature in the catalog.
type Kind string

// Catalog entries.
const (
	Person  Kind = "person"
	Chicken Kind = "chicken"
	Wolf    Kind = "wolf"
	Horse   Kind = "horse"
)

// ErrUnknownModel is returned for a kind with no catalog entry.
var ErrUnknownModel = errors.New("unknown model")

// part describes one node of a creature blueprint.
type part struct {
	name     string
	lo, hi   math.Vec3
	pivot    math.Vec3
	color    [4]float32
	children []part
}

type entry struct {
	defaultPart string
	root        part
}

var entries = map[Kind]entry{
	Person:  {defaultPart: "head", root: personBlueprint()},
	Chicken: {defaultPart: "body", root: chickenBlueprint()},
	Wolf:    {defaultPart: "head", root: wolfBlueprint()},
	Horse:   {defaultPart: "body", root: horseBlueprint()},
}

// Kinds returns every catalog kind in alphabetical order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(entries))
	for k := range entries {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Parse maps a case-insensitive name to its kind.
func Parse(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := entries[k]; !ok {
		return "", errors.Wrapf(ErrUnknownModel, "%q", s)
	}
	return k, nil
}

// DefaultPart returns the part the component view selects after a swap.
func DefaultPart(kind Kind) (string, error) {
	e, ok := entries[kind]
	if !ok {
		return "", errors.Wrapf(ErrUnknownModel, "%q", string(kind))
	}
	return e.defaultPart, nil
}

// Build constructs a fresh tree for kind. Every call returns new nodes.
func Build(kind Kind) (*model.Node, error) {
	e, ok := entries[kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownModel, "%q", string(kind))
	}
	root, err := build(e.root)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s", kind)
	}
	return root, nil
}

func build(p part) (*model.Node, error) {
	g, err := Cuboid(p.lo, p.hi)
	if err != nil {
		return nil, errors.Wrapf(err, "part %q", p.name)
	}

	mesh := model.NewMesh(p.name, g)
	mesh.Local.Translate = p.pivot
	if p.color != ([4]float32{}) {
		mesh.SetVertexColor(p.color)
	}

	n := model.NewNode(p.name, mesh)
	for _, c := range p.children {
		child, err := build(c)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			return nil, errors.Wrapf(err, "part %q", p.name)
		}
	}
	return n, nil
}

// FormatTree renders the tree under root one node per line, indented by depth.
func FormatTree(root *model.Node) string {
	var sb strings.Builder
	root.Walk(func(n *model.Node, depth int) bool {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(n.Name())
		sb.WriteByte('\n')
		return true
	})
	return sb.String()
}

func v(x, y, z float32) math.Vec3 { return math.Vec3{X: x, Y: y, Z: z} }

// box spans width w, height h and depth d. Anchor values of -1, 0 or 1 put
// the pivot on the low face, the centre or the high face of each axis.
func box(w, h, d float32, ax, ay, az float32) (lo, hi math.Vec3) {
	size := v(w, h, d)
	anchor := v(ax, ay, az)
	lo = v(
		-size.X/2-anchor.X*size.X/2,
		-size.Y/2-anchor.Y*size.Y/2,
		-size.Z/2-anchor.Z*size.Z/2,
	)
	return lo, lo.Add(size)
}

func limb(name string, w, h, d float32, pivot math.Vec3, color [4]float32, children ...part) part {
	lo, hi := box(w, h, d, 0, 1, 0)
	return part{name: name, lo: lo, hi: hi, pivot: pivot, color: color, children: children}
}

func block(name string, w, h, d float32, ax, ay, az float32, pivot math.Vec3, color [4]float32, children ...part) part {
	lo, hi := box(w, h, d, ax, ay, az)
	return part{name: name, lo: lo, hi: hi, pivot: pivot, color: color, children: children}
}
