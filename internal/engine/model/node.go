package model

import (
	"github.com/pkg/errors"

	"github.com/Faultbox/articula/internal/engine/gpu"
)

// Tree construction errors.
var (
	ErrInvalidChild  = errors.New("invalid child")
	ErrHasParent     = errors.New("node already has a parent")
	ErrCycle         = errors.New("child is an ancestor")
	ErrDuplicateName = errors.New("duplicate node name")
	ErrNodeNotFound  = errors.New("node not found")
)

// Node is an articulated node: a joint transform, the mesh posed by it and
// an ordered list of owned children. Names are unique within one tree.
type Node struct {
	name string
	// Mesh is drawn with Joint as its parent transform. A nil mesh is a bare joint.
	Mesh  *Mesh
	Joint Transform

	children []*Node
	parent   *Node
}

// NewNode creates a root node with an identity joint.
func NewNode(name string, mesh *Mesh) *Node {
	return &Node{
		name:  name,
		Mesh:  mesh,
		Joint: IdentityTransform(),
	}
}

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Parent returns the owning node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the child list. Callers must not modify it.
func (n *Node) Children() []*Node { return n.children }

// Root walks parent links to the tree root.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// AddChild appends child to n. The child must be a detached root whose
// subtree shares no names with n's tree.
func (n *Node) AddChild(child *Node) error {
	switch {
	case child == nil:
		return errors.Wrap(ErrInvalidChild, "nil child")
	case child == n:
		return errors.Wrapf(ErrInvalidChild, "%q added to itself", n.name)
	case child.parent != nil:
		return errors.Wrapf(ErrHasParent, "%q owned by %q", child.name, child.parent.name)
	}

	root := n.Root()
	if root == child {
		return errors.Wrapf(ErrCycle, "%q is an ancestor of %q", child.name, n.name)
	}

	var dup error
	child.Walk(func(c *Node, _ int) bool {
		if _, ok := root.Find(c.name); ok {
			dup = errors.Wrapf(ErrDuplicateName, "%q", c.name)
			return false
		}
		return true
	})
	if dup != nil {
		return dup
	}

	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// MustAddChild is AddChild for static catalog tables; it panics on error.
func (n *Node) MustAddChild(children ...*Node) *Node {
	for _, c := range children {
		if err := n.AddChild(c); err != nil {
			panic(err)
		}
	}
	return n
}

// Walk visits the subtree in pre-order, passing each node's depth below n.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) bool {
	if !fn(n, depth) {
		return false
	}
	for _, c := range n.children {
		if !c.walk(fn, depth+1) {
			return false
		}
	}
	return true
}

// Find returns the first node named name in pre-order.
func (n *Node) Find(name string) (*Node, bool) {
	var found *Node
	n.Walk(func(c *Node, _ int) bool {
		if c.name == name {
			found = c
			return false
		}
		return true
	})
	return found, found != nil
}

// Names lists the subtree in pre-order.
func (n *Node) Names() []string {
	var names []string
	n.Walk(func(c *Node, _ int) bool {
		names = append(names, c.name)
		return true
	})
	return names
}

// Contains reports whether target is n or one of its descendants.
func (n *Node) Contains(target *Node) bool {
	for c := target; c != nil; c = c.parent {
		if c == n {
			return true
		}
	}
	return false
}

// SetTranslate writes value into the translate axis of n and every descendant.
func (n *Node) SetTranslate(axis Axis, value float32) error {
	return n.broadcast(axis, func(t *Transform) error { return t.SetTranslate(axis, value) })
}

// SetRotate writes value, in degrees, into the rotate axis of n and every descendant.
func (n *Node) SetRotate(axis Axis, value float32) error {
	return n.broadcast(axis, func(t *Transform) error { return t.SetRotate(axis, value) })
}

// SetScale writes value into the scale axis of n and every descendant.
func (n *Node) SetScale(axis Axis, value float32) error {
	return n.broadcast(axis, func(t *Transform) error { return t.SetScale(axis, value) })
}

func (n *Node) broadcast(axis Axis, set func(*Transform) error) error {
	if err := checkAxis(axis); err != nil {
		return err
	}
	n.Walk(func(c *Node, _ int) bool {
		_ = set(&c.Joint)
		return true
	})
	return nil
}

// DrawSubtree draws n and then every descendant in pre-order. Each mesh is
// blended with its own node's joint only.
func (n *Node) DrawSubtree(b gpu.Backend, program gpu.Program, params DrawParams) error {
	if err := n.DrawSingle(b, program, params); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := c.DrawSubtree(b, program, params); err != nil {
			return err
		}
	}
	return nil
}

// DrawSingle draws n's mesh alone.
func (n *Node) DrawSingle(b gpu.Backend, program gpu.Program, params DrawParams) error {
	if n.Mesh == nil {
		return nil
	}
	return n.Mesh.Draw(b, program, params, &n.Joint)
}

// Release frees every mesh buffer the subtree uploaded to b.
func (n *Node) Release(b gpu.Backend) {
	n.Walk(func(c *Node, _ int) bool {
		if c.Mesh != nil {
			c.Mesh.Release(b)
		}
		return true
	})
}
