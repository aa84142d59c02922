package scene

import (
	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/internal/engine/picking"
)

// Pick returns the node drawn at surface pixel (x, y), counted from the
// bottom-left corner, in view v. The component view only tests its target.
func (s *State) Pick(v View, x, y int) (*model.Node, bool) {
	ctx, err := s.Context(v)
	if err != nil {
		return nil, false
	}
	vp := ctx.Viewport
	if vp.Width <= 0 || vp.Height <= 0 ||
		x < vp.X || x >= vp.X+vp.Width || y < vp.Y || y >= vp.Y+vp.Height {
		return nil, false
	}

	ndcX := (float32(x-vp.X)+0.5)/float32(vp.Width)*2 - 1
	ndcY := (float32(y-vp.Y)+0.5)/float32(vp.Height)*2 - 1
	fudge := model.DrawParams{Mode: ctx.Projection}.FudgeFactor()

	var (
		hit picking.Hit
		ok  bool
	)
	if v == ViewModel {
		hit, ok = picking.Pick(s.root, ctx.Matrix(), fudge, ndcX, ndcY)
	} else {
		hit, ok = picking.PickNode(s.target, ctx.Matrix(), fudge, ndcX, ndcY)
	}
	return hit.Node, ok
}

// SelectAt points the component view at the node drawn at (x, y) in view v
// and returns its name. The selection is unchanged on a miss.
func (c *Controller) SelectAt(v View, x, y int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.s.Pick(v, x, y)
	if !ok {
		return "", false
	}
	c.s.target = n
	return n.Name(), true
}
