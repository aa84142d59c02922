package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/articula/internal/catalog"
	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/pkg/math"
)

func cube(t *testing.T, name string, lo, hi math.Vec3) *model.Node {
	t.Helper()
	g, err := catalog.Cuboid(lo, hi)
	require.NoError(t, err)
	return model.NewNode(name, model.NewMesh(name, g))
}

// scene builds a large cube with a small one in front of it along -Z.
func scene(t *testing.T) *model.Node {
	back := cube(t, "back", math.V3(-0.5, -0.5, -0.5), math.V3(0.5, 0.5, 0.5))
	front := cube(t, "front", math.V3(-0.2, -0.2, -0.8), math.V3(0.2, 0.2, -0.6))
	require.NoError(t, back.AddChild(front))
	return back
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.V3(1, 1, 1), math.V3(-1, -1, -1))
	assert.Equal(t, math.V3(-1, -1, -1), box.Min)

	r := Ray{Origin: math.V3(0, 0, -2), Direction: math.V3(0, 0, 4)}
	tmin, tmax, hit := r.IntersectAABB(box)
	require.True(t, hit)
	assert.InDelta(t, 0.25, tmin, 1e-6)
	assert.InDelta(t, 0.75, tmax, 1e-6)

	miss := Ray{Origin: math.V3(2, 0, -2), Direction: math.V3(0, 0, 4)}
	_, _, hit = miss.IntersectAABB(box)
	assert.False(t, hit)
}

func TestClipRayFollowsFudgeDivide(t *testing.T) {
	r := ClipRay(0.5, -0.25, 1)
	for _, tt := range []float32{0.1, 0.5, 0.9} {
		p := r.At(tt)
		divide := 1 + p.Z
		assert.InDelta(t, 0.5, p.X/divide, 1e-5)
		assert.InDelta(t, -0.25, p.Y/divide, 1e-5)
	}
}

func TestPickNearest(t *testing.T) {
	root := scene(t)
	id := math.Identity()

	h, ok := Pick(root, id, 0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "front", h.Node.Name())
	assert.InDelta(t, 0.1, h.Depth, 1e-5)

	h, ok = Pick(root, id, 0, 0.4, 0.4)
	require.True(t, ok)
	assert.Equal(t, "back", h.Node.Name())

	_, ok = Pick(root, id, 0, 0.9, 0.9)
	assert.False(t, ok)
}

func TestPickFlippedDepth(t *testing.T) {
	// Ortho negates z, so the small cube ends up behind the large one.
	h, ok := Pick(scene(t), math.Ortho(-1, 1, -1, 1, -1, 1), 0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "back", h.Node.Name())
}

func TestPickWithFudge(t *testing.T) {
	root := scene(t)
	id := math.Identity()

	h, ok := Pick(root, id, 0, 0.3, 0)
	require.True(t, ok)
	assert.Equal(t, "back", h.Node.Name())

	// Near geometry is magnified by the fudge divide.
	h, ok = Pick(root, id, 1, 0.3, 0)
	require.True(t, ok)
	assert.Equal(t, "front", h.Node.Name())
}

func TestPickSkipsCollapsedMesh(t *testing.T) {
	root := scene(t)
	front, ok := root.Find("front")
	require.True(t, ok)
	require.NoError(t, front.SetScale(model.AxisX, 0))

	h, ok := Pick(root, math.Identity(), 0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "back", h.Node.Name())
}

func TestPickNodeIgnoresBareJoint(t *testing.T) {
	_, ok := PickNode(model.NewNode("joint", nil), math.Identity(), 0, 0, 0)
	assert.False(t, ok)
}
