package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/pkg/math"
)

func TestCuboidOutwardNormals(t *testing.T) {
	g, err := Cuboid(math.Vec3{X: -1, Y: -2, Z: -3}, math.Vec3{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	require.Equal(t, 6, g.FaceCount())

	want := [][]float32{
		{0, 0, 1}, {0, 0, -1},
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
	}

	vs := model.DeriveVertices(g, model.White)
	for face, n := range want {
		for i := 0; i < model.FaceSize; i++ {
			got := vs[face*model.FaceSize+i].Normal
			assert.InDeltaSlice(t, n, got[:], 1e-6, "face %d vertex %d", face, i)
		}
	}
}

func TestCuboidBounds(t *testing.T) {
	g, err := Cuboid(math.Vec3{X: -0.1}, math.Vec3{X: 0.1, Y: 0.2, Z: 0.3})
	require.NoError(t, err)

	lo, hi := g.Bounds()
	assert.Equal(t, math.Vec3{X: -0.1}, lo)
	assert.Equal(t, math.Vec3{X: 0.1, Y: 0.2, Z: 0.3}, hi)
}

func TestBox(t *testing.T) {
	lo, hi := box(0.2, 0.4, 0.1, 0, 1, -1)
	assert.InDelta(t, -0.1, lo.X, 1e-6)
	assert.InDelta(t, 0.1, hi.X, 1e-6)
	assert.InDelta(t, -0.4, lo.Y, 1e-6)
	assert.InDelta(t, 0, hi.Y, 1e-6)
	assert.InDelta(t, 0, lo.Z, 1e-6)
	assert.InDelta(t, 0.1, hi.Z, 1e-6)
}

func TestBuildEveryKind(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			root, err := Build(kind)
			require.NoError(t, err)

			part, err := DefaultPart(kind)
			require.NoError(t, err)
			_, ok := root.Find(part)
			assert.True(t, ok, "default part %q missing", part)

			seen := make(map[string]bool)
			for _, name := range root.Names() {
				assert.False(t, seen[name], "duplicate %q", name)
				seen[name] = true
			}
			assert.Greater(t, len(seen), 5)

			// Every part fits inside the unit clip box once placed.
			root.Walk(func(n *model.Node, _ int) bool {
				lo, hi := n.Mesh.Geometry().Bounds()
				m := n.Mesh.Matrix(&n.Joint)
				for _, p := range []math.Vec3{lo, hi} {
					w := m.TransformVec3(p)
					assert.LessOrEqual(t, math.Vec3{X: abs(w.X), Y: abs(w.Y), Z: abs(w.Z)}.Length(), float32(1), n.Name())
				}
				return true
			})
		})
	}
}

func TestBuildReturnsFreshTrees(t *testing.T) {
	a, err := Build(Wolf)
	require.NoError(t, err)
	b, err := Build(Wolf)
	require.NoError(t, err)
	assert.NotSame(t, a, b)

	require.NoError(t, a.SetRotate(model.AxisY, 90))
	assert.Zero(t, b.Joint.Rotate.Y)
}

func TestDefaultParts(t *testing.T) {
	tests := map[Kind]string{
		Person:  "head",
		Chicken: "body",
		Wolf:    "head",
		Horse:   "body",
	}
	for kind, want := range tests {
		got, err := DefaultPart(kind)
		require.NoError(t, err)
		assert.Equal(t, want, got, string(kind))
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := Build("dragon")
	assert.ErrorIs(t, err, ErrUnknownModel)

	_, err = DefaultPart("dragon")
	assert.ErrorIs(t, err, ErrUnknownModel)

	_, err = Parse("dragon")
	assert.ErrorIs(t, err, ErrUnknownModel)

	k, err := Parse(" Horse ")
	require.NoError(t, err)
	assert.Equal(t, Horse, k)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{Chicken, Horse, Person, Wolf}, Kinds())
}

func TestFormatTree(t *testing.T) {
	root, err := Build(Person)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(FormatTree(root), "\n"), "\n")
	assert.Equal(t, "body", lines[0])
	assert.Equal(t, "  head", lines[1])
	assert.Equal(t, "    nose", lines[2])
	assert.Equal(t, "  leftUpperArm", lines[3])
	assert.Len(t, lines, len(root.Names()))
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
