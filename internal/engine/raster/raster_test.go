package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/articula/internal/catalog"
	"github.com/Faultbox/articula/internal/engine/gpu"
	"github.com/Faultbox/articula/internal/engine/lighting"
	"github.com/Faultbox/articula/internal/engine/model"
	"github.com/Faultbox/articula/pkg/math"
)

// quad spans [lo, hi] in X and Y at depth z, in clip units.
func quad(t *testing.T, lo, hi, z float32) *model.Mesh {
	t.Helper()
	g, err := model.NewGeometry([]math.Vec3{
		{X: lo, Y: lo, Z: z},
		{X: hi, Y: lo, Z: z},
		{X: hi, Y: hi, Z: z},
		{X: lo, Y: hi, Z: z},
	}, []uint16{0, 1, 2, 3, 0, 2})
	require.NoError(t, err)
	return model.NewMesh("quad", g)
}

func flat(c math.Vec3) model.DrawParams {
	return model.DrawParams{Projection: math.Identity(), Color: c}
}

var (
	red   = math.Vec3{X: 1}
	green = math.Vec3{Y: 1}
)

func opaque(r, g, b uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: 255} }

func TestClearViewportOnly(t *testing.T) {
	b := NewBackend(4, 2)
	b.Viewport(0, 0, 2, 2)
	b.Clear(1, 0, 0, 1)

	img := b.Image()
	assert.Equal(t, opaque(255, 0, 0), img.NRGBAAt(0, 0))
	assert.Equal(t, opaque(255, 0, 0), img.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(3, 0))
}

func TestDrawFullViewport(t *testing.T) {
	b := NewBackend(8, 8)
	b.EnableDepthTest()

	m := quad(t, -1, 1, 0)
	require.NoError(t, m.Draw(b, Program{}, flat(green), nil))

	img := b.Image()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, opaque(0, 255, 0), img.NRGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
	assert.Equal(t, 1, b.Draws())
	assert.Equal(t, 2, b.Triangles())
	assert.Equal(t, 2, b.Buffers())
}

func TestViewportMapping(t *testing.T) {
	b := NewBackend(4, 4)
	b.Viewport(0, 0, 2, 4)

	// Upper half of the NDC square lands in the top image rows.
	g, err := model.NewGeometry([]math.Vec3{
		{X: -1, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: -1, Y: 1},
	}, []uint16{0, 1, 2, 3, 0, 2})
	require.NoError(t, err)
	require.NoError(t, model.NewMesh("top", g).Draw(b, Program{}, flat(red), nil))

	img := b.Image()
	assert.Equal(t, opaque(255, 0, 0), img.NRGBAAt(0, 0))
	assert.Equal(t, opaque(255, 0, 0), img.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 2), "lower half untouched")
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(2, 0), "outside viewport")
}

func TestDepthTest(t *testing.T) {
	tests := []struct {
		name            string
		first, second   math.Vec3
		firstZ, secondZ float32
		want            color.NRGBA
	}{
		{"near drawn last", red, green, 0.5, -0.5, opaque(0, 255, 0)},
		{"near drawn first", red, green, -0.5, 0.5, opaque(255, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend(4, 4)
			b.EnableDepthTest()
			b.Clear(0, 0, 0, 1)

			require.NoError(t, quad(t, -1, 1, tt.firstZ).Draw(b, Program{}, flat(tt.first), nil))
			require.NoError(t, quad(t, -1, 1, tt.secondZ).Draw(b, Program{}, flat(tt.second), nil))

			assert.Equal(t, tt.want, b.Image().NRGBAAt(2, 2))
		})
	}
}

func TestWithoutDepthTestLastDrawWins(t *testing.T) {
	b := NewBackend(4, 4)

	require.NoError(t, quad(t, -1, 1, -0.5).Draw(b, Program{}, flat(red), nil))
	require.NoError(t, quad(t, -1, 1, 0.5).Draw(b, Program{}, flat(green), nil))

	assert.Equal(t, opaque(0, 255, 0), b.Image().NRGBAAt(1, 1))
}

func TestFudgeFactorShrinksDistantGeometry(t *testing.T) {
	b := NewBackend(6, 6)

	params := flat(red)
	params.Mode = model.Perspective
	// z = 0.5 divides xy by 1.5, so the quad covers [-2/3, 2/3].
	require.NoError(t, quad(t, -1, 1, 0.5).Draw(b, Program{}, params, nil))

	img := b.Image()
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 3))
	assert.Equal(t, opaque(255, 0, 0), img.NRGBAAt(1, 3))
	assert.Equal(t, opaque(255, 0, 0), img.NRGBAAt(4, 3))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(5, 3))
}

func TestShadingUsesAmbientForGrazingLight(t *testing.T) {
	b := NewBackend(2, 2)
	// Straight down onto a quad facing the camera axis.
	b.SetLight(lighting.New(0, 90, 0.25, 0.5))

	params := flat(math.One())
	params.Shading = true
	require.NoError(t, quad(t, -1, 1, 0).Draw(b, Program{}, params, nil))

	assert.Equal(t, opaque(64, 64, 64), b.Image().NRGBAAt(0, 0))
}

func TestImageTexture(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	tex.SetNRGBA(0, 0, opaque(0, 0, 255))

	params := flat(math.One())
	params.Texture = model.TextureImage

	t.Run("bound", func(t *testing.T) {
		b := NewBackend(2, 2)
		b.SetTexture(model.TextureImage, tex)
		require.NoError(t, b.BindTexture(model.TextureImage))
		require.NoError(t, quad(t, -1, 1, 0).Draw(b, Program{}, params, nil))
		assert.Equal(t, opaque(0, 0, 255), b.Image().NRGBAAt(1, 1))
	})

	t.Run("unbound falls back to flat", func(t *testing.T) {
		b := NewBackend(2, 2)
		b.SetTexture(model.TextureImage, tex)
		require.NoError(t, b.BindTexture(model.TextureBump))
		require.NoError(t, quad(t, -1, 1, 0).Draw(b, Program{}, params, nil))
		assert.Equal(t, opaque(255, 255, 255), b.Image().NRGBAAt(1, 1))
	})
}

func TestVertexColorModulatesBase(t *testing.T) {
	b := NewBackend(2, 2)
	m := quad(t, -1, 1, 0)
	m.SetVertexColor([4]float32{0.5, 1, 1, 1})

	require.NoError(t, m.Draw(b, Program{}, flat(math.One()), nil))
	assert.Equal(t, opaque(128, 255, 255), b.Image().NRGBAAt(0, 1))
}

func TestDrawErrors(t *testing.T) {
	b := NewBackend(2, 2)

	b.UseProgram(Program{})
	err := b.DrawElements(42, 3)
	assert.ErrorIs(t, err, ErrUnknownBuffer)

	id, err := b.CreateBuffer()
	require.NoError(t, err)
	b.ElementData(id, []uint16{0, 1, 2})
	assert.ErrorIs(t, b.DrawElements(id, 3), ErrNoPosition)
	assert.Error(t, b.DrawElements(id, 6), "count beyond the index data")

	b.UseProgram(foreign{})
	assert.ErrorIs(t, b.DrawElements(id, 3), ErrForeignProgram)
}

func TestDeleteBufferUnbindsAttributes(t *testing.T) {
	b := NewBackend(2, 2)
	m := quad(t, -1, 1, 0)
	require.NoError(t, m.Draw(b, Program{}, flat(red), nil))

	m.Release(b)
	assert.Zero(t, b.Buffers())
	for _, a := range b.attribs {
		assert.False(t, a.set)
	}

	// Drawing again re-uploads.
	require.NoError(t, m.Draw(b, Program{}, flat(red), nil))
	assert.Equal(t, 2, b.Buffers())
}

func TestProgramLocations(t *testing.T) {
	p := Program{}
	assert.Equal(t, locPosition, p.Attrib(gpu.AttribPosition))
	assert.Equal(t, int32(-1), p.Attrib("aUnknown"))
	assert.Equal(t, locProjection, p.Uniform(gpu.UniformProjection))
	assert.Equal(t, int32(-1), p.Uniform(gpu.UniformSampler))
}

func TestRenderCatalogModel(t *testing.T) {
	root, err := catalog.Build(catalog.Horse)
	require.NoError(t, err)

	b := NewBackend(64, 64)
	b.EnableDepthTest()
	b.Clear(0, 0, 0, 1)

	params := model.DrawParams{
		Projection: math.Oblique(math.DegToRad(64), math.DegToRad(64)),
		Color:      math.One(),
		Shading:    true,
	}
	require.NoError(t, root.DrawSubtree(b, Program{}, params))

	meshes := 0
	root.Walk(func(n *model.Node, _ int) bool {
		if n.Mesh != nil {
			meshes++
		}
		return true
	})
	assert.Equal(t, meshes, b.Draws())

	covered := 0
	img := b.Image()
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if img.NRGBAAt(x, y) != opaque(0, 0, 0) {
				covered++
			}
		}
	}
	assert.Greater(t, covered, 64, "model should cover part of the frame")
}

func TestSampleCube(t *testing.T) {
	var faces [6]*image.NRGBA
	for i := range faces {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, opaque(uint8(i*40), 0, 0))
		faces[i] = img
	}

	assert.InDelta(t, 0.0, sampleCube(&faces, math.Vec3{X: 1})[0], 1e-9)
	assert.InDelta(t, 40.0/255, sampleCube(&faces, math.Vec3{X: -1})[0], 1e-9)
	assert.InDelta(t, 160.0/255, sampleCube(&faces, math.Vec3{Z: 1})[0], 1e-9)

	var none [6]*image.NRGBA
	assert.Equal(t, [4]float64{1, 1, 1, 1}, sampleCube(&none, math.Vec3{Y: 1}))
}

type foreign struct{}

func (foreign) Attrib(string) int32  { return -1 }
func (foreign) Uniform(string) int32 { return -1 }

func TestViewDirectionUniform(t *testing.T) {
	b := NewBackend(4, 4)
	assert.Equal(t, math.Vec3{Z: -1}, b.u.viewDir)

	b.Uniform3f(Program{}.Uniform(gpu.UniformViewDir), [3]float32{2, 0, 0})
	assert.Equal(t, math.Vec3{X: 1}, b.u.viewDir)
}
