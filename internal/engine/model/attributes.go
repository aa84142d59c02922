package model

import (
	"github.com/Faultbox/articula/pkg/math"
)

// White is the default vertex colour.
var White = [4]float32{1, 1, 1, 1}

// faceUV is the fixed texture coordinate pattern of one quad face.
var faceUV = [FaceSize][2]float32{
	{0, 0}, {0, 1}, {1, 1},
	{1, 0}, {0, 0}, {1, 1},
}

// Interleaved vertex layout, in floats.
const (
	VertexStride    = 18
	OffsetPosition  = 0
	OffsetNormal    = 3
	OffsetTangent   = 6
	OffsetBitangent = 9
	OffsetTexCoord  = 12
	OffsetColor     = 14
)

// DeriveVertices expands every index into its own vertex and attaches flat
// shading attributes. For each triangle (v1, v2, v3):
//
//	tangent   = normalize(v2 - v1)
//	bitangent = normalize(v3 - v1)
//	normal    = normalize(cross(tangent, bitangent))
//
// and the triple is shared by all three vertices. Each face gets the fixed
// UV pattern. Degenerate triangles get zero vectors.
func DeriveVertices(g Geometry, color [4]float32) []Vertex {
	indices := g.Indices()
	positions := g.Positions()
	out := make([]Vertex, len(indices))

	for i, idx := range indices {
		out[i] = Vertex{
			Position: positions[idx].Array(),
			TexCoord: faceUV[i%FaceSize],
			Color:    color,
		}
	}

	for i := 0; i+2 < len(out); i += 3 {
		v1 := vec(out[i].Position)
		v2 := vec(out[i+1].Position)
		v3 := vec(out[i+2].Position)

		tan := v2.Sub(v1).Normalize()
		bitan := v3.Sub(v1).Normalize()
		norm := tan.Cross(bitan).Normalize()

		for j := i; j < i+3; j++ {
			out[j].Tangent = tan.Array()
			out[j].Bitangent = bitan.Array()
			out[j].Normal = norm.Array()
		}
	}

	return out
}

// Interleave packs vertices into the VertexStride layout.
func Interleave(vertices []Vertex) []float32 {
	data := make([]float32, 0, len(vertices)*VertexStride)
	for _, v := range vertices {
		data = append(data, v.Position[:]...)
		data = append(data, v.Normal[:]...)
		data = append(data, v.Tangent[:]...)
		data = append(data, v.Bitangent[:]...)
		data = append(data, v.TexCoord[:]...)
		data = append(data, v.Color[:]...)
	}
	return data
}

// SequentialIndices returns 0..n-1, the index list for expanded vertices.
func SequentialIndices(n int) []uint16 {
	idx := make([]uint16, n)
	for i := range idx {
		idx[i] = uint16(i)
	}
	return idx
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
