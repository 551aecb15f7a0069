package model

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPUVertexLayout(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, TexCoord: [2]float32{0.5, 0.25}}
	require.Equal(t, GPUVertexSize, v.Size())

	buf := v.Marshal()
	require.Len(t, buf, GPUVertexSize)
	assert.Equal(t, float32(3), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])))
	assert.Equal(t, float32(0.25), math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])))
}

func TestCube(t *testing.T) {
	m := Cube()
	require.Len(t, m.Vertices, 36)
	assert.Equal(t, uint32(36), m.IndexCount())

	for i, v := range m.Vertices {
		assert.Equal(t, uint32(i), m.Indices[i])
		for _, p := range v.Position {
			assert.Equal(t, float32(0.5), float32(math.Abs(float64(p))), "vertex %d lies on the unit cube", i)
		}
		for _, uv := range v.TexCoord {
			assert.True(t, uv == 0 || uv == 1)
		}
	}
}

func TestPlane(t *testing.T) {
	m := Plane(50)
	require.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 3, 1, 2, 3}, m.Indices)

	for _, v := range m.Vertices {
		assert.Zero(t, v.Position[1])
		assert.LessOrEqual(t, v.TexCoord[0], float32(50))
	}
	assert.Equal(t, [2]float32{50, 50}, m.Vertices[0].TexCoord)
}

func TestMeshBytes(t *testing.T) {
	m := Plane(2)

	vb := m.VertexBytes()
	require.Len(t, vb, 4*GPUVertexSize)
	assert.Equal(t, m.Vertices[1].Marshal(), vb[GPUVertexSize:2*GPUVertexSize])

	ib := m.IndexBytes()
	require.Len(t, ib, 6*4)
	assert.Equal(t, uint32(3), binary.LittleEndian.Uint32(ib[8:12]))
}
