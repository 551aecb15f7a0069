// Package model holds the static meshes drawn by the demo: a unit cube and a ground plane.
package model

import (
	"encoding/binary"
)

// Mesh is an indexed triangle list ready for upload.
type Mesh struct {
	Name     string
	Vertices []GPUVertex
	Indices  []uint32
}

// VertexBytes packs the vertices into one contiguous vertex buffer.
//
// Returns:
//   - []byte: len(Vertices) * GPUVertexSize bytes
func (m *Mesh) VertexBytes() []byte {
	buf := make([]byte, len(m.Vertices)*GPUVertexSize)
	for i := range m.Vertices {
		m.Vertices[i].put(buf[i*GPUVertexSize:])
	}
	return buf
}

// IndexBytes packs the indices as little-endian uint32s.
//
// Returns:
//   - []byte: len(Indices) * 4 bytes
func (m *Mesh) IndexBytes() []byte {
	buf := make([]byte, len(m.Indices)*4)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}

// IndexCount returns the number of indices to draw.
func (m *Mesh) IndexCount() uint32 {
	return uint32(len(m.Indices))
}
