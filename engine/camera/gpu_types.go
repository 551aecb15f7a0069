package camera

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUCameraUniform is the GPU-aligned representation of the camera uniform buffer (group 0, binding 0).
// Matches the WGSL Camera struct in the textured shader.
// Size: 128 bytes.
type GPUCameraUniform struct {
	View       [16]float32 // offset  0: view matrix (mat4x4<f32>)
	Projection [16]float32 // offset 64: projection matrix (mat4x4<f32>)
}

// NewGPUCameraUniform snapshots a camera's view and projection for upload.
//
// Parameters:
//   - c: the camera
//   - aspect: viewport aspect ratio
//   - near, far: clip plane distances
//
// Returns:
//   - GPUCameraUniform: the uniform data
func NewGPUCameraUniform(c Camera, aspect, near, far float32) GPUCameraUniform {
	return GPUCameraUniform{
		View:       c.ViewMatrix(),
		Projection: c.ProjectionMatrix(aspect, near, far),
	}
}

// Size returns the size of the GPUCameraUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (128)
func (g *GPUCameraUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUCameraUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.View[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Projection[i]))
	}
	return buf
}
