package scene

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// TexturedShaderSource is the WGSL source shared by the vertex and fragment stages of the textured pipeline.
//
//go:embed assets/textured.wgsl
var TexturedShaderSource string

// GPUObjectUniform is the GPU-aligned representation of an object's uniform buffer (group 1, binding 0).
// Matches the WGSL ModelData struct in the textured shader.
// Size: 80 bytes (std140 rounds the struct up to its 16-byte alignment).
type GPUObjectUniform struct {
	Model     [16]float32 // offset  0: model matrix (mat4x4<f32>)
	MixFactor float32     // offset 64: weight of the second texture
	_         [3]float32  // offset 68: padding to 80 bytes
}

// NewGPUObjectUniform builds the uniform for an object.
//
// Parameters:
//   - model: the object's model matrix
//   - mixFactor: the texture blend weight
//
// Returns:
//   - GPUObjectUniform: the uniform data
func NewGPUObjectUniform(model mgl32.Mat4, mixFactor float32) GPUObjectUniform {
	return GPUObjectUniform{Model: model, MixFactor: mixFactor}
}

// Size returns the size of the GPUObjectUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (80)
func (g *GPUObjectUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUObjectUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer, padding zeroed
func (g *GPUObjectUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Model[i]))
	}
	binary.LittleEndian.PutUint32(buf[64:], math.Float32bits(g.MixFactor))
	return buf
}
