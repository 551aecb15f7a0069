package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective creates a perspective projection matrix for WebGPU clip space,
// where depth maps to [0, 1] instead of OpenGL's [-1, 1].
// The matrix is column-major, matching mgl32.Mat4.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// ModelMatrix composes translate * rotate * scale the way the demo places its objects:
// the rotation is given in degrees about an arbitrary axis, which is normalized first.
// A zero axis yields no rotation.
//
// Parameters:
//   - translation: world-space position
//   - angleDeg: rotation angle in degrees
//   - axis: rotation axis (need not be unit length)
//   - scale: per-axis scale factors
//
// Returns:
//   - mgl32.Mat4: the model matrix
func ModelMatrix(translation mgl32.Vec3, angleDeg float32, axis mgl32.Vec3, scale mgl32.Vec3) mgl32.Mat4 {
	m := mgl32.Translate3D(translation.X(), translation.Y(), translation.Z())
	if axis.Len() > 1e-6 && angleDeg != 0 {
		m = m.Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(angleDeg), axis.Normalize()))
	}
	return m.Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z()))
}
