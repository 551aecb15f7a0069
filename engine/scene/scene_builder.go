package scene

import (
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene via NewScene.
type SceneBuilderOption func(*scene)

// WithCubePosition sets the cube's world position. The default is (0, 0.5, 0).
//
// Parameters:
//   - position: the cube centre in world space
//
// Returns:
//   - SceneBuilderOption: a function that applies the position option to a scene
func WithCubePosition(position [3]float32) SceneBuilderOption {
	return func(s *scene) {
		s.cubePosition = mgl32.Vec3(position)
	}
}

// WithCubeAxis sets the axis the cube rotates about. It is normalized when the model matrix is built,
// and a zero axis falls back to +Y.
//
// Parameters:
//   - axis: the rotation axis
//
// Returns:
//   - SceneBuilderOption: a function that applies the axis option to a scene
func WithCubeAxis(axis [3]float32) SceneBuilderOption {
	return func(s *scene) {
		s.cubeAxis = mgl32.Vec3(axis)
	}
}

// WithSpinStep sets the degrees added or removed by each spin call.
//
// Parameters:
//   - degrees: the spin step
//
// Returns:
//   - SceneBuilderOption: a function that applies the spin option to a scene
func WithSpinStep(degrees float32) SceneBuilderOption {
	return func(s *scene) {
		s.spinStep = degrees
	}
}

// WithPlane sets the ground plane's scale and how often its texture repeats across it.
//
// Parameters:
//   - scale: the plane's scale, applied to a unit quad
//   - uvRepeat: the texture coordinate at the plane's far edges
//
// Returns:
//   - SceneBuilderOption: a function that applies the plane option to a scene
func WithPlane(scale [3]float32, uvRepeat float32) SceneBuilderOption {
	return func(s *scene) {
		s.planeScale = mgl32.Vec3(scale)
		s.planeUVRepeat = uvRepeat
	}
}

// WithMixFactor sets the weight of the second texture. Values are clamped to [0, 1].
func WithMixFactor(factor float32) SceneBuilderOption {
	return func(s *scene) {
		s.mixFactor = mgl32.Clamp(factor, 0, 1)
	}
}

// WithProjection sets the perspective parameters. An aspect of 0 follows the framebuffer.
//
// Parameters:
//   - aspect: the fixed aspect ratio, or 0
//   - near, far: clip plane distances
//
// Returns:
//   - SceneBuilderOption: a function that applies the projection option to a scene
func WithProjection(aspect, near, far float32) SceneBuilderOption {
	return func(s *scene) {
		s.aspect, s.near, s.far = aspect, near, far
	}
}

// WithSampler sets the sampler used by both objects. The zero value selects repeat addressing and linear filtering.
func WithSampler(sampler common.SamplerStagingData) SceneBuilderOption {
	return func(s *scene) {
		s.sampler = sampler
	}
}
