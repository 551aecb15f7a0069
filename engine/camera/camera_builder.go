package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera's starting world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithWorldUp sets the world up vector used to derive the right vector.
// A zero vector is ignored.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's world up vector
func WithWorldUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		up := mgl32.Vec3{x, y, z}
		if up.Len() == 0 {
			return
		}
		c.worldUp = up.Normalize()
	}
}

// WithYaw sets the starting yaw in degrees. -90 looks down -Z.
//
// Parameters:
//   - yaw: yaw angle in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's yaw
func WithYaw(yaw float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.yaw = yaw
	}
}

// WithPitch sets the starting pitch in degrees. It is not clamped.
//
// Parameters:
//   - pitch: pitch angle in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pitch
func WithPitch(pitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.pitch = pitch
	}
}

// WithRoll sets the starting roll in degrees.
//
// Parameters:
//   - roll: roll angle in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's roll
func WithRoll(roll float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.roll = roll
	}
}

// WithSpeed sets the translation speed in world units per second.
//
// Parameters:
//   - speed: movement speed
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's speed
func WithSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.speed = speed
	}
}

// WithSensitivity sets the factor applied to mouse offsets before they reach yaw and pitch.
//
// Parameters:
//   - sensitivity: degrees per unit of normalized mouse offset
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's mouse sensitivity
func WithSensitivity(sensitivity float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.sensitivity = sensitivity
	}
}

// WithRollSpeed sets the roll rate in degrees per second.
//
// Parameters:
//   - rollSpeed: roll rate
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's roll speed
func WithRollSpeed(rollSpeed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.rollSpeed = rollSpeed
	}
}

// WithZoom sets the starting vertical field of view in degrees.
// The value is clamped into the zoom bounds once all options are applied.
//
// Parameters:
//   - zoom: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's zoom
func WithZoom(zoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoom = zoom
	}
}

// WithZoomBounds sets the range the zoom is clamped into. Swapped bounds are reordered.
//
// Parameters:
//   - minZoom: smallest field of view in degrees
//   - maxZoom: largest field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's zoom range
func WithZoomBounds(minZoom, maxZoom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minZoom, c.maxZoom = min(minZoom, maxZoom), max(minZoom, maxZoom)
	}
}

// WithPitchBounds sets the range ProcessMouseMovement clamps pitch into. Swapped bounds are reordered.
//
// Parameters:
//   - minPitch: lowest pitch in degrees
//   - maxPitch: highest pitch in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's pitch range
func WithPitchBounds(minPitch, maxPitch float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minPitch, c.maxPitch = min(minPitch, maxPitch), max(minPitch, maxPitch)
	}
}

// WithSettings applies a full Settings block, as loaded from config.
//
// Parameters:
//   - s: the settings to apply
//
// Returns:
//   - CameraBuilderOption: a function that applies the settings
func WithSettings(s Settings) CameraBuilderOption {
	return func(c *cameraImpl) {
		s = s.normalized()
		c.speed = s.Speed
		c.sensitivity = s.Sensitivity
		c.rollSpeed = s.RollSpeed
		c.minZoom, c.maxZoom = s.MinZoom, s.MaxZoom
		c.minPitch, c.maxPitch = s.MinPitch, s.MaxPitch
	}
}
