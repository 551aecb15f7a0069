package camera

import (
	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Default camera tuning. Angles are in degrees, speeds are per second.
const (
	DefaultYaw         float32 = -90.0
	DefaultPitch       float32 = 0.0
	DefaultRoll        float32 = 0.0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 1.0
	DefaultRollSpeed   float32 = 45.0
	DefaultZoom        float32 = 45.0
	DefaultMinZoom     float32 = 1.0
	DefaultMaxZoom     float32 = 45.0
	DefaultMinPitch    float32 = -89.0
	DefaultMaxPitch    float32 = 89.0
)

// degenerateEpsilon is the cross-product length below which forward is treated as parallel to world up.
const degenerateEpsilon = 1e-6

type cameraImpl struct {
	position mgl32.Vec3
	worldUp  mgl32.Vec3

	yaw   float32
	pitch float32
	roll  float32

	speed       float32
	sensitivity float32
	rollSpeed   float32

	zoom    float32
	minZoom float32
	maxZoom float32

	minPitch float32
	maxPitch float32

	// Derived from yaw/pitch/roll by updateVectors.
	forward mgl32.Vec3
	right   mgl32.Vec3
	up      mgl32.Vec3

	// baseRight is right before roll, the fallback when forward is parallel to world up.
	baseRight mgl32.Vec3
}

// Camera is a free-flying first-person camera.
// It integrates per-frame keyboard, mouse and scroll input into a position and a
// yaw/pitch/roll orientation, and exposes the resulting view matrix and zoom (vertical FOV).
//
// A Camera is owned by the render loop and is not safe for concurrent use.
type Camera interface {
	// ProcessKeyboard applies one frame of a held movement key.
	// Translation directions move the camera by Speed() * deltaTime along its forward/right axes;
	// roll directions change the roll angle by the roll speed * deltaTime instead.
	// Repeated calls compound.
	//
	// Parameters:
	//   - direction: the movement direction of the held key
	//   - deltaTime: elapsed frame time in seconds
	ProcessKeyboard(direction Direction, deltaTime float32)

	// ProcessMouseMovement adds normalized mouse offsets, scaled by the sensitivity, to yaw and pitch
	// and clamps pitch into its configured range.
	//
	// Parameters:
	//   - xOffset: horizontal offset, positive turns right
	//   - yOffset: vertical offset, positive looks up
	ProcessMouseMovement(xOffset, yOffset float32)

	// ProcessMouseMovementUnconstrained is ProcessMouseMovement without the pitch clamp.
	//
	// Parameters:
	//   - xOffset: horizontal offset, positive turns right
	//   - yOffset: vertical offset, positive looks up
	ProcessMouseMovementUnconstrained(xOffset, yOffset float32)

	// ProcessMouseScroll subtracts a scroll delta from the zoom and clamps it into its configured range.
	//
	// Parameters:
	//   - yOffset: signed scroll distance, positive zooms in
	ProcessMouseScroll(yOffset float32)

	// ViewMatrix returns the look-at transform built from the position, position+forward and up.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns a WebGPU perspective projection using Zoom() as the vertical field of view.
	//
	// Parameters:
	//   - aspect: viewport aspect ratio (width / height)
	//   - near: near plane distance
	//   - far: far plane distance
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major)
	ProjectionMatrix(aspect, near, far float32) mgl32.Mat4

	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// Forward returns the unit view direction.
	Forward() mgl32.Vec3

	// Right returns the unit right vector, including roll.
	Right() mgl32.Vec3

	// Up returns the unit up vector, including roll.
	Up() mgl32.Vec3

	// Yaw returns the yaw angle in degrees.
	Yaw() float32

	// Pitch returns the pitch angle in degrees.
	Pitch() float32

	// Roll returns the roll angle in degrees.
	Roll() float32

	// Zoom returns the vertical field of view in degrees.
	Zoom() float32

	// Speed returns the translation speed in world units per second.
	Speed() float32

	// Sensitivity returns the mouse-offset scale factor.
	Sensitivity() float32

	// Settings returns the camera's current tuning.
	Settings() Settings

	// Apply replaces the camera's tuning. Zoom and pitch are re-clamped into the new ranges.
	//
	// Parameters:
	//   - s: the new settings
	Apply(s Settings)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at the origin looking down -Z with the default tuning.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		worldUp:     mgl32.Vec3{0, 1, 0},
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		roll:        DefaultRoll,
		speed:       DefaultSpeed,
		sensitivity: DefaultSensitivity,
		rollSpeed:   DefaultRollSpeed,
		zoom:        DefaultZoom,
		minZoom:     DefaultMinZoom,
		maxZoom:     DefaultMaxZoom,
		minPitch:    DefaultMinPitch,
		maxPitch:    DefaultMaxPitch,
		baseRight:   mgl32.Vec3{1, 0, 0},
	}
	for _, option := range options {
		option(c)
	}
	c.zoom = mgl32.Clamp(c.zoom, c.minZoom, c.maxZoom)
	c.updateVectors()
	return c
}

func (c *cameraImpl) ProcessKeyboard(direction Direction, deltaTime float32) {
	velocity := c.speed * deltaTime
	switch direction {
	case Forward:
		c.position = c.position.Add(c.forward.Mul(velocity))
	case Backward:
		c.position = c.position.Sub(c.forward.Mul(velocity))
	case Left:
		c.position = c.position.Sub(c.right.Mul(velocity))
	case Right:
		c.position = c.position.Add(c.right.Mul(velocity))
	case RollLeft:
		c.roll -= c.rollSpeed * deltaTime
		c.updateVectors()
	case RollRight:
		c.roll += c.rollSpeed * deltaTime
		c.updateVectors()
	}
}

func (c *cameraImpl) ProcessMouseMovement(xOffset, yOffset float32) {
	c.turn(xOffset, yOffset, true)
}

func (c *cameraImpl) ProcessMouseMovementUnconstrained(xOffset, yOffset float32) {
	c.turn(xOffset, yOffset, false)
}

func (c *cameraImpl) ProcessMouseScroll(yOffset float32) {
	c.zoom = mgl32.Clamp(c.zoom-yOffset, c.minZoom, c.maxZoom)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.forward), c.up)
}

func (c *cameraImpl) ProjectionMatrix(aspect, near, far float32) mgl32.Mat4 {
	return common.Perspective(mgl32.DegToRad(c.zoom), aspect, near, far)
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	return c.forward
}

func (c *cameraImpl) Right() mgl32.Vec3 {
	return c.right
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Yaw() float32 {
	return c.yaw
}

func (c *cameraImpl) Pitch() float32 {
	return c.pitch
}

func (c *cameraImpl) Roll() float32 {
	return c.roll
}

func (c *cameraImpl) Zoom() float32 {
	return c.zoom
}

func (c *cameraImpl) Speed() float32 {
	return c.speed
}

func (c *cameraImpl) Sensitivity() float32 {
	return c.sensitivity
}

func (c *cameraImpl) Settings() Settings {
	return Settings{
		Speed:       c.speed,
		Sensitivity: c.sensitivity,
		RollSpeed:   c.rollSpeed,
		MinZoom:     c.minZoom,
		MaxZoom:     c.maxZoom,
		MinPitch:    c.minPitch,
		MaxPitch:    c.maxPitch,
	}
}

func (c *cameraImpl) Apply(s Settings) {
	s = s.normalized()
	c.speed = s.Speed
	c.sensitivity = s.Sensitivity
	c.rollSpeed = s.RollSpeed
	c.minZoom, c.maxZoom = s.MinZoom, s.MaxZoom
	c.minPitch, c.maxPitch = s.MinPitch, s.MaxPitch
	c.zoom = mgl32.Clamp(c.zoom, c.minZoom, c.maxZoom)
	c.pitch = mgl32.Clamp(c.pitch, c.minPitch, c.maxPitch)
	c.updateVectors()
}

// turn applies scaled mouse offsets to yaw and pitch, optionally clamping pitch.
func (c *cameraImpl) turn(xOffset, yOffset float32, constrainPitch bool) {
	c.yaw += xOffset * c.sensitivity
	c.pitch += yOffset * c.sensitivity
	if constrainPitch {
		c.pitch = mgl32.Clamp(c.pitch, c.minPitch, c.maxPitch)
	}
	c.updateVectors()
}

// updateVectors recomputes forward, right and up from yaw, pitch and roll.
// Roll is applied as an axis-angle rotation of right/up about forward, so the basis is rebuilt
// from the angles every time and never accumulates drift.
func (c *cameraImpl) updateVectors() {
	yaw := mgl32.DegToRad(c.yaw)
	pitch := mgl32.DegToRad(c.pitch)

	c.forward = mgl32.Vec3{
		math32.Cos(pitch) * math32.Cos(yaw),
		math32.Sin(pitch),
		math32.Cos(pitch) * math32.Sin(yaw),
	}.Normalize()

	// Looking straight along world up leaves right undefined; keep the previous unrolled right,
	// re-orthogonalized against the new forward.
	right := c.forward.Cross(c.worldUp)
	if right.Len() < degenerateEpsilon {
		right = c.baseRight.Sub(c.forward.Mul(c.baseRight.Dot(c.forward)))
		if right.Len() < degenerateEpsilon {
			right = mgl32.Vec3{1, 0, 0}
		}
	}
	right = right.Normalize()
	up := right.Cross(c.forward).Normalize()
	c.baseRight = right

	if c.roll != 0 {
		q := mgl32.QuatRotate(mgl32.DegToRad(c.roll), c.forward)
		right = q.Rotate(right).Normalize()
		up = q.Rotate(up).Normalize()
	}

	c.right = right
	c.up = up
}
