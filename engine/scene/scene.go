// Package scene holds the demo's two fixed objects, a spinning textured cube and a tiled ground plane,
// and drives their uploads and draw calls through the renderer.
package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/model"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// PipelineKey is the cache key of the textured render pipeline registered by Init.
const PipelineKey = "textured"

// Bind group slots declared by the textured shader.
const (
	cameraGroup = 0
	objectGroup = 1

	bindingUniform  = 0
	bindingTexture1 = 1
	bindingTexture2 = 2
	bindingSampler  = 3
)

// Textures carries the decoded images the scene samples.
type Textures struct {
	// Crate is the cube's base texture.
	Crate common.TextureStagingData
	// Checkered is blended over the crate by the mix factor.
	Checkered common.TextureStagingData
	// Floor tiles the ground plane.
	Floor common.TextureStagingData
}

// object is one drawable: its mesh and the group 1 provider holding its uniform, textures and sampler.
type object struct {
	mesh     *model.Mesh
	provider bind_group_provider.BindGroupProvider
}

type scene struct {
	mu *sync.RWMutex

	name        string
	initialized bool

	cam camera.Camera
	r   renderer.Renderer

	cameraProvider bind_group_provider.BindGroupProvider
	cube           object
	plane          object

	angle         float32
	cubePosition  mgl32.Vec3
	cubeAxis      mgl32.Vec3
	spinStep      float32
	planeScale    mgl32.Vec3
	planeUVRepeat float32
	mixFactor     float32

	// aspect of 0 follows the renderer's framebuffer size.
	aspect float32
	near   float32
	far    float32

	sampler common.SamplerStagingData

	writePool []bind_group_provider.BufferWrite
}

// Scene owns the cube and the ground plane, the camera's uniform and the per-frame upload and draw sequence.
type Scene interface {
	// Name returns the scene name used in labels and errors.
	Name() string

	// Camera returns the camera the scene renders from.
	Camera() camera.Camera

	// Renderer returns the renderer the scene draws with.
	Renderer() renderer.Renderer

	// Angle returns the cube's rotation in degrees.
	Angle() float32

	// SetAngle sets the cube's rotation in degrees.
	SetAngle(degrees float32)

	// SpinForward adds one spin step to the cube's rotation.
	SpinForward()

	// SpinBackward subtracts one spin step from the cube's rotation.
	SpinBackward()

	// SetSpinStep sets the rotation, in degrees, applied by each spin call.
	SetSpinStep(degrees float32)

	// SetProjection replaces the projection parameters. An aspect of 0 follows the framebuffer.
	SetProjection(aspect, near, far float32)

	// Aspect returns the aspect ratio the next Update will project with.
	Aspect() float32

	// CubeModel returns the cube's model matrix: translate to its position, then rotate about its axis.
	CubeModel() mgl32.Mat4

	// PlaneModel returns the ground plane's model matrix.
	PlaneModel() mgl32.Mat4

	// Init registers the textured pipeline and uploads meshes, textures, samplers and bind groups.
	//
	// Parameters:
	//   - textures: the decoded crate, checkered and floor images
	//
	// Returns:
	//   - error: error wrapping the first failed upload
	Init(textures Textures) error

	// Update writes the camera and object uniforms for the coming frame.
	Update()

	// DrawCalls renders one frame: begin, draw the cube and the plane, end and present.
	// A skipped frame (minimized window or outdated surface) is not an error.
	//
	// Returns:
	//   - bool: true if a frame was presented
	//   - error: error if the scene is not initialized or a draw call fails
	DrawCalls() (bool, error)

	// Release frees the scene's GPU resources.
	Release()
}

var _ Scene = &scene{}

// NewScene creates the demo scene for a camera and renderer. Both are required and NewScene panics if either is nil.
// No GPU work happens until Init.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to render from (must not be nil)
//   - r: the renderer to draw with (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:            &sync.RWMutex{},
		name:          name,
		cam:           cam,
		r:             r,
		cubePosition:  mgl32.Vec3{0, 0.5, 0},
		cubeAxis:      mgl32.Vec3{1, 0.3, 0.5},
		spinStep:      0.1,
		planeScale:    mgl32.Vec3{100, 1, 100},
		planeUVRepeat: 50,
		mixFactor:     0.2,
		aspect:        1600.0 / 1200.0,
		near:          0.1,
		far:           100,
		writePool:     make([]bind_group_provider.BufferWrite, 0, 3),
	}

	for _, option := range options {
		option(s)
	}

	s.cameraProvider = bind_group_provider.NewBindGroupProvider(name+" Camera", bind_group_provider.WithGroup(cameraGroup))
	s.cube = object{
		mesh:     model.Cube(),
		provider: bind_group_provider.NewBindGroupProvider(name+" Cube", bind_group_provider.WithGroup(objectGroup)),
	}
	s.plane = object{
		mesh:     model.Plane(s.planeUVRepeat),
		provider: bind_group_provider.NewBindGroupProvider(name+" Plane", bind_group_provider.WithGroup(objectGroup)),
	}

	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Angle() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.angle
}

func (s *scene) SetAngle(degrees float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.angle = degrees
}

func (s *scene) SpinForward() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.angle += s.spinStep
}

func (s *scene) SpinBackward() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.angle -= s.spinStep
}

func (s *scene) SetSpinStep(degrees float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spinStep = degrees
}

func (s *scene) SetProjection(aspect, near, far float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aspect, s.near, s.far = aspect, near, far
}

func (s *scene) Aspect() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentAspect()
}

// currentAspect resolves a zero aspect from the renderer's framebuffer. Callers hold mu.
func (s *scene) currentAspect() float32 {
	if s.aspect > 0 {
		return s.aspect
	}
	width, height := s.r.Size()
	if width <= 0 || height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}

func (s *scene) CubeModel() mgl32.Mat4 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cubeModel()
}

func (s *scene) cubeModel() mgl32.Mat4 {
	axis := s.cubeAxis
	if axis.Len() == 0 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return common.ModelMatrix(s.cubePosition, s.angle, axis, mgl32.Vec3{1, 1, 1})
}

func (s *scene) PlaneModel() mgl32.Mat4 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.planeModel()
}

func (s *scene) planeModel() mgl32.Mat4 {
	return common.ModelMatrix(mgl32.Vec3{}, 0, mgl32.Vec3{}, s.planeScale)
}

func (s *scene) Init(textures Textures) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vs, err := shader.NewShader(PipelineKey+"_vs", shader.ShaderTypeVertex, TexturedShaderSource)
	if err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}
	fs, err := shader.NewShader(PipelineKey+"_fs", shader.ShaderTypeFragment, TexturedShaderSource)
	if err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}
	p := pipeline.NewPipeline(PipelineKey,
		pipeline.WithShaders(vs, fs),
		pipeline.WithCullMode(wgpu.CullModeNone),
	)
	if err := s.r.RegisterPipelines(p); err != nil {
		return fmt.Errorf("scene %q: %w", s.name, err)
	}

	if err := s.r.InitBindGroup(s.cameraProvider, PipelineKey); err != nil {
		return fmt.Errorf("scene %q: camera bind group: %w", s.name, err)
	}

	uploads := []struct {
		obj      object
		textures [2]common.TextureStagingData
	}{
		{s.cube, [2]common.TextureStagingData{textures.Crate, textures.Checkered}},
		{s.plane, [2]common.TextureStagingData{textures.Floor, textures.Floor}},
	}
	for _, u := range uploads {
		if err := s.initObject(u.obj, u.textures); err != nil {
			return fmt.Errorf("scene %q: %s: %w", s.name, u.obj.provider.Label(), err)
		}
	}

	s.initialized = true
	return nil
}

func (s *scene) initObject(obj object, textures [2]common.TextureStagingData) error {
	if err := s.r.InitMeshBuffers(obj.provider, obj.mesh.VertexBytes(), obj.mesh.IndexBytes(), obj.mesh.IndexCount()); err != nil {
		return err
	}
	if err := s.r.InitTextureView(obj.provider, bindingTexture1, textures[0]); err != nil {
		return err
	}
	if err := s.r.InitTextureView(obj.provider, bindingTexture2, textures[1]); err != nil {
		return err
	}
	if err := s.r.InitSampler(obj.provider, bindingSampler, s.sampler); err != nil {
		return err
	}
	return s.r.InitBindGroup(obj.provider, PipelineKey)
}

func (s *scene) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	s.r.WriteBuffers(s.bufferWrites())
}

// bufferWrites builds this frame's uniform uploads into the reused write pool. Callers hold mu.
func (s *scene) bufferWrites() []bind_group_provider.BufferWrite {
	cameraUniform := camera.NewGPUCameraUniform(s.cam, s.currentAspect(), s.near, s.far)
	cubeUniform := NewGPUObjectUniform(s.cubeModel(), s.mixFactor)
	planeUniform := NewGPUObjectUniform(s.planeModel(), s.mixFactor)

	writes := s.writePool[:0]
	writes = append(writes,
		bind_group_provider.NewBufferWrite(s.cameraProvider, bindingUniform, cameraUniform.Marshal()),
		bind_group_provider.NewBufferWrite(s.cube.provider, bindingUniform, cubeUniform.Marshal()),
		bind_group_provider.NewBufferWrite(s.plane.provider, bindingUniform, planeUniform.Marshal()),
	)
	s.writePool = writes
	return writes
}

func (s *scene) DrawCalls() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return false, fmt.Errorf("scene %q is not initialized", s.name)
	}

	if err := s.r.BeginFrame(); err != nil {
		if errors.Is(err, renderer.ErrFrameSkipped) {
			return false, nil
		}
		return false, fmt.Errorf("scene %q: begin frame: %w", s.name, err)
	}

	for _, obj := range []object{s.cube, s.plane} {
		if err := s.r.DrawCall(PipelineKey, obj.provider, s.cameraProvider, obj.provider); err != nil {
			// Close the pass so the next frame can begin.
			_ = s.r.EndFrame()
			return false, fmt.Errorf("draw call failed for %s in scene %q: %w", obj.provider.Label(), s.name, err)
		}
	}

	if err := s.r.EndFrame(); err != nil {
		return false, fmt.Errorf("scene %q: end frame: %w", s.name, err)
	}
	s.r.Present()
	return true, nil
}

func (s *scene) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cameraProvider.Release()
	s.cube.provider.Release()
	s.plane.provider.Release()
	s.initialized = false
}
