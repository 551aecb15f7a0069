package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrFrameSkipped is returned by BeginFrame when no surface texture can be drawn this frame,
// for example while the window is minimized. The caller skips the frame and tries again.
var ErrFrameSkipped = errors.New("renderer: frame skipped")

// Surface is what the renderer needs from a window: a surface descriptor and the framebuffer size.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	width, height int
	// suspended is set while the surface has a zero dimension and cannot be configured.
	suspended bool
	// inFrame is set between a successful BeginFrame and EndFrame.
	inFrame bool

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           wgpu.Color
}

// Renderer defines the interface for the rendering system.
//
// This is a high-level API designed to simplify rendering tasks into a streamlined flow: register
// pipelines once, initialize mesh buffers and bind groups on providers once, then each frame write
// uniforms and issue BeginFrame, DrawCall, EndFrame and Present.
type Renderer interface {
	// Pipeline retrieves the registered Pipeline associated with the given key, nil if none.
	//
	// Parameters:
	//   - key: the pipeline key
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline or nil
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU objects for each pipeline and caches it by PipelineKey.
	// Pipelines whose keys are already registered are skipped.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if pipeline creation fails
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// InitMeshBuffers uploads vertex and index bytes and stores the buffers on the provider.
	//
	// Parameters:
	//   - provider: the mesh provider
	//   - vertexData: packed vertex bytes
	//   - indexData: packed uint32 indices
	//   - indexCount: the number of indices
	//
	// Returns:
	//   - error: an error if the buffers could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount uint32) error

	// InitBindGroup creates the provider's bind group against the layout the pipeline declares for provider.Group().
	// Buffers are sized from the layout; textures and samplers must be initialized first.
	//
	// Parameters:
	//   - provider: the provider to initialize
	//   - pipelineKey: the registered pipeline whose layout is used
	//
	// Returns:
	//   - error: an error if the pipeline or group is unknown or GPU creation fails
	InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string) error

	// InitTextureView creates a texture holding every mip level of stagingData and stores it at binding.
	//
	// Parameters:
	//   - provider: the provider to store the texture on
	//   - binding: the texture binding index
	//   - stagingData: the decoded texture
	//
	// Returns:
	//   - error: an error if the texture is empty or could not be created
	InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler and stores it at binding.
	//
	// Parameters:
	//   - provider: the provider to store the sampler on
	//   - binding: the sampler binding index
	//   - samplerStagingData: the sampler configuration
	//
	// Returns:
	//   - error: an error if the sampler could not be created
	InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers writes all staged buffer writes to the GPU queue.
	//
	// Parameters:
	//   - writes: the writes to queue
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// BeginFrame acquires the next surface texture and opens the render pass, clearing colour and depth.
	//
	// Returns:
	//   - error: ErrFrameSkipped when nothing can be drawn this frame, or another acquisition error
	BeginFrame() error

	// DrawCall records an indexed draw of meshProvider with the given bind groups set at their groups.
	//
	// Parameters:
	//   - pipelineKey: the registered pipeline to draw with
	//   - meshProvider: the provider holding vertex and index buffers
	//   - bindGroups: the providers whose bind groups are set
	//
	// Returns:
	//   - error: an error if no frame is open or the pipeline is unknown
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups ...bind_group_provider.BindGroupProvider) error

	// EndFrame closes the render pass and submits the frame.
	//
	// Returns:
	//   - error: an error if no frame is open or submission fails
	EndFrame() error

	// Present presents the submitted frame. It is a no-op when no frame was acquired.
	Present()

	// Resize reconfigures the surface. A zero dimension suspends drawing until the next non-zero resize.
	//
	// Parameters:
	//   - width: the new framebuffer width in pixels
	//   - height: the new framebuffer height in pixels
	//
	// Returns:
	//   - error: an error if the surface could not be configured
	Resize(width, height int) error

	// SetPresentMode changes the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use
	//
	// Returns:
	//   - error: an error if the surface could not be configured
	SetPresentMode(mode PresentMode) error

	// Size returns the last configured surface size.
	//
	// Returns:
	//   - width, height: the surface size in pixels
	Size() (width, height int)

	// Release releases every registered pipeline and the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for a window surface and configures the surface at the window's framebuffer size.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - surface: the window to render into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the configured Renderer
//   - error: error if no adapter or device is available or the surface cannot be configured
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(backendType, options...)

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		backend, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor)
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer backend: %w", err)
		}
		r.backend = backend
	}

	r.backend.SetPresentMode(r.presentMode)
	if err := r.Resize(surface.Width(), surface.Height()); err != nil {
		r.backend.Release()
		return nil, err
	}
	return r, nil
}

// newRenderer applies options over the defaults without creating a backend.
func newRenderer(backendType RendererBackendType, options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    wgpu.Color{R: 0.2, G: 0.3, B: 0.3, A: 1},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("register pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount uint32) error {
	if len(vertexData) == 0 || len(indexData) == 0 {
		return fmt.Errorf("mesh %s: vertex and index data must not be empty", provider.Label())
	}
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string) error {
	p := r.Pipeline(pipelineKey)
	if p == nil {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	group := provider.Group()
	descriptor, ok := p.LayoutDescriptors()[group]
	layout := p.BindGroupLayout(group)
	if !ok || layout == nil {
		return fmt.Errorf("render pipeline %q declares no bind group %d", pipelineKey, group)
	}
	return r.backend.InitBindGroup(provider, layout, descriptor)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, stagingData common.TextureStagingData) error {
	if stagingData.Width == 0 || stagingData.Height == 0 || len(stagingData.Levels) == 0 {
		return fmt.Errorf("texture %q has no pixel data", stagingData.Name)
	}
	return r.backend.InitTextureView(provider, binding, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, binding, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	if len(writes) == 0 {
		return
	}
	r.backend.WriteBuffers(writes)
}

func (r *renderer) BeginFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.suspended {
		return ErrFrameSkipped
	}
	if err := r.backend.BeginFrame(); err != nil {
		if errors.Is(err, ErrFrameSkipped) {
			// An outdated surface is recovered by reconfiguring at the known size.
			_ = r.backend.ConfigureSurface(r.width, r.height)
		}
		return err
	}
	r.inFrame = true
	return nil
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, bindGroups ...bind_group_provider.BindGroupProvider) error {
	r.mu.Lock()
	p, exists := r.pipelineCache[pipelineKey]
	inFrame := r.inFrame
	r.mu.Unlock()

	if !inFrame {
		return errors.New("draw call outside of BeginFrame/EndFrame")
	}
	if !exists {
		return fmt.Errorf("render pipeline %q not found in cache", pipelineKey)
	}
	r.backend.DrawCall(p, meshProvider, bindGroups)
	return nil
}

func (r *renderer) EndFrame() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.inFrame {
		return errors.New("EndFrame without BeginFrame")
	}
	r.inFrame = false
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Resize(width, height int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if width <= 0 || height <= 0 {
		r.suspended = true
		return nil
	}
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		return fmt.Errorf("configure surface %dx%d: %w", width, height, err)
	}
	r.width, r.height = width, height
	r.suspended = false
	return nil
}

func (r *renderer) SetPresentMode(mode PresentMode) error {
	r.mu.Lock()
	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	width, height, suspended := r.width, r.height, r.suspended
	r.mu.Unlock()

	if suspended || width == 0 {
		return nil
	}
	return r.Resize(width, height)
}

func (r *renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, p := range r.pipelineCache {
		p.Release()
		delete(r.pipelineCache, key)
	}
	r.backend.Release()
}
