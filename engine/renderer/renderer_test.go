package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend records the calls the renderer delegates without touching a GPU.
type fakeBackend struct {
	configured   [][2]int
	withLayouts  bool
	presentMode  PresentMode
	registered   []string
	registerErr  error
	beginErr     error
	draws        int
	bindGroups   []wgpu.BindGroupLayoutDescriptor
	writes       int
	ended        int
	presented    int
	released     bool
	textureNames []string
}

func (f *fakeBackend) ConfigureSurface(width, height int) error {
	f.configured = append(f.configured, [2]int{width, height})
	return nil
}

func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.presentMode = mode }

func (f *fakeBackend) RegisterRenderPipeline(p pipeline.Pipeline) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registered = append(f.registered, p.PipelineKey())
	// Placeholder layouts must never reach Release, so only tests that need them ask for them.
	var layouts []*wgpu.BindGroupLayout
	if f.withLayouts {
		layouts = make([]*wgpu.BindGroupLayout, len(p.LayoutDescriptors()))
		for i := range layouts {
			layouts[i] = &wgpu.BindGroupLayout{}
		}
	}
	p.SetRenderPipeline(nil, layouts)
	return nil
}

func (f *fakeBackend) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, _, _ []byte, indexCount uint32) error {
	provider.SetMesh(nil, nil, indexCount)
	return nil
}

func (f *fakeBackend) InitBindGroup(_ bind_group_provider.BindGroupProvider, _ *wgpu.BindGroupLayout, descriptor wgpu.BindGroupLayoutDescriptor) error {
	f.bindGroups = append(f.bindGroups, descriptor)
	return nil
}

func (f *fakeBackend) InitTextureView(_ bind_group_provider.BindGroupProvider, _ int, td common.TextureStagingData) error {
	f.textureNames = append(f.textureNames, td.Name)
	return nil
}

func (f *fakeBackend) InitSampler(bind_group_provider.BindGroupProvider, int, common.SamplerStagingData) error {
	return nil
}

func (f *fakeBackend) WriteBuffers(writes []bind_group_provider.BufferWrite) { f.writes += len(writes) }

func (f *fakeBackend) BeginFrame() error { return f.beginErr }

func (f *fakeBackend) DrawCall(pipeline.Pipeline, bind_group_provider.BindGroupProvider, []bind_group_provider.BindGroupProvider) {
	f.draws++
}

func (f *fakeBackend) EndFrame() error {
	f.ended++
	return nil
}

func (f *fakeBackend) Present() { f.presented++ }

func (f *fakeBackend) Release() { f.released = true }

const source = `
@group(0) @binding(0) var<uniform> view: mat4x4<f32>;
@group(1) @binding(0) var<uniform> model: mat4x4<f32>;

struct VertexInput {
    @location(0) position: vec3<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return view * model * vec4<f32>(in.position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`

func testRenderer(t *testing.T, options ...RendererBuilderOption) (*renderer, *fakeBackend) {
	t.Helper()
	r := newRenderer(BackendTypeWGPU, options...)
	fb := &fakeBackend{}
	r.backend = fb
	require.NoError(t, r.Resize(800, 600))
	return r, fb
}

func testPipeline(t *testing.T, key string) pipeline.Pipeline {
	t.Helper()
	vs, err := shader.NewShader(key+"_vs", shader.ShaderTypeVertex, source)
	require.NoError(t, err)
	fs, err := shader.NewShader(key+"_fs", shader.ShaderTypeFragment, source)
	require.NoError(t, err)
	return pipeline.NewPipeline(key, pipeline.WithShaders(vs, fs))
}

func TestRendererDefaults(t *testing.T) {
	r := newRenderer(BackendTypeWGPU)
	assert.Equal(t, MSAA4x, r.msaa)
	assert.Equal(t, PresentModeVSync, r.presentMode)
	assert.Equal(t, wgpu.Color{R: 0.2, G: 0.3, B: 0.3, A: 1}, r.clearColor)
	assert.False(t, r.forceFallbackAdapter)

	r = newRenderer(BackendTypeWGPU,
		WithMSAA(MSAAOff),
		WithPresentMode(PresentModeUncapped),
		WithClearColor([4]float64{1, 0, 0, 1}),
		WithForceSoftwareRenderer(true),
	)
	assert.Equal(t, MSAAOff, r.msaa)
	assert.Equal(t, PresentModeUncapped, r.presentMode)
	assert.Equal(t, wgpu.Color{R: 1, A: 1}, r.clearColor)
	assert.True(t, r.forceFallbackAdapter)
}

func TestRegisterPipelinesSkipsDuplicates(t *testing.T) {
	r, fb := testRenderer(t)
	p := testPipeline(t, "textured")

	require.NoError(t, r.RegisterPipelines(p, p))
	require.NoError(t, r.RegisterPipelines(p))
	assert.Equal(t, []string{"textured"}, fb.registered)
	assert.Same(t, p, r.Pipeline("textured"))
	assert.Nil(t, r.Pipeline("missing"))

	fb.registerErr = errors.New("boom")
	err := r.RegisterPipelines(testPipeline(t, "broken"))
	assert.ErrorContains(t, err, `register pipeline "broken"`)
	assert.Nil(t, r.Pipeline("broken"))
}

func TestInitBindGroupUsesPipelineLayout(t *testing.T) {
	r, fb := testRenderer(t)
	fb.withLayouts = true
	require.NoError(t, r.RegisterPipelines(testPipeline(t, "textured")))

	object := bind_group_provider.NewBindGroupProvider("Cube", bind_group_provider.WithGroup(1))
	require.NoError(t, r.InitBindGroup(object, "textured"))
	require.Len(t, fb.bindGroups, 1)
	assert.Equal(t, uint64(64), fb.bindGroups[0].Entries[0].Buffer.MinBindingSize)

	err := r.InitBindGroup(object, "missing")
	assert.ErrorContains(t, err, "not found")

	stray := bind_group_provider.NewBindGroupProvider("Stray", bind_group_provider.WithGroup(5))
	err = r.InitBindGroup(stray, "textured")
	assert.ErrorContains(t, err, "declares no bind group 5")
}

func TestInitRejectsEmptyData(t *testing.T) {
	r, fb := testRenderer(t)
	mesh := bind_group_provider.NewBindGroupProvider("Mesh")

	assert.Error(t, r.InitMeshBuffers(mesh, nil, []byte{0, 0, 0, 0}, 1))
	require.NoError(t, r.InitMeshBuffers(mesh, []byte{1}, []byte{0, 0, 0, 0}, 1))
	assert.Equal(t, uint32(1), mesh.IndexCount())

	assert.ErrorContains(t, r.InitTextureView(mesh, 1, common.TextureStagingData{Name: "empty"}), `"empty"`)
	td := common.TextureStagingData{Name: "crate", Width: 1, Height: 1, Levels: [][]byte{{0, 0, 0, 255}}}
	require.NoError(t, r.InitTextureView(mesh, 1, td))
	assert.Equal(t, []string{"crate"}, fb.textureNames)
}

func TestFrameLifecycle(t *testing.T) {
	r, fb := testRenderer(t)
	require.NoError(t, r.RegisterPipelines(testPipeline(t, "textured")))
	mesh := bind_group_provider.NewBindGroupProvider("Mesh")

	assert.Error(t, r.DrawCall("textured", mesh), "draws need an open frame")
	assert.Error(t, r.EndFrame())

	require.NoError(t, r.BeginFrame())
	assert.ErrorContains(t, r.DrawCall("missing", mesh), "not found")
	require.NoError(t, r.DrawCall("textured", mesh))
	require.NoError(t, r.EndFrame())
	r.Present()

	assert.Equal(t, 1, fb.draws)
	assert.Equal(t, 1, fb.ended)
	assert.Equal(t, 1, fb.presented)
}

func TestResizeToZeroSuspendsFrames(t *testing.T) {
	r, fb := testRenderer(t)

	require.NoError(t, r.Resize(0, 600))
	assert.ErrorIs(t, r.BeginFrame(), ErrFrameSkipped)
	w, h := r.Size()
	assert.Equal(t, 800, w, "suspending keeps the last configured size")
	assert.Equal(t, 600, h)

	require.NoError(t, r.Resize(1024, 768))
	require.NoError(t, r.BeginFrame())
	assert.Equal(t, [][2]int{{800, 600}, {1024, 768}}, fb.configured)
}

func TestOutdatedSurfaceIsReconfigured(t *testing.T) {
	r, fb := testRenderer(t)
	fb.beginErr = ErrFrameSkipped

	assert.ErrorIs(t, r.BeginFrame(), ErrFrameSkipped)
	assert.Equal(t, [][2]int{{800, 600}, {800, 600}}, fb.configured)
	assert.False(t, r.inFrame)
}

func TestSetPresentModeReconfigures(t *testing.T) {
	r, fb := testRenderer(t)
	require.NoError(t, r.SetPresentMode(PresentModeUncapped))
	assert.Equal(t, PresentModeUncapped, fb.presentMode)
	assert.Len(t, fb.configured, 2)
}

func TestPresentModeAndMSAA(t *testing.T) {
	assert.Equal(t, wgpu.PresentModeFifo, PresentModeVSync.surfaceMode())
	assert.Equal(t, wgpu.PresentModeImmediate, PresentModeUncapped.surfaceMode())

	for _, tt := range []struct {
		in   int
		want MSAASampleCount
		ok   bool
	}{
		{1, MSAAOff, true},
		{4, MSAA4x, true},
		{2, 0, false},
		{8, 0, false},
	} {
		got, err := ParseMSAA(tt.in)
		if !tt.ok {
			assert.Error(t, err, "samples=%d", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestSamplerDescriptorDefaults(t *testing.T) {
	d := samplerDescriptor("Cube Sampler", common.SamplerStagingData{})
	assert.Equal(t, wgpu.AddressModeRepeat, d.AddressModeU)
	assert.Equal(t, wgpu.AddressModeRepeat, d.AddressModeV)
	assert.Equal(t, wgpu.FilterModeLinear, d.MinFilter)
	assert.Equal(t, wgpu.MipmapFilterModeLinear, d.MipmapFilter)
	assert.Equal(t, float32(32), d.LodMaxClamp)
	assert.Equal(t, uint16(1), d.MaxAnisotropy)

	d = samplerDescriptor("Clamp", common.SamplerStagingData{AddressModeU: wgpu.AddressModeClampToEdge, MaxAnisotropy: 8})
	assert.Equal(t, wgpu.AddressModeClampToEdge, d.AddressModeU)
	assert.Equal(t, uint16(8), d.MaxAnisotropy)
}

func TestReleaseReleasesPipelinesAndBackend(t *testing.T) {
	r, fb := testRenderer(t)
	require.NoError(t, r.RegisterPipelines(testPipeline(t, "textured")))
	r.Release()
	assert.True(t, fb.released)
	assert.Nil(t, r.Pipeline("textured"))
}
