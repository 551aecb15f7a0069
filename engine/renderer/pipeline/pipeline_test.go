package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `
@group(0) @binding(0) var<uniform> tint: vec4<f32>;
@group(1) @binding(0) var tex: texture_2d<f32>;
@group(1) @binding(1) var samp: sampler;

struct VertexInput {
    @location(0) position: vec3<f32>,
};

@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return tint * vec4<f32>(in.position, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return tint;
}
`

func shaders(t *testing.T) (shader.Shader, shader.Shader) {
	t.Helper()
	vs, err := shader.NewShader("vs", shader.ShaderTypeVertex, source)
	require.NoError(t, err)
	fs, err := shader.NewShader("fs", shader.ShaderTypeFragment, source)
	require.NoError(t, err)
	return vs, fs
}

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("textured")
	assert.Equal(t, "textured", p.PipelineKey())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.NotNil(t, p.BlendState())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskAll, p.WriteMask())
	assert.Nil(t, p.RenderPipeline())
	assert.Nil(t, p.BindGroupLayout(0))
	assert.ErrorIs(t, p.Validate(), ErrMissingShader)
}

func TestPipelineOptions(t *testing.T) {
	vs, fs := shaders(t)
	blend := &wgpu.BlendState{}
	p := NewPipeline("opts",
		WithShaders(vs, fs),
		WithDepth(false, false),
		WithDepthBias(2, 1.5),
		WithBlend(blend),
		WithCullMode(wgpu.CullModeBack),
		WithTopology(wgpu.PrimitiveTopologyLineList),
		WithFrontFace(wgpu.FrontFaceCW),
		WithWriteMask(wgpu.ColorWriteMaskRed),
	)
	require.NoError(t, p.Validate())
	assert.Same(t, vs, p.Shader(shader.ShaderTypeVertex))
	assert.Same(t, fs, p.Shader(shader.ShaderTypeFragment))
	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.Equal(t, int32(2), p.DepthBias())
	assert.Equal(t, float32(1.5), p.DepthBiasSlopeScale())
	assert.True(t, p.BlendEnabled())
	assert.Same(t, blend, p.BlendState())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.Equal(t, wgpu.FrontFaceCW, p.FrontFace())
	assert.Equal(t, wgpu.ColorWriteMaskRed, p.WriteMask())

	p = NewPipeline("no_blend", WithBlend(blend), WithBlend(nil))
	assert.False(t, p.BlendEnabled())
}

func TestLayoutDescriptorsMergeVisibility(t *testing.T) {
	vs, fs := shaders(t)
	p := NewPipeline("merged", WithShaders(vs, fs))

	layouts := p.LayoutDescriptors()
	require.Len(t, layouts, 2)

	group0 := layouts[0].Entries
	require.Len(t, group0, 1)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, group0[0].Visibility)
	assert.Equal(t, uint64(16), group0[0].Buffer.MinBindingSize)

	group1 := layouts[1].Entries
	require.Len(t, group1, 2)
	assert.Equal(t, uint32(0), group1[0].Binding)
	assert.Equal(t, uint32(1), group1[1].Binding)
}

func TestMergeBindGroupLayoutsSingleStage(t *testing.T) {
	vertexOnly := map[int]wgpu.BindGroupLayoutDescriptor{
		2: {Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 1, Visibility: wgpu.ShaderStageVertex},
			{Binding: 0, Visibility: wgpu.ShaderStageVertex},
		}},
	}
	merged := mergeBindGroupLayouts(vertexOnly, nil)
	require.Contains(t, merged, 2)
	require.Len(t, merged[2].Entries, 2)
	assert.Equal(t, uint32(0), merged[2].Entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex, merged[2].Entries[1].Visibility)

	assert.Empty(t, mergeBindGroupLayouts(nil, nil))
}

func TestReleaseWithoutGPUObjects(t *testing.T) {
	p := NewPipeline("unregistered")
	assert.NotPanics(t, p.Release)
	p.SetRenderPipeline(nil, []*wgpu.BindGroupLayout{nil})
	assert.Nil(t, p.BindGroupLayout(0))
	assert.Nil(t, p.BindGroupLayout(-1))
	assert.NotPanics(t, p.Release)
}
