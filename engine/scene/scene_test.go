package scene

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer records what the scene asks of the renderer.
type fakeRenderer struct {
	width, height int

	pipelines  map[string]pipeline.Pipeline
	meshes     map[string]uint32
	textures   map[string][]string
	samplers   []string
	bindGroups []string
	writes     []bind_group_provider.BufferWrite

	beginErr  error
	drawErr   error
	draws     [][]int
	ended     int
	presented int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		width:     800,
		height:    400,
		pipelines: make(map[string]pipeline.Pipeline),
		meshes:    make(map[string]uint32),
		textures:  make(map[string][]string),
	}
}

func (f *fakeRenderer) Pipeline(key string) pipeline.Pipeline { return f.pipelines[key] }

func (f *fakeRenderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	for _, p := range pipelines {
		if err := p.Validate(); err != nil {
			return err
		}
		f.pipelines[p.PipelineKey()] = p
	}
	return nil
}

func (f *fakeRenderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount uint32) error {
	f.meshes[provider.Label()] = indexCount
	return nil
}

func (f *fakeRenderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, pipelineKey string) error {
	p, ok := f.pipelines[pipelineKey]
	if !ok {
		return errors.New("pipeline not registered")
	}
	if _, ok := p.LayoutDescriptors()[provider.Group()]; !ok {
		return errors.New("no such group")
	}
	f.bindGroups = append(f.bindGroups, provider.Label())
	return nil
}

func (f *fakeRenderer) InitTextureView(provider bind_group_provider.BindGroupProvider, binding int, td common.TextureStagingData) error {
	f.textures[provider.Label()] = append(f.textures[provider.Label()], td.Name)
	return nil
}

func (f *fakeRenderer) InitSampler(provider bind_group_provider.BindGroupProvider, binding int, _ common.SamplerStagingData) error {
	f.samplers = append(f.samplers, provider.Label())
	return nil
}

func (f *fakeRenderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	f.writes = append([]bind_group_provider.BufferWrite(nil), writes...)
}

func (f *fakeRenderer) BeginFrame() error { return f.beginErr }

func (f *fakeRenderer) DrawCall(_ string, _ bind_group_provider.BindGroupProvider, bindGroups ...bind_group_provider.BindGroupProvider) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	groups := make([]int, len(bindGroups))
	for i, bg := range bindGroups {
		groups[i] = bg.Group()
	}
	f.draws = append(f.draws, groups)
	return nil
}

func (f *fakeRenderer) EndFrame() error {
	f.ended++
	return nil
}

func (f *fakeRenderer) Present() { f.presented++ }

func (f *fakeRenderer) Resize(width, height int) error {
	f.width, f.height = width, height
	return nil
}

func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) error { return nil }

func (f *fakeRenderer) Size() (int, int) { return f.width, f.height }

func (f *fakeRenderer) Release() {}

func testTextures() Textures {
	td := func(name string) common.TextureStagingData {
		return common.TextureStagingData{Name: name, Width: 1, Height: 1, Levels: [][]byte{{255, 255, 255, 255}}}
	}
	return Textures{Crate: td("crate"), Checkered: td("checkered"), Floor: td("floor")}
}

func floatAt(buf []byte, offset int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

func TestGPUObjectUniformLayout(t *testing.T) {
	u := NewGPUObjectUniform(mgl32.Translate3D(1, 2, 3), 0.25)
	buf := u.Marshal()

	require.Len(t, buf, 80)
	assert.Equal(t, 80, u.Size())
	assert.Equal(t, float32(1), floatAt(buf, 48)) // column 3, x
	assert.Equal(t, float32(3), floatAt(buf, 56)) // column 3, z
	assert.Equal(t, float32(0.25), floatAt(buf, 64))
	assert.Equal(t, make([]byte, 12), buf[68:])
}

func TestCubeModelTranslatesThenRotates(t *testing.T) {
	s := NewScene("test", camera.NewCamera(), newFakeRenderer())

	m := s.CubeModel()
	assert.True(t, m.ApproxEqual(mgl32.Translate3D(0, 0.5, 0)), "zero angle is a pure translation")

	s.SetAngle(90)
	axis := mgl32.Vec3{1, 0.3, 0.5}.Normalize()
	m = s.CubeModel()

	// Points on the axis only move by the translation.
	onAxis := m.Mul4x1(axis.Vec4(1)).Vec3()
	assert.True(t, onAxis.ApproxEqualThreshold(axis.Add(mgl32.Vec3{0, 0.5, 0}), 1e-5), "got %v", onAxis)

	// The centre is the translation whatever the angle.
	assert.True(t, m.Col(3).Vec3().ApproxEqual(mgl32.Vec3{0, 0.5, 0}))
}

func TestModelsMatchCommonComposition(t *testing.T) {
	s := NewScene("test", camera.NewCamera(), newFakeRenderer(),
		WithCubePosition([3]float32{1, 2, 3}), WithPlane([3]float32{10, 1, 20}, 5))
	s.SetAngle(33)

	want := common.ModelMatrix(mgl32.Vec3{1, 2, 3}, 33, mgl32.Vec3{1, 0.3, 0.5}, mgl32.Vec3{1, 1, 1})
	assert.True(t, s.CubeModel().ApproxEqual(want))
	assert.True(t, s.PlaneModel().ApproxEqual(mgl32.Scale3D(10, 1, 20)))
}

func TestZeroAxisFallsBackToY(t *testing.T) {
	s := NewScene("test", camera.NewCamera(), newFakeRenderer(), WithCubeAxis([3]float32{}), WithCubePosition([3]float32{}))
	s.SetAngle(90)
	got := s.CubeModel().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 1e-5), "got %v", got)
}

func TestSpin(t *testing.T) {
	s := NewScene("test", camera.NewCamera(), newFakeRenderer())
	for range 10 {
		s.SpinForward()
	}
	assert.InDelta(t, 1.0, s.Angle(), 1e-5)

	s.SpinBackward()
	assert.InDelta(t, 0.9, s.Angle(), 1e-5)

	s.SetSpinStep(5)
	s.SpinBackward()
	assert.InDelta(t, -4.1, s.Angle(), 1e-5)
}

func TestPlaneModelScales(t *testing.T) {
	s := NewScene("test", camera.NewCamera(), newFakeRenderer(), WithPlane([3]float32{10, 1, 20}, 5))
	corner := s.PlaneModel().Mul4x1(mgl32.Vec4{0.5, 0, 0.5, 1}).Vec3()
	assert.Equal(t, mgl32.Vec3{5, 0, 10}, corner)
}

func TestAspectFollowsFramebufferWhenZero(t *testing.T) {
	fr := newFakeRenderer()
	s := NewScene("test", camera.NewCamera(), fr)
	assert.InDelta(t, 4.0/3.0, s.Aspect(), 1e-6)

	s.SetProjection(0, 0.1, 100)
	assert.InDelta(t, 2.0, s.Aspect(), 1e-6)

	fr.width, fr.height = 0, 0
	assert.Equal(t, float32(1), s.Aspect())
}

func TestInitUploadsBothObjects(t *testing.T) {
	fr := newFakeRenderer()
	s := NewScene("demo", camera.NewCamera(), fr)
	require.NoError(t, s.Init(testTextures()))

	p := fr.pipelines[PipelineKey]
	require.NotNil(t, p)
	layouts := p.LayoutDescriptors()
	require.Len(t, layouts, 2)
	require.Len(t, layouts[objectGroup].Entries, 4)
	assert.Equal(t, uint64(128), layouts[cameraGroup].Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, uint64(80), layouts[objectGroup].Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, layouts[objectGroup].Entries[0].Visibility)

	assert.Equal(t, uint32(36), fr.meshes["demo Cube"])
	assert.Equal(t, uint32(6), fr.meshes["demo Plane"])
	assert.Equal(t, []string{"crate", "checkered"}, fr.textures["demo Cube"])
	assert.Equal(t, []string{"floor", "floor"}, fr.textures["demo Plane"])
	assert.Equal(t, []string{"demo Cube", "demo Plane"}, fr.samplers)
	assert.Equal(t, []string{"demo Camera", "demo Cube", "demo Plane"}, fr.bindGroups)
}

func TestUpdateWritesUniforms(t *testing.T) {
	fr := newFakeRenderer()
	cam := camera.NewCamera()
	s := NewScene("demo", cam, fr, WithMixFactor(0.5))

	s.Update()
	assert.Empty(t, fr.writes, "nothing is written before Init")

	require.NoError(t, s.Init(testTextures()))
	s.Update()
	require.Len(t, fr.writes, 3)

	camUniform := camera.NewGPUCameraUniform(cam, 1600.0/1200.0, 0.1, 100)
	assert.Equal(t, camUniform.Marshal(), fr.writes[0].Data)
	assert.Equal(t, cameraGroup, fr.writes[0].Provider.Group())

	cube := fr.writes[1]
	assert.Equal(t, "demo Cube", cube.Provider.Label())
	assert.Equal(t, bindingUniform, cube.Binding)
	assert.Equal(t, float32(0.5), floatAt(cube.Data, 64))
	assert.Equal(t, float32(100), floatAt(fr.writes[2].Data, 0), "plane x scale")
}

func TestDrawCalls(t *testing.T) {
	fr := newFakeRenderer()
	s := NewScene("demo", camera.NewCamera(), fr)

	_, err := s.DrawCalls()
	assert.ErrorContains(t, err, "not initialized")

	require.NoError(t, s.Init(testTextures()))
	drawn, err := s.DrawCalls()
	require.NoError(t, err)
	assert.True(t, drawn)
	assert.Equal(t, [][]int{{0, 1}, {0, 1}}, fr.draws)
	assert.Equal(t, 1, fr.ended)
	assert.Equal(t, 1, fr.presented)
}

func TestDrawCallsSkippedFrame(t *testing.T) {
	fr := newFakeRenderer()
	s := NewScene("demo", camera.NewCamera(), fr)
	require.NoError(t, s.Init(testTextures()))

	fr.beginErr = renderer.ErrFrameSkipped
	drawn, err := s.DrawCalls()
	require.NoError(t, err)
	assert.False(t, drawn)
	assert.Zero(t, fr.presented)

	fr.beginErr = errors.New("device lost")
	_, err = s.DrawCalls()
	assert.ErrorContains(t, err, "device lost")
}

func TestDrawCallFailureEndsFrame(t *testing.T) {
	fr := newFakeRenderer()
	s := NewScene("demo", camera.NewCamera(), fr)
	require.NoError(t, s.Init(testTextures()))

	fr.drawErr = errors.New("boom")
	_, err := s.DrawCalls()
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 1, fr.ended)
	assert.Zero(t, fr.presented)
}

func TestNewScenePanicsWithoutCollaborators(t *testing.T) {
	assert.Panics(t, func() { NewScene("x", nil, newFakeRenderer()) })
	assert.Panics(t, func() { NewScene("x", camera.NewCamera(), nil) })
}
