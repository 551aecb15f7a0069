package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPerspectiveMapsNearAndFarToWebGPUDepth(t *testing.T) {
	near, far := float32(0.1), float32(100)
	p := Perspective(mgl32.DegToRad(45), 4.0/3.0, near, far)

	project := func(z float32) float32 {
		clip := p.Mul4x1(mgl32.Vec4{0, 0, z, 1})
		return clip.Z() / clip.W()
	}

	assert.InDelta(t, 0, project(-near), 1e-5)
	assert.InDelta(t, 1, project(-far), 1e-4)
	assert.Equal(t, float32(-1), p[11])
	assert.Equal(t, float32(0), p[15])
}

func TestPerspectiveNarrowerFovMagnifies(t *testing.T) {
	wide := Perspective(mgl32.DegToRad(45), 1, 0.1, 100)
	narrow := Perspective(mgl32.DegToRad(10), 1, 0.1, 100)
	assert.Greater(t, narrow[5], wide[5])
}

func TestModelMatrixTranslatesRotatesScales(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{0, 0.5, 0}, 90, mgl32.Vec3{0, 2, 0}, mgl32.Vec3{2, 2, 2})

	// +X scaled by 2 then rotated 90 deg about +Y lands on -Z, then lifted by 0.5.
	got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{0, 0.5, -2}, 1e-5), "got %v", got)
}

func TestModelMatrixZeroAxisSkipsRotation(t *testing.T) {
	m := ModelMatrix(mgl32.Vec3{}, 30, mgl32.Vec3{}, mgl32.Vec3{100, 1, 100})
	assert.True(t, m.ApproxEqual(mgl32.Scale3D(100, 1, 100)))
}

func TestTextureStagingDataLevels(t *testing.T) {
	td := TextureStagingData{Width: 8, Height: 2, Levels: make([][]byte, 4)}
	assert.Equal(t, uint32(4), td.MipLevelCount())

	w, h := td.LevelSize(2)
	assert.Equal(t, uint32(2), w)
	assert.Equal(t, uint32(1), h)

	w, h = td.LevelSize(3)
	assert.Equal(t, uint32(1), w)
	assert.Equal(t, uint32(1), h)

	assert.Equal(t, uint32(1), TextureStagingData{}.MipLevelCount())
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 3, 4))
	assert.Equal(t, "", Coalesce[string]())
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"w", KeyW, true},
		{"space", KeySpace, true},
		{"left", KeyLeft, true},
		{"z", Key('Z'), true},
		{"7", Key('7'), true},
		{"f13", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseKey(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
