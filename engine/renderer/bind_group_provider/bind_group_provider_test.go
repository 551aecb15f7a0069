package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("Cube", WithGroup(1))
	assert.Equal(t, "Cube", p.Label())
	assert.Equal(t, 1, p.Group())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Empty(t, p.Bindings())

	p = NewBindGroupProvider("Camera", WithGroup(-3))
	assert.Equal(t, 0, p.Group(), "negative groups are ignored")
}

func TestBindingsAreSortedAndDeduplicated(t *testing.T) {
	p := NewBindGroupProvider("Plane")
	p.SetSampler(3, nil)
	p.SetTexture(2, nil, nil)
	p.SetTexture(1, nil, nil)
	p.SetBuffer(0, nil)
	p.SetBuffer(3, nil)

	assert.Equal(t, []int{0, 1, 2, 3}, p.Bindings())
}

func TestSetMesh(t *testing.T) {
	p := NewBindGroupProvider("Mesh")
	p.SetMesh(nil, nil, 36)
	assert.Equal(t, uint32(36), p.IndexCount())
}

func TestReleaseClearsState(t *testing.T) {
	p := NewBindGroupProvider("Released")
	p.SetBuffer(0, nil)
	p.SetTexture(1, nil, nil)
	p.SetMesh(nil, nil, 6)

	assert.NotPanics(t, p.Release)
	assert.Empty(t, p.Bindings())
	assert.Zero(t, p.IndexCount())
	assert.NotPanics(t, p.Release, "release is idempotent")
}

func TestNewBufferWrite(t *testing.T) {
	p := NewBindGroupProvider("Camera")
	w := NewBufferWrite(p, 0, []byte{1, 2, 3})
	assert.Equal(t, BufferWrite{Provider: p, Binding: 0, Data: []byte{1, 2, 3}}, w)
	assert.Equal(t, uint64(0), w.Offset)
}
