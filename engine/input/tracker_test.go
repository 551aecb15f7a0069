package input

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseOffsetZeroBeforeFirstCursorEvent(t *testing.T) {
	tr := NewTracker(WithViewport(1600, 1200))
	x, y := tr.MouseOffset()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestMouseOffsetNormalization(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy float64
		wantX  float32
		wantY  float32
	}{
		{"centre", 800, 600, 0, 0},
		{"top left", 0, 0, -1, 1},
		{"bottom right", 1600, 1200, 1, -1},
		{"quarter right, quarter down", 1200, 900, 0.5, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(WithViewport(1600, 1200))
			tr.CursorMoved(tt.cx, tt.cy)
			x, y := tr.MouseOffset()
			assert.InDelta(t, tt.wantX, x, 1e-6)
			assert.InDelta(t, tt.wantY, y, 1e-6)
		})
	}
}

func TestMouseOffsetFollowsResize(t *testing.T) {
	tr := NewTracker(WithViewport(1600, 1200))
	tr.CursorMoved(800, 600)
	tr.Resized(800, 600)

	x, y := tr.MouseOffset()
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, -1, y, 1e-6)

	tr.Resized(0, 0)
	x, y = tr.MouseOffset()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestPressedOnlyOnTransition(t *testing.T) {
	tr := NewTracker()

	tr.KeyDown(common.KeySpace)
	assert.True(t, tr.Pressed(common.KeySpace))
	assert.True(t, tr.Held(common.KeySpace))

	tr.EndFrame()
	tr.KeyDown(common.KeySpace) // repeat
	assert.False(t, tr.Pressed(common.KeySpace))
	assert.True(t, tr.Held(common.KeySpace))

	tr.KeyUp(common.KeySpace)
	assert.False(t, tr.Held(common.KeySpace))

	tr.KeyDown(common.KeySpace)
	assert.True(t, tr.Pressed(common.KeySpace))
}

func TestDirectionsFromHeldKeys(t *testing.T) {
	tr := NewTracker()
	assert.Empty(t, tr.Directions())

	tr.KeyDown(common.KeyE)
	tr.KeyDown(common.KeyW)
	tr.KeyDown(common.KeyD)
	tr.KeyDown(common.KeySpace)

	assert.Equal(t, []camera.Direction{camera.Forward, camera.Right, camera.RollRight}, tr.Directions())

	tr.KeyUp(common.KeyW)
	assert.Equal(t, []camera.Direction{camera.Right, camera.RollRight}, tr.Directions())
}

func TestDirectionsRepeatForSharedBindings(t *testing.T) {
	b := DefaultBindings()
	b.Movement[common.KeyUp] = camera.Forward
	tr := NewTracker(WithBindings(b))

	tr.KeyDown(common.KeyW)
	tr.KeyDown(common.KeyUp)
	assert.Equal(t, []camera.Direction{camera.Forward, camera.Forward}, tr.Directions())

	tr.KeyUp(common.KeyW)
	assert.Equal(t, []camera.Direction{camera.Forward}, tr.Directions())
}

func TestScrollAccumulatesUntilEndFrame(t *testing.T) {
	tr := NewTracker()
	tr.Scrolled(1)
	tr.Scrolled(-3)
	assert.Equal(t, float32(-2), tr.Scroll())

	tr.EndFrame()
	assert.Zero(t, tr.Scroll())
}

func TestParseMovement(t *testing.T) {
	movement, err := ParseMovement(map[string]string{"up": "forward", "z": "roll_left"})
	require.NoError(t, err)
	assert.Equal(t, map[common.Key]camera.Direction{
		common.KeyUp:    camera.Forward,
		common.Key('Z'): camera.RollLeft,
	}, movement)

	_, err = ParseMovement(map[string]string{"f13": "forward"})
	assert.ErrorContains(t, err, "unknown key")

	_, err = ParseMovement(map[string]string{"w": "jump"})
	assert.ErrorContains(t, err, "unknown direction")
}

func TestSetBindings(t *testing.T) {
	tr := NewTracker()
	tr.SetBindings(Bindings{Movement: map[common.Key]camera.Direction{common.KeyUp: camera.Backward}})
	tr.KeyDown(common.KeyW)
	tr.KeyDown(common.KeyUp)
	assert.Equal(t, []camera.Direction{camera.Backward}, tr.Directions())
}
