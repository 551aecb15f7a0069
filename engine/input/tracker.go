// Package input turns window events into per-frame input state for the render loop.
package input

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
)

// Tracker accumulates the window's key, cursor and scroll events between frames.
// Event methods are meant to be registered as window callbacks; query methods are read by
// the render loop, which calls EndFrame once the frame has consumed its input.
//
// Window callbacks fire from PollEvents on the render thread, so a Tracker is not locked.
type Tracker interface {
	// KeyDown records a key press or key repeat.
	KeyDown(key common.Key)

	// KeyUp records a key release.
	KeyUp(key common.Key)

	// CursorMoved records the latest cursor position in window coordinates.
	CursorMoved(x, y float64)

	// Scrolled adds a vertical scroll delta.
	Scrolled(delta float32)

	// Resized updates the window size, in screen coordinates, used to normalize cursor positions.
	Resized(width, height int)

	// Held reports whether a key is currently down.
	Held(key common.Key) bool

	// Pressed reports whether a key went down since the last EndFrame. Key repeats do not count.
	Pressed(key common.Key) bool

	// Directions returns one movement direction per held bound key, in Direction order.
	// Two held keys bound to the same direction yield that direction twice.
	Directions() []camera.Direction

	// MouseOffset returns the cursor's offset from the viewport centre, normalized to [-1, 1] with +y up.
	// Both components are zero until the first cursor event.
	//
	// Returns:
	//   - x, y: the normalized offset
	MouseOffset() (x, y float32)

	// Scroll returns the scroll accumulated since the last EndFrame.
	Scroll() float32

	// Bindings returns the active key bindings.
	Bindings() Bindings

	// SetBindings replaces the active key bindings.
	SetBindings(b Bindings)

	// EndFrame clears the per-frame state (pressed keys and scroll).
	EndFrame()
}

type trackerImpl struct {
	bindings Bindings

	held    map[common.Key]bool
	pressed map[common.Key]bool

	cursorSeen bool
	cursorX    float64
	cursorY    float64

	width  int
	height int

	scroll float32
}

var _ Tracker = &trackerImpl{}

// NewTracker creates a Tracker with the default bindings and a zero viewport.
//
// Parameters:
//   - options: functional options to configure the tracker
//
// Returns:
//   - Tracker: the newly created tracker
func NewTracker(options ...TrackerBuilderOption) Tracker {
	t := &trackerImpl{
		bindings: DefaultBindings(),
		held:     make(map[common.Key]bool),
		pressed:  make(map[common.Key]bool),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *trackerImpl) KeyDown(key common.Key) {
	if !t.held[key] {
		t.pressed[key] = true
	}
	t.held[key] = true
}

func (t *trackerImpl) KeyUp(key common.Key) {
	delete(t.held, key)
}

func (t *trackerImpl) CursorMoved(x, y float64) {
	t.cursorSeen = true
	t.cursorX, t.cursorY = x, y
}

func (t *trackerImpl) Scrolled(delta float32) {
	t.scroll += delta
}

func (t *trackerImpl) Resized(width, height int) {
	t.width, t.height = width, height
}

func (t *trackerImpl) Held(key common.Key) bool {
	return t.held[key]
}

func (t *trackerImpl) Pressed(key common.Key) bool {
	return t.pressed[key]
}

func (t *trackerImpl) Directions() []camera.Direction {
	var dirs []camera.Direction
	for key, dir := range t.bindings.Movement {
		if t.held[key] {
			dirs = append(dirs, dir)
		}
	}
	slices.Sort(dirs)
	return dirs
}

func (t *trackerImpl) MouseOffset() (x, y float32) {
	if !t.cursorSeen || t.width <= 0 || t.height <= 0 {
		return 0, 0
	}
	w, h := float64(t.width), float64(t.height)
	x = float32((t.cursorX - w/2) * 2 / w)
	y = float32(-((t.cursorY - h/2) * 2 / h))
	return x, y
}

func (t *trackerImpl) Scroll() float32 {
	return t.scroll
}

func (t *trackerImpl) Bindings() Bindings {
	return t.bindings
}

func (t *trackerImpl) SetBindings(b Bindings) {
	t.bindings = b
}

func (t *trackerImpl) EndFrame() {
	clear(t.pressed)
	t.scroll = 0
}
