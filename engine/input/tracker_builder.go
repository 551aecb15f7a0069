package input

// TrackerBuilderOption is a functional option for configuring a trackerImpl.
type TrackerBuilderOption func(*trackerImpl)

// WithBindings sets the tracker's key bindings.
//
// Parameters:
//   - b: the bindings to use
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithBindings(b Bindings) TrackerBuilderOption {
	return func(t *trackerImpl) {
		t.bindings = b
	}
}

// WithViewport sets the initial viewport size used to normalize cursor positions.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - TrackerBuilderOption: option function to apply
func WithViewport(width, height int) TrackerBuilderOption {
	return func(t *trackerImpl) {
		t.width, t.height = width, height
	}
}
