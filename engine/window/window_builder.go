package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size. Ignored when WithFitMonitor is enabled.
//
// Parameters:
//   - width, height: initial size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width, w.height = width, height
	}
}

// WithMinSize sets the minimum size the window can be resized to.
//
// Parameters:
//   - minWidth, minHeight: minimum size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(minWidth, minHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = minWidth, minHeight
	}
}

// WithMaxSize sets the maximum size the window can be resized to. Zero leaves a dimension unlimited.
//
// Parameters:
//   - maxWidth, maxHeight: maximum size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}

// WithFitMonitor creates the window at the primary monitor's video-mode size (windowed fullscreen).
//
// Parameters:
//   - fit: true to size the window to the monitor
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithFitMonitor(fit bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.fitMonitor = fit
	}
}
