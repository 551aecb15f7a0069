package engine

import (
	"github.com/Carmen-Shannon/oxy-flycam/engine/config"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/Carmen-Shannon/oxy-flycam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-flycam/engine/scene"
	"github.com/Carmen-Shannon/oxy-flycam/engine/window"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler, which reports the scene camera once per second.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithWindow sets the window whose message loop drives the engine.
//
// Parameters:
//   - w: a created Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene sets the scene updated and drawn each frame.
//
// Parameters:
//   - s: the Scene to draw
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scene = s
	}
}

// WithTracker sets the input tracker. The default is input.NewTracker().
//
// Parameters:
//   - t: the Tracker fed by the window's callbacks
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTracker(t input.Tracker) EngineBuilderOption {
	return func(e *engine) {
		e.tracker = t
	}
}

// WithFrameClock sets the clock that produces each frame's delta time. The default reads the window's Time.
func WithFrameClock(c *profiler.FrameClock) EngineBuilderOption {
	return func(e *engine) {
		e.clock = c
	}
}

// WithConfigUpdates connects a config watcher. Both channels are drained at the top of every frame;
// only the newest config is applied and errors are logged.
//
// Parameters:
//   - updates: reloaded configs, e.g. config.Watcher.Updates()
//   - errs: reload errors, e.g. config.Watcher.Errors()
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithConfigUpdates(updates <-chan config.Config, errs <-chan error) EngineBuilderOption {
	return func(e *engine) {
		e.configUpdates = updates
		e.configErrors = errs
	}
}
