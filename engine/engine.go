package engine

import (
	"errors"
	"log"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/config"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/Carmen-Shannon/oxy-flycam/engine/profiler"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flycam/engine/scene"
	"github.com/Carmen-Shannon/oxy-flycam/engine/window"
)

// engine implements the Engine interface.
// Everything runs on the window's thread: the window's update callback drives one frame per message loop iteration.
type engine struct {
	window  window.Window
	tracker input.Tracker
	scene   scene.Scene

	clock            *profiler.FrameClock
	profiler         *profiler.Profiler
	profilingEnabled bool

	configUpdates <-chan config.Config
	configErrors  <-chan error

	renderCallback func(deltaTime float32)

	err error
}

// Engine is the main entry point for the engine.
// It wires window events into the input tracker and runs the per-frame update and draw sequence.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Tracker returns the input tracker fed by the window's callbacks.
	Tracker() input.Tracker

	// Scene returns the scene drawn each frame.
	Scene() scene.Scene

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetRenderCallback registers a function called after each frame is drawn.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// Run runs the window message loop until the window closes.
	//
	// Returns:
	//   - error: the error that stopped the loop, or nil after a normal close
	Run() error

	// Quit asks the window to close after the current frame.
	Quit()
}

// ErrMissingCollaborator is returned by Run when the engine was built without a window or a scene.
var ErrMissingCollaborator = errors.New("engine requires a window and a scene")

// NewEngine creates a new Engine instance with the provided options.
// When a window is given its callbacks are registered here: input events and window size changes feed
// the tracker, framebuffer resizes reach the renderer, and the update callback runs a frame.
//
// Parameters:
//   - options: functional options for engine configuration (window, scene, profiling, config updates)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		var profilerOptions []profiler.ProfilerOption
		if e.scene != nil {
			profilerOptions = append(profilerOptions, profiler.WithCamera(e.scene.Camera()))
		}
		e.profiler = profiler.NewProfiler(profilerOptions...)
	}
	if e.tracker == nil {
		e.tracker = input.NewTracker()
	}

	if e.window != nil {
		if e.clock == nil {
			e.clock = profiler.NewFrameClock(e.window.Time)
		}
		e.tracker.Resized(e.window.WindowSize())

		e.window.SetKeyDownCallback(func(keyCode uint32) { e.tracker.KeyDown(common.Key(keyCode)) })
		e.window.SetKeyUpCallback(func(keyCode uint32) { e.tracker.KeyUp(common.Key(keyCode)) })
		e.window.SetMouseMoveCallback(e.tracker.CursorMoved)
		e.window.SetScrollCallback(e.tracker.Scrolled)
		e.window.SetWindowSizeCallback(e.tracker.Resized)
		e.window.SetResizeCallback(e.resize)
		e.window.SetUpdateCallback(e.frame)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Tracker() input.Tracker {
	return e.tracker
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) Run() error {
	if e.window == nil || e.scene == nil {
		return ErrMissingCollaborator
	}
	e.window.ProcessMessages()
	return e.err
}

func (e *engine) Quit() {
	if e.window != nil {
		e.window.RequestClose()
	}
}

// resize follows the framebuffer, which is in pixels. The tracker follows the window size instead.
func (e *engine) resize(width, height int) {
	if e.scene == nil {
		return
	}
	if r := e.scene.Renderer(); r != nil {
		if err := r.Resize(width, height); err != nil {
			e.fail(err)
		}
	}
}

// frame runs one iteration of the render loop:
// config reload, actions, camera input, upload, draw, then the end of the tracker's frame.
func (e *engine) frame() {
	if e.scene == nil {
		return
	}
	defer e.tracker.EndFrame()

	e.drainConfig()

	dt := e.clock.Tick()
	bindings := e.tracker.Bindings()

	if e.tracker.Pressed(bindings.Close) {
		e.window.RequestClose()
		return
	}
	if e.tracker.Pressed(bindings.Maximize) {
		e.window.ToggleMaximize()
	}

	if e.tracker.Held(bindings.SpinForward) {
		e.scene.SpinForward()
	}
	if e.tracker.Held(bindings.SpinBackward) {
		e.scene.SpinBackward()
	}

	cam := e.scene.Camera()
	for _, dir := range e.tracker.Directions() {
		cam.ProcessKeyboard(dir, dt)
	}
	cam.ProcessMouseMovement(e.tracker.MouseOffset())
	if scroll := e.tracker.Scroll(); scroll != 0 {
		cam.ProcessMouseScroll(scroll)
	}

	e.scene.Update()
	if _, err := e.scene.DrawCalls(); err != nil {
		e.fail(err)
		return
	}

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

// drainConfig applies the newest reloaded config, if any, and logs pending watcher errors.
func (e *engine) drainConfig() {
	var (
		latest  config.Config
		pending bool
	)
	for drained := false; !drained; {
		select {
		case cfg, ok := <-e.configUpdates:
			if !ok {
				e.configUpdates = nil
				continue
			}
			latest, pending = cfg, true
		case err, ok := <-e.configErrors:
			if !ok {
				e.configErrors = nil
				continue
			}
			log.Printf("[Config] %v", err)
		default:
			drained = true
		}
	}
	if pending {
		e.applyConfig(latest)
	}
}

// applyConfig applies the hot-reloadable settings: camera tuning, key bindings, projection, spin step and vsync.
func (e *engine) applyConfig(cfg config.Config) {
	e.scene.Camera().Apply(cfg.CameraSettings())
	if b, err := cfg.Bindings(); err == nil {
		e.tracker.SetBindings(b)
	}
	e.scene.SetProjection(cfg.Projection.Aspect, cfg.Projection.Near, cfg.Projection.Far)
	e.scene.SetSpinStep(cfg.Scene.SpinStep)

	if r := e.scene.Renderer(); r != nil {
		mode := renderer.PresentModeUncapped
		if cfg.Renderer.VSync {
			mode = renderer.PresentModeVSync
		}
		if err := r.SetPresentMode(mode); err != nil {
			log.Printf("[Config] present mode: %v", err)
		}
	}
	if cfg.Profile {
		e.EnableProfiler()
	} else {
		e.DisableProfiler()
	}
}

// fail records the first fatal error and closes the window.
func (e *engine) fail(err error) {
	if e.err == nil {
		e.err = err
		log.Printf("[Engine] %v", err)
	}
	if e.window != nil {
		e.window.RequestClose()
	}
}
