// Command render-window opens a window and flies a camera around a spinning textured cube above a tiled floor.
//
// Controls: W/S/A/D move, Q/E roll, the cursor's offset from the window centre turns, the scroll wheel zooms,
// Right/Left spin the cube, Space toggles maximize and Escape quits.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/Carmen-Shannon/oxy-flycam/engine"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/config"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/Carmen-Shannon/oxy-flycam/engine/loader"
	"github.com/Carmen-Shannon/oxy-flycam/engine/renderer"
	"github.com/Carmen-Shannon/oxy-flycam/engine/scene"
	"github.com/Carmen-Shannon/oxy-flycam/engine/window"
	"github.com/spf13/pflag"
)

type flags struct {
	configPath string
	watch      bool
	vsync      bool
	msaa       int
	profile    bool
}

func parseFlags(args []string) (flags, *pflag.FlagSet, error) {
	var f flags
	fs := pflag.NewFlagSet("render-window", pflag.ContinueOnError)
	fs.StringVarP(&f.configPath, "config", "c", "", "path to a YAML config file (defaults are used when empty)")
	fs.BoolVar(&f.watch, "watch", true, "reload camera, key and projection settings when the config file changes")
	fs.BoolVar(&f.vsync, "vsync", true, "synchronize presentation with the display refresh")
	fs.IntVar(&f.msaa, "msaa", 4, "multisample count, 1 or 4")
	fs.BoolVar(&f.profile, "profile", false, "log frame rate, memory and camera stats once per second")
	if err := fs.Parse(args); err != nil {
		return flags{}, nil, err
	}
	return f, fs, nil
}

// loadConfig reads the config file, if any, and applies the flags that were set on the command line.
func loadConfig(f flags, fs *pflag.FlagSet) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		if cfg, err = config.Load(f.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if fs.Changed("vsync") {
		cfg.Renderer.VSync = f.vsync
	}
	if fs.Changed("msaa") {
		cfg.Renderer.MSAA = f.msaa
	}
	if fs.Changed("profile") {
		cfg.Profile = f.profile
	}
	return cfg, cfg.Validate()
}

func main() {
	f, fs, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("render-window: %v", err)
	}
	if err := run(f, fs); err != nil {
		log.Printf("render-window: %v", err)
		os.Exit(1)
	}
}

func run(f flags, fs *pflag.FlagSet) error {
	cfg, err := loadConfig(f, fs)
	if err != nil {
		return err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		return err
	}
	msaa, err := renderer.ParseMSAA(cfg.Renderer.MSAA)
	if err != nil {
		return err
	}

	// ── Window ──────────────────────────────────────────────────────────
	w, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMinSize(cfg.Window.MinWidth, cfg.Window.MinHeight),
		window.WithFitMonitor(cfg.Window.FitMonitor),
	)
	if err != nil {
		return err
	}
	defer w.Close()

	// ── Renderer ────────────────────────────────────────────────────────
	presentMode := renderer.PresentModeUncapped
	if cfg.Renderer.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithClearColor(cfg.Renderer.ClearColor),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceFallbackAdapter),
	)
	if err != nil {
		return err
	}
	defer r.Release()

	// ── Textures ────────────────────────────────────────────────────────
	loaderOptions := []loader.LoaderBuilderOption{loader.WithMipmaps(cfg.Textures.Mipmaps)}
	if cfg.Textures.Workers > 0 {
		loaderOptions = append(loaderOptions, loader.WithWorkers(cfg.Textures.Workers))
	}
	texLoader := loader.NewLoader(loaderOptions...)
	textures, err := texLoader.Load(
		loader.Request{Name: "crate", Path: cfg.Textures.Crate},
		loader.Request{Name: "checkered", Path: cfg.Textures.Checkered},
		loader.Request{Name: "floor", Path: cfg.Textures.Floor},
	)
	// Textures load once at startup; the decode workers are not needed past this point.
	texLoader.Close()
	if err != nil {
		// Failed textures were replaced by a checkerboard, so the demo still runs.
		log.Printf("[Loader] %v", err)
	}

	// ── Scene ───────────────────────────────────────────────────────────
	cam := camera.NewCamera(cfg.CameraOptions()...)
	sc := scene.NewScene("Render Window", cam, r,
		scene.WithCubePosition(cfg.Scene.CubePosition),
		scene.WithCubeAxis(cfg.Scene.CubeAxis),
		scene.WithSpinStep(cfg.Scene.SpinStep),
		scene.WithPlane(cfg.Scene.PlaneScale, cfg.Scene.PlaneUVRepeat),
		scene.WithMixFactor(cfg.Scene.MixFactor),
		scene.WithProjection(cfg.Projection.Aspect, cfg.Projection.Near, cfg.Projection.Far),
	)
	if err := sc.Init(scene.Textures{Crate: textures[0], Checkered: textures[1], Floor: textures[2]}); err != nil {
		return err
	}
	defer sc.Release()

	// ── Engine ──────────────────────────────────────────────────────────
	engineOptions := []engine.EngineBuilderOption{
		engine.WithWindow(w),
		engine.WithScene(sc),
		engine.WithTracker(input.NewTracker(input.WithBindings(bindings))),
		engine.WithProfiling(cfg.Profile),
	}
	if f.watch && f.configPath != "" {
		watcher, err := config.NewWatcher(f.configPath, config.DefaultDebounce)
		if err != nil {
			return fmt.Errorf("watch config: %w", err)
		}
		defer watcher.Close()
		engineOptions = append(engineOptions, engine.WithConfigUpdates(watcher.Updates(), watcher.Errors()))
	}

	return engine.NewEngine(engineOptions...).Run()
}
