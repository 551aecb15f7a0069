// Package config loads the render window's YAML configuration and watches it for live edits.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"gopkg.in/yaml.v3"
)

// ErrEmptyPath is returned by Load when no config path is given.
var ErrEmptyPath = errors.New("config: empty path")

// Config is the full render window configuration. Fields missing from a file keep their Default values.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Camera     CameraConfig     `yaml:"camera"`
	Projection ProjectionConfig `yaml:"projection"`
	Renderer   RendererConfig   `yaml:"renderer"`
	Textures   TexturesConfig   `yaml:"textures"`
	Scene      SceneConfig      `yaml:"scene"`
	Keys       KeysConfig       `yaml:"keys"`
	Profile    bool             `yaml:"profile"`
}

type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	MinWidth   int    `yaml:"min_width"`
	MinHeight  int    `yaml:"min_height"`
	FitMonitor bool   `yaml:"fit_monitor"`
}

type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Roll        float32    `yaml:"roll"`
	Zoom        float32    `yaml:"zoom"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	RollSpeed   float32    `yaml:"roll_speed"`
	MinZoom     float32    `yaml:"min_zoom"`
	MaxZoom     float32    `yaml:"max_zoom"`
	MinPitch    float32    `yaml:"min_pitch"`
	MaxPitch    float32    `yaml:"max_pitch"`
}

// ProjectionConfig controls the perspective projection. An Aspect of 0 follows the framebuffer.
type ProjectionConfig struct {
	Aspect float32 `yaml:"aspect"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

type RendererConfig struct {
	VSync                bool       `yaml:"vsync"`
	MSAA                 int        `yaml:"msaa"`
	ClearColor           [4]float64 `yaml:"clear_color"`
	ForceFallbackAdapter bool       `yaml:"force_fallback_adapter"`
}

type TexturesConfig struct {
	Crate     string `yaml:"crate"`
	Checkered string `yaml:"checkered"`
	Floor     string `yaml:"floor"`
	Workers   int    `yaml:"workers"`
	Mipmaps   bool   `yaml:"mipmaps"`
}

type SceneConfig struct {
	CubePosition  [3]float32 `yaml:"cube_position"`
	CubeAxis      [3]float32 `yaml:"cube_axis"`
	SpinStep      float32    `yaml:"spin_step"`
	PlaneScale    [3]float32 `yaml:"plane_scale"`
	PlaneUVRepeat float32    `yaml:"plane_uv_repeat"`
	MixFactor     float32    `yaml:"mix_factor"`
}

// KeysConfig names key bindings. An empty Movement map keeps the default W/S/A/D/Q/E layout.
type KeysConfig struct {
	Movement     map[string]string `yaml:"movement"`
	Close        string            `yaml:"close"`
	Maximize     string            `yaml:"maximize"`
	SpinForward  string            `yaml:"spin_forward"`
	SpinBackward string            `yaml:"spin_backward"`
}

// Default returns the configuration the demo runs with when no file is given.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:      "Render Window",
			Width:      1600,
			Height:     1200,
			MinWidth:   600,
			MinHeight:  200,
			FitMonitor: true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0.5, 5},
			Yaw:         camera.DefaultYaw,
			Pitch:       camera.DefaultPitch,
			Roll:        camera.DefaultRoll,
			Zoom:        camera.DefaultZoom,
			Speed:       camera.DefaultSpeed,
			Sensitivity: camera.DefaultSensitivity,
			RollSpeed:   camera.DefaultRollSpeed,
			MinZoom:     camera.DefaultMinZoom,
			MaxZoom:     camera.DefaultMaxZoom,
			MinPitch:    camera.DefaultMinPitch,
			MaxPitch:    camera.DefaultMaxPitch,
		},
		Projection: ProjectionConfig{
			Aspect: 1600.0 / 1200.0,
			Near:   0.1,
			Far:    100,
		},
		Renderer: RendererConfig{
			VSync:      true,
			MSAA:       4,
			ClearColor: [4]float64{0.2, 0.3, 0.3, 1},
		},
		Textures: TexturesConfig{
			Crate:     "Resources/Textures/crate.jpg",
			Checkered: "Resources/Textures/checkered.png",
			Floor:     "Resources/Textures/Floor.jpg",
			Mipmaps:   true,
		},
		Scene: SceneConfig{
			CubePosition:  [3]float32{0, 0.5, 0},
			CubeAxis:      [3]float32{1, 0.3, 0.5},
			SpinStep:      0.1,
			PlaneScale:    [3]float32{100, 1, 100},
			PlaneUVRepeat: 50,
			MixFactor:     0.2,
		},
	}
}

// Load reads a YAML config file over the defaults and validates the result.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the loaded configuration
//   - error: ErrEmptyPath, a read/parse error, or a validation error
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrEmptyPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
//
// Parameters:
//   - data: the YAML document
//
// Returns:
//   - Config: the parsed configuration
//   - error: a parse or validation error
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
//
// Returns:
//   - error: a description of the invalid setting, or nil
func (c Config) Validate() error {
	if !c.Window.FitMonitor && (c.Window.Width <= 0 || c.Window.Height <= 0) {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Projection.Aspect < 0 {
		return fmt.Errorf("projection aspect must not be negative, got %g", c.Projection.Aspect)
	}
	if c.Projection.Near <= 0 || c.Projection.Far <= c.Projection.Near {
		return fmt.Errorf("projection planes must satisfy 0 < near < far, got near=%g far=%g", c.Projection.Near, c.Projection.Far)
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		return fmt.Errorf("renderer msaa must be 1 or 4, got %d", c.Renderer.MSAA)
	}
	if c.Camera.Speed < 0 || c.Camera.Sensitivity < 0 || c.Camera.RollSpeed < 0 {
		return fmt.Errorf("camera speed, sensitivity and roll_speed must not be negative, got %g, %g, %g",
			c.Camera.Speed, c.Camera.Sensitivity, c.Camera.RollSpeed)
	}
	if c.Camera.MinZoom <= 0 || c.Camera.MaxZoom >= 180 || c.Camera.MinZoom > c.Camera.MaxZoom {
		return fmt.Errorf("camera zoom range must be within (0, 180), got [%g, %g]", c.Camera.MinZoom, c.Camera.MaxZoom)
	}
	if c.Camera.MinPitch > c.Camera.MaxPitch {
		return fmt.Errorf("camera pitch range is inverted: [%g, %g]", c.Camera.MinPitch, c.Camera.MaxPitch)
	}
	if c.Textures.Workers < 0 {
		return fmt.Errorf("textures workers must not be negative, got %d", c.Textures.Workers)
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	return nil
}

// CameraSettings returns the hot-reloadable part of the camera configuration.
//
// Returns:
//   - camera.Settings: the camera tuning
func (c Config) CameraSettings() camera.Settings {
	return camera.Settings{
		Speed:       c.Camera.Speed,
		Sensitivity: c.Camera.Sensitivity,
		RollSpeed:   c.Camera.RollSpeed,
		MinZoom:     c.Camera.MinZoom,
		MaxZoom:     c.Camera.MaxZoom,
		MinPitch:    c.Camera.MinPitch,
		MaxPitch:    c.Camera.MaxPitch,
	}
}

// CameraOptions returns the options that build the configured starting camera.
//
// Returns:
//   - []camera.CameraBuilderOption: the camera options
func (c Config) CameraOptions() []camera.CameraBuilderOption {
	p := c.Camera.Position
	return []camera.CameraBuilderOption{
		camera.WithPosition(p[0], p[1], p[2]),
		camera.WithYaw(c.Camera.Yaw),
		camera.WithPitch(c.Camera.Pitch),
		camera.WithRoll(c.Camera.Roll),
		camera.WithZoom(c.Camera.Zoom),
		camera.WithSettings(c.CameraSettings()),
	}
}

// Bindings resolves the configured key names into input bindings over the defaults.
//
// Returns:
//   - input.Bindings: the resolved bindings
//   - error: error naming the first unknown key or direction
func (c Config) Bindings() (input.Bindings, error) {
	b := input.DefaultBindings()
	if len(c.Keys.Movement) > 0 {
		movement, err := input.ParseMovement(c.Keys.Movement)
		if err != nil {
			return input.Bindings{}, fmt.Errorf("keys.movement: %w", err)
		}
		b.Movement = movement
	}

	single := []struct {
		field string
		name  string
		dst   *common.Key
	}{
		{"keys.close", c.Keys.Close, &b.Close},
		{"keys.maximize", c.Keys.Maximize, &b.Maximize},
		{"keys.spin_forward", c.Keys.SpinForward, &b.SpinForward},
		{"keys.spin_backward", c.Keys.SpinBackward, &b.SpinBackward},
	}
	for _, s := range single {
		if s.name == "" {
			continue
		}
		key, ok := common.ParseKey(s.name)
		if !ok {
			return input.Bindings{}, fmt.Errorf("%s: unknown key %q", s.field, s.name)
		}
		*s.dst = key
	}
	return b, nil
}
