package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/Carmen-Shannon/oxy-flycam/engine/camera"
	"github.com/Carmen-Shannon/oxy-flycam/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "render-window.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, [3]float32{0, 0.5, 5}, cfg.Camera.Position)
	assert.InDelta(t, 4.0/3.0, cfg.Projection.Aspect, 1e-6)
	assert.Equal(t, [4]float64{0.2, 0.3, 0.3, 1}, cfg.Renderer.ClearColor)
	assert.Equal(t, camera.DefaultSettings(), cfg.CameraSettings())
	assert.True(t, cfg.Window.FitMonitor, "the demo opens windowed fullscreen")
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
window:
  title: flycam
  fit_monitor: false
camera:
  speed: 5
  position: [1, 2, 3]
renderer:
  msaa: 1
textures:
  mipmaps: false
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "flycam", cfg.Window.Title)
	assert.False(t, cfg.Window.FitMonitor)
	assert.Equal(t, 1600, cfg.Window.Width, "unset fields keep their defaults")
	assert.Equal(t, float32(5), cfg.Camera.Speed)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, camera.DefaultSensitivity, cfg.Camera.Sensitivity)
	assert.Equal(t, 1, cfg.Renderer.MSAA)
	assert.False(t, cfg.Textures.Mipmaps)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeConfig(t, t.TempDir(), "camera: [not, a, map]\n")
	_, err = Load(path)
	assert.ErrorContains(t, err, "unmarshal")
}

func TestExplicitZeroTuningIsKept(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "camera:\n  speed: 0\n  sensitivity: 0\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	s := cfg.CameraSettings()
	assert.Zero(t, s.Speed)
	assert.Zero(t, s.Sensitivity)
	assert.Equal(t, camera.DefaultRollSpeed, s.RollSpeed, "omitted fields keep their defaults")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero size", func(c *Config) { c.Window.Width = 0; c.Window.FitMonitor = false }, "window size"},
		{"zero size fits monitor", func(c *Config) { c.Window.Width = 0; c.Window.FitMonitor = true }, ""},
		{"negative aspect", func(c *Config) { c.Projection.Aspect = -1 }, "aspect"},
		{"window aspect", func(c *Config) { c.Projection.Aspect = 0 }, ""},
		{"far before near", func(c *Config) { c.Projection.Far = 0.05 }, "near < far"},
		{"msaa 2", func(c *Config) { c.Renderer.MSAA = 2 }, "msaa"},
		{"inverted zoom", func(c *Config) { c.Camera.MinZoom = 50 }, "zoom range"},
		{"inverted pitch", func(c *Config) { c.Camera.MinPitch = 10; c.Camera.MaxPitch = -10 }, "pitch range"},
		{"negative speed", func(c *Config) { c.Camera.Speed = -1 }, "must not be negative"},
		{"negative sensitivity", func(c *Config) { c.Camera.Sensitivity = -0.5 }, "must not be negative"},
		{"frozen camera", func(c *Config) { c.Camera.Speed = 0; c.Camera.Sensitivity = 0 }, ""},
		{"negative workers", func(c *Config) { c.Textures.Workers = -1 }, "workers"},
		{"unknown key", func(c *Config) { c.Keys.Close = "f13" }, "keys.close"},
		{"unknown direction", func(c *Config) { c.Keys.Movement = map[string]string{"w": "up"} }, "keys.movement"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBindings(t *testing.T) {
	cfg := Default()
	b, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Equal(t, input.DefaultBindings(), b)

	cfg.Keys = KeysConfig{
		Movement: map[string]string{"up": "forward", "down": "backward"},
		Close:    "q",
	}
	b, err = cfg.Bindings()
	require.NoError(t, err)
	assert.Equal(t, map[common.Key]camera.Direction{
		common.KeyUp:   camera.Forward,
		common.KeyDown: camera.Backward,
	}, b.Movement)
	assert.Equal(t, common.KeyQ, b.Close)
	assert.Equal(t, common.KeySpace, b.Maximize)
}

func TestCameraOptionsBuildConfiguredCamera(t *testing.T) {
	cfg := Default()
	cfg.Camera.Yaw = 0
	cfg.Camera.Zoom = 30
	cfg.Camera.Speed = 4

	c := camera.NewCamera(cfg.CameraOptions()...)
	assert.Equal(t, float32(0), c.Yaw())
	assert.Equal(t, float32(30), c.Zoom())
	assert.Equal(t, float32(4), c.Speed())
	assert.InDelta(t, 0.5, c.Position().Y(), 1e-6)
}

func TestWatcherDeliversReloadedConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "camera:\n  speed: 3\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	writeConfig(t, dir, "camera:\n  speed: 7\n")

	select {
	case cfg := <-w.Updates():
		assert.Equal(t, float32(7), cfg.Camera.Speed)
	case err := <-w.Errors():
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}

func TestWatcherReportsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "renderer:\n  msaa: 4\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	writeConfig(t, dir, "renderer:\n  msaa: 3\n")

	select {
	case err := <-w.Errors():
		assert.ErrorContains(t, err, "msaa")
	case <-w.Updates():
		t.Fatal("invalid config must not be delivered")
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher error")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "profile: true\n")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("profile: false\n"), 0o644))

	select {
	case <-w.Updates():
		t.Fatal("change to another file triggered a reload")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseClosesChannels(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "profile: true\n")
	w, err := NewWatcher(path, 0)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "second close is a no-op")

	_, open := <-w.Updates()
	assert.False(t, open)

	_, err = NewWatcher("", 0)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "render-window.yaml"))
	require.NoError(t, err)

	b, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Equal(t, input.DefaultBindings(), b)

	want := Default()
	cfg.Keys = want.Keys
	assert.Equal(t, want, cfg)
}
