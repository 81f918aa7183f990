package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taigrr/cubecam/pkg/controls"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	if cfg.Camera.X != 10000 || cfg.Camera.Y != 13000 || cfg.Camera.Z != 3000 {
		t.Errorf("camera translation = (%d, %d, %d), want (10000, 13000, 3000)", cfg.Camera.X, cfg.Camera.Y, cfg.Camera.Z)
	}
	if cfg.Camera.Roll != 1500 || cfg.Camera.Pitch != 1800 || cfg.Camera.Yaw != 0 {
		t.Errorf("camera rotation = (%d, %d, %d), want (1500, 1800, 0)", cfg.Camera.Roll, cfg.Camera.Pitch, cfg.Camera.Yaw)
	}
	if cfg.Cube.Pitch != 500 || cfg.Cube.Scale != 1 {
		t.Errorf("cube pitch/scale = %d/%d, want 500/1", cfg.Cube.Pitch, cfg.Cube.Scale)
	}
	if cfg.Render.ReevaluateInterval != 50*time.Millisecond {
		t.Errorf("expected 50ms re-evaluation, got %v", cfg.Render.ReevaluateInterval)
	}
	if cfg.Render.FPS != 60 {
		t.Errorf("expected fps 60, got %d", cfg.Render.FPS)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
}

func TestNewStore(t *testing.T) {
	store, err := Default().NewStore()
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if !store.Initialized() {
		t.Error("store not fully initialized")
	}
	if got := store.MustGet(controls.Camera, controls.TranslationY); got != 13000 {
		t.Errorf("camera Y = %d, want 13000", got)
	}
	if got := store.MustGet(controls.Cube, controls.Scale); got != 1 {
		t.Errorf("cube scale = %d, want 1", got)
	}
}

func TestPositionsSkipsCameraScale(t *testing.T) {
	cfg := Default()
	if _, ok := cfg.Camera.Positions(controls.Camera)[controls.Scale]; ok {
		t.Error("camera positions include scale")
	}
	if got := len(cfg.Cube.Positions(controls.Cube)); got != 7 {
		t.Errorf("cube positions = %d, want 7", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"translation too large", func(c *Config) { c.Cube.X = 20001 }, controls.ErrOutOfRange},
		{"negative rotation", func(c *Config) { c.Camera.Yaw = -1 }, controls.ErrOutOfRange},
		{"scale zero", func(c *Config) { c.Cube.Scale = 0 }, controls.ErrOutOfRange},
		{"scale eleven", func(c *Config) { c.Cube.Scale = 11 }, controls.ErrOutOfRange},
		{"zero light", func(c *Config) { c.Render.LightDirection = [3]float64{} }, nil},
		{"fps", func(c *Config) { c.Render.FPS = 0 }, nil},
		{"ambient", func(c *Config) { c.Render.Ambient = 2 }, nil},
		{"background", func(c *Config) { c.Render.Background[1] = 256 }, nil},
		{"unknown color", func(c *Config) { c.Render.FaceColors = []string{"notacolor"} }, nil},
		{"edge", func(c *Config) { c.Render.CubeEdgeMM = 0 }, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Errorf("error %v does not wrap %v", err, tc.target)
			}
		})
	}

	t.Run("named colors", func(t *testing.T) {
		cfg := Default()
		cfg.Render.FaceColors = []string{"red", "LightSeaGreen", "random"}
		if err := cfg.Validate(); err != nil {
			t.Errorf("valid face colors rejected: %v", err)
		}
	})
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "cubecam.yaml")

	yamlContent := `
camera:
  x: 5000
  yaw: 900
cube:
  scale: 4
render:
  fps: 30
  reevaluate_interval: 100ms
  light_direction: [0, -1, 0]
  face_colors: [red, green]
mesh:
  path: "model.glb"
logging:
  level: "debug"
  log_file: "viewer.log"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Camera.X != 5000 || cfg.Camera.Yaw != 900 {
		t.Errorf("camera x/yaw = %d/%d, want 5000/900", cfg.Camera.X, cfg.Camera.Yaw)
	}
	if cfg.Camera.Y != 13000 {
		t.Errorf("unset camera y should keep default, got %d", cfg.Camera.Y)
	}
	if cfg.Cube.Scale != 4 {
		t.Errorf("expected cube scale 4, got %d", cfg.Cube.Scale)
	}
	if cfg.Render.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.Render.FPS)
	}
	if cfg.Render.ReevaluateInterval != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", cfg.Render.ReevaluateInterval)
	}
	if cfg.Render.LightDirection != [3]float64{0, -1, 0} {
		t.Errorf("light direction = %v", cfg.Render.LightDirection)
	}
	if len(cfg.Render.FaceColors) != 2 || cfg.Render.FaceColors[1] != "green" {
		t.Errorf("face colors = %v", cfg.Render.FaceColors)
	}
	if cfg.Mesh.Path != "model.glb" {
		t.Errorf("expected mesh path, got %q", cfg.Mesh.Path)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := map[string]string{
		"syntax":      "camera:\n  x: not a number\n  invalid syntax here\n",
		"unknown key": "camera:\n  zoom: 3\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid.yaml")
			if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid YAML, got nil")
			}
		})
	}
}

func TestLoadFromFileEmpty(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(configPath, nil, 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("empty file should load: %v", err)
	}
	if cfg.Render.FPS != 60 {
		t.Errorf("defaults lost, fps = %d", cfg.Render.FPS)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cubecam.yaml")

	cfg := Default()
	cfg.Cube.Yaw = 1234
	cfg.Render.ReevaluateInterval = 75 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Cube.Yaw != 1234 {
		t.Errorf("cube yaw = %d, want 1234", loaded.Cube.Yaw)
	}
	if loaded.Render.ReevaluateInterval != 75*time.Millisecond {
		t.Errorf("interval = %v, want 75ms", loaded.Render.ReevaluateInterval)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
	if filepath.Dir(DefaultLogFile()) != dir {
		t.Errorf("DefaultLogFile %s not under %s", DefaultLogFile(), dir)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fps flag",
			setup: func() { *flagFPS = 24 },
			verify: func(cfg *Config) {
				if cfg.Render.FPS != 24 {
					t.Errorf("expected fps 24, got %d", cfg.Render.FPS)
				}
			},
			teardown: func() { *flagFPS = 0 },
		},
		{
			name:  "mesh and log flags",
			setup: func() { *flagMesh, *flagLog = "teapot.glb", "run.log" },
			verify: func(cfg *Config) {
				if cfg.Mesh.Path != "teapot.glb" {
					t.Errorf("expected mesh teapot.glb, got %s", cfg.Mesh.Path)
				}
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log run.log, got %s", cfg.Logging.LogFile)
				}
			},
			teardown: func() { *flagMesh, *flagLog = "", "" },
		},
		{
			name:  "zero fps ignored",
			setup: func() {},
			verify: func(cfg *Config) {
				if cfg.Render.FPS != 60 {
					t.Errorf("expected default fps, got %d", cfg.Render.FPS)
				}
			},
			teardown: func() {},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setup()
			defer tc.teardown()
			cfg := Default()
			applyFlags(cfg)
			tc.verify(cfg)
		})
	}
}
