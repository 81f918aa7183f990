// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taigrr/cubecam/pkg/controls"
	"github.com/taigrr/cubecam/pkg/palette"
)

// RandomColor in Render.FaceColors picks a palette color at startup.
const RandomColor = "random"

// Config holds all viewer settings.
type Config struct {
	Camera  BodyConfig    `yaml:"camera"`
	Cube    BodyConfig    `yaml:"cube"`
	Render  RenderConfig  `yaml:"render"`
	Mesh    MeshConfig    `yaml:"mesh"`
	Logging LoggingConfig `yaml:"logging"`
}

// BodyConfig holds the initial slider positions of one body in raw units:
// millimetres for X/Y/Z and tenths of a degree for rotations.
type BodyConfig struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Z     int `yaml:"z"`
	Roll  int `yaml:"roll"`
	Pitch int `yaml:"pitch"`
	Yaw   int `yaml:"yaw"`
	Scale int `yaml:"scale,omitempty"` // cube only
}

// RenderConfig holds display and shading settings.
type RenderConfig struct {
	FPS                int           `yaml:"fps"`
	ReevaluateInterval time.Duration `yaml:"reevaluate_interval"`
	FOV                float64       `yaml:"fov"` // vertical, degrees
	Background         [3]int        `yaml:"background"`
	LightDirection     [3]float64    `yaml:"light_direction"`
	Ambient            float64       `yaml:"ambient"`
	SmoothingFrequency float64       `yaml:"smoothing_frequency"` // 0 disables smoothing
	SmoothingDamping   float64       `yaml:"smoothing_damping"`
	WorldOriginMM      int           `yaml:"world_origin_mm"`
	CubeEdgeMM         int           `yaml:"cube_edge_mm"`
	FaceColors         []string      `yaml:"face_colors"`
}

// MeshConfig selects the body geometry.
type MeshConfig struct {
	Path string `yaml:"path"` // GLB/glTF file; empty draws the cube
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the stock startup pose.
func Default() *Config {
	return &Config{
		Camera: BodyConfig{
			X: 10000, Y: 13000, Z: 3000,
			Roll: 1500, Pitch: 1800, Yaw: 0,
		},
		Cube: BodyConfig{
			X: 10000, Y: 10000, Z: 10000,
			Roll: 0, Pitch: 500, Yaw: 0,
			Scale: 1,
		},
		Render: RenderConfig{
			FPS:                60,
			ReevaluateInterval: 50 * time.Millisecond,
			FOV:                60,
			Background:         [3]int{30, 30, 40},
			LightDirection:     [3]float64{-0.4, -1, -0.6},
			Ambient:            0.15,
			SmoothingFrequency: 8,
			SmoothingDamping:   1,
			WorldOriginMM:      10000,
			CubeEdgeMM:         1000,
			FaceColors:         []string{RandomColor},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Body returns the configuration of b.
func (c *Config) Body(b controls.Body) *BodyConfig {
	if b == controls.Camera {
		return &c.Camera
	}
	return &c.Cube
}

// Positions returns the initial position of every field that body b has.
func (bc BodyConfig) Positions(b controls.Body) map[controls.Field]int {
	all := map[controls.Field]int{
		controls.TranslationX: bc.X,
		controls.TranslationY: bc.Y,
		controls.TranslationZ: bc.Z,
		controls.Roll:         bc.Roll,
		controls.Pitch:        bc.Pitch,
		controls.Yaw:          bc.Yaw,
		controls.Scale:        bc.Scale,
	}
	out := make(map[controls.Field]int, len(all))
	for _, f := range controls.Fields(b) {
		out[f] = all[f]
	}
	return out
}

// NewStore builds a parameter store with every field set from the config.
func (c *Config) NewStore() (*controls.Store, error) {
	store := controls.NewStore()
	for _, b := range controls.Bodies() {
		if err := store.SetInitialPositions(b, c.Body(b).Positions(b)); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Validate reports every setting outside its allowed range.
func (c *Config) Validate() error {
	var errs []error

	for _, b := range controls.Bodies() {
		pos := c.Body(b).Positions(b)
		for _, f := range controls.Fields(b) {
			if r := controls.FieldRange(f); !r.Contains(pos[f]) {
				errs = append(errs, fmt.Errorf("%s.%s = %d: %w [%d, %d]", b, f, pos[f], controls.ErrOutOfRange, r.Min, r.Max))
			}
		}
	}

	r := c.Render
	if r.FPS < 1 || r.FPS > 240 {
		errs = append(errs, fmt.Errorf("render.fps = %d: must be in [1, 240]", r.FPS))
	}
	if r.ReevaluateInterval < 0 {
		errs = append(errs, fmt.Errorf("render.reevaluate_interval = %v: must not be negative", r.ReevaluateInterval))
	}
	if r.FOV <= 0 || r.FOV >= 180 {
		errs = append(errs, fmt.Errorf("render.fov = %v: must be in (0, 180)", r.FOV))
	}
	for i, ch := range r.Background {
		if ch < 0 || ch > 255 {
			errs = append(errs, fmt.Errorf("render.background[%d] = %d: must be in [0, 255]", i, ch))
		}
	}
	if r.LightDirection == [3]float64{} {
		errs = append(errs, errors.New("render.light_direction: must not be zero"))
	}
	if r.Ambient < 0 || r.Ambient > 1 {
		errs = append(errs, fmt.Errorf("render.ambient = %v: must be in [0, 1]", r.Ambient))
	}
	if r.SmoothingFrequency < 0 || r.SmoothingDamping < 0 {
		errs = append(errs, errors.New("render.smoothing_*: must not be negative"))
	}
	if r.CubeEdgeMM <= 0 {
		errs = append(errs, fmt.Errorf("render.cube_edge_mm = %d: must be positive", r.CubeEdgeMM))
	}
	for _, name := range r.FaceColors {
		if strings.EqualFold(name, RandomColor) {
			continue
		}
		if _, err := palette.Lookup(name); err != nil {
			errs = append(errs, fmt.Errorf("render.face_colors: %w", err))
		}
	}

	return errors.Join(errs...)
}
