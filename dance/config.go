package dance

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/cubedance/tween"
)

// SceneConfig lays out the cubes and the initial camera.
type SceneConfig struct {
	Cubes      int        `yaml:"cubes"`
	Spacing    float64    `yaml:"spacing"`
	Ground     float64    `yaml:"ground"`
	Palette    []string   `yaml:"palette"`
	Background string     `yaml:"background"`
	Floor      string     `yaml:"floor"`
	FloorSize  float64    `yaml:"floorSize"`
	Camera     [3]float64 `yaml:"camera"`
	LookAt     [3]float64 `yaml:"lookAt"`
	FOV        float64    `yaml:"fov"`
	Near       float64    `yaml:"near"`
	Far        float64    `yaml:"far"`
}

// Config is the full application configuration, read from YAML.
type Config struct {
	Scene SceneConfig `yaml:"scene"`

	Choreography struct {
		BaseDurationMs int64   `yaml:"baseDurationMs"`
		StaggerMs      int64   `yaml:"staggerMs"`
		Peak           float64 `yaml:"peak"`
		PeakScale      float64 `yaml:"peakScale"`
		RiseEasing     string  `yaml:"riseEasing"`
		FallEasing     string  `yaml:"fallEasing"`
	} `yaml:"choreography"`

	Orbit struct {
		DurationMs int64      `yaml:"durationMs"`
		Radius     float64    `yaml:"radius"`
		Height     float64    `yaml:"height"`
		Bob        float64    `yaml:"bob"`
		Target     [3]float64 `yaml:"target"`
		Easing     string     `yaml:"easing"`
	} `yaml:"orbit"`

	Display struct {
		FrameRate float64 `yaml:"frameRate"`
		ResetKey  string  `yaml:"resetKey"`
		Damping   float64 `yaml:"damping"`
		ZoomStep  float64 `yaml:"zoomStep"`
		LogFile   string  `yaml:"logFile"`
	} `yaml:"display"`
}

// DefaultConfig returns the stock five cube dance.
func DefaultConfig() Config {
	var c Config
	c.Scene = SceneConfig{
		Cubes:      5,
		Spacing:    2,
		Ground:     0.5,
		Palette:    []string{"#ff0080", "#00e0ff", "#ffff00", "#00ff88", "#ff8800"},
		Background: "#050510",
		Floor:      "#111133",
		FloorSize:  20,
		Camera:     [3]float64{0, 5, 10},
		LookAt:     [3]float64{0, 1, 0},
		FOV:        60,
		Near:       0.1,
		Far:        100,
	}

	c.Choreography.BaseDurationMs = 900
	c.Choreography.StaggerMs = 150
	c.Choreography.Peak = 2
	c.Choreography.PeakScale = 1.2
	c.Choreography.RiseEasing = "OutBack"
	c.Choreography.FallEasing = "OutBounce"

	c.Orbit.DurationMs = 8000
	c.Orbit.Radius = 10
	c.Orbit.Height = 5
	c.Orbit.Bob = 1.5
	c.Orbit.Target = [3]float64{0, 1, 0}
	c.Orbit.Easing = "InOutSine"

	c.Display.FrameRate = 30
	c.Display.ResetKey = " "
	c.Display.Damping = 0.05
	c.Display.ZoomStep = 0.1

	return c
}

// Validate checks everything the choreography assumes before it builds
// phases.
func (c *Config) Validate() error {
	s := c.Scene
	if s.Cubes < 1 {
		return fmt.Errorf("scene.cubes must be at least 1, got %d", s.Cubes)
	}
	if len(s.Palette) == 0 {
		return fmt.Errorf("scene.palette is empty")
	}
	for _, hex := range append([]string{s.Background, s.Floor}, s.Palette...) {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("scene colour %q: %w", hex, err)
		}
	}
	if s.FOV <= 0 || s.FOV >= 180 {
		return fmt.Errorf("scene.fov must be in (0,180), got %v", s.FOV)
	}
	if s.Near <= 0 || s.Far <= s.Near {
		return fmt.Errorf("scene clip planes invalid: near %v far %v", s.Near, s.Far)
	}

	ch := c.Choreography
	if ch.BaseDurationMs < 0 || ch.StaggerMs < 0 {
		return fmt.Errorf("choreography durations must be non-negative")
	}
	if c.Orbit.DurationMs < 0 {
		return fmt.Errorf("orbit.durationMs must be non-negative")
	}
	for _, name := range []string{ch.RiseEasing, ch.FallEasing, c.Orbit.Easing} {
		if _, err := tween.EasingByName(name); err != nil {
			return err
		}
	}
	for _, f := range []float64{s.Spacing, s.Ground, ch.Peak, ch.PeakScale, c.Orbit.Radius, c.Orbit.Height, c.Orbit.Bob} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("non-finite value in config")
		}
	}

	if c.Display.FrameRate <= 0 {
		return fmt.Errorf("display.frameRate must be positive, got %v", c.Display.FrameRate)
	}
	if c.Display.Damping <= 0 || c.Display.Damping > 1 {
		return fmt.Errorf("display.damping must be in (0,1], got %v", c.Display.Damping)
	}
	return nil
}
