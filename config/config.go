// Package config provides configuration loading and access for the bubble host.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/bubbles/physics"
	"github.com/pthm-cable/bubbles/screen"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Spring    SpringConfig    `yaml:"spring"`
	Fling     FlingConfig     `yaml:"fling"`
	Touch     TouchConfig     `yaml:"touch"`
	Tracker   TrackerConfig   `yaml:"tracker"`
	Animation AnimationConfig `yaml:"animation"`
	Bubbles   BubblesConfig   `yaml:"bubbles"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Density   float64 `yaml:"density"` // pixels per dp
	TargetFPS int     `yaml:"target_fps"`
}

// SpringConfig holds the edge-settle spring.
type SpringConfig struct {
	Stiffness    float64 `yaml:"stiffness"`
	DampingRatio float64 `yaml:"damping_ratio"`
}

// FlingConfig holds fling parameters.
type FlingConfig struct {
	Friction         float64 `yaml:"friction"`
	MinVelocityScale float64 `yaml:"min_velocity_scale"` // min fling = screen width in dp * this, in px/s
}

// TouchConfig holds gesture detector thresholds.
type TouchConfig struct {
	SlopDp            float64 `yaml:"slop_dp"`
	MinFlingDp        float64 `yaml:"min_fling_dp"` // dp/s
	MaxFlingDp        float64 `yaml:"max_fling_dp"` // dp/s
	VelocityHorizonMs int     `yaml:"velocity_horizon_ms"`
}

// TrackerConfig holds the motion history window.
type TrackerConfig struct {
	Capacity int `yaml:"capacity"`
}

// AnimationConfig holds frame-scheduler settings.
type AnimationConfig struct {
	MinVisibleChange float64 `yaml:"min_visible_change"` // px
	MaxDT            float64 `yaml:"max_dt"`             // seconds
}

// BubblesConfig describes the widgets spawned by the host.
type BubblesConfig struct {
	Count    int      `yaml:"count"`
	RadiusDp float64  `yaml:"radius_dp"`
	Colors   []string `yaml:"colors"` // hex RGB, cycled
}

// TelemetryConfig holds recording settings.
type TelemetryConfig struct {
	OutputDir  string `yaml:"output_dir"`
	PerfWindow int    `yaml:"perf_window"` // frames averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Metrics          screen.Metrics
	Spring           physics.SpringParams
	Friction32       float32
	MinVisible32     float32
	MaxDT32          float32
	MinFlingVelocity float32 // px/s, screen-scaled
	TouchSlopPx      float32
	RadiusPx         float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Defaults returns the embedded defaults with derived values computed.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate rejects parameter values the physics cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Spring.Stiffness <= 0:
		return fmt.Errorf("%w: spring.stiffness must be positive, got %g", ErrInvalid, c.Spring.Stiffness)
	case c.Spring.DampingRatio < 0:
		return fmt.Errorf("%w: spring.damping_ratio must not be negative, got %g", ErrInvalid, c.Spring.DampingRatio)
	case c.Fling.Friction <= 0:
		return fmt.Errorf("%w: fling.friction must be positive, got %g", ErrInvalid, c.Fling.Friction)
	case c.Tracker.Capacity < 1:
		return fmt.Errorf("%w: tracker.capacity must be at least 1, got %d", ErrInvalid, c.Tracker.Capacity)
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen size must be positive, got %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Bubbles.Count < 1:
		return fmt.Errorf("%w: bubbles.count must be at least 1, got %d", ErrInvalid, c.Bubbles.Count)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	m := screen.NewMetrics(c.Screen.Width, c.Screen.Height, float32(c.Screen.Density))
	c.Derived.Metrics = m
	c.Derived.Spring = physics.SpringParams{
		Stiffness:    float32(c.Spring.Stiffness),
		DampingRatio: float32(c.Spring.DampingRatio),
	}
	c.Derived.Friction32 = float32(c.Fling.Friction)
	c.Derived.MinVisible32 = float32(c.Animation.MinVisibleChange)
	c.Derived.MaxDT32 = float32(c.Animation.MaxDT)
	c.Derived.MinFlingVelocity = m.MinFlingVelocity(c.Fling.MinVelocityScale)
	c.Derived.TouchSlopPx = float32(m.DpToPx(c.Touch.SlopDp))
	c.Derived.RadiusPx = float32(m.DpToPx(c.Bubbles.RadiusDp))
}

// Recompute refreshes Derived after fields were changed in place.
func (c *Config) Recompute() {
	c.computeDerived()
}

// Resize updates the screen size and everything derived from it.
func (c *Config) Resize(width, height int) {
	c.Screen.Width = width
	c.Screen.Height = height
	c.computeDerived()
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
