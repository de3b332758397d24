package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
)

const (
	DefaultWidth       = 1000
	DefaultHeight      = 1000
	DefaultFPS         = 60
	DefaultDt          = orbit.Day
	DefaultDuration    = 365.25 * orbit.Day
	DefaultSampleEvery = 1
	DefaultBaseScale   = 100.0
	DefaultZoomStep    = 1.1
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Width       int          `yaml:"width"`
	Height      int          `yaml:"height"`
	FPS         int          `yaml:"fps"`
	Dt          float64      `yaml:"dt"`
	Duration    float64      `yaml:"duration"`
	SampleEvery int          `yaml:"sample_every"`
	TrailLength int          `yaml:"trail_length"`
	Gravity     string       `yaml:"gravity"`
	BaseScale   float64      `yaml:"base_scale"`
	ZoomStep    float64      `yaml:"zoom_step"`
	Bodies      []BodyConfig `yaml:"bodies"`
}

// BodyConfig places a body on the negative x axis at DistanceAU with an
// initial velocity of (0, VelocityMPS).
type BodyConfig struct {
	Name        string  `yaml:"name"`
	DistanceAU  float64 `yaml:"distance_au"`
	MassKg      float64 `yaml:"mass_kg"`
	Color       []int   `yaml:"color,flow"`
	VelocityMPS float64 `yaml:"velocity_mps"`
	Radius      float64 `yaml:"radius"`
	Sun         bool    `yaml:"sun,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		FPS:         DefaultFPS,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		SampleEvery: DefaultSampleEvery,
		TrailLength: orbit.DefaultTrailLength,
		Gravity:     orbit.Pairwise.String(),
		BaseScale:   DefaultBaseScale,
		ZoomStep:    DefaultZoomStep,
		Bodies:      SolarSystem(),
	}
}

// SolarSystem returns the sun and the eight planets.
func SolarSystem() []BodyConfig {
	return []BodyConfig{
		{Name: "Sun", MassKg: 1.98892e30, Color: []int{255, 255, 0}, Radius: 16, Sun: true},
		{Name: "Mercury", DistanceAU: 0.39, MassKg: 3.285e23, Color: []int{169, 169, 169}, VelocityMPS: 47.87e3, Radius: 4},
		{Name: "Venus", DistanceAU: 0.723, MassKg: 4.8675e24, Color: []int{205, 200, 149}, VelocityMPS: 35.02e3, Radius: 6},
		{Name: "Earth", DistanceAU: 1, MassKg: 5.97219e24, Color: []int{70, 130, 180}, VelocityMPS: 29.783e3, Radius: 6},
		{Name: "Mars", DistanceAU: 1.524, MassKg: 6.4171e23, Color: []int{188, 39, 50}, VelocityMPS: 24.077e3, Radius: 4},
		{Name: "Jupiter", DistanceAU: 5.203, MassKg: 1.898e27, Color: []int{238, 232, 170}, VelocityMPS: 13.07e3, Radius: 12},
		{Name: "Saturn", DistanceAU: 9.537, MassKg: 5.683e26, Color: []int{210, 180, 140}, VelocityMPS: 9.69e3, Radius: 10},
		{Name: "Uranus", DistanceAU: 19.191, MassKg: 8.681e25, Color: []int{135, 206, 235}, VelocityMPS: 6.81e3, Radius: 8},
		{Name: "Neptune", DistanceAU: 30.069, MassKg: 1.024e26, Color: []int{30, 144, 255}, VelocityMPS: 5.43e3, Radius: 8},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Width, c.Height)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case !(c.Dt > 0):
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	case !(c.Duration > 0):
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalid, c.Duration)
	case c.TrailLength < 0:
		return fmt.Errorf("%w: trail_length must not be negative, got %d", ErrInvalid, c.TrailLength)
	case !(c.BaseScale > 0):
		return fmt.Errorf("%w: base_scale must be positive, got %g", ErrInvalid, c.BaseScale)
	case !(c.ZoomStep > 1):
		return fmt.Errorf("%w: zoom_step must be greater than 1, got %g", ErrInvalid, c.ZoomStep)
	case len(c.Bodies) == 0:
		return fmt.Errorf("%w: no bodies", ErrInvalid)
	case !finite(c.Dt, c.Duration, c.BaseScale, c.ZoomStep):
		return fmt.Errorf("%w: dt, duration, base_scale and zoom_step must be finite: %w", ErrInvalid, orbit.ErrNonFinite)
	}
	if _, err := orbit.ParseGravity(c.Gravity); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	suns := 0
	seen := make(map[string]bool, len(c.Bodies))
	for i, b := range c.Bodies {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("%w: body %d: %w", ErrInvalid, i, err)
		}
		if seen[b.Name] {
			return fmt.Errorf("%w: duplicate body name %q", ErrInvalid, b.Name)
		}
		seen[b.Name] = true
		if b.Sun {
			suns++
		}
	}
	if suns == 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, orbit.ErrNoSun)
	}
	return nil
}

func (b BodyConfig) Validate() error {
	if b.Name == "" {
		return errors.New("name is required")
	}
	if !(b.MassKg > 0) {
		return fmt.Errorf("%s: %w", b.Name, orbit.ErrNonPositiveMass)
	}
	if !finite(b.MassKg, b.DistanceAU, b.VelocityMPS, b.Radius) {
		return fmt.Errorf("%s: %w", b.Name, orbit.ErrNonFinite)
	}
	if len(b.Color) != 3 {
		return fmt.Errorf("%s: color needs 3 components, got %d", b.Name, len(b.Color))
	}
	for _, v := range b.Color {
		if v < 0 || v > 255 {
			return fmt.Errorf("%s: color component %d out of range", b.Name, v)
		}
	}
	if b.Radius < 0 {
		return fmt.Errorf("%s: radius must not be negative", b.Name)
	}
	return nil
}

func (b BodyConfig) RGBA() color.RGBA {
	if len(b.Color) != 3 {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBA{uint8(b.Color[0]), uint8(b.Color[1]), uint8(b.Color[2]), 255}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Build validates the config and constructs the system it describes.
func (c *Config) Build() (*orbit.System, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	gravity, _ := orbit.ParseGravity(c.Gravity)

	bodies := make([]*orbit.Body, 0, len(c.Bodies))
	for _, bc := range c.Bodies {
		b, err := orbit.NewBody(bc.Name, -bc.DistanceAU, 0, bc.MassKg, c.TrailLength)
		if err != nil {
			return nil, err
		}
		b.SetVelocity(0, bc.VelocityMPS)
		b.Color = bc.RGBA()
		b.Radius = bc.Radius
		b.IsSun = bc.Sun
		bodies = append(bodies, b)
	}
	return orbit.NewSystem(bodies, gravity)
}

// SimConfig returns the headless run parameters.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		SampleEvery:   c.SampleEvery,
		ValidateState: true,
	}
}

// Clone returns a deep copy so presets can be modified safely.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		b.Color = append([]int(nil), b.Color...)
		out.Bodies[i] = b
	}
	return &out
}
