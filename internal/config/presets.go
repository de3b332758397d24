package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/orbitsim/internal/orbit"
)

var Presets = map[string]*Config{
	"solar": DefaultConfig(),
	"inner": withBodies(DefaultConfig(), 250, "Sun", "Mercury", "Venus", "Earth", "Mars"),
	"earth-sun": func() *Config {
		c := withBodies(DefaultConfig(), 300, "Sun", "Earth")
		c.Dt = orbit.Day / 4
		return c
	}(),
	"jupiter": func() *Config {
		c := withBodies(DefaultConfig(), 60, "Sun", "Earth", "Jupiter")
		c.Duration = 12 * 365.25 * orbit.Day
		c.SampleEvery = 5
		return c
	}(),
}

var ErrUnknownPreset = errors.New("unknown preset")

// ForRun rebuilds the configuration a stored run was made with from its
// preset name and recorded gravity, dt and duration.
func ForRun(preset, gravity string, dt, duration float64) (*Config, error) {
	cfg := GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPreset, preset, ListPresets())
	}
	cfg.Gravity = gravity
	cfg.Dt = dt
	cfg.Duration = duration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func withBodies(c *Config, baseScale float64, names ...string) *Config {
	all := make(map[string]BodyConfig, len(c.Bodies))
	for _, b := range c.Bodies {
		all[b.Name] = b
	}
	c.Bodies = c.Bodies[:0]
	for _, n := range names {
		c.Bodies = append(c.Bodies, all[n])
	}
	c.BaseScale = baseScale
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
