package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

func preset(desc string, apply func(c *Config)) Preset {
	c := DefaultConfig()
	apply(c)
	return Preset{Description: desc, config: c}
}

type Preset struct {
	Description string
	config      *Config
}

var Presets = map[string]Preset{
	"classic": preset("70 orbiters at 0.04 damping", func(c *Config) {}),
	"sparse": preset("20 orbiters spread over the outer disk", func(c *Config) {
		c.Orbit.OrbiterCount = 20
		c.Orbit.MinDistanceFrac = 0.25
	}),
	"dense": preset("250 orbiters packed close in", func(c *Config) {
		c.Orbit.OrbiterCount = 250
		c.Orbit.MaxDistanceFrac = 0.30
		c.SampleEvery = 25
	}),
	"calm": preset("near-circular launch with no heading jitter", func(c *Config) {
		c.Orbit.VelocityDamping = 0.06
		c.Orbit.MaxAngleDeviationDeg = 0
	}),
	"wild": preset("slow launch with wide heading jitter", func(c *Config) {
		c.Orbit.VelocityDamping = 0.02
		c.Orbit.MaxAngleDeviationDeg = 90
		c.Ticks = 10000
	}),
}

// GetPreset returns a fresh copy of the named preset.
func GetPreset(name string) (*Config, error) {
	p, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := *p.config
	return &cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
