package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/accretion/internal/physics"
)

const (
	DefaultDt            = 0.01
	DefaultTicks         = 5000
	DefaultSampleEvery   = 10
	DefaultFrameInterval = 15
	DefaultWorldSize     = 1000.0
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Scenario        string      `yaml:"scenario"`
	Integrator      string      `yaml:"integrator"`
	Seed            int64       `yaml:"seed"`
	Dt              float64     `yaml:"dt"`
	Ticks           int         `yaml:"ticks"`
	SampleEvery     int         `yaml:"sample_every"`
	FrameIntervalMS int         `yaml:"frame_interval_ms"`
	World           WorldConfig `yaml:"world"`
	Orbit           OrbitConfig `yaml:"orbit"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// OrbitConfig is the file form of physics.OrbitConfig. Angles are degrees.
type OrbitConfig struct {
	G                    float64 `yaml:"g"`
	AnchorMass           float64 `yaml:"anchor_mass"`
	OrbiterCount         int     `yaml:"orbiter_count"`
	MinDistanceFrac      float64 `yaml:"min_distance_frac"`
	MaxDistanceFrac      float64 `yaml:"max_distance_frac"`
	VelocityDamping      float64 `yaml:"velocity_damping"`
	MaxAngleDeviationDeg float64 `yaml:"max_angle_deviation_deg"`
	OrbiterMassRatio     float64 `yaml:"orbiter_mass_ratio"`
	AnchorRadius         float64 `yaml:"anchor_radius"`
	OrbiterRadius        float64 `yaml:"orbiter_radius"`
}

func DefaultConfig() *Config {
	def := physics.DefaultOrbitConfig()
	return &Config{
		Scenario:        "accretion",
		Integrator:      "leapfrog",
		Seed:            1,
		Dt:              DefaultDt,
		Ticks:           DefaultTicks,
		SampleEvery:     DefaultSampleEvery,
		FrameIntervalMS: DefaultFrameInterval,
		World: WorldConfig{
			Width:  DefaultWorldSize,
			Height: DefaultWorldSize,
		},
		Orbit: OrbitConfig{
			G:                    def.G,
			AnchorMass:           def.AnchorMass,
			OrbiterCount:         def.OrbiterCount,
			MinDistanceFrac:      def.MinDistanceFrac,
			MaxDistanceFrac:      def.MaxDistanceFrac,
			VelocityDamping:      def.VelocityDamping,
			MaxAngleDeviationDeg: def.MaxAngleDeviation * 180 / math.Pi,
			OrbiterMassRatio:     def.OrbiterMassRatio,
			AnchorRadius:         def.AnchorRadius,
			OrbiterRadius:        def.OrbiterRadius,
		},
	}
}

// Load reads a YAML file over the defaults, so omitted keys keep their
// default values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto reads a YAML file over cfg. Keys absent from the file leave cfg
// untouched, which lets a file refine a preset.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
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
	case c.Scenario == "":
		return fmt.Errorf("%w: scenario must be set", ErrInvalid)
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalid, c.Dt)
	case c.Ticks <= 0:
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalid, c.Ticks)
	case c.SampleEvery < 0:
		return fmt.Errorf("%w: sample_every must be non-negative, got %d", ErrInvalid, c.SampleEvery)
	case c.FrameIntervalMS <= 0:
		return fmt.Errorf("%w: frame_interval_ms must be positive, got %d", ErrInvalid, c.FrameIntervalMS)
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world must have positive size, got %gx%g", ErrInvalid, c.World.Width, c.World.Height)
	}
	if err := c.OrbitConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) OrbitConfig() physics.OrbitConfig {
	o := c.Orbit
	return physics.OrbitConfig{
		G:                 o.G,
		AnchorMass:        o.AnchorMass,
		OrbiterCount:      o.OrbiterCount,
		MinDistanceFrac:   o.MinDistanceFrac,
		MaxDistanceFrac:   o.MaxDistanceFrac,
		VelocityDamping:   o.VelocityDamping,
		MaxAngleDeviation: o.MaxAngleDeviationDeg * math.Pi / 180,
		OrbiterMassRatio:  o.OrbiterMassRatio,
		AnchorRadius:      o.AnchorRadius,
		OrbiterRadius:     o.OrbiterRadius,
	}
}

func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}
