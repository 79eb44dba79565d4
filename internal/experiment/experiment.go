package experiment

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/san-kum/accretion/internal/config"
	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/physics"
)

type Config struct {
	Scenario    string
	Integrator  string
	Width       float64
	Height      float64
	Orbit       physics.OrbitConfig
	Dt          float64
	Ticks       int
	SampleEvery int
	Seed        int64
}

// FromConfig converts a file configuration.
func FromConfig(c *config.Config) Config {
	return Config{
		Scenario:    c.Scenario,
		Integrator:  c.Integrator,
		Width:       c.World.Width,
		Height:      c.World.Height,
		Orbit:       c.OrbitConfig(),
		Dt:          c.Dt,
		Ticks:       c.Ticks,
		SampleEvery: c.SampleEvery,
		Seed:        c.Seed,
	}
}

func (c Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		Dt:            c.Dt,
		Ticks:         c.Ticks,
		SampleEvery:   c.SampleEvery,
		ValidateState: true,
	}
}

type Experiment struct {
	cfg        Config
	registry   *Registry
	simulator  *dynamo.Simulator
	randSource *rand.Rand
	bodies     int
}

func New(cfg Config) *Experiment {
	return &Experiment{
		cfg:        cfg,
		registry:   NewRegistry(),
		randSource: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Setup builds the scenario's bodies from the seeded source and wires the
// engine, integrator and metrics.
func (e *Experiment) Setup(metrics []dynamo.Metric) error {
	scenario, err := e.registry.GetScenario(e.cfg.Scenario)
	if err != nil {
		return err
	}
	integrator := e.cfg.Integrator
	if integrator == "" {
		integrator = "leapfrog"
	}
	integ, err := e.registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	bodies, err := scenario.Build(e.cfg.Width, e.cfg.Height, e.cfg.Orbit, e.randSource)
	if err != nil {
		return fmt.Errorf("build %s: %w", scenario.Name, err)
	}
	e.bodies = len(bodies)

	e.simulator = dynamo.New(dynamo.NewEngine(bodies, e.cfg.Orbit.G, integ))
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.SimConfig())
}

func (e *Experiment) Config() Config { return e.cfg }

// InitialBodies is the body count produced by the scenario builder.
func (e *Experiment) InitialBodies() int { return e.bodies }

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *dynamo.Simulator { return e.simulator }

func (e *Experiment) Engine() *dynamo.Engine {
	if e.simulator == nil {
		return nil
	}
	return e.simulator.Engine()
}
