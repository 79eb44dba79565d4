package experiment

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/integrators"
	"github.com/san-kum/accretion/internal/metrics"
	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

var (
	ErrUnknownScenario   = errors.New("experiment: unknown scenario")
	ErrUnknownIntegrator = errors.New("experiment: unknown integrator")
)

// BuildFunc creates the initial bodies of a scenario. Builders that draw
// random numbers must take them from rng only.
type BuildFunc func(width, height float64, cfg physics.OrbitConfig, rng *rand.Rand) ([]physics.Body, error)

type Scenario struct {
	Name        string
	Description string
	Build       BuildFunc
}

type Registry struct {
	scenarios   map[string]Scenario
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		scenarios:   make(map[string]Scenario),
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.Register(Scenario{Name: "accretion", Description: "randomized disk around the anchor", Build: physics.Initialize})
	r.Register(Scenario{Name: "single", Description: "one undeviated orbiter at 0.3 of the world width", Build: buildSingle})
	r.Register(Scenario{Name: "collision", Description: "two coincident orbiters of mass 1 and 2", Build: buildCollision})
	r.Register(Scenario{Name: "binary", Description: "two equal orbiters on mirrored orbits", Build: buildBinary})

	r.integrators["leapfrog"] = func() dynamo.Integrator { return integrators.NewLeapfrog() }
	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }

	return r
}

func (r *Registry) Register(s Scenario) {
	r.scenarios[s.Name] = s
}

func (r *Registry) GetScenario(name string) (Scenario, error) {
	s, ok := r.scenarios[name]
	if !ok {
		return Scenario{}, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	return s, nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func (r *Registry) ListScenarios() []Scenario {
	out := make([]Scenario, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh metrics for one run. Containment is measured
// against the world extent.
func DefaultMetrics(g, extent float64) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergyDrift(g),
		metrics.NewMassDrift(),
		metrics.NewMomentumDrift(),
		metrics.NewSurvivors(),
		metrics.NewContainment(extent),
	}
}

func center(width, height float64) vecmath.Vec {
	return vecmath.Vec{X: width / 2, Y: height / 2}
}

func checkWorld(width, height float64, cfg physics.OrbitConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: world extent must be positive, got %gx%g", physics.ErrInvalidConfig, width, height)
	}
	return nil
}

func buildSingle(width, height float64, cfg physics.OrbitConfig, _ *rand.Rand) ([]physics.Body, error) {
	if err := checkWorld(width, height, cfg); err != nil {
		return nil, err
	}
	anchor := physics.NewAnchor(center(width, height), cfg)
	orbiter := physics.NewOrbiter(1, anchor, cfg, cfg.AverageDistance(width), 0, 0.3*width, 0)
	return []physics.Body{anchor, orbiter}, nil
}

func buildCollision(width, height float64, cfg physics.OrbitConfig, _ *rand.Rand) ([]physics.Body, error) {
	if err := checkWorld(width, height, cfg); err != nil {
		return nil, err
	}
	anchor := physics.NewAnchor(center(width, height), cfg)
	avg := cfg.AverageDistance(width)

	light := physics.NewOrbiter(1, anchor, cfg, avg, 0, 0.2*width, 0)
	light.Mass = 1
	heavy := physics.NewOrbiter(2, anchor, cfg, avg, 0, 0.2*width, 0)
	heavy.Mass = 2
	return []physics.Body{anchor, light, heavy}, nil
}

func buildBinary(width, height float64, cfg physics.OrbitConfig, _ *rand.Rand) ([]physics.Body, error) {
	if err := checkWorld(width, height, cfg); err != nil {
		return nil, err
	}
	anchor := physics.NewAnchor(center(width, height), cfg)
	avg := cfg.AverageDistance(width)
	return []physics.Body{
		anchor,
		physics.NewOrbiter(1, anchor, cfg, avg, 0, 0.25*width, 0),
		physics.NewOrbiter(2, anchor, cfg, avg, math.Pi, 0.25*width, 0),
	}, nil
}
