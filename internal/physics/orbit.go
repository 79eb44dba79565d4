package physics

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/accretion/internal/vecmath"
)

// ErrInvalidConfig indicates orbit configuration outside its valid range.
var ErrInvalidConfig = errors.New("physics: invalid orbit configuration")

// OrbitConfig holds the constants of the anchored disk.
type OrbitConfig struct {
	G                 float64
	AnchorMass        float64
	OrbiterCount      int
	MinDistanceFrac   float64
	MaxDistanceFrac   float64
	VelocityDamping   float64
	MaxAngleDeviation float64 // radians
	OrbiterMassRatio  float64 // orbiter mass as a fraction of AnchorMass
	AnchorRadius      float64
	OrbiterRadius     float64
}

func DefaultOrbitConfig() OrbitConfig {
	return OrbitConfig{
		G:                 1,
		AnchorMass:        1_000_000,
		OrbiterCount:      70,
		MinDistanceFrac:   0.10,
		MaxDistanceFrac:   0.45,
		VelocityDamping:   0.04,
		MaxAngleDeviation: math.Pi / 4,
		OrbiterMassRatio:  3e-6,
		AnchorRadius:      50,
		OrbiterRadius:     7,
	}
}

func (c OrbitConfig) Validate() error {
	switch {
	case c.OrbiterCount < 0:
		return fmt.Errorf("%w: orbiter count must be non-negative, got %d", ErrInvalidConfig, c.OrbiterCount)
	case c.G <= 0:
		return fmt.Errorf("%w: gravitational constant must be positive, got %g", ErrInvalidConfig, c.G)
	case c.AnchorMass <= 0:
		return fmt.Errorf("%w: anchor mass must be positive, got %g", ErrInvalidConfig, c.AnchorMass)
	case c.OrbiterMassRatio <= 0:
		return fmt.Errorf("%w: orbiter mass ratio must be positive, got %g", ErrInvalidConfig, c.OrbiterMassRatio)
	case c.MinDistanceFrac <= 0 || c.MaxDistanceFrac < c.MinDistanceFrac:
		return fmt.Errorf("%w: distance fractions must satisfy 0 < min <= max, got [%g, %g]",
			ErrInvalidConfig, c.MinDistanceFrac, c.MaxDistanceFrac)
	case c.VelocityDamping < 0:
		return fmt.Errorf("%w: velocity damping must be non-negative, got %g", ErrInvalidConfig, c.VelocityDamping)
	case c.MaxAngleDeviation < 0 || c.MaxAngleDeviation > math.Pi:
		return fmt.Errorf("%w: angle deviation must lie in [0, pi], got %g", ErrInvalidConfig, c.MaxAngleDeviation)
	case c.AnchorRadius <= 0 || c.OrbiterRadius <= 0:
		return fmt.Errorf("%w: radii must be positive, got anchor %g orbiter %g",
			ErrInvalidConfig, c.AnchorRadius, c.OrbiterRadius)
	}
	return nil
}

// OrbiterMass is the mass assigned to every freshly created orbiter.
func (c OrbitConfig) OrbiterMass() float64 { return c.AnchorMass * c.OrbiterMassRatio }

// AverageDistance is the midpoint of the allowed orbit distance range for a
// world of the given extent.
func (c OrbitConfig) AverageDistance(extent float64) float64 {
	return (c.MinDistanceFrac*extent + c.MaxDistanceFrac*extent) / 2
}

// OrbitalSpeed is the damped circular-orbit speed at a distance expressed in
// units of the average distance.
func (c OrbitConfig) OrbitalSpeed(scaledDistance float64) float64 {
	if scaledDistance <= 0 {
		return 0
	}
	return math.Sqrt(c.G*c.AnchorMass/scaledDistance) * c.VelocityDamping
}

// OrbitalVelocity returns a velocity of the given magnitude perpendicular to
// the center->position vector.
func OrbitalVelocity(center, position vecmath.Vec, magnitude float64) vecmath.Vec {
	radial := vecmath.Sub(position, center)
	return vecmath.Scale(vecmath.Normalize(vecmath.Perpendicular(radial)), magnitude)
}

// NewAnchor creates the anchor body at center with id 0.
func NewAnchor(center vecmath.Vec, cfg OrbitConfig) Body {
	return Body{
		ID:       0,
		Category: Anchor,
		Mass:     cfg.AnchorMass,
		Radius:   cfg.AnchorRadius,
		Position: center,
	}
}

// NewOrbiter places an orbiter at distance from anchor along angle, moving
// on the damped orbital velocity rotated by deviation.
func NewOrbiter(id int, anchor Body, cfg OrbitConfig, avgDistance, angle, distance, deviation float64) Body {
	sin, cos := math.Sincos(angle)
	pos := vecmath.Add(anchor.Position, vecmath.Vec{X: distance * cos, Y: distance * sin})

	scaled := vecmath.Distance(pos, anchor.Position) / avgDistance
	vel := OrbitalVelocity(anchor.Position, pos, cfg.OrbitalSpeed(scaled))

	return Body{
		ID:       id,
		Category: Orbiter,
		Mass:     cfg.OrbiterMass(),
		Radius:   cfg.OrbiterRadius,
		Position: pos,
		Velocity: vecmath.Rotate(vel, deviation),
	}
}

// Initialize builds the anchor at the world centre followed by
// cfg.OrbiterCount orbiters with ids 1..N. Distance fractions are measured
// against the world width.
func Initialize(width, height float64, cfg OrbitConfig, rng *rand.Rand) ([]Body, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: world extent must be positive, got %gx%g", ErrInvalidConfig, width, height)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	bodies := make([]Body, 0, cfg.OrbiterCount+1)
	anchor := NewAnchor(vecmath.Vec{X: width / 2, Y: height / 2}, cfg)
	bodies = append(bodies, anchor)

	minDist := width * cfg.MinDistanceFrac
	maxDist := width * cfg.MaxDistanceFrac
	avg := cfg.AverageDistance(width)

	for id := 1; id <= cfg.OrbiterCount; id++ {
		angle := rng.Float64() * 2 * math.Pi
		distance := minDist + rng.Float64()*(maxDist-minDist)
		deviation := (rng.Float64() - 0.5) * 2 * cfg.MaxAngleDeviation

		bodies = append(bodies, NewOrbiter(id, anchor, cfg, avg, angle, distance, deviation))
	}

	return bodies, nil
}
