package dynamo

import (
	"fmt"

	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

// DefaultDt is the simulation-time step of one tick. It is unrelated to the
// wall-clock cadence at which a host invokes Step.
const DefaultDt = 0.01

// ForceField recomputes the acceleration of every body in place.
type ForceField func(bodies []physics.Body)

// Integrator advances positions and velocities by dt. It must call field
// to refresh accelerations after moving the bodies.
type Integrator interface {
	Step(field ForceField, bodies []physics.Body, dt float64)
}

// Metric accumulates a scalar over a run. Observe must not modify bodies.
type Metric interface {
	Name() string
	Observe(bodies []physics.Body, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every tick.
type Observer interface {
	OnStep(res StepResult)
}

// BodyView is the read-only data a renderer needs for one live body.
type BodyView struct {
	ID       int
	Category physics.Category
	Position vecmath.Vec
	Radius   float64
	Mass     float64
}

// Merge records one absorption during a tick.
type Merge struct {
	Survivor int
	Absorbed int
	Mass     float64 // survivor mass after absorption
}

// StepResult reports the outcome of one tick.
type StepResult struct {
	Tick      int
	Time      float64
	Live      []BodyView
	Destroyed []int
	Merges    []Merge
}

type Config struct {
	Dt            float64
	Ticks         int
	SampleEvery   int // 0 records only the first and final frames
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            DefaultDt,
		Ticks:         1000,
		SampleEvery:   10,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrParameterBounds, c.Dt)
	}
	if c.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrParameterBounds, c.Ticks)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("%w: sample interval must be non-negative, got %d", ErrParameterBounds, c.SampleEvery)
	}
	return nil
}

// BodyState is a flat copy of one body inside a recorded frame.
type BodyState struct {
	ID       int
	Category physics.Category
	X, Y     float64
	VX, VY   float64
	Mass     float64
}

// Frame is a sampled snapshot of every live body.
type Frame struct {
	Tick   int
	Time   float64
	Bodies []BodyState
}

// DestroyEvent records the removal of one body.
type DestroyEvent struct {
	Tick       int
	Time       float64
	ID         int
	SurvivorID int
}

type Result struct {
	Frames      []Frame
	Events      []DestroyEvent
	Metrics     map[string]float64
	StepsTaken  int
	InitialMass float64
	FinalMass   float64
	Survivors   int
	EnergyDrift float64
}

func frameOf(tick int, t float64, bodies []physics.Body) Frame {
	f := Frame{Tick: tick, Time: t, Bodies: make([]BodyState, len(bodies))}
	for i, b := range bodies {
		f.Bodies[i] = BodyState{
			ID:       b.ID,
			Category: b.Category,
			X:        b.Position.X,
			Y:        b.Position.Y,
			VX:       b.Velocity.X,
			VY:       b.Velocity.Y,
			Mass:     b.Mass,
		}
	}
	return f
}
