package dynamo

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

// Simulator drives an Engine for a fixed number of ticks, feeding metrics
// and observers and sampling frames.
type Simulator struct {
	engine    *Engine
	metrics   []Metric
	observers []Observer
}

func New(engine *Engine) *Simulator {
	return &Simulator{
		engine:    engine,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Engine() *Engine { return s.engine }

// Run advances the engine cfg.Ticks times. On cancellation the partial
// result is returned along with the error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	eng := s.engine
	capacity := 2
	if cfg.SampleEvery > 0 {
		capacity = cfg.Ticks/cfg.SampleEvery + 2
	}
	result := &Result{
		Frames:  make([]Frame, 0, capacity),
		Events:  make([]DestroyEvent, 0),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
		m.Observe(eng.live(), eng.Time())
	}

	result.InitialMass = physics.TotalMass(eng.live())
	initialEnergy := physics.TotalEnergy(eng.live(), eng.G())
	result.Frames = append(result.Frames, frameOf(eng.Tick(), eng.Time(), eng.live()))

	var runErr error
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			runErr = fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		default:
		}
		if runErr != nil {
			break
		}

		res := eng.Step(cfg.Dt)
		result.StepsTaken++

		for _, m := range res.Merges {
			result.Events = append(result.Events, DestroyEvent{
				Tick:       res.Tick,
				Time:       res.Time,
				ID:         m.Absorbed,
				SurvivorID: m.Survivor,
			})
		}

		for _, m := range s.metrics {
			m.Observe(eng.live(), res.Time)
		}
		for _, obs := range s.observers {
			obs.OnStep(res)
		}

		if cfg.ValidateState {
			if id, ok := firstInvalid(eng.live()); ok {
				runErr = &SimulationError{Tick: res.Tick, Time: res.Time, BodyID: id, Wrapped: ErrInvalidState}
				break
			}
		}

		last := i == cfg.Ticks-1
		if last || (cfg.SampleEvery > 0 && res.Tick%cfg.SampleEvery == 0) {
			result.Frames = append(result.Frames, frameOf(res.Tick, res.Time, eng.live()))
		}
	}

	result.FinalMass = physics.TotalMass(eng.live())
	result.Survivors = eng.Len()

	finalEnergy := physics.TotalEnergy(eng.live(), eng.G())
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

// RunWithCallback steps until cfg.Ticks is reached or callback returns
// false. It records nothing.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(StepResult) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrContextCanceled, ctx.Err())
		default:
		}

		res := s.engine.Step(cfg.Dt)
		for _, obs := range s.observers {
			obs.OnStep(res)
		}
		if !callback(res) {
			return nil
		}

		if cfg.ValidateState {
			if id, ok := firstInvalid(s.engine.live()); ok {
				return &SimulationError{Tick: res.Tick, Time: res.Time, BodyID: id, Wrapped: ErrInvalidState}
			}
		}
	}

	return nil
}

func firstInvalid(bodies []physics.Body) (int, bool) {
	for _, b := range bodies {
		if !vecmath.IsFinite(b.Position) || !vecmath.IsFinite(b.Velocity) {
			return b.ID, true
		}
	}
	return 0, false
}
