package dynamo

import (
	"github.com/san-kum/accretion/internal/physics"
)

// Engine owns the live body set of one simulation run.
type Engine struct {
	g          float64
	integrator Integrator
	bodies     []physics.Body
	alive      []bool
	tick       int
	t          float64
}

// NewEngine copies bodies into a new engine. Accelerations present on the
// input are used by the first half kick; freshly initialized bodies carry
// zero acceleration.
func NewEngine(bodies []physics.Body, g float64, integrator Integrator) *Engine {
	own := make([]physics.Body, len(bodies))
	copy(own, bodies)
	return &Engine{
		g:          g,
		integrator: integrator,
		bodies:     own,
		alive:      make([]bool, len(bodies)),
	}
}

// Step advances the simulation by one tick of length dt: merge detection
// and mass transfer, then integration over the survivors.
func (e *Engine) Step(dt float64) StepResult {
	var merges []Merge
	e.bodies, merges = mergeBodies(e.bodies, e.alive)

	e.integrator.Step(e.accelerate, e.bodies, dt)

	e.tick++
	e.t += dt

	res := StepResult{
		Tick:   e.tick,
		Time:   e.t,
		Live:   e.views(),
		Merges: merges,
	}
	if len(merges) > 0 {
		res.Destroyed = make([]int, len(merges))
		for i, m := range merges {
			res.Destroyed[i] = m.Absorbed
		}
	}
	return res
}

func (e *Engine) accelerate(bodies []physics.Body) {
	physics.Accelerate(bodies, e.g)
}

func (e *Engine) views() []BodyView {
	v := make([]BodyView, len(e.bodies))
	for i, b := range e.bodies {
		v[i] = BodyView{
			ID:       b.ID,
			Category: b.Category,
			Position: b.Position,
			Radius:   b.Radius,
			Mass:     b.Mass,
		}
	}
	return v
}

// Bodies returns a copy of the live bodies.
func (e *Engine) Bodies() []physics.Body {
	out := make([]physics.Body, len(e.bodies))
	copy(out, e.bodies)
	return out
}

// Anchor returns the anchor body. ok is false only if no anchor is live.
func (e *Engine) Anchor() (physics.Body, bool) {
	idx := physics.FindAnchor(e.bodies)
	if idx < 0 {
		return physics.Body{}, false
	}
	return e.bodies[idx], true
}

// Views returns the renderer view of the live bodies.
func (e *Engine) Views() []BodyView { return e.views() }

func (e *Engine) Len() int      { return len(e.bodies) }
func (e *Engine) Tick() int     { return e.tick }
func (e *Engine) Time() float64 { return e.t }
func (e *Engine) G() float64    { return e.g }

func (e *Engine) Integrator() Integrator { return e.integrator }

// live exposes the internal slice to the run driver's metrics without a copy.
func (e *Engine) live() []physics.Body { return e.bodies }
