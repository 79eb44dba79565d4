package integrators

import (
	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

// Leapfrog is kick-drift-kick velocity Verlet. The opening half kick uses
// the acceleration left on each body by the previous step.
type Leapfrog struct{}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(field dynamo.ForceField, bodies []physics.Body, dt float64) {
	halfDt := dt / 2

	kick(bodies, halfDt)

	for i := range bodies {
		b := &bodies[i]
		b.Position = vecmath.Add(b.Position, vecmath.Scale(b.Velocity, dt))
	}

	field(bodies)

	kick(bodies, halfDt)
}

func kick(bodies []physics.Body, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		b.Velocity = vecmath.Add(b.Velocity, vecmath.Scale(b.Acceleration, dt))
	}
}
