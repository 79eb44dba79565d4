package integrators

import (
	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

// Euler is the semi-implicit (symplectic) Euler scheme. It is kept as a
// baseline for the compare command.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(field dynamo.ForceField, bodies []physics.Body, dt float64) {
	field(bodies)
	for i := range bodies {
		b := &bodies[i]
		b.Velocity = vecmath.Add(b.Velocity, vecmath.Scale(b.Acceleration, dt))
		b.Position = vecmath.Add(b.Position, vecmath.Scale(b.Velocity, dt))
	}
}
