package physics

import (
	"math"

	"github.com/san-kum/accretion/internal/vecmath"
)

// Acceleration returns the acceleration felt by source due to target's
// gravity, pointing from source toward target. Coincident positions yield
// the zero vector.
func Acceleration(source, target Body, g float64) vecmath.Vec {
	direction := vecmath.Sub(target.Position, source.Position)
	distSq := vecmath.LengthSquared(direction)
	if distSq == 0 {
		return vecmath.Zero
	}
	return vecmath.Scale(vecmath.Normalize(direction), g*target.Mass/distSq)
}

// Accelerate resets every body's acceleration and accumulates the pairwise
// contributions. Both directions of a pair are computed explicitly.
func Accelerate(bodies []Body, g float64) {
	for i := range bodies {
		bodies[i].Acceleration = vecmath.Zero
	}

	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			aij := Acceleration(bodies[i], bodies[j], g)
			aji := Acceleration(bodies[j], bodies[i], g)
			bodies[i].Acceleration = vecmath.Add(bodies[i].Acceleration, aij)
			bodies[j].Acceleration = vecmath.Add(bodies[j].Acceleration, aji)
		}
	}
}

func TotalMass(bodies []Body) float64 {
	m := 0.0
	for _, b := range bodies {
		m += b.Mass
	}
	return m
}

func KineticEnergy(bodies []Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * vecmath.LengthSquared(b.Velocity)
	}
	return ke
}

// PotentialEnergy sums -G*mi*mj/r over unordered pairs. Coincident pairs are
// skipped, matching the force law.
func PotentialEnergy(bodies []Body, g float64) float64 {
	pe := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			r := vecmath.Distance(bodies[i].Position, bodies[j].Position)
			if r == 0 {
				continue
			}
			pe -= g * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

func TotalEnergy(bodies []Body, g float64) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies, g)
}

func Momentum(bodies []Body) vecmath.Vec {
	var p vecmath.Vec
	for _, b := range bodies {
		p = vecmath.Add(p, vecmath.Scale(b.Velocity, b.Mass))
	}
	return p
}

// AngularMomentum returns the z component of the total angular momentum
// about origin.
func AngularMomentum(bodies []Body, origin vecmath.Vec) float64 {
	l := 0.0
	for _, b := range bodies {
		r := vecmath.Sub(b.Position, origin)
		l += b.Mass * (r.X*b.Velocity.Y - r.Y*b.Velocity.X)
	}
	return l
}

func CenterOfMass(bodies []Body) vecmath.Vec {
	total := TotalMass(bodies)
	if total == 0 {
		return vecmath.Zero
	}
	var c vecmath.Vec
	for _, b := range bodies {
		c = vecmath.Add(c, vecmath.Scale(b.Position, b.Mass))
	}
	return vecmath.Scale(c, 1/total)
}

// FindAnchor returns the index of the anchor body, or -1.
func FindAnchor(bodies []Body) int {
	for i, b := range bodies {
		if b.Category == Anchor {
			return i
		}
	}
	return -1
}

// MaxDistance returns the largest distance of any body from p.
func MaxDistance(bodies []Body, p vecmath.Vec) float64 {
	d := 0.0
	for _, b := range bodies {
		d = math.Max(d, vecmath.Distance(b.Position, p))
	}
	return d
}
