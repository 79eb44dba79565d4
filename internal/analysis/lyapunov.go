package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

type DivergenceResult struct {
	Times       []float64
	Separations []float64
	// Exponent is the least-squares slope of ln(separation) against time.
	Exponent float64
}

// Divergence runs bodies twice, the second copy with body target displaced
// by perturbation along x, and records the position separation over the ids
// live in both runs.
func Divergence(
	bodies []physics.Body,
	g float64,
	integ dynamo.Integrator,
	target int,
	dt float64,
	ticks int,
	perturbation float64,
) *DivergenceResult {
	perturbed := make([]physics.Body, len(bodies))
	copy(perturbed, bodies)
	for i := range perturbed {
		if perturbed[i].ID == target {
			perturbed[i].Position.X += perturbation
		}
	}

	a := dynamo.NewEngine(bodies, g, integ)
	b := dynamo.NewEngine(perturbed, g, integ)

	res := &DivergenceResult{
		Times:       make([]float64, 0, ticks),
		Separations: make([]float64, 0, ticks),
	}
	logs := make([]float64, 0, ticks)
	times := make([]float64, 0, ticks)

	for i := 0; i < ticks; i++ {
		ra, rb := a.Step(dt), b.Step(dt)
		sep := separation(ra.Live, rb.Live)

		res.Times = append(res.Times, ra.Time)
		res.Separations = append(res.Separations, sep)
		if sep > 0 && !math.IsInf(sep, 0) && !math.IsNaN(sep) {
			logs = append(logs, math.Log(sep))
			times = append(times, ra.Time)
		}
	}

	if len(logs) >= 2 {
		_, res.Exponent = stat.LinearRegression(times, logs, nil, false)
	}
	return res
}

func separation(a, b []dynamo.BodyView) float64 {
	pos := make(map[int]vecmath.Vec, len(a))
	for _, v := range a {
		pos[v.ID] = v.Position
	}
	sum := 0.0
	for _, v := range b {
		if p, ok := pos[v.ID]; ok {
			sum += vecmath.LengthSquared(vecmath.Sub(v.Position, p))
		}
	}
	return math.Sqrt(sum)
}
