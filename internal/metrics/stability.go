package metrics

import (
	"github.com/san-kum/accretion/internal/physics"
	"github.com/san-kum/accretion/internal/vecmath"
)

// Containment is the fraction of observations in which every body lies
// within radius of the anchor. Without a live anchor the observation counts
// as a violation.
type Containment struct {
	name       string
	radius     float64
	violations int
	samples    int
}

func NewContainment(radius float64) *Containment {
	return &Containment{
		name:   "containment",
		radius: radius,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(bodies []physics.Body, t float64) {
	c.samples++

	idx := physics.FindAnchor(bodies)
	if idx < 0 {
		c.violations++
		return
	}
	center := bodies[idx].Position
	for _, b := range bodies {
		if vecmath.Distance(b.Position, center) > c.radius {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Survivors reports the live body count at the last observation.
type Survivors struct {
	name  string
	count int
}

func NewSurvivors() *Survivors {
	return &Survivors{name: "survivors"}
}

func (s *Survivors) Name() string { return s.name }

func (s *Survivors) Observe(bodies []physics.Body, t float64) {
	s.count = len(bodies)
}

func (s *Survivors) Value() float64 { return float64(s.count) }

func (s *Survivors) Reset() { s.count = 0 }
