package physics

import (
	"fmt"

	"github.com/san-kum/accretion/internal/vecmath"
)

// Category distinguishes the anchor from the bodies orbiting it.
type Category int

const (
	Orbiter Category = iota
	Anchor
)

func (c Category) String() string {
	switch c {
	case Anchor:
		return "anchor"
	case Orbiter:
		return "orbiter"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "anchor":
		return Anchor, nil
	case "orbiter":
		return Orbiter, nil
	}
	return Orbiter, fmt.Errorf("unknown body category: %q", s)
}

// Body is one simulated point mass.
//
// Radius is fixed per category and only decides merge contact; it does not
// grow with mass.
type Body struct {
	ID           int
	Category     Category
	Mass         float64
	Radius       float64
	Position     vecmath.Vec
	Velocity     vecmath.Vec
	Acceleration vecmath.Vec
}

// ContactDistance is the centre distance at or below which another body is
// absorbed in a merge test where b is the first of the pair.
func (b Body) ContactDistance() float64 { return b.Radius / 2 }

// Absorb adds other's mass to b. Position and velocity of b are unchanged.
func (b *Body) Absorb(other Body) {
	b.Mass += other.Mass
}

func (b Body) String() string {
	return fmt.Sprintf("%s#%d m=%.4g p=(%.2f, %.2f) v=(%.2f, %.2f)",
		b.Category, b.ID, b.Mass, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y)
}
