package physics

import (
	"math"
	"testing"

	"github.com/san-kum/accretion/internal/vecmath"
)

func TestAccelerationCoincident(t *testing.T) {
	a := Body{Mass: 5, Position: vecmath.Vec{X: 3, Y: 3}}
	b := Body{Mass: 9, Position: vecmath.Vec{X: 3, Y: 3}}

	if got := Acceleration(a, b, 1); got != vecmath.Zero {
		t.Errorf("expected zero acceleration, got %v", got)
	}
	if got := Acceleration(a, a, 1); got != vecmath.Zero {
		t.Errorf("expected zero self acceleration, got %v", got)
	}
}

func TestAccelerationMagnitude(t *testing.T) {
	tests := []struct {
		name   string
		g      float64
		mass   float64
		target vecmath.Vec
		want   vecmath.Vec
	}{
		{"unit along x", 1, 4, vecmath.Vec{X: 2}, vecmath.Vec{X: 1}},
		{"negative y", 2, 9, vecmath.Vec{Y: -3}, vecmath.Vec{Y: -2}},
		{"diagonal", 1, 25, vecmath.Vec{X: 3, Y: 4}, vecmath.Vec{X: 0.6, Y: 0.8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := Body{Mass: 1}
			dst := Body{Mass: tt.mass, Position: tt.target}
			got := Acceleration(src, dst, tt.g)
			if math.Abs(got.X-tt.want.X) > 1e-12 || math.Abs(got.Y-tt.want.Y) > 1e-12 {
				t.Errorf("Acceleration = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccelerateAsymmetricMasses(t *testing.T) {
	bodies := []Body{
		{ID: 0, Mass: 1000, Acceleration: vecmath.Vec{X: 99, Y: 99}},
		{ID: 1, Mass: 1, Position: vecmath.Vec{X: 10}},
	}
	Accelerate(bodies, 1)

	// heavy body feels the light one: 1/100 toward +x
	if math.Abs(bodies[0].Acceleration.X-0.01) > 1e-12 || bodies[0].Acceleration.Y != 0 {
		t.Errorf("anchor acceleration = %v", bodies[0].Acceleration)
	}
	if math.Abs(bodies[1].Acceleration.X+10) > 1e-12 || bodies[1].Acceleration.Y != 0 {
		t.Errorf("orbiter acceleration = %v", bodies[1].Acceleration)
	}

	// force (mass * acceleration) is still equal and opposite
	f0 := bodies[0].Mass * bodies[0].Acceleration.X
	f1 := bodies[1].Mass * bodies[1].Acceleration.X
	if math.Abs(f0+f1) > 1e-9 {
		t.Errorf("forces not opposite: %v vs %v", f0, f1)
	}
}

func TestDiagnostics(t *testing.T) {
	bodies := []Body{
		{Mass: 2, Position: vecmath.Vec{X: 0}, Velocity: vecmath.Vec{Y: 1}},
		{Mass: 2, Position: vecmath.Vec{X: 4}, Velocity: vecmath.Vec{Y: -1}},
	}

	if TotalMass(bodies) != 4 {
		t.Errorf("TotalMass = %v", TotalMass(bodies))
	}
	if KineticEnergy(bodies) != 2 {
		t.Errorf("KineticEnergy = %v", KineticEnergy(bodies))
	}
	if pe := PotentialEnergy(bodies, 1); pe != -1 {
		t.Errorf("PotentialEnergy = %v", pe)
	}
	if p := Momentum(bodies); p != vecmath.Zero {
		t.Errorf("Momentum = %v", p)
	}
	if c := CenterOfMass(bodies); c != (vecmath.Vec{X: 2}) {
		t.Errorf("CenterOfMass = %v", c)
	}
	if l := AngularMomentum(bodies, vecmath.Vec{X: 2}); l != -8 {
		t.Errorf("AngularMomentum = %v", l)
	}
}

func TestPotentialEnergySkipsCoincident(t *testing.T) {
	bodies := []Body{{Mass: 1}, {Mass: 2}}
	if pe := PotentialEnergy(bodies, 1); pe != 0 {
		t.Errorf("expected 0 for coincident pair, got %v", pe)
	}
}

func TestFindAnchor(t *testing.T) {
	bodies := []Body{{ID: 3}, {ID: 0, Category: Anchor}}
	if FindAnchor(bodies) != 1 {
		t.Errorf("FindAnchor = %d", FindAnchor(bodies))
	}
	if FindAnchor(bodies[:1]) != -1 {
		t.Error("expected -1 without anchor")
	}
}

func TestCategoryString(t *testing.T) {
	for _, c := range []Category{Anchor, Orbiter} {
		parsed, err := ParseCategory(c.String())
		if err != nil || parsed != c {
			t.Errorf("ParseCategory(%q) = %v, %v", c.String(), parsed, err)
		}
	}
	if _, err := ParseCategory("comet"); err == nil {
		t.Error("expected error for unknown category")
	}
}
