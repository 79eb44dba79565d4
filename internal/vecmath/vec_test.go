package vecmath

import (
	"math"
	"testing"
)

func approx(a, b Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol
}

func TestArithmetic(t *testing.T) {
	a := Vec{X: 1, Y: 2}
	b := Vec{X: 4, Y: -6}

	if got := Add(a, b); got != (Vec{X: 5, Y: -4}) {
		t.Errorf("Add = %v", got)
	}
	if got := Sub(b, a); got != (Vec{X: 3, Y: -8}) {
		t.Errorf("Sub = %v", got)
	}
	if got := Scale(a, 3); got != (Vec{X: 3, Y: 6}) {
		t.Errorf("Scale = %v", got)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b Vec
		want float64
	}{
		{Vec{}, Vec{X: 3, Y: 4}, 5},
		{Vec{X: 1, Y: 1}, Vec{X: 1, Y: 1}, 0},
		{Vec{X: -2, Y: 0}, Vec{X: 2, Y: 0}, 4},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Distance(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLength(t *testing.T) {
	v := Vec{X: 3, Y: 4}
	if LengthSquared(v) != 25 {
		t.Errorf("LengthSquared = %v, want 25", LengthSquared(v))
	}
	if Length(v) != 5 {
		t.Errorf("Length = %v, want 5", Length(v))
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec
		want Vec
	}{
		{"axis", Vec{X: 10, Y: 0}, Vec{X: 1, Y: 0}},
		{"diagonal", Vec{X: 3, Y: 4}, Vec{X: 0.6, Y: 0.8}},
		{"zero", Vec{}, Vec{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if !approx(got, tt.want, 1e-12) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
			if !IsFinite(got) {
				t.Errorf("Normalize(%v) is not finite", tt.in)
			}
		})
	}
}

func TestPerpendicular(t *testing.T) {
	v := Vec{X: 2, Y: 5}
	p := Perpendicular(v)
	if p != (Vec{X: -5, Y: 2}) {
		t.Errorf("Perpendicular = %v", p)
	}
	if dot := v.X*p.X + v.Y*p.Y; dot != 0 {
		t.Errorf("perpendicular dot product = %v", dot)
	}
}

func TestRotate(t *testing.T) {
	got := Rotate(Vec{X: 1, Y: 0}, math.Pi/2)
	if !approx(got, Vec{X: 0, Y: 1}, 1e-12) {
		t.Errorf("Rotate 90 = %v", got)
	}

	v := Vec{X: 3, Y: -7}
	r := Rotate(v, 0.3)
	if math.Abs(Length(r)-Length(v)) > 1e-12 {
		t.Errorf("rotation changed length: %v -> %v", Length(v), Length(r))
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(Vec{X: 1, Y: -1}) {
		t.Error("finite vector reported as non-finite")
	}
	if IsFinite(Vec{X: math.NaN()}) {
		t.Error("NaN reported as finite")
	}
	if IsFinite(Vec{Y: math.Inf(-1)}) {
		t.Error("-Inf reported as finite")
	}
}
