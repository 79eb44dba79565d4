// Package vecmath provides the 2D vector arithmetic used by the physics
// engine. Vectors are gonum [r2.Vec] values; every function is pure.
package vecmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector or point in world coordinates.
type Vec = r2.Vec

// Zero is the zero vector.
var Zero = Vec{}

func Add(a, b Vec) Vec { return r2.Add(a, b) }

func Sub(a, b Vec) Vec { return r2.Sub(a, b) }

func Scale(v Vec, f float64) Vec { return r2.Scale(f, v) }

func Length(v Vec) float64 { return r2.Norm(v) }

func LengthSquared(v Vec) float64 { return r2.Norm2(v) }

// Distance returns the Euclidean distance between two points.
func Distance(a, b Vec) float64 { return r2.Norm(r2.Sub(b, a)) }

// Normalize returns the unit vector colinear to v. The zero vector maps to
// the zero vector.
func Normalize(v Vec) Vec {
	if r2.Norm2(v) == 0 {
		return Zero
	}
	return r2.Unit(v)
}

// Perpendicular rotates v by +90 degrees: (x, y) -> (-y, x).
func Perpendicular(v Vec) Vec { return Vec{X: -v.Y, Y: v.X} }

// Rotate rotates v counter-clockwise by angle radians about the origin.
func Rotate(v Vec, angle float64) Vec {
	sin, cos := math.Sincos(angle)
	return Vec{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// IsFinite reports whether both components are neither NaN nor Inf.
func IsFinite(v Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
