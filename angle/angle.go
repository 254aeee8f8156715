// package angle implements the rotation values used for turtle headings.
package angle

import "math"

const twoPi = 2 * math.Pi

// Angle is a rotation in radians, kept in the interval [-2π, 2π].
// Values with a magnitude larger than 2π are reduced modulo 2π;
// ±2π itself is left alone.
type Angle struct {
	v float64
}

// New returns the angle of v radians.
func New(v float64) Angle {
	if math.Abs(v) > twoPi {
		return Angle{math.Mod(v, twoPi)}
	}
	return Angle{v}
}

// Degrees returns the angle of d degrees.
func Degrees(d float64) Angle {
	return New(d * math.Pi / 180)
}

func Zero() Angle        { return New(0) }
func QuarterTurn() Angle { return New(math.Pi / 2) }
func HalfTurn() Angle    { return New(math.Pi) }
func Turn() Angle        { return New(twoPi) }

// Value returns the angle in radians.
func (a Angle) Value() float64 {
	return a.v
}

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 {
	return a.v * 180 / math.Pi
}

func (a Angle) Negate() Angle {
	return New(-a.v)
}

func (a Angle) Add(b Angle) Angle {
	return New(a.v + b.v)
}

func (a Angle) Subtract(b Angle) Angle {
	return New(a.v - b.v)
}

func (a Angle) Cos() float64 {
	return math.Cos(a.v)
}

func (a Angle) Sin() float64 {
	return math.Sin(a.v)
}

// CosR returns r·cos(a), the x offset of a distance r along a.
func (a Angle) CosR(r float64) float64 {
	return a.Cos() * r
}

// SinR returns r·sin(a), the y offset of a distance r along a.
func (a Angle) SinR(r float64) float64 {
	return a.Sin() * r
}
