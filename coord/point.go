package coord

import (
	"math"
	"strconv"
)

// Point is a position in 3D space.
type Point struct{ X, Y, Z float64 }

func (p Point) Equal(b Point) bool {
	return p.X == b.X && p.Y == b.Y && p.Z == b.Z
}

// Near returns true if every axis of p is within eps of b.
func (p Point) Near(b Point, eps float64) bool {
	return math.Abs(p.X-b.X) <= eps && math.Abs(p.Y-b.Y) <= eps && math.Abs(p.Z-b.Z) <= eps
}

func (p Point) IsFinite() bool {
	for _, v := range [3]float64{p.X, p.Y, p.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Point) Cross(op Point) Point {
	return Point{
		p.Y*op.Z - p.Z*op.Y,
		p.Z*op.X - p.X*op.Z,
		p.X*op.Y - p.Y*op.X,
	}
}
func (p Point) Dot(op Point) float64 {
	return p.X*op.X + p.Y*op.Y + p.Z*op.Z
}
func (p Point) Mul(val float64) Point {
	p.X *= val
	p.Y *= val
	p.Z *= val
	return p
}

func (p Point) Div(val float64) Point {
	p.X /= val
	p.Y /= val
	p.Z /= val
	return p
}

// Add will add the target values to p.
func (p Point) Add(target Point) Point {
	p.X += target.X
	p.Y += target.Y
	p.Z += target.Z
	return p
}

// Sub will subtract the target values from p.
func (p Point) Sub(target Point) Point {
	p.X -= target.X
	p.Y -= target.Y
	p.Z -= target.Z
	return p
}

// Length is the euclidean length of p as a vector from the origin.
func (p Point) Length() float64 {
	return math.Sqrt(p.Dot(p))
}

// Distance returns the 3D distance between p and the target.
func (p Point) Distance(target Point) float64 {
	return target.Sub(p).Length()
}

// Format renders p as comma-separated axis values with prec decimals.
func (p Point) Format(prec int) string {
	return strconv.FormatFloat(p.X, 'f', prec, 64) + ", " +
		strconv.FormatFloat(p.Y, 'f', prec, 64) + ", " +
		strconv.FormatFloat(p.Z, 'f', prec, 64)
}

// String uses two decimals, e.g. "1.00, 2.50, -3.00".
func (p Point) String() string { return p.Format(2) }
