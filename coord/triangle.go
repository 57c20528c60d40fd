package coord

import (
	"math"
)

const (
	// Epsilon is the max error when checking containment.
	Epsilon   = 0.001
	epsilonSq = Epsilon * Epsilon
)

// Triangle is used for surface interpolation; only its XY projection
// matters for containment.
type Triangle struct{ A, B, C Point }

// ContainsXY returns true if the 2D projection of the triangle
// has the point x,y (within Epsilon of an edge counts).
//
// adapted from https://totologic.blogspot.com/2014/01/accurate-point-in-triangle-test.html
func (t Triangle) ContainsXY(x, y float64) bool {
	if !t.boundsXY(x, y) {
		return false
	}
	if t.insideXY(x, y) {
		return true
	}

	for _, e := range [3][2]Point{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
		if segmentDistanceSq(e[0], e[1], x, y) <= epsilonSq {
			return true
		}
	}
	return false
}

// Z will give the Z-coordinate on the plane defined by the triangle
// where it intersects x,y.
func (t Triangle) Z(x, y float64) float64 {
	n := t.C.Sub(t.A).Cross(t.B.Sub(t.A))
	d := n.Dot(t.C)

	return (d - n.X*x - n.Y*y) / n.Z
}

func (t Triangle) boundsXY(x, y float64) bool {
	xMin := math.Min(t.A.X, math.Min(t.B.X, t.C.X)) - Epsilon
	xMax := math.Max(t.A.X, math.Max(t.B.X, t.C.X)) + Epsilon
	yMin := math.Min(t.A.Y, math.Min(t.B.Y, t.C.Y)) - Epsilon
	yMax := math.Max(t.A.Y, math.Max(t.B.Y, t.C.Y)) + Epsilon

	return xMin <= x && x <= xMax && yMin <= y && y <= yMax
}

// insideXY accepts either winding.
func (t Triangle) insideXY(x, y float64) bool {
	s1 := side(t.A, t.B, x, y)
	s2 := side(t.B, t.C, x, y)
	s3 := side(t.C, t.A, x, y)
	return (s1 >= 0 && s2 >= 0 && s3 >= 0) || (s1 <= 0 && s2 <= 0 && s3 <= 0)
}

func side(a, b Point, x, y float64) float64 {
	return (b.Y-a.Y)*(x-a.X) + (a.X-b.X)*(y-a.Y)
}

func segmentDistanceSq(a, b Point, x, y float64) float64 {
	lenSq := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	dot := ((x-a.X)*(b.X-a.X) + (y-a.Y)*(b.Y-a.Y)) / lenSq
	switch {
	case dot < 0:
		return (x-a.X)*(x-a.X) + (y-a.Y)*(y-a.Y)
	case dot <= 1:
		return (a.X-x)*(a.X-x) + (a.Y-y)*(a.Y-y) - dot*dot*lenSq
	}
	return (x-b.X)*(x-b.X) + (y-b.Y)*(y-b.Y)
}
