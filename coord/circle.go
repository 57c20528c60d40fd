package coord

import "math"

// Circle lies in a plane parallel to XY, at the height of its center.
type Circle struct {
	Center Point
	Radius float64
}

// Radians converts an angle in degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180 }

// At returns the point on the circle at angle deg (degrees), measured
// counterclockwise from the +X axis.
func (c Circle) At(deg float64) Point {
	rad := Radians(deg)
	return Point{
		X: c.Center.X + c.Radius*math.Cos(rad),
		Y: c.Center.Y + c.Radius*math.Sin(rad),
		Z: c.Center.Z,
	}
}
