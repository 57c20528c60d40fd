package meshlevel

import (
	"encoding/json"
	"errors"
	"io"
	"math"

	"github.com/fogleman/delaunay"
	"github.com/mastercactapus/toolpath/coord"
)

// Mesh interpolates Z across a triangulated set of probe points.
type Mesh struct {
	minX, minY, maxX, maxY float64
	triangles              []coord.Triangle
}

func NewMesh(points []coord.Point) (*Mesh, error) {
	if len(points) < 3 {
		return nil, errors.New("need at least 3 points to create a mesh")
	}

	points2d := make([]delaunay.Point, len(points))
	m := make(map[delaunay.Point]coord.Point, len(points))

	mesh := &Mesh{
		minX: points[0].X,
		minY: points[0].Y,
		maxX: points[0].X,
		maxY: points[0].Y,
	}
	for i, p := range points {
		mesh.minX = math.Min(mesh.minX, p.X)
		mesh.minY = math.Min(mesh.minY, p.Y)
		mesh.maxX = math.Max(mesh.maxX, p.X)
		mesh.maxY = math.Max(mesh.maxY, p.Y)

		d := delaunay.Point{X: p.X, Y: p.Y}
		m[d] = p
		points2d[i] = d
	}
	mesh.minX -= coord.Epsilon
	mesh.minY -= coord.Epsilon
	mesh.maxX += coord.Epsilon
	mesh.maxY += coord.Epsilon

	tri, err := delaunay.Triangulate(points2d)
	if err != nil {
		return nil, err
	}

	mesh.triangles = make([]coord.Triangle, 0, len(tri.Triangles)/3)
	for i := 0; i+2 < len(tri.Triangles); i += 3 {
		mesh.triangles = append(mesh.triangles, coord.Triangle{
			A: m[tri.Points[tri.Triangles[i]]],
			B: m[tri.Points[tri.Triangles[i+1]]],
			C: m[tri.Points[tri.Triangles[i+2]]],
		})
	}

	return mesh, nil
}

func (m Mesh) OffsetZ(x, y float64) (bool, float64) {
	if x < m.minX || m.maxX < x || y < m.minY || m.maxY < y {
		return false, 0
	}
	for _, t := range m.triangles {
		if !t.ContainsXY(x, y) {
			continue
		}
		return true, t.Z(x, y)
	}

	return false, 0
}

// Probe is one entry of a probe grid file.
type Probe struct {
	coord.Point
	Valid bool
}

// LoadProbes decodes a JSON probe grid, keeping only valid probes.
func LoadProbes(r io.Reader) ([]coord.Point, error) {
	var probes []Probe
	err := json.NewDecoder(r).Decode(&probes)
	if err != nil {
		return nil, err
	}
	points := make([]coord.Point, 0, len(probes))
	for _, p := range probes {
		if !p.Valid {
			continue
		}
		points = append(points, p.Point)
	}
	return points, nil
}

// OffsetFrom rebases probe heights so a probe measured at ref yields a
// zero offset. points is not modified.
func OffsetFrom(ref float64, points []coord.Point) []coord.Point {
	res := make([]coord.Point, 0, len(points))
	for _, p := range points {
		p.Z -= ref
		res = append(res, p)
	}
	return res
}
