package meshlevel

import (
	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/sample"
)

// ZOffsetter reports the Z correction at x,y. ok is false outside the
// measured area.
type ZOffsetter interface {
	OffsetZ(x, y float64) (ok bool, offset float64)
}

type flat struct{}

func (flat) OffsetZ(x, y float64) (bool, float64) { return false, 0 }

// Leveler shifts sampled points to follow a measured surface.
type Leveler struct {
	offsetter ZOffsetter
}

type Config struct {
	ZOffsetter ZOffsetter
}

func New(cfg Config) *Leveler {
	l := &Leveler{offsetter: cfg.ZOffsetter}
	if l.offsetter == nil {
		l.offsetter = flat{}
	}
	return l
}

// Point returns p with the surface offset at its X,Y added to Z. Points
// outside the surface are left as-is.
func (l *Leveler) Point(p coord.Point) coord.Point {
	ok, offset := l.offsetter.OffsetZ(p.X, p.Y)
	if !ok {
		return p
	}
	p.Z += offset
	return p
}

// Level returns a lazy sequence of leveled points.
func (l *Leveler) Level(seq sample.Sequence) sample.Sequence {
	return seq.Map(l.Point)
}
