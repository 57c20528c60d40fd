package sample

import (
	"math"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/motion"
)

// startAngle is the angle, in degrees, every rotational motion begins at.
const startAngle = 0.0

// Rotational samples the arc of r.Circle from angle 0 toward r.StopAngle.
//
// One step covers at most opt.AngleStep degrees. The angle advances by
// StopAngle/steps per step, negated for clockwise motion, so the
// direction flips the sweep regardless of the sign of StopAngle. Z is
// held at the center's Z.
func Rotational(r motion.Rotational, opt Options) (Sequence, error) {
	steps, stepAngle, err := arc(r, opt)
	if err != nil {
		return Sequence{}, err
	}
	c := r.Circle
	return Sequence{n: steps + 1, gen: func(yield func(coord.Point) bool) {
		angle := startAngle
		for i := 0; i <= steps; i++ {
			if !yield(c.At(angle)) {
				return
			}
			angle += stepAngle
		}
	}}, nil
}

// Angles returns the angle, in degrees, of every point Rotational
// produces for r.
func Angles(r motion.Rotational, opt Options) ([]float64, error) {
	steps, stepAngle, err := arc(r, opt)
	if err != nil {
		return nil, err
	}
	res := make([]float64, steps+1)
	angle := startAngle
	for i := range res {
		res[i] = angle
		angle += stepAngle
	}
	return res, nil
}

// arc validates r and returns its step count and signed per-step angle.
func arc(r motion.Rotational, opt Options) (steps int, stepAngle float64, err error) {
	opt = opt.withDefaults()

	if !finite(r.StopAngle) || !finite(r.Circle.Radius) || !r.Circle.Center.IsFinite() {
		return 0, 0, &NonFiniteError{Command: r}
	}
	if opt.Strict {
		if r.Circle.Radius <= 0 {
			return 0, 0, &DegenerateMotionError{Command: r, Reason: "non-positive radius"}
		}
		if r.StopAngle < 0 {
			return 0, 0, &SignConflictError{Command: r}
		}
	}

	sweep := r.StopAngle - startAngle
	steps, err = stepCount(r, math.Ceil(math.Abs(sweep)/opt.AngleStep), opt)
	if err != nil {
		return 0, 0, err
	}
	if steps == 0 {
		if opt.Strict {
			return 0, 0, &DegenerateMotionError{Command: r, Reason: "zero angle"}
		}
		return 0, 0, nil
	}

	return steps, sweep / float64(steps) * r.Direction.Sign(), nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
