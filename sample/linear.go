package sample

import (
	"math"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/motion"
)

// hardStepLimit bounds the float to int conversion of a step count.
const hardStepLimit = 1 << 40

// Linear samples the segment from l.Start to l.End.
//
// The step count is the truncated segment length divided by the
// resolution. The sequence holds steps+1 points: the start, then each
// previous point advanced by one increment. A motion shorter than one
// step yields only the start point.
func Linear(l motion.Linear, opt Options) (Sequence, error) {
	opt = opt.withDefaults()

	delta := l.End.Sub(l.Start)
	dist := delta.Length()
	if !finite(dist) || !l.Start.IsFinite() {
		return Sequence{}, &NonFiniteError{Command: l}
	}

	steps, err := stepCount(l, math.Floor(dist/opt.Resolution), opt)
	if err != nil {
		return Sequence{}, err
	}
	if steps == 0 {
		if opt.Strict {
			return Sequence{}, &DegenerateMotionError{Command: l, Reason: "zero length"}
		}
		return Single(l.Start), nil
	}

	inc := delta.Div(float64(steps))
	start := l.Start
	return Sequence{n: steps + 1, gen: func(yield func(coord.Point) bool) {
		pos := start
		for i := 0; i <= steps; i++ {
			if !yield(pos) {
				return
			}
			pos = pos.Add(inc)
		}
	}}, nil
}

func stepCount(cmd motion.Command, steps float64, opt Options) (int, error) {
	limit := opt.MaxSteps
	if limit <= 0 {
		limit = hardStepLimit
	}
	if steps > float64(limit) {
		return 0, &StepLimitError{Command: cmd, Steps: steps, Max: limit}
	}
	return int(steps), nil
}
