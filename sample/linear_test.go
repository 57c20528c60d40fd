package sample

import (
	"math"
	"testing"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-6

func TestLinear_StepCount(t *testing.T) {
	seq, err := Linear(motion.Linear{End: coord.Point{X: 3, Y: 4}}, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 6, seq.Len())

	pts := seq.Points()
	require.Len(t, pts, 6)
	assert.Equal(t, coord.Point{}, pts[0])
	assert.True(t, pts[1].Near(coord.Point{X: 0.6, Y: 0.8}, tolerance))
	assert.True(t, pts[5].Near(coord.Point{X: 3, Y: 4}, tolerance))
}

func TestLinear_OnSegment(t *testing.T) {
	l := motion.Linear{
		Start: coord.Point{X: -1.5, Y: 2, Z: 7},
		End:   coord.Point{X: 10, Y: -3.25, Z: 0.5},
	}
	seq, err := Linear(l, DefaultOptions)
	require.NoError(t, err)

	dir := l.End.Sub(l.Start)
	assert.Equal(t, int(math.Floor(dir.Length()))+1, seq.Len())

	pts := seq.Points()
	assert.Equal(t, l.Start, pts[0])
	assert.True(t, pts[len(pts)-1].Near(l.End, tolerance))
	for _, p := range pts {
		assert.True(t, p.Sub(l.Start).Cross(dir).Near(coord.Point{}, tolerance), "%v off segment", p)
	}
}

func TestLinear_Degenerate(t *testing.T) {
	start := coord.Point{X: 1, Y: 2, Z: 3}

	seq, err := Linear(motion.Linear{Start: start, End: start}, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []coord.Point{start}, seq.Points())

	// shorter than one step
	seq, err = Linear(motion.Linear{Start: start, End: start.Add(coord.Point{X: 0.5})}, DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, []coord.Point{start}, seq.Points())

	_, err = Linear(motion.Linear{Start: start, End: start}, Options{Strict: true})
	var de *DegenerateMotionError
	assert.ErrorAs(t, err, &de)
}

func TestLinear_Resolution(t *testing.T) {
	seq, err := Linear(motion.Linear{End: coord.Point{Z: -2}}, Options{Resolution: 0.25})
	require.NoError(t, err)
	assert.Equal(t, 9, seq.Len())

	last, ok := seq.Last()
	assert.True(t, ok)
	assert.True(t, last.Near(coord.Point{Z: -2}, tolerance))
}

func TestLinear_Restartable(t *testing.T) {
	seq, err := Linear(motion.Linear{End: coord.Point{X: 4}}, DefaultOptions)
	require.NoError(t, err)

	assert.Equal(t, seq.Points(), seq.Points())

	var first []coord.Point
	for p := range seq.All() {
		first = append(first, p)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []coord.Point{{}, {X: 1}}, first)
	assert.Len(t, seq.Points(), 5)
}

func TestLinear_Errors(t *testing.T) {
	_, err := Linear(motion.Linear{End: coord.Point{X: math.Inf(1)}}, DefaultOptions)
	var nf *NonFiniteError
	assert.ErrorAs(t, err, &nf)

	_, err = Linear(motion.Linear{End: coord.Point{X: math.NaN()}}, DefaultOptions)
	assert.ErrorAs(t, err, &nf)

	_, err = Linear(motion.Linear{End: coord.Point{X: 1000}}, Options{MaxSteps: 100})
	var sl *StepLimitError
	require.ErrorAs(t, err, &sl)
	assert.Equal(t, 100, sl.Max)
	assert.Equal(t, 1000.0, sl.Steps)
}
