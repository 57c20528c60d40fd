package sample

// Options control sampling resolution and validation.
type Options struct {
	// Resolution is the distance covered by one linear step.
	Resolution float64

	// AngleStep is the largest angle, in degrees, covered by one
	// rotational step.
	AngleStep float64

	// Strict rejects motions the literal algorithm would accept:
	// degenerate motions, non-positive radii and negative stop angles.
	Strict bool

	// MaxSteps limits the number of steps of a single motion.
	// Zero means unlimited.
	MaxSteps int
}

// DefaultOptions samples once per unit of length and every 5 degrees.
var DefaultOptions = Options{
	Resolution: 1,
	AngleStep:  5,
}

func (o Options) withDefaults() Options {
	if o.Resolution <= 0 {
		o.Resolution = DefaultOptions.Resolution
	}
	if o.AngleStep <= 0 {
		o.AngleStep = DefaultOptions.AngleStep
	}
	return o
}
