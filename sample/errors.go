package sample

import (
	"fmt"

	"github.com/mastercactapus/toolpath/motion"
)

// DegenerateMotionError is returned in strict mode for motions that cover
// no distance (zero steps) or have a non-positive radius.
type DegenerateMotionError struct {
	Command motion.Command
	Reason  string
}

func (e *DegenerateMotionError) Error() string {
	return "degenerate motion (" + e.Reason + "): " + e.Command.String()
}

// SignConflictError is returned in strict mode when a rotational stop
// angle is negative while a direction is also given.
type SignConflictError struct {
	Command motion.Rotational
}

func (e *SignConflictError) Error() string {
	return fmt.Sprintf("stop angle %g conflicts with direction %s", e.Command.StopAngle, e.Command.Direction)
}

// NonFiniteError is returned when a motion's extent is NaN or infinite.
type NonFiniteError struct {
	Command motion.Command
}

func (e *NonFiniteError) Error() string {
	return "non-finite motion: " + e.Command.String()
}

// StepLimitError is returned when a motion would need more than
// Options.MaxSteps steps.
type StepLimitError struct {
	Command motion.Command
	Steps   float64
	Max     int
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("motion needs %.0f steps, limit is %d: %s", e.Steps, e.Max, e.Command.String())
}
