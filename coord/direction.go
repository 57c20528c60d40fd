package coord

import "fmt"

// Direction selects the sense of angular progression around a circle.
type Direction int

const (
	Counterclockwise Direction = iota
	Clockwise
)

// Sign is +1 for counterclockwise and -1 for clockwise.
func (d Direction) Sign() float64 {
	if d == Clockwise {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case Counterclockwise:
		return "counterclockwise"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection maps the literal direction names. The second return is
// false for anything else.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "clockwise":
		return Clockwise, true
	case "counterclockwise":
		return Counterclockwise, true
	}
	return 0, false
}
