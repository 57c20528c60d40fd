package motion

import (
	"strconv"
	"strings"

	"github.com/mastercactapus/toolpath/coord"
)

const (
	KeywordLinear     = "linear"
	KeywordRotational = "rotational"
)

// Command is a parsed motion descriptor, either Linear or Rotational.
type Command interface {
	Keyword() string
	String() string
}

// Linear is straight-line travel from Start to End.
type Linear struct {
	Start, End coord.Point
}

// Rotational is travel around Circle from angle 0 to StopAngle degrees.
// Direction only selects the sign of the angular progression.
type Rotational struct {
	Circle    coord.Circle
	StopAngle float64
	Direction coord.Direction
}

func (Linear) Keyword() string     { return KeywordLinear }
func (Rotational) Keyword() string { return KeywordRotational }

func (l Linear) String() string {
	return KeywordLinear + " " + pointLiteral(l.Start) + " " + pointLiteral(l.End)
}
func (r Rotational) String() string {
	return KeywordRotational + " " + pointLiteral(r.Circle.Center) + " " +
		formatFloat(r.Circle.Radius) + " " + r.Direction.String() + " " + formatFloat(r.StopAngle)
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func pointLiteral(p coord.Point) string {
	return formatFloat(p.X) + "," + formatFloat(p.Y) + "," + formatFloat(p.Z)
}

// ParseLinear parses "linear <x,y,z> <x,y,z>".
func ParseLinear(line string) (l Linear, err error) {
	parts := strings.Fields(line)
	if len(parts) != 3 {
		return l, &FormatError{What: "linear motion", Input: line, Want: 3, Got: len(parts)}
	}
	l.Start, err = ParsePoint(parts[1])
	if err != nil {
		return l, err
	}
	l.End, err = ParsePoint(parts[2])
	if err != nil {
		return l, err
	}
	return l, nil
}

// ParseRotational parses
// "rotational <cx,cy,cz> <radius> <clockwise|counterclockwise> <stopAngle>".
func ParseRotational(line string) (r Rotational, err error) {
	parts := strings.Fields(line)
	if len(parts) != 5 {
		return r, &FormatError{What: "rotational motion", Input: line, Want: 5, Got: len(parts)}
	}
	r.Circle.Center, err = ParsePoint(parts[1])
	if err != nil {
		return r, err
	}
	r.Circle.Radius, err = parseFloat(parts[2])
	if err != nil {
		return r, err
	}
	dir, ok := coord.ParseDirection(parts[3])
	if !ok {
		return r, &InvalidDirectionError{Token: parts[3]}
	}
	r.Direction = dir
	r.StopAngle, err = parseFloat(parts[4])
	if err != nil {
		return r, err
	}
	return r, nil
}

// ParseCommand dispatches on the keyword prefix of line. If the line is
// not a motion command, ok is false and err is nil.
func ParseCommand(line string) (cmd Command, ok bool, err error) {
	switch {
	case strings.HasPrefix(line, KeywordLinear):
		cmd, err = ParseLinear(line)
	case strings.HasPrefix(line, KeywordRotational):
		cmd, err = ParseRotational(line)
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, true, err
	}
	return cmd, true, nil
}
