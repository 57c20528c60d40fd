package motion

import (
	"strconv"
	"strings"

	"github.com/mastercactapus/toolpath/coord"
)

// ParsePoint parses a point literal of the form "x, y, z".
func ParsePoint(s string) (p coord.Point, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return p, &FormatError{What: "point", Input: s, Want: 3, Got: len(parts)}
	}
	p.X, err = parseFloat(parts[0])
	if err != nil {
		return p, err
	}
	p.Y, err = parseFloat(parts[1])
	if err != nil {
		return p, err
	}
	p.Z, err = parseFloat(parts[2])
	if err != nil {
		return p, err
	}
	return p, nil
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &NumericParseError{Field: s, Err: err}
	}
	return v, nil
}
