package gcode

import (
	"strconv"
	"strings"
)

// Word is a single letter address with its numeric argument, e.g. X1.5.
type Word struct {
	W   byte
	Arg float64
}

// Precision is the number of decimals used when rendering word arguments.
const Precision = 3

// Tolerance is the largest error rounding to Precision can introduce.
const Tolerance = 0.001

func (w Word) IsAxis() bool {
	switch w.W {
	case 'X', 'Y', 'Z':
		return true
	}
	return false
}

func (w Word) IsValid() bool {
	return w.W >= 'A' && w.W <= 'Z'
}

func formatFloat(f float64, prec int) string {
	s := strconv.FormatFloat(f, 'f', prec, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	s = strings.TrimRight(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func (w Word) String() string {
	return string(w.W) + formatFloat(w.Arg, Precision)
}
