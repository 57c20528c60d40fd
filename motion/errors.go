package motion

import (
	"fmt"
	"strconv"
)

// FormatError is returned when a command or point literal has the wrong
// number of tokens or fields.
type FormatError struct {
	What  string // "point", "linear motion", ...
	Input string
	Want  int
	Got   int
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s format: expected %d fields, got %d: %q", e.What, e.Want, e.Got, e.Input)
}

// NumericParseError is returned when a field is not a real number literal.
type NumericParseError struct {
	Field string
	Err   error
}

func (e *NumericParseError) Error() string {
	return "invalid number " + strconv.Quote(e.Field) + ": " + e.Err.Error()
}
func (e *NumericParseError) Unwrap() error { return e.Err }

// InvalidDirectionError is returned for a rotation direction other than
// "clockwise" or "counterclockwise".
type InvalidDirectionError struct {
	Token string
}

func (e *InvalidDirectionError) Error() string {
	return "invalid direction: " + strconv.Quote(e.Token)
}

// LineError attaches the input line to a parse failure.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}
func (e *LineError) Unwrap() error { return e.Err }
