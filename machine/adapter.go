package machine

import "io"

// An Adapter represents the minimal CNC controller interface needed to
// stream moves.
type Adapter interface {
	State() chan State
	CurrentState() State

	WriteByte(byte) error
	Write([]byte) (int, error)
	ReadFrom(io.Reader) (int64, error)
}
