package machine

import (
	"errors"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/gcode"
	"github.com/mastercactapus/toolpath/vm"
)

// ErrNotIdle is returned when streaming is started on a busy controller.
var ErrNotIdle = errors.New("machine not idle")

// DefaultFeedRate is used when Machine.FeedRate is not set, in mm/min.
const DefaultFeedRate = 500

// Machine streams sampled moves to a controller.
type Machine struct {
	Adapter

	// FeedRate for streamed G1 moves, in mm/min.
	FeedRate float64

	feedSet bool
}
type State struct {
	Status string
	MPos   coord.Point
	WCO    coord.Point
}

var _ vm.Sink = &Machine{}

func NewMachine(a Adapter) *Machine {
	return &Machine{Adapter: a}
}

func (m *Machine) feedRate() float64 {
	if m.FeedRate <= 0 {
		return DefaultFeedRate
	}
	return m.FeedRate
}

// preamble selects absolute millimeter coordinates and sets the feed
// rate, since grbl rejects a G1 without one.
func (m *Machine) preamble() []gcode.Block {
	return []gcode.Block{
		{{W: 'G', Arg: 90}, {W: 'G', Arg: 21}, {W: 'F', Arg: m.feedRate()}},
	}
}

func (m *Machine) runBlocks(b []gcode.Block) error {
	_, err := m.Adapter.ReadFrom(gcode.NewBuffer(&gcode.BlocksReader{Blocks: b}))
	return err
}

// Prepare checks the controller is idle and sets absolute millimeter mode.
func (m *Machine) Prepare() error {
	stat := m.CurrentState()
	if stat.Status != "Idle" {
		return ErrNotIdle
	}
	err := m.runBlocks(m.preamble())
	if err != nil {
		return err
	}
	m.feedSet = true
	return nil
}

// Emit streams every point of a successful result as a G1 move. It
// returns after the controller has acknowledged all of them.
func (m *Machine) Emit(r vm.Result) error {
	if r.Err != nil {
		return nil
	}
	if !m.feedSet {
		err := m.runBlocks([]gcode.Block{{{W: 'F', Arg: m.feedRate()}}})
		if err != nil {
			return err
		}
		m.feedSet = true
	}

	pr := gcode.NewPointsReader(r.Points)
	defer pr.Close()
	_, err := m.Adapter.ReadFrom(gcode.NewBuffer(pr))
	return err
}
