package vm

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/motion"
	"github.com/mastercactapus/toolpath/sample"
)

// Policy decides what happens when a command fails to parse or sample.
type Policy int

const (
	// PolicyAbort stops at the first failing command.
	PolicyAbort Policy = iota
	// PolicySkip reports the failure and continues with the next command.
	PolicySkip
)

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "abort", "":
		return PolicyAbort, nil
	case "skip":
		return PolicySkip, nil
	}
	return 0, errors.New("unknown policy: " + s)
}

func (p Policy) String() string {
	if p == PolicySkip {
		return "skip"
	}
	return "abort"
}

// Result is the outcome of one command. Exactly one of Points or Err is
// meaningful.
type Result struct {
	Line    int
	Command motion.Command
	Points  sample.Sequence
	Err     error
}

// A Sink consumes results in input order.
type Sink interface {
	Emit(Result) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Result) error

func (fn SinkFunc) Emit(r Result) error { return fn(r) }

// Leveler adjusts sampled points, e.g. to follow a probed surface.
type Leveler interface {
	Level(sample.Sequence) sample.Sequence
}

type Config struct {
	Options sample.Options
	Policy  Policy

	// Leveler is optional.
	Leveler Leveler

	// Logger receives skipped commands. Defaults to stderr.
	Logger *log.Logger
}

// Stats counts what a Machine has processed.
type Stats struct {
	Commands int
	Points   int
	Failed   int
}

// Machine samples commands and tracks the last emitted position.
type Machine struct {
	cfg   Config
	pos   coord.Point
	stats Stats
}

func New(cfg Config) *Machine {
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	return &Machine{cfg: cfg}
}

// Pos is the last point of the last successful command.
func (m *Machine) Pos() coord.Point { return m.pos }
func (m *Machine) Stats() Stats     { return m.stats }

// Run samples a single command, applying the leveler if configured.
func (m *Machine) Run(cmd motion.Command) (sample.Sequence, error) {
	seq, err := sample.Sample(cmd, m.cfg.Options)
	if err != nil {
		return sample.Sequence{}, err
	}
	if m.cfg.Leveler != nil {
		seq = m.cfg.Leveler.Level(seq)
	}
	if last, ok := seq.Last(); ok {
		m.pos = last
	}
	m.stats.Commands++
	m.stats.Points += seq.Len()
	return seq, nil
}

type lineCounter interface {
	Line() int
}

// Process reads every command from r and sends each result to sink.
//
// Read failures other than *motion.LineError always abort. Parse and
// sampling failures abort under PolicyAbort; under PolicySkip they are
// logged, passed to the sink as a failed Result and processing continues.
func (m *Machine) Process(r motion.Reader, sink Sink) error {
	lc, _ := r.(lineCounter)
	line := func() int {
		if lc == nil {
			return 0
		}
		return lc.Line()
	}

	for {
		cmd, err := r.Read()
		if err == io.EOF {
			return nil
		}

		var res Result
		var le *motion.LineError
		switch {
		case errors.As(err, &le):
			res = Result{Line: le.Line, Err: le}
		case err != nil:
			return fmt.Errorf("read commands: %w", err)
		default:
			res = Result{Line: line(), Command: cmd}
			res.Points, err = m.Run(cmd)
			if err != nil {
				res.Err = &motion.LineError{Line: res.Line, Text: cmd.String(), Err: err}
			}
		}

		if res.Err != nil {
			m.stats.Failed++
			if m.cfg.Policy == PolicyAbort {
				return res.Err
			}
			m.cfg.Logger.Println("ERROR: skipping command:", res.Err)
		}

		err = sink.Emit(res)
		if err != nil {
			return err
		}
	}
}
