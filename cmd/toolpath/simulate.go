package main

import (
	"fmt"
	"strings"

	gocode "github.com/joushou/gocnc/gcode"
	gocncvm "github.com/joushou/gocnc/vm"
	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/gcode"
	"github.com/mastercactapus/toolpath/vm"
)

// simulator collects every emitted point as a rapid move so the program
// can be replayed through an independent G-code interpreter.
type simulator struct {
	buf strings.Builder
	n   int
}

func (s *simulator) Emit(r vm.Result) error {
	if r.Err != nil {
		return nil
	}
	for p := range r.Points.All() {
		b := gcode.Move(p)
		b.SetArg('G', 0)
		s.buf.WriteString(b.String())
		s.buf.WriteByte('\n')
		s.n++
	}
	return nil
}

// Check interprets the collected moves and compares the final position
// with want.
func (s *simulator) Check(want coord.Point) error {
	if s.n == 0 {
		return nil
	}
	doc, err := gocode.Parse("G21 G90\n" + s.buf.String())
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	var m gocncvm.Machine
	m.Init()
	err = m.Process(doc)
	if err != nil {
		return fmt.Errorf("interpret: %w", err)
	}
	if len(m.Positions) == 0 {
		return fmt.Errorf("no positions after %d moves", s.n)
	}
	last := m.Positions[len(m.Positions)-1].Vector()
	got := coord.Point{X: last.X, Y: last.Y, Z: last.Z}
	if !got.Near(want, gcode.Tolerance) {
		return fmt.Errorf("final position %s, expected %s", got, want)
	}
	return nil
}
