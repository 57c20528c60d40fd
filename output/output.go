// Package output renders sampled results for downstream consumers.
package output

import (
	"bufio"
	"io"

	"github.com/mastercactapus/toolpath/gcode"
	"github.com/mastercactapus/toolpath/vm"
)

// Text writes one "x, y, z" line per point with two decimals.
type Text struct {
	w *bufio.Writer
}

func NewText(w io.Writer) *Text { return &Text{w: bufio.NewWriter(w)} }

func (t *Text) Emit(r vm.Result) error {
	if r.Err != nil {
		return nil
	}
	for p := range r.Points.All() {
		_, err := t.w.WriteString(p.String() + "\n")
		if err != nil {
			return err
		}
	}
	return t.w.Flush()
}

// Gcode writes a G1 block per point.
type Gcode struct {
	w io.Writer
}

func NewGcode(w io.Writer) *Gcode { return &Gcode{w: w} }

func (g *Gcode) Emit(r vm.Result) error {
	if r.Err != nil {
		return nil
	}
	pr := gcode.NewPointsReader(r.Points)
	defer pr.Close()
	_, err := io.Copy(g.w, gcode.NewBuffer(pr))
	return err
}

// Multi sends every result to each sink in order, stopping at the first
// error.
type Multi []vm.Sink

func (m Multi) Emit(r vm.Result) error {
	for _, s := range m {
		err := s.Emit(r)
		if err != nil {
			return err
		}
	}
	return nil
}
