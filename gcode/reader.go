package gcode

import (
	"io"
	"iter"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/sample"
)

type Reader interface {
	Read() (Block, error)
}

type BlocksReader struct {
	Blocks []Block
	n      int
}

func (b *BlocksReader) Read() (Block, error) {
	if b.n == len(b.Blocks) {
		return nil, io.EOF
	}

	b.n++
	return b.Blocks[b.n-1], nil
}

// PointsReader emits a G1 move for every point of a sequence.
type PointsReader struct {
	next func() (coord.Point, bool)
	stop func()
}

// NewPointsReader starts a fresh pass over seq.
func NewPointsReader(seq sample.Sequence) *PointsReader {
	next, stop := iter.Pull(seq.All())
	return &PointsReader{next: next, stop: stop}
}

func (r *PointsReader) Read() (Block, error) {
	p, ok := r.next()
	if !ok {
		r.stop()
		return nil, io.EOF
	}
	return Move(p), nil
}

// Close releases the underlying iterator early.
func (r *PointsReader) Close() error {
	r.stop()
	return nil
}
