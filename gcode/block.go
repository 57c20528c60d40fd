package gcode

import (
	"errors"
	"strings"

	"github.com/mastercactapus/toolpath/coord"
)

// Block is one line of G-code.
type Block []Word

// Move returns a linear feed move (G1) to p.
func Move(p coord.Point) Block {
	return Block{
		{W: 'G', Arg: 1},
		{W: 'X', Arg: p.X},
		{W: 'Y', Arg: p.Y},
		{W: 'Z', Arg: p.Z},
	}
}

func (b Block) Arg(w byte) (bool, float64) {
	for _, g := range b {
		if g.W == w {
			return true, g.Arg
		}
	}
	return false, 0
}
func (b Block) SetArg(w byte, val float64) {
	for i, g := range b {
		if g.W == w {
			b[i].Arg = val
			return
		}
	}
}

// Point returns the axis words of b applied on top of p.
func (b Block) Point(p coord.Point) coord.Point {
	for _, g := range b {
		switch g.W {
		case 'X':
			p.X = g.Arg
		case 'Y':
			p.Y = g.Arg
		case 'Z':
			p.Z = g.Arg
		}
	}
	return p
}

func (b Block) Clone() Block {
	c := make(Block, len(b))
	copy(c, b)
	return c
}

func (b Block) Validate() error {
	var checkWord [256]bool
	for _, g := range b {
		if !g.IsValid() {
			return errors.New("invalid word in block")
		}
		if g.W != 'G' && g.W != 'M' && checkWord[g.W] {
			return errors.New("word was repeated in a block")
		}
		checkWord[g.W] = true
	}

	return nil
}

func (b Block) String() string {
	var sb strings.Builder
	for i, g := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(g.String())
	}
	return sb.String()
}
