package gcode

import (
	"io"
	"testing"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/motion"
	"github.com/mastercactapus/toolpath/sample"
	"github.com/stretchr/testify/assert"
)

func sampleLine() motion.Linear {
	return motion.Linear{End: coord.Point{X: 3, Y: 4}}
}

func TestBlocksReader(t *testing.T) {
	blocks := []Block{
		{{W: 'G', Arg: 1}, {W: 'X', Arg: 2}},

		{{W: 'M', Arg: 2}},
	}

	gr := &BlocksReader{Blocks: blocks}

	b, err := gr.Read()
	assert.NoError(t, err)
	assert.Equal(t, Block{{W: 'G', Arg: 1}, {W: 'X', Arg: 2}}, b)

	b, err = gr.Read()
	assert.NoError(t, err)
	assert.Equal(t, Block{{W: 'M', Arg: 2}}, b)

	b, err = gr.Read()
	assert.Error(t, err)
	assert.Equal(t, io.EOF, err)
	assert.Nil(t, b)
}

func TestPointsReader(t *testing.T) {
	r := NewPointsReader(sample.Of(coord.Point{X: 1}, coord.Point{Y: 2}))

	b, err := r.Read()
	assert.NoError(t, err)
	assert.Equal(t, "G1 X1 Y0 Z0", b.String())

	b, err = r.Read()
	assert.NoError(t, err)
	assert.Equal(t, coord.Point{Y: 2}, b.Point(coord.Point{}))

	_, err = r.Read()
	assert.Equal(t, io.EOF, err)
	assert.NoError(t, r.Close())
}

func TestPointsReader_Close(t *testing.T) {
	seq, err := sample.Linear(sampleLine(), sample.DefaultOptions)
	if err != nil {
		t.Fatal(err)
	}
	r := NewPointsReader(seq)

	_, err = r.Read()
	assert.NoError(t, err)
	assert.NoError(t, r.Close())

	b, err := r.Read()
	assert.Equal(t, io.EOF, err)
	assert.Nil(t, b)

	// closing twice, or after EOF, is fine
	assert.NoError(t, r.Close())
}
