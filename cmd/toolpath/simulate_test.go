package main

import (
	"testing"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/sample"
	"github.com/mastercactapus/toolpath/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulator(t *testing.T) {
	var s simulator
	assert.NoError(t, s.Check(coord.Point{X: 5}), "nothing to check")

	end := coord.Point{X: 1, Y: 2.5, Z: -1}
	require.NoError(t, s.Emit(vm.Result{Points: sample.Of(coord.Point{}, end)}))
	require.NoError(t, s.Emit(vm.Result{Err: assert.AnError}))
	assert.Equal(t, "G0 X0 Y0 Z0\nG0 X1 Y2.5 Z-1\n", s.buf.String())

	assert.NoError(t, s.Check(end))
	assert.Error(t, s.Check(coord.Point{X: 1, Y: 2, Z: -1}))
}
