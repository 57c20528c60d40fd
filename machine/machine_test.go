package machine

import (
	"bytes"
	"io"
	"testing"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/mastercactapus/toolpath/sample"
	"github.com/mastercactapus/toolpath/vm"
	"github.com/stretchr/testify/assert"
)

type fakeAdapter struct {
	status string
	buf    bytes.Buffer
}

func (f *fakeAdapter) State() chan State { return nil }
func (f *fakeAdapter) CurrentState() State { return State{Status: f.status} }
func (f *fakeAdapter) WriteByte(b byte) error { return f.buf.WriteByte(b) }
func (f *fakeAdapter) Write(p []byte) (int, error) { return f.buf.Write(p) }
func (f *fakeAdapter) ReadFrom(r io.Reader) (int64, error) { return f.buf.ReadFrom(r) }

func TestMachine_Prepare(t *testing.T) {
	a := &fakeAdapter{status: "Run"}
	m := NewMachine(a)
	assert.Equal(t, ErrNotIdle, m.Prepare())
	assert.Zero(t, a.buf.Len())

	a.status = "Idle"
	assert.NoError(t, m.Prepare())
	assert.Equal(t, "G90 G21 F500\n", a.buf.String())

	a.buf.Reset()
	m.FeedRate = 1200
	assert.NoError(t, m.Prepare())
	assert.Equal(t, "G90 G21 F1200\n", a.buf.String())

	a.buf.Reset()
	assert.NoError(t, m.Emit(vm.Result{Points: sample.Of(coord.Point{X: 1})}))
	assert.Equal(t, "G1 X1 Y0 Z0\n", a.buf.String(), "feed rate already set by Prepare")
}

func TestMachine_Emit(t *testing.T) {
	a := &fakeAdapter{status: "Idle"}
	m := NewMachine(a)

	err := m.Emit(vm.Result{Points: sample.Of(coord.Point{X: 1}, coord.Point{X: 2, Z: -0.5})})
	assert.NoError(t, err)
	// grbl rejects G1 until a feed rate is set
	assert.Equal(t, "F500\nG1 X1 Y0 Z0\nG1 X2 Y0 Z-0.5\n", a.buf.String())

	a.buf.Reset()
	assert.NoError(t, m.Emit(vm.Result{Points: sample.Of(coord.Point{Y: 3})}))
	assert.Equal(t, "G1 X0 Y3 Z0\n", a.buf.String())

	a.buf.Reset()
	assert.NoError(t, m.Emit(vm.Result{Err: io.ErrUnexpectedEOF}))
	assert.Zero(t, a.buf.Len())
}
