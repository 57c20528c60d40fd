package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircle_At(t *testing.T) {
	c := Circle{Center: Point{X: 1, Y: 2, Z: 3}, Radius: 2}

	assert.True(t, c.At(0).Near(Point{X: 3, Y: 2, Z: 3}, 1e-9))
	assert.True(t, c.At(90).Near(Point{X: 1, Y: 4, Z: 3}, 1e-9))
	assert.True(t, c.At(180).Near(Point{X: -1, Y: 2, Z: 3}, 1e-9))
	assert.True(t, c.At(-90).Near(Point{X: 1, Y: 0, Z: 3}, 1e-9))
}

func TestDirection(t *testing.T) {
	d, ok := ParseDirection("clockwise")
	assert.True(t, ok)
	assert.Equal(t, Clockwise, d)
	assert.Equal(t, -1.0, d.Sign())

	d, ok = ParseDirection("counterclockwise")
	assert.True(t, ok)
	assert.Equal(t, Counterclockwise, d)
	assert.Equal(t, 1.0, d.Sign())
	assert.Equal(t, "counterclockwise", d.String())

	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
	_, ok = ParseDirection("Clockwise")
	assert.False(t, ok)
}
