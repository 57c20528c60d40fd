package motion

import (
	"strconv"
	"testing"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	p, err := ParsePoint("1, -2.5 ,3e2")
	require.NoError(t, err)
	assert.Equal(t, coord.Point{X: 1, Y: -2.5, Z: 300}, p)

	p, err = ParsePoint("  0.1,0.2,0.3  ")
	require.NoError(t, err)
	assert.Equal(t, coord.Point{X: 0.1, Y: 0.2, Z: 0.3}, p)
}

func TestParsePoint_Format(t *testing.T) {
	var fe *FormatError

	_, err := ParsePoint("1,2")
	require.Error(t, err)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "point", fe.What)
	assert.Equal(t, 2, fe.Got)

	_, err = ParsePoint("1,2,3,4")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 4, fe.Got)
}

func TestParsePoint_Numeric(t *testing.T) {
	_, err := ParsePoint("1,x,3")
	var ne *NumericParseError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "x", ne.Field)
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	_, err = ParsePoint("1,,3")
	assert.ErrorAs(t, err, &ne)
}

func TestParsePoint_RoundTrip(t *testing.T) {
	for _, p := range []coord.Point{
		{X: 1, Y: 2, Z: 3},
		{X: -10.25, Y: 0.5, Z: 1e3},
		{X: 1.0 / 3, Y: 2.0 / 3, Z: -7.777},
	} {
		s := p.String()
		parsed, err := ParsePoint(s)
		require.NoError(t, err)
		assert.True(t, parsed.Near(p, 0.005), "%s -> %v", s, parsed)

		again, err := ParsePoint(parsed.String())
		require.NoError(t, err)
		assert.Equal(t, parsed, again)
	}
}
