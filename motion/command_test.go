package motion

import (
	"testing"

	"github.com/mastercactapus/toolpath/coord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLinear(t *testing.T) {
	l, err := ParseLinear("linear 0,0,0 3,4,0")
	require.NoError(t, err)
	assert.Equal(t, Linear{Start: coord.Point{}, End: coord.Point{X: 3, Y: 4}}, l)
	assert.Equal(t, "linear 0,0,0 3,4,0", l.String())

	var fe *FormatError
	_, err = ParseLinear("linear 0,0,0")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "linear motion", fe.What)

	_, err = ParseLinear("linear 0,0 1,1,1")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "point", fe.What)

	var ne *NumericParseError
	_, err = ParseLinear("linear 0,0,0 1,one,1")
	assert.ErrorAs(t, err, &ne)
}

func TestParseRotational(t *testing.T) {
	r, err := ParseRotational("rotational 1,2,3 10 clockwise 90")
	require.NoError(t, err)
	assert.Equal(t, Rotational{
		Circle:    coord.Circle{Center: coord.Point{X: 1, Y: 2, Z: 3}, Radius: 10},
		StopAngle: 90,
		Direction: coord.Clockwise,
	}, r)
	assert.Equal(t, "rotational 1,2,3 10 clockwise 90", r.String())

	r, err = ParseRotational("rotational 0,0,0 2.5 counterclockwise -45.5")
	require.NoError(t, err)
	assert.Equal(t, coord.Counterclockwise, r.Direction)
	assert.Equal(t, -45.5, r.StopAngle)
}

func TestParseRotational_Errors(t *testing.T) {
	var fe *FormatError
	_, err := ParseRotational("rotational 0,0,0 1 clockwise")
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 5, fe.Want)
	assert.Equal(t, 4, fe.Got)

	var de *InvalidDirectionError
	_, err = ParseRotational("rotational 0,0,0 1 sideways 90")
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "sideways", de.Token)

	var ne *NumericParseError
	_, err = ParseRotational("rotational 0,0,0 r clockwise 90")
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "r", ne.Field)

	_, err = ParseRotational("rotational 0,0,0 1 clockwise ninety")
	assert.ErrorAs(t, err, &ne)
}

func TestParseCommand(t *testing.T) {
	cmd, ok, err := ParseCommand("linear 0,0,0 1,1,1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.IsType(t, Linear{}, cmd)

	cmd, ok, err = ParseCommand("rotational 0,0,0 1 clockwise 10")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, KeywordRotational, cmd.Keyword())

	cmd, ok, err = ParseCommand("dwell 5")
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, cmd)

	_, ok, err = ParseCommand("linear 1,2")
	assert.True(t, ok)
	assert.Error(t, err)
}
