package attributevector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuannm99/colstore/internal/types"
)

func TestNewPicksNarrowestWidth(t *testing.T) {
	v, err := New(10, 5)
	require.NoError(t, err)
	require.Equal(t, 1, v.Width())

	v, err = New(10, 300)
	require.NoError(t, err)
	require.Equal(t, 2, v.Width())

	v, err = New(10, 1<<17)
	require.NoError(t, err)
	require.Equal(t, 4, v.Width())
}

func TestDictionaryTooLarge(t *testing.T) {
	_, err := New(1, 1<<33)
	require.ErrorIs(t, err, types.ErrDictionaryTooLarge)
}

func TestGetSetRoundTrip(t *testing.T) {
	v, err := New(4, 10)
	require.NoError(t, err)

	require.NoError(t, v.Set(0, 3))
	require.NoError(t, v.Set(3, 9))

	got, err := v.Get(0)
	require.NoError(t, err)
	require.Equal(t, types.ValueID(3), got)

	got, err = v.Get(3)
	require.NoError(t, err)
	require.Equal(t, types.ValueID(9), got)
}

func TestOutOfBounds(t *testing.T) {
	v, err := New(2, 10)
	require.NoError(t, err)

	_, err = v.Get(5)
	require.True(t, errors.Is(err, types.ErrOutOfBounds))

	err = v.Set(5, 1)
	require.True(t, errors.Is(err, types.ErrOutOfBounds))
}

func TestOverflowOnWidth1(t *testing.T) {
	v, err := New(1, 200) // width 1, max representable is 255
	require.NoError(t, err)

	require.NoError(t, v.Set(0, 255))
	require.Error(t, v.Set(0, 256))
}

func TestInvalidValueIDAlwaysFits(t *testing.T) {
	v, err := New(1, 200)
	require.NoError(t, err)
	require.NoError(t, v.Set(0, types.InvalidValueID))
}
