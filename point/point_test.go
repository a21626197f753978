package point_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/point"
)

func TestCloneIndependence(t *testing.T) {
	p := point.New(1, []float64{1, 2, 3})
	c := p.Clone()
	c.Coords[0] = 99
	require.Equal(t, 1.0, p.Coords[0])
	require.Equal(t, 99.0, c.Coords[0])
	require.Equal(t, p.ID, c.ID)
}

func TestEqualIgnoresID(t *testing.T) {
	a := point.New(1, []float64{1, 2})
	b := point.New(2, []float64{1, 2})
	require.True(t, a.Equal(b))
	c := point.New(3, []float64{1, 2, 3})
	require.False(t, a.Equal(c))
}

func TestArithmetic(t *testing.T) {
	a := point.New(0, []float64{1, 2})
	b := point.New(0, []float64{3, 4})
	dst := point.New(0, make([]float64, 2))

	require.NoError(t, point.Add(dst, a, b))
	require.Equal(t, []float64{4, 6}, dst.Coords)

	require.NoError(t, point.Sub(dst, b, a))
	require.Equal(t, []float64{2, 2}, dst.Coords)

	require.NoError(t, point.Scale(dst, a, 2))
	require.Equal(t, []float64{2, 4}, dst.Coords)

	require.NoError(t, point.Neg(dst, a))
	require.Equal(t, []float64{-1, -2}, dst.Coords)
}

func TestDimensionMismatch(t *testing.T) {
	a := point.New(0, []float64{1, 2})
	b := point.New(0, []float64{1, 2, 3})
	dst := point.New(0, make([]float64, 2))
	err := point.Add(dst, a, b)
	require.ErrorIs(t, err, point.ErrDimensionMismatch)
}

func TestZero(t *testing.T) {
	p := point.New(0, []float64{1, 2, 3})
	p.Zero()
	require.Equal(t, []float64{0, 0, 0}, p.Coords)
}
