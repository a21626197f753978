package space_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/space"
)

func TestEuclideanDist(t *testing.T) {
	sp := space.NewEuclidean()
	a := point.New(0, []float64{0, 0})
	b := point.New(1, []float64{3, 4})
	require.InDelta(t, 5.0, sp.Dist(a, b), 1e-12)
	require.InDelta(t, 5.0, sp.Norm(b), 1e-12)
}

func TestLpReducesToEuclideanAtP2(t *testing.T) {
	lp, err := space.NewLp(2)
	require.NoError(t, err)
	a := point.New(0, []float64{0, 0})
	b := point.New(1, []float64{3, 4})
	require.InDelta(t, 5.0, lp.Dist(a, b), 1e-9)
}

func TestLpInvalidP(t *testing.T) {
	_, err := space.NewLp(0.5)
	require.ErrorIs(t, err, space.ErrInvalidP)
}

func TestLInf(t *testing.T) {
	sp := space.NewLInf()
	a := point.New(0, []float64{1, -7, 3})
	require.InDelta(t, 7.0, sp.Norm(a), 1e-12)
}

func TestHyperEllipsoidReducesToEuclideanWhenUnitScale(t *testing.T) {
	h, err := space.NewHyperEllipsoid([]float64{1, 1})
	require.NoError(t, err)
	a := point.New(0, []float64{0, 0})
	b := point.New(1, []float64{3, 4})
	require.InDelta(t, 5.0, h.Dist(a, b), 1e-12)
}

func TestHyperEllipsoidRescaleRoundTrip(t *testing.T) {
	h, err := space.NewHyperEllipsoid([]float64{2, 5})
	require.NoError(t, err)
	src := point.New(0, []float64{4, 10})
	scaled := point.New(0, make([]float64, 2))
	require.NoError(t, h.Rescale(scaled, src))
	require.Equal(t, []float64{2, 2}, scaled.Coords)
	back := point.New(0, make([]float64, 2))
	require.NoError(t, h.Unscale(back, scaled))
	require.Equal(t, src.Coords, back.Coords)
}

func TestHyperEllipsoidNonPositiveScale(t *testing.T) {
	_, err := space.NewHyperEllipsoid([]float64{1, 0})
	require.ErrorIs(t, err, space.ErrNonPositiveScale)
}
