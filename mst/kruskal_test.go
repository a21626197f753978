package mst_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/mst"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/space"
)

func TestKruskalUnitSquare(t *testing.T) {
	terms := []*point.Point{
		point.New(0, []float64{0, 0}),
		point.New(1, []float64{1, 0}),
		point.New(2, []float64{0, 1}),
		point.New(3, []float64{1, 1}),
	}
	tree, err := mst.Kruskal(terms, space.NewEuclidean())
	require.NoError(t, err)
	require.Equal(t, 3, tree.EdgeCount())
	require.Equal(t, 0, tree.SteinerCount())
	require.InDelta(t, 3.0, tree.Length(space.NewEuclidean()), 1e-9)
}

func TestKruskalSingleTerminal(t *testing.T) {
	terms := []*point.Point{point.New(0, []float64{1, 1})}
	tree, err := mst.Kruskal(terms, space.NewEuclidean())
	require.NoError(t, err)
	require.Equal(t, 0, tree.EdgeCount())
	require.Equal(t, 0.0, tree.Length(space.NewEuclidean()))
}

func TestKruskalNoTerminals(t *testing.T) {
	_, err := mst.Kruskal(nil, space.NewEuclidean())
	require.ErrorIs(t, err, mst.ErrTooFewTerminals)
}

func TestKruskalTwoTerminals(t *testing.T) {
	terms := []*point.Point{
		point.New(0, []float64{0, 0}),
		point.New(1, []float64{1, 0}),
	}
	length, err := mst.Length(terms, space.NewEuclidean())
	require.NoError(t, err)
	require.InDelta(t, 1.0, length, 1e-9)
}
