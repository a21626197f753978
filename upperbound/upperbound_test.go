package upperbound_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/upperbound"
)

func terms() []*point.Point {
	return []*point.Point{
		point.New(0, []float64{0, 0}),
		point.New(1, []float64{2, 0}),
		point.New(2, []float64{1, 2}),
	}
}

func TestLineTreeConnectsInOrder(t *testing.T) {
	sp := space.NewEuclidean()
	tree, err := upperbound.NewLineTree().Bound(terms(), sp)
	require.NoError(t, err)
	require.Equal(t, 2, tree.EdgeCount())
	require.Equal(t, 0, tree.SteinerCount())
}

func TestMSTBoundIsNoWorseThanLineTree(t *testing.T) {
	sp := space.NewEuclidean()
	line, err := upperbound.NewLineTree().Bound(terms(), sp)
	require.NoError(t, err)
	mstTree, err := upperbound.NewMSTBound().Bound(terms(), sp)
	require.NoError(t, err)

	require.LessOrEqual(t, mstTree.Length(sp), line.Length(sp)+1e-9)
}

func TestByNameResolvesKnownHeuristics(t *testing.T) {
	h, err := upperbound.ByName("line")
	require.NoError(t, err)
	require.Equal(t, "line tree", h.Name())

	h, err = upperbound.ByName("mst")
	require.NoError(t, err)
	require.Equal(t, "minimum spanning tree", h.Name())

	_, err = upperbound.ByName("bogus")
	require.ErrorIs(t, err, upperbound.ErrUnknownHeuristic)
}

func TestLineTreeRejectsEmpty(t *testing.T) {
	_, err := upperbound.NewLineTree().Bound(nil, space.NewEuclidean())
	require.ErrorIs(t, err, upperbound.ErrTooFewTerminals)
}
