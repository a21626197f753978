package smt_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/mst"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/smt"
	"github.com/arbortree/gpsmt/space"
)

func unitSquare() []*point.Point {
	return []*point.Point{
		point.New(0, []float64{0, 0}),
		point.New(1, []float64{1, 0}),
		point.New(2, []float64{1, 1}),
		point.New(3, []float64{0, 1}),
	}
}

func TestFindBeatsMSTOnUnitSquare(t *testing.T) {
	sp := space.NewEuclidean()
	terms := unitSquare()

	mstTree, err := mst.Kruskal(terms, sp)
	require.NoError(t, err)

	counters := diag.New()
	tree, err := smt.Find(terms, smt.DefaultOptions(), counters)
	require.NoError(t, err)

	// The Steiner minimal tree of a unit square has length 1+sqrt(3),
	// strictly shorter than its MST (length 3).
	require.Less(t, tree.Length(sp), mstTree.Length(sp)+1e-6)
	require.InDelta(t, 1+math.Sqrt(3), tree.Length(sp), 0.05)
	require.Greater(t, counters.BestUpdates, int64(0))
}

func TestFindWithNilOptionsUsesDefaults(t *testing.T) {
	terms := unitSquare()
	tree, err := smt.Find(terms, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, tree)
}

func TestFindSingleTerminal(t *testing.T) {
	terms := []*point.Point{point.New(0, []float64{5, 5})}
	tree, err := smt.Find(terms, smt.DefaultOptions(), nil)
	require.NoError(t, err)
	require.Equal(t, 0, tree.EdgeCount())
}

func TestFindPartialOptionsFillDefaults(t *testing.T) {
	terms := unitSquare()
	opts := &smt.Options{Space: space.NewEuclidean()}
	tree, err := smt.Find(terms, opts, nil)
	require.NoError(t, err)
	require.NotNil(t, tree)
}
