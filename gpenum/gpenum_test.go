package gpenum_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/gpenum"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/space"
)

func square() []*point.Point {
	return []*point.Point{
		point.New(0, []float64{0, 0}),
		point.New(1, []float64{1, 0}),
		point.New(2, []float64{0, 1}),
		point.New(3, []float64{1, 1}),
	}
}

func triangle() []*point.Point {
	return []*point.Point{
		point.New(0, []float64{0, 0}),
		point.New(1, []float64{1, 0}),
		point.New(2, []float64{0.5, 1}),
	}
}

func TestEnumeratorSingleTerminal(t *testing.T) {
	sp := space.NewEuclidean()
	e := gpenum.NewEnumerator(gpenum.NoOrdering{})
	require.NoError(t, e.Init([]*point.Point{point.New(0, []float64{1, 1})}, sp, nil))

	require.True(t, e.Next(sp, nil))
	require.True(t, e.Tree().IsFullTopology())
	require.False(t, e.Next(sp, nil))
}

func TestEnumeratorTwoTerminals(t *testing.T) {
	sp := space.NewEuclidean()
	e := gpenum.NewEnumerator(gpenum.NoOrdering{})
	require.NoError(t, e.Init(square()[:2], sp, nil))

	require.True(t, e.Next(sp, nil))
	require.Equal(t, 1, e.Tree().EdgeCount())
	require.False(t, e.Next(sp, nil))
}

func TestEnumeratorTriangleYieldsOneTopology(t *testing.T) {
	sp := space.NewEuclidean()
	e := gpenum.NewEnumerator(gpenum.NoOrdering{})
	require.NoError(t, e.Init(triangle(), sp, nil))

	count := 0
	for e.Next(sp, nil) {
		if e.Tree().IsFullTopology() {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestEnumeratorSquareYieldsThreeTopologiesUnpruned(t *testing.T) {
	sp := space.NewEuclidean()
	e := gpenum.NewEnumerator(gpenum.NoOrdering{})
	e.EnableBSD = false
	e.EnableSS = false
	require.NoError(t, e.Init(square(), sp, nil))

	count := 0
	for e.Next(sp, nil) {
		if e.Tree().IsFullTopology() {
			count++
		}
	}
	// The number of full Steiner topologies over n terminals is
	// (2n-5)!!; for n=4 that is 3.
	require.Equal(t, 3, count)
}

func TestEnumeratorCountsEnumeratedNodes(t *testing.T) {
	sp := space.NewEuclidean()
	e := gpenum.NewEnumerator(gpenum.FurthestSiteOrdering{})
	c := diag.New()
	require.NoError(t, e.Init(square(), sp, c))

	for e.Next(sp, c) {
	}
	require.Greater(t, c.EnumeratedNodes, int64(0))
}
