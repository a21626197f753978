package rmt_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/geomedian"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/rmt"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/steinertree"
)

// triangleTopology builds a full Steiner topology over the isosceles
// triangle (0,0), (1,0), (0.5,1) with one Steiner point seeded
// off-center, so RMT has real work to do converging it to the Fermat point.
func triangleTopology() *steinertree.Tree {
	terms := []*point.Point{
		point.New(0, []float64{0, 0}),
		point.New(1, []float64{1, 0}),
		point.New(2, []float64{0.5, 1}),
	}
	tr := steinertree.NewTree(terms)
	s, _ := tr.PushSteiner(point.New(0, []float64{0.1, 0.1}))
	_ = tr.AddEdge(0, s)
	_ = tr.AddEdge(1, s)
	_ = tr.AddEdge(2, s)

	return tr
}

func TestOptimizerFindConvergesBelowUpperBound(t *testing.T) {
	sp := space.NewEuclidean()
	tr := triangleTopology()
	before := tr.Length(sp)

	counters := diag.New()
	opt := rmt.DefaultOptimizer()
	length, err := opt.Find(tr, sp, counters)
	require.NoError(t, err)
	require.Less(t, length, before)
	require.Greater(t, counters.RMTIterations, int64(0))
}

func TestOptimizerFindMatchesDirectUteshev(t *testing.T) {
	sp := space.NewEuclidean()
	tr := triangleTopology()

	opt := rmt.NewOptimizer(geomedian.NewUteshev(), rmt.NewSteppedToConvergence(rmt.DefaultNodeDistCutoff))
	length, err := opt.Find(tr, sp, nil)
	require.NoError(t, err)

	s, err := tr.Node(3)
	require.NoError(t, err)

	// The Fermat point lies on the axis of symmetry x=0.5, where the base
	// (0,0)-(1,0) subtends 120 degrees: y = 0.5/sqrt(3).
	require.InDelta(t, 0.5, s.P.Coords[0], 1e-3)
	require.InDelta(t, 0.5/math.Sqrt(3), s.P.Coords[1], 2e-2)
	require.Greater(t, length, 0.0)
}

func TestSingleStepStrategyMakesProgress(t *testing.T) {
	sp := space.NewEuclidean()
	tr := triangleTopology()
	before := tr.Length(sp)

	opt := rmt.NewOptimizer(geomedian.NewUteshev(), rmt.NewSingleStepStrategy())
	opt.MaxIterations = 1
	length, err := opt.Find(tr, sp, nil)
	require.NoError(t, err)
	require.Less(t, length, before)
}
