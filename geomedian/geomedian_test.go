package geomedian_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/geomedian"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
)

func triangle() (y *point.Point, neighbors []*point.Point) {
	y = point.New(0, []scalar.Real{0.4, 0.3})
	neighbors = []*point.Point{
		point.New(1, []scalar.Real{0, 0}),
		point.New(2, []scalar.Real{1, 0}),
		point.New(3, []scalar.Real{0.5, 1}),
	}

	return y, neighbors
}

func runToConvergence(t *testing.T, k geomedian.Kernel, sp space.Space) *point.Point {
	t.Helper()
	y, neighbors := triangle()
	counters := &diag.KernelCounters{}
	require.NoError(t, k.Init(y, neighbors, sp))

	cur := y
	for i := 0; i < 200; i++ {
		next := point.New(0, make([]scalar.Real, cur.Dim()))
		require.NoError(t, k.Step(next, cur, neighbors, sp, counters))
		if sp.Dist(cur, next) < 1e-12 {
			cur = next
			break
		}
		cur = next
	}

	return cur
}

func TestWeiszfeldConvergesNearUteshev(t *testing.T) {
	sp := space.NewEuclidean()
	w := runToConvergence(t, geomedian.NewWeiszfeld(), sp)

	y, neighbors := triangle()
	u := point.New(0, make([]scalar.Real, y.Dim()))
	require.NoError(t, geomedian.NewUteshev().Step(u, y, neighbors, sp, nil))

	require.InDelta(t, u.Coords[0], w.Coords[0], 1e-3)
	require.InDelta(t, u.Coords[1], w.Coords[1], 1e-3)
}

func TestOstreshConvergesNearUteshev(t *testing.T) {
	sp := space.NewEuclidean()
	o := runToConvergence(t, geomedian.NewOstresh(), sp)

	y, neighbors := triangle()
	u := point.New(0, make([]scalar.Real, y.Dim()))
	require.NoError(t, geomedian.NewUteshev().Step(u, y, neighbors, sp, nil))

	require.InDelta(t, u.Coords[0], o.Coords[0], 1e-3)
	require.InDelta(t, u.Coords[1], o.Coords[1], 1e-3)
}

func TestUteshevObtuseAngleSnapsToVertex(t *testing.T) {
	sp := space.NewEuclidean()
	y := point.New(0, []scalar.Real{0, 0})
	// A near-degenerate, highly obtuse configuration: the middle
	// neighbor sits almost on the segment joining the other two, so the
	// Fermat point collapses onto it.
	neighbors := []*point.Point{
		point.New(1, []scalar.Real{-10, 0}),
		point.New(2, []scalar.Real{0.01, 0}),
		point.New(3, []scalar.Real{10, 0}),
	}
	dst := point.New(0, make([]scalar.Real, 2))
	require.NoError(t, geomedian.NewUteshev().Step(dst, y, neighbors, sp, nil))
	require.InDelta(t, 0.01, dst.Coords[0], 1e-9)
	require.InDelta(t, 0, dst.Coords[1], 1e-9)
}

func TestUteshevRejectsWrongDegree(t *testing.T) {
	sp := space.NewEuclidean()
	y, neighbors := triangle()
	dst := point.New(0, make([]scalar.Real, 2))
	require.ErrorIs(t, geomedian.NewUteshev().Step(dst, y, neighbors[:2], sp, nil), geomedian.ErrNotTriangle)
}

func TestBrimbergLoveReducesToEuclideanAtP2(t *testing.T) {
	sp := space.NewEuclidean()
	bl, err := geomedian.NewBrimbergLove(2)
	require.NoError(t, err)

	y, neighbors := triangle()
	cur := y
	for i := 0; i < 200; i++ {
		next := point.New(0, make([]scalar.Real, cur.Dim()))
		require.NoError(t, bl.Step(next, cur, neighbors, sp, nil))
		if sp.Dist(cur, next) < 1e-12 {
			cur = next
			break
		}
		cur = next
	}

	u := point.New(0, make([]scalar.Real, y.Dim()))
	require.NoError(t, geomedian.NewUteshev().Step(u, y, neighbors, sp, nil))
	require.InDelta(t, u.Coords[0], cur.Coords[0], 1e-2)
	require.InDelta(t, u.Coords[1], cur.Coords[1], 1e-2)
}

func TestBrimbergLoveRejectsOutOfRange(t *testing.T) {
	_, err := geomedian.NewBrimbergLove(3)
	require.ErrorIs(t, err, geomedian.ErrInvalidP)
}

func TestRodriguezChiaRejectsLowOrder(t *testing.T) {
	_, err := geomedian.NewRodriguezChia(2, 1e-6)
	require.ErrorIs(t, err, geomedian.ErrInvalidOrder)
}

func TestRodriguezChiaStepProducesFiniteResult(t *testing.T) {
	lp, err := space.NewLp(4)
	require.NoError(t, err)
	k, err := geomedian.NewRodriguezChia(4, 1e-4)
	require.NoError(t, err)

	y, neighbors := triangle()
	require.NoError(t, k.Init(y, neighbors, lp))
	dst := point.New(0, make([]scalar.Real, 2))
	require.NoError(t, k.Step(dst, y, neighbors, lp, nil))
	require.True(t, scalar.IsFinite(dst.Coords[0]))
	require.True(t, scalar.IsFinite(dst.Coords[1]))
}

func TestErrorBoundMatchesFormula(t *testing.T) {
	got := geomedian.ErrorBound(10, 4, 1e-4)
	require.InDelta(t, 10*scalar.Pow(2, 0.25)*scalar.Sqrt(1e-4), got, 1e-12)
}

func TestHyperEllipsoidDecoratorReducesToWrappedAtUnitScale(t *testing.T) {
	he, err := space.NewHyperEllipsoid([]scalar.Real{1, 1})
	require.NoError(t, err)
	eucl := space.NewEuclidean()

	y, neighbors := triangle()
	decorated := geomedian.NewHyperEllipsoidDecorator(geomedian.NewUteshev())

	dDst := point.New(0, make([]scalar.Real, 2))
	require.NoError(t, decorated.Init(y, neighbors, he))
	require.NoError(t, decorated.Step(dDst, y, neighbors, he, nil))

	plain := point.New(0, make([]scalar.Real, 2))
	require.NoError(t, geomedian.NewUteshev().Step(plain, y, neighbors, eucl, nil))

	require.InDelta(t, plain.Coords[0], dDst.Coords[0], 1e-9)
	require.InDelta(t, plain.Coords[1], dDst.Coords[1], 1e-9)
}

func TestKernelsRejectNoNeighbors(t *testing.T) {
	sp := space.NewEuclidean()
	y := point.New(0, []scalar.Real{0, 0})
	dst := point.New(0, []scalar.Real{0, 0})
	require.ErrorIs(t, geomedian.NewWeiszfeld().Step(dst, y, nil, sp, nil), geomedian.ErrNoNeighbors)
}
