package steinertree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/steinertree"
)

func square() []*point.Point {
	return []*point.Point{
		point.New(0, []float64{0, 0}),
		point.New(1, []float64{1, 0}),
		point.New(2, []float64{0, 1}),
		point.New(3, []float64{1, 1}),
	}
}

func TestNewTreeNoEdges(t *testing.T) {
	tr := steinertree.NewTree(square())
	require.Equal(t, 4, tr.NodeCount())
	require.Equal(t, 4, tr.TerminalCount)
	require.Equal(t, 0, tr.EdgeCount())
	require.Equal(t, 0.0, tr.Length(space.NewEuclidean()))
}

func TestAddRemoveEdge(t *testing.T) {
	tr := steinertree.NewTree(square())
	require.NoError(t, tr.AddEdge(0, 1))
	require.Equal(t, 1, tr.EdgeCount())
	n0, _ := tr.Node(0)
	require.Contains(t, n0.Neighbors, 1)
	n1, _ := tr.Node(1)
	require.Contains(t, n1.Neighbors, 0)

	require.ErrorIs(t, tr.AddEdge(0, 1), steinertree.ErrAlreadyNeighbors)

	require.NoError(t, tr.RemoveEdge(0, 1))
	require.Equal(t, 0, tr.EdgeCount())
	require.ErrorIs(t, tr.RemoveEdge(0, 1), steinertree.ErrNotNeighbors)
}

func TestSplitUnsplitEdgeRoundTrip(t *testing.T) {
	tr := steinertree.NewTree(square()[:3])
	require.NoError(t, tr.AddEdge(0, 1))

	before := tr.Clone()

	s, err := tr.SplitEdge(0, 1, 2, point.New(0, []float64{0.5, 0}))
	require.NoError(t, err)
	require.Equal(t, 3, s)
	require.Equal(t, 4, tr.NodeCount())
	require.Equal(t, 3, tr.EdgeCount())

	require.NoError(t, tr.UnsplitEdge(0, 1, 2, s))
	require.Equal(t, 3, tr.NodeCount())
	require.Equal(t, 1, tr.EdgeCount())

	// Structural equality modulo neighbour-slice order (swap-remove semantics).
	opt := cmp.Comparer(func(a, b []int) bool {
		if len(a) != len(b) {
			return false
		}
		seen := map[int]int{}
		for _, x := range a {
			seen[x]++
		}
		for _, x := range b {
			seen[x]--
		}
		for _, v := range seen {
			if v != 0 {
				return false
			}
		}

		return true
	})
	if diff := cmp.Diff(before.Nodes, tr.Nodes, opt); diff != "" {
		t.Fatalf("tree not restored after split/unsplit round trip (-before +after):\n%s", diff)
	}
}

func TestPopSteinerGuards(t *testing.T) {
	tr := steinertree.NewTree(square()[:3])
	require.ErrorIs(t, tr.PopSteiner(), steinertree.ErrPopTerminal)

	s, err := tr.PushSteiner(point.New(0, []float64{0, 0}))
	require.NoError(t, err)
	require.NoError(t, tr.AddEdge(0, s))
	require.ErrorIs(t, tr.PopSteiner(), steinertree.ErrPopHasNeighbors)

	require.NoError(t, tr.RemoveEdge(0, s))
	require.NoError(t, tr.PopSteiner())
	require.Equal(t, 3, tr.NodeCount())
}

func TestCloneIndependence(t *testing.T) {
	tr := steinertree.NewTree(square())
	require.NoError(t, tr.AddEdge(0, 1))
	clone := tr.Clone()
	require.NoError(t, clone.AddEdge(2, 3))
	require.Equal(t, 1, tr.EdgeCount())
	require.Equal(t, 2, clone.EdgeCount())

	clone.Nodes[0].P.Coords[0] = 99
	n0, _ := tr.Node(0)
	require.Equal(t, 0.0, n0.P.Coords[0])
}

func TestLengthUnitSquarePath(t *testing.T) {
	tr := steinertree.NewTree(square())
	require.NoError(t, tr.AddEdge(0, 1))
	require.NoError(t, tr.AddEdge(1, 3))
	require.NoError(t, tr.AddEdge(3, 2))
	require.InDelta(t, 3.0, tr.Length(space.NewEuclidean()), 1e-9)
}

func TestIsFullTopologyTriangleSeed(t *testing.T) {
	tr := steinertree.NewTree(square()[:3])
	s, err := tr.PushSteiner(point.New(0, []float64{0.33, 0.33}))
	require.NoError(t, err)
	require.NoError(t, tr.AddEdge(0, s))
	require.NoError(t, tr.AddEdge(1, s))
	require.NoError(t, tr.AddEdge(2, s))
	require.True(t, tr.IsFullTopology())
}
