// Package mst computes the minimum spanning tree over a set of terminal
// points under a given space.Space, via Kruskal's algorithm with
// disjoint-set union-find. It underlies both the MSTBound upper-bound
// heuristic and the Gilbert-Pollak enumerator's BSD/SS precomputation
// (SPEC_FULL.md §4.4).
//
// Grounded on prim_kruskal.Kruskal from the teacher library: the same
// sort-edges-then-union-find control flow, generalized from core.Edge
// with int64 weights over string vertex ids to point.Point pairs with
// scalar.Real distances over integer terminal indices.
package mst

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/steinertree"
)

// ErrTooFewTerminals indicates Kruskal was called with no terminals.
var ErrTooFewTerminals = errors.New("mst: at least one terminal is required")

// candidateEdge is one entry of the complete terminal graph, prior to
// sorting and union-find filtering.
type candidateEdge struct {
	u, v int
	w    scalar.Real
}

// Kruskal computes the minimum spanning tree over terminals under sp,
// returning it as a *steinertree.Tree with no Steiner points (an MST is,
// by definition, a Steiner tree that introduces no extra points).
//
// Complexity: O(n^2 log n) to sort the complete graph's edges (n =
// len(terminals)), O(n alpha(n)) for union-find. Memory: O(n^2) for the
// candidate edge list.
func Kruskal(terminals []*point.Point, sp space.Space) (*steinertree.Tree, error) {
	n := len(terminals)
	if n == 0 {
		return nil, fmt.Errorf("mst.Kruskal: %w", ErrTooFewTerminals)
	}

	tree := steinertree.NewTree(terminals)
	if n == 1 {
		return tree, nil
	}

	// 1. Build the complete graph's edge list.
	edges := make([]candidateEdge, 0, n*(n-1)/2)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			edges = append(edges, candidateEdge{u: u, v: v, w: sp.Dist(terminals[u], terminals[v])})
		}
	}

	// 2. Sort ascending by weight; stable to keep tie-breaking
	// deterministic given the input order, matching Kruskal's own
	// reliance on a stable sort over graph.Edges().
	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].w < edges[j].w
	})

	// 3. Disjoint-set union-find with path compression and union by rank.
	parent := make([]int, n)
	rank := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}

		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		if rank[ra] < rank[rb] {
			parent[ra] = rb
		} else {
			parent[rb] = ra
			if rank[ra] == rank[rb] {
				rank[ra]++
			}
		}
	}

	// 4. Accept edges until n-1 are selected.
	added := 0
	for _, e := range edges {
		if find(e.u) != find(e.v) {
			union(e.u, e.v)
			if err := tree.AddEdge(e.u, e.v); err != nil {
				return nil, fmt.Errorf("mst.Kruskal: %w", err)
			}
			added++
			if added == n-1 {
				break
			}
		}
	}

	return tree, nil
}

// Length is a convenience wrapper returning the total length of the MST
// built by Kruskal, without the caller needing to hold the tree.
func Length(terminals []*point.Point, sp space.Space) (scalar.Real, error) {
	tree, err := Kruskal(terminals, sp)
	if err != nil {
		return 0, err
	}

	return tree.Length(sp), nil
}
