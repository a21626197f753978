package gpenum

import (
	"github.com/arbortree/gpsmt/mst"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/steinertree"

	"github.com/arbortree/gpsmt/matrix"
)

// computeBSD returns the n x n bottleneck Steiner distance matrix over
// terms: bsd[i][j] is the maximum edge weight along the unique path
// between terminals i and j in the minimum spanning tree of terms. It is
// stored as a *matrix.Dense, reusing the teacher's flat row-major
// buffer rather than a [][]float64, per SPEC_FULL.md §3.
//
// Grounded on original_source/src/enumerator.rs's calc_bsd, which walks
// the MST with a DFS per node pair; this implementation instead runs one
// DFS per source terminal, propagating the running maximum edge weight
// to every other node in a single pass (O(n) per source instead of one
// DFS per pair), an equivalent but less redundant traversal.
func computeBSD(terms []*point.Point, sp space.Space) (*matrix.Dense, error) {
	n := len(terms)
	bsd, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	if n < 2 {
		return bsd, nil
	}

	tree, err := mst.Kruskal(terms, sp)
	if err != nil {
		return nil, err
	}

	visited := make([]bool, n)
	for src := 0; src < n; src++ {
		for i := range visited {
			visited[i] = false
		}
		visited[src] = true
		var walk func(cur int, bottleneck scalar.Real)
		walk = func(cur int, bottleneck scalar.Real) {
			node, _ := tree.Node(cur)
			for _, nb := range node.Neighbors {
				if visited[nb] {
					continue
				}
				visited[nb] = true
				nbNode, _ := tree.Node(nb)
				edgeLen := sp.Dist(node.P, nbNode.P)
				b := scalar.Max(bottleneck, edgeLen)
				if src < nb {
					_ = bsd.Set(src, nb, b)
					_ = bsd.Set(nb, src, b)
				}
				walk(nb, b)
			}
		}
		walk(src, 0)
	}

	return bsd, nil
}

// computeSS returns, for every terminal, the distance to its nearest
// other terminal (the smallest-sphere radius pruning bound's per-vertex
// input). Grounded on original_source/src/enumerator.rs's calc_ss.
func computeSS(terms []*point.Point, sp space.Space) []scalar.Real {
	n := len(terms)
	ss := make([]scalar.Real, n)
	for i := 0; i < n; i++ {
		var best scalar.Real
		first := true
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := sp.Dist(terms[i], terms[j])
			if first || d < best {
				best, first = d, false
			}
		}
		ss[i] = best
	}

	return ss
}

// leaf records a terminal node reached by walking away from the new
// Steiner point, together with the number of tree edges between them.
type leaf struct {
	node  *steinertree.Node
	depth int
}

// collectLeaves walks tree from `from`, away from `prev`, recording
// every terminal leaf reached and its hop-depth from the Steiner point
// the walk started at (depth 1 for a terminal directly attached).
func collectLeaves(tree *steinertree.Tree, from, prev, depth int, out *[]leaf) {
	n, _ := tree.Node(from)
	if n.IsTerminal {
		*out = append(*out, leaf{node: n, depth: depth})

		return
	}
	for _, nb := range n.Neighbors {
		if nb == prev {
			continue
		}
		collectLeaves(tree, nb, from, depth+1, out)
	}
}
