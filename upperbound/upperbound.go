// Package upperbound provides initial feasible Steiner trees that seed
// the branch-and-bound search's incumbent before any full topology has
// been enumerated (SPEC_FULL.md §4.5).
//
// Grounded on original_source/src/upperbounds.rs and
// original_source/src/algorithms/min_steiner_tree/upper_bound/{mod,
// mst_bound,path}.rs, which define the same trait and two
// implementations duplicated verbatim across both locations.
package upperbound

import (
	"errors"
	"fmt"

	"github.com/arbortree/gpsmt/mst"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/steinertree"
)

// ErrTooFewTerminals indicates Bound was called with no terminals.
var ErrTooFewTerminals = errors.New("upperbound: at least one terminal is required")

// Heuristic produces a feasible (not necessarily optimal) Steiner tree
// over terms, used to seed a branch-and-bound search's incumbent.
//
// Grounded on original_source/src/algorithms/min_steiner_tree/upper_bound/mod.rs's
// UpperBound trait.
type Heuristic interface {
	Name() string
	Bound(terms []*point.Point, sp space.Space) (*steinertree.Tree, error)
}

// LineTree connects terminals in the given order, terminal i to
// terminal i+1, introducing no Steiner points. It is the cheapest
// possible heuristic and makes no use of sp, matching the original's
// own signature (which takes geo only to satisfy the trait).
//
// Grounded on upperbounds.rs's LineTree.
type LineTree struct{}

// NewLineTree constructs a LineTree heuristic.
func NewLineTree() LineTree { return LineTree{} }

// Name implements Heuristic.
func (LineTree) Name() string { return "line tree" }

// Bound implements Heuristic.
func (LineTree) Bound(terms []*point.Point, sp space.Space) (*steinertree.Tree, error) {
	n := len(terms)
	if n == 0 {
		return nil, fmt.Errorf("upperbound.LineTree.Bound: %w", ErrTooFewTerminals)
	}

	tree := steinertree.NewTree(terms)
	for i := 0; i < n-1; i++ {
		if err := tree.AddEdge(i, i+1); err != nil {
			return nil, fmt.Errorf("upperbound.LineTree.Bound: %w", err)
		}
	}

	return tree, nil
}

// MSTBound delegates straight to mst.Kruskal: the minimum spanning
// tree over the terminals is itself a (suboptimal but easy) Steiner
// tree with no Steiner points.
//
// Grounded on upperbounds.rs's MSTBound.
type MSTBound struct{}

// NewMSTBound constructs an MSTBound heuristic.
func NewMSTBound() MSTBound { return MSTBound{} }

// Name implements Heuristic.
func (MSTBound) Name() string { return "minimum spanning tree" }

// Bound implements Heuristic.
func (MSTBound) Bound(terms []*point.Point, sp space.Space) (*steinertree.Tree, error) {
	tree, err := mst.Kruskal(terms, sp)
	if err != nil {
		return nil, fmt.Errorf("upperbound.MSTBound.Bound: %w", err)
	}

	return tree, nil
}

// ByName resolves a heuristic by its CLI/config name ("line" or
// "mst"), returning ErrUnknownHeuristic otherwise.
func ByName(name string) (Heuristic, error) {
	switch name {
	case "line":
		return NewLineTree(), nil
	case "mst":
		return NewMSTBound(), nil
	default:
		return nil, fmt.Errorf("upperbound.ByName: %w: %q", ErrUnknownHeuristic, name)
	}
}

// ErrUnknownHeuristic indicates ByName was given an unrecognized name.
var ErrUnknownHeuristic = errors.New("upperbound: unknown heuristic")
