// Package geomedian implements the geometric-median kernels used to
// relax a Steiner point towards the point minimizing the sum of
// distances to its neighbours, the inner loop of the RMT
// (relatively-minimal-tree) optimization (SPEC_FULL.md §4.1, §4.2).
//
// Each kernel operates on plain point.Point values rather than on a
// steinertree.Node or Tree: the rmt package is responsible for pulling
// a Steiner point's current coordinate and its neighbours' coordinates
// out of the tree and handing them to a Kernel, keeping this package
// decoupled from the tree's arena-index structure (mirrors how the
// teacher's tsp package keeps its bbEngine free of any core.Graph
// dependency beyond what initPrefetch copies out).
//
// Grounded on the original Rust geo_median/{iterative,uteshev}.rs
// sources (see DESIGN.md), translated into idiomatic Go: error/event
// reporting goes through a diag.KernelCounters rather than an internal
// struct field, and iteration lives one level up in rmt.Strategy
// rather than inside the kernel itself.
package geomedian

import (
	"errors"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
)

// ErrNoNeighbors indicates a kernel was asked to relax a point with no
// neighbours, which has no defined geometric median.
var ErrNoNeighbors = errors.New("geomedian: point has no neighbours")

// ErrDimensionMismatch indicates y and its neighbours do not all share
// the same dimension.
var ErrDimensionMismatch = errors.New("geomedian: dimension mismatch")

// Kernel computes one relaxation step of a Steiner point y towards the
// geometric median of its neighbours under sp, writing the result into
// dst (which may alias y). Step reports fixed-point/precision-error
// events it observes into counters, which may be nil to discard them.
//
// Init prepares y for iteration (e.g. nudging it off a degenerate
// starting position) and is called exactly once before the first Step.
type Kernel interface {
	// Name identifies the kernel for diagnostics and reporting
	// (e.g. "weiszfeld", "uteshev").
	Name() string

	// Init adjusts y in place before the first Step call.
	Init(y *point.Point, neighbors []*point.Point, sp space.Space) error

	// Step computes one relaxation of y towards its neighbours'
	// geometric median under sp, writing the result to dst.
	Step(dst, y *point.Point, neighbors []*point.Point, sp space.Space, counters *diag.KernelCounters) error
}

// checkNeighbors validates neighbors is non-empty and every point
// (including y) shares y's dimension.
func checkNeighbors(y *point.Point, neighbors []*point.Point) error {
	if len(neighbors) == 0 {
		return ErrNoNeighbors
	}
	dim := y.Dim()
	for _, n := range neighbors {
		if n.Dim() != dim {
			return ErrDimensionMismatch
		}
	}

	return nil
}

// centroid returns the arithmetic mean of neighbors, used by several
// kernels' Init to move a degenerate starting point off a neighbour.
func centroid(neighbors []*point.Point) *point.Point {
	dim := neighbors[0].Dim()
	sum := point.New(0, make([]scalar.Real, dim))
	for _, n := range neighbors {
		for k := 0; k < dim; k++ {
			sum.Coords[k] += n.Coords[k]
		}
	}
	inv := scalar.One / scalar.Real(len(neighbors))
	for k := 0; k < dim; k++ {
		sum.Coords[k] *= inv
	}

	return sum
}

// coincidesWithAny reports whether y has zero distance to any neighbor
// under sp, the degenerate starting condition several kernels correct
// for in Init.
func coincidesWithAny(y *point.Point, neighbors []*point.Point, sp space.Space) bool {
	for _, n := range neighbors {
		if sp.Dist(y, n) == scalar.Zero {
			return true
		}
	}

	return false
}
