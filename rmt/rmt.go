// Package rmt computes a relatively minimal tree: given a full Steiner
// topology, it repeatedly relaxes every Steiner point towards the
// geometric median of its three neighbours until the tree's total
// length stops shrinking by a meaningful amount (SPEC_FULL.md §4.2).
//
// Grounded on original_source/src/algorithms/rmt.rs's GeoMedianIter (the
// whole-tree relaxation loop, tree_len_cutoff convergence, and selftime
// bookkeeping) and original_source/src/algorithms/geo_median/iterative/mod.rs's
// GeoMedianStepper (the inner per-Steiner-point convergence loop and its
// node_dist_cutoff, the basis for the SteppedToConvergence Strategy
// below). The outer loop's "iterate until delta below tolerance" shape
// also mirrors the teacher's dtw package and tsp/two_opt.go's local
// search, both of which loop a local improvement to a fixed point.
package rmt

import (
	"time"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/geomedian"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/steinertree"
)

// DefaultNodeDistCutoff is GeoMedianStepper's default inner convergence
// tolerance when constructed via Ostresh's own Default (0.0001 in the
// original source).
const DefaultNodeDistCutoff scalar.Real = 0.0001

// DefaultNodeDistCutoffGeneric is the tolerance used when no
// kernel-specific default applies (0.00001, "default_with_step" in the
// original source).
const DefaultNodeDistCutoffGeneric scalar.Real = 0.00001

// DefaultTreeLenCutoff is GeoMedianIter's default outer convergence
// tolerance (0.00001 in the original source).
const DefaultTreeLenCutoff scalar.Real = 0.00001

// Strategy relaxes a single Steiner point s (given its current position
// and its neighbours' positions) towards the geometric median, using
// kernel k, and writes the result back into s in place.
type Strategy interface {
	// Relax applies the strategy's stepping policy to steiner, reporting
	// kernel events into counters (which may be nil).
	Relax(k geomedian.Kernel, steiner *point.Point, neighbors []*point.Point, sp space.Space, counters *diag.KernelCounters) error
}

// SingleStepStrategy applies exactly one Kernel.Step per RMT iteration,
// per Steiner point. It is the cheapest strategy: the outer RMT loop in
// Optimizer.Find supplies the repeated-relaxation behavior instead.
type SingleStepStrategy struct{}

// NewSingleStepStrategy returns a SingleStepStrategy.
func NewSingleStepStrategy() SingleStepStrategy { return SingleStepStrategy{} }

// Relax implements Strategy.
func (SingleStepStrategy) Relax(k geomedian.Kernel, steiner *point.Point, neighbors []*point.Point, sp space.Space, counters *diag.KernelCounters) error {
	return k.Step(steiner, steiner, neighbors, sp, counters)
}

// SteppedToConvergence repeatedly calls Kernel.Step on a single Steiner
// point until consecutive iterates differ by less than NodeDistCutoff
// under sp, mirroring the original's GeoMedianStepper. This concentrates
// all of the work of moving a single Steiner point to its neighbours'
// median in one Strategy.Relax call, rather than spreading it across
// many whole-tree RMT iterations.
type SteppedToConvergence struct {
	// NodeDistCutoff is the per-point convergence tolerance. Zero means
	// DefaultNodeDistCutoffGeneric.
	NodeDistCutoff scalar.Real

	// MaxSteps bounds the inner loop to guard against a kernel that
	// cycles instead of converging. Zero means no bound.
	MaxSteps int
}

// NewSteppedToConvergence returns a SteppedToConvergence strategy with
// the given per-point tolerance.
func NewSteppedToConvergence(nodeDistCutoff scalar.Real) *SteppedToConvergence {
	return &SteppedToConvergence{NodeDistCutoff: nodeDistCutoff}
}

// Relax implements Strategy.
func (s *SteppedToConvergence) Relax(k geomedian.Kernel, steiner *point.Point, neighbors []*point.Point, sp space.Space, counters *diag.KernelCounters) error {
	cutoff := s.NodeDistCutoff
	if cutoff == 0 {
		cutoff = DefaultNodeDistCutoffGeneric
	}

	next := point.New(steiner.ID, make([]scalar.Real, steiner.Dim()))
	for steps := 0; s.MaxSteps == 0 || steps < s.MaxSteps; steps++ {
		if err := k.Step(next, steiner, neighbors, sp, counters); err != nil {
			return err
		}
		d := sp.Dist(steiner, next)
		copy(steiner.Coords, next.Coords)
		if d < cutoff {
			return nil
		}
	}

	return nil
}

// Optimizer repeatedly relaxes every Steiner point of a tree, one whole
// pass at a time, until the tree's total length stops decreasing by at
// least TreeLenCutoff, per iteration.
type Optimizer struct {
	// Kernel is the geometric-median kernel applied to each Steiner
	// point.
	Kernel geomedian.Kernel

	// Strategy controls how many Kernel.Step calls each Steiner point
	// receives per whole-tree pass.
	Strategy Strategy

	// TreeLenCutoff is the outer convergence tolerance: the loop stops
	// once the tree's length decreases by less than this amount in one
	// pass. Zero means DefaultTreeLenCutoff.
	TreeLenCutoff scalar.Real

	// MaxIterations bounds the outer loop. Zero means no bound.
	MaxIterations int
}

// NewOptimizer returns an Optimizer using kernel k and strategy s with
// default tolerances.
func NewOptimizer(k geomedian.Kernel, s Strategy) *Optimizer {
	return &Optimizer{Kernel: k, Strategy: s, TreeLenCutoff: DefaultTreeLenCutoff}
}

// DefaultOptimizer returns the original source's own default RMT
// configuration: Uteshev under SteppedToConvergence.
func DefaultOptimizer() *Optimizer {
	return NewOptimizer(geomedian.NewUteshev(), NewSteppedToConvergence(DefaultNodeDistCutoff))
}

// Find relaxes every Steiner point of tree, one whole-tree pass at a
// time, until the total length stops decreasing by at least
// TreeLenCutoff. It returns the tree's final length. counters receives
// per-kernel event counts and, if non-nil, has its RMTIterations and
// SelfTime fields updated.
func (o *Optimizer) Find(tree *steinertree.Tree, sp space.Space, counters *diag.Counters) (scalar.Real, error) {
	start := time.Now()
	cutoff := o.TreeLenCutoff
	if cutoff == 0 {
		cutoff = DefaultTreeLenCutoff
	}

	var kernelCounters *diag.KernelCounters
	if counters != nil {
		kernelCounters = counters.ForKernel(o.Kernel.Name())
	}

	steinerPts := tree.SteinerPoints()
	neighborCoords := make([][]*point.Point, len(steinerPts))
	for i, s := range steinerPts {
		neighborCoords[i] = neighborPoints(tree, s)
		if err := o.Kernel.Init(s.P, neighborCoords[i], sp); err != nil {
			return 0, err
		}
	}

	lastLen := tree.Length(sp)
	for iter := 0; o.MaxIterations == 0 || iter < o.MaxIterations; iter++ {
		if counters != nil {
			counters.RMTIterations++
		}
		for i, s := range steinerPts {
			if err := o.Strategy.Relax(o.Kernel, s.P, neighborCoords[i], sp, kernelCounters); err != nil {
				return 0, err
			}
		}

		length := tree.Length(sp)
		if lastLen-length < cutoff {
			if counters != nil {
				counters.SelfTime += time.Since(start)
			}

			return length, nil
		}
		lastLen = length
	}

	if counters != nil {
		counters.SelfTime += time.Since(start)
	}

	return lastLen, nil
}

// neighborPoints returns the coordinate vectors (not copies) of s's
// neighbours in tree, in neighbour-slice order.
func neighborPoints(tree *steinertree.Tree, s *steinertree.Node) []*point.Point {
	out := make([]*point.Point, len(s.Neighbors))
	for i, nid := range s.Neighbors {
		n, _ := tree.Node(nid)
		out[i] = n.P
	}

	return out
}
