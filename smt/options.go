// Package smt implements the Gilbert-Pollak branch-and-bound driver: it
// enumerates every full Steiner topology over a terminal set, relaxes
// each to a relatively minimal tree, and returns the shortest one found
// (SPEC_FULL.md §4.6).
//
// Grounded on original_source/src/algorithms/steinerbnb.rs's SteinerBnB,
// whose find method is translated here essentially unchanged in shape
// (seed an incumbent from an upper-bound heuristic, enumerate, relax
// each full topology, keep the shortest), and on the teacher's
// tsp/bb.go's bbEngine: a dedicated engine struct holding configuration,
// collaborator instances, and incumbent state as fields, built by a
// small exported driver function, rather than a tangle of closures.
package smt

import (
	"github.com/arbortree/gpsmt/geomedian"
	"github.com/arbortree/gpsmt/gpenum"
	"github.com/arbortree/gpsmt/rmt"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/upperbound"
)

// Options configures a single Find call: the space to search in and
// every pluggable collaborator (terminal order, pruning tests, the
// geometric-median kernel and its per-point relaxation strategy, and
// the upper-bound heuristic that seeds the incumbent).
type Options struct {
	// Space is the Minkowski space terminals and Steiner points are
	// measured and relaxed in.
	Space space.Space

	// Sorter orders terminals before enumeration begins. Nil means
	// gpenum.FurthestSiteOrdering.
	Sorter gpenum.TerminalSorter

	// EnableBSD and EnableSS toggle the two admissible pruning tests.
	EnableBSD bool
	EnableSS  bool

	// GeoMedianKernel is the geometric-median kernel applied to every
	// Steiner point during RMT relaxation. Nil means geomedian.Uteshev.
	GeoMedianKernel geomedian.Kernel

	// Strategy controls how many Kernel.Step calls each Steiner point
	// receives per RMT pass. Nil means rmt.SteppedToConvergence with
	// rmt.DefaultNodeDistCutoff.
	Strategy rmt.Strategy

	// RMTTreeLenCutoff is RMT's outer convergence tolerance. Zero means
	// rmt.DefaultTreeLenCutoff.
	RMTTreeLenCutoff scalar.Real

	// RMTMaxIterations bounds RMT's outer loop. Zero means no bound.
	RMTMaxIterations int

	// UpperBound seeds the incumbent before enumeration starts. Nil
	// means upperbound.LineTree, the original's own default.
	UpperBound upperbound.Heuristic
}

// DefaultOptions returns the original source's own default
// configuration under the Euclidean metric: FurthestSiteOrdering, both
// pruning tests on, Uteshev relaxed to per-point convergence, and
// LineTree seeding the incumbent.
//
// Grounded on steinerbnb.rs's Default impl, which wires
// GeoMedianIter::default() + GPEnumeration::default() + LineTree::default().
func DefaultOptions() *Options {
	return &Options{
		Space:           space.NewEuclidean(),
		Sorter:          gpenum.FurthestSiteOrdering{},
		EnableBSD:       true,
		EnableSS:        true,
		GeoMedianKernel: geomedian.NewUteshev(),
		Strategy:        rmt.NewSteppedToConvergence(rmt.DefaultNodeDistCutoff),
		UpperBound:      upperbound.NewLineTree(),
	}
}

// fillDefaults returns a copy of o with every nil field replaced by
// DefaultOptions' value, so callers may supply a partially-populated
// Options. EnableBSD and EnableSS are used as given, so both pruning
// tests are off unless the caller sets them.
func (o Options) fillDefaults() Options {
	d := DefaultOptions()
	if o.Space == nil {
		o.Space = d.Space
	}
	if o.Sorter == nil {
		o.Sorter = d.Sorter
	}
	if o.GeoMedianKernel == nil {
		o.GeoMedianKernel = d.GeoMedianKernel
	}
	if o.Strategy == nil {
		o.Strategy = d.Strategy
	}
	if o.UpperBound == nil {
		o.UpperBound = d.UpperBound
	}

	return o
}
