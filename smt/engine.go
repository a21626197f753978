package smt

import (
	"time"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/gpenum"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/rmt"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/steinertree"
)

// engine holds all search data and collaborators for one Find call.
//
// Grounded on tsp/bb.go's bbEngine: a dedicated struct for configuration,
// precomputed collaborators, and incumbent state, rather than an
// anonymous-closure search.
type engine struct {
	opts Options

	enumerator *gpenum.Enumerator
	optimizer  *rmt.Optimizer

	best    *steinertree.Tree
	bestLen scalar.Real
}

// Find runs the full Gilbert-Pollak branch-and-bound search over terms:
// it seeds an incumbent from opts.UpperBound, then enumerates every full
// Steiner topology via gpenum, relaxes each to a relatively minimal tree
// via rmt, and keeps the shortest tree seen. If opts is nil,
// DefaultOptions is used; any nil field of a supplied Options is filled
// from DefaultOptions.
//
// Grounded on original_source/src/algorithms/steinerbnb.rs's
// SteinerBnB::find, translated near verbatim except for the full-
// topology test: the original compares
// `enumerator.tree().terminals().len() == best.terminals().len()`,
// which relies on its dynamically growing node list; this port's
// gpenum.Enumerator pre-populates every terminal statically (see
// gpenum's package doc), so the equivalent test here is
// enumerator.Tree().IsFullTopology().
func Find(terms []*point.Point, opts *Options, counters *diag.Counters) (*steinertree.Tree, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	o = o.fillDefaults()

	start := time.Now()

	best, err := o.UpperBound.Bound(terms, o.Space)
	if err != nil {
		return nil, err
	}

	e := &engine{
		opts:       o,
		enumerator: gpenum.NewEnumerator(o.Sorter),
		optimizer:  rmt.NewOptimizer(o.GeoMedianKernel, o.Strategy),
		best:       best,
		bestLen:    best.Length(o.Space),
	}
	e.enumerator.EnableBSD = o.EnableBSD
	e.enumerator.EnableSS = o.EnableSS
	e.optimizer.TreeLenCutoff = o.RMTTreeLenCutoff
	e.optimizer.MaxIterations = o.RMTMaxIterations

	if err := e.enumerator.Init(terms, o.Space, counters); err != nil {
		return nil, err
	}

	if err := e.search(counters); err != nil {
		return nil, err
	}

	if counters != nil {
		counters.TotalSearchTime += time.Since(start)
	}

	return e.best, nil
}

// search drives the enumerate-relax-compare loop until the enumerator is
// exhausted.
func (e *engine) search(counters *diag.Counters) error {
	for e.enumerator.Next(e.opts.Space, counters) {
		if !e.enumerator.Tree().IsFullTopology() {
			continue
		}

		length, err := e.optimizer.Find(e.enumerator.Tree(), e.opts.Space, counters)
		if err != nil {
			return err
		}
		if length < e.bestLen {
			if counters != nil {
				counters.BestUpdates++
			}
			e.best = e.enumerator.Tree().Clone()
			e.bestLen = length
		}
	}

	return nil
}
