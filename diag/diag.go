// Package diag holds the read-only diagnostics counters the core
// exposes in place of surfacing ordinary numerical events as errors
// (SPEC_FULL.md §6, §7): enumerator node counts, per-depth prune counts
// and timings, RMT iterations, best-tree updates, and per-kernel
// fixed-point/precision-error/singularity counts.
//
// Every field here is a plain int64/time.Duration, not an atomic: the
// core is single-threaded end to end (SPEC_FULL.md §5), so there is
// never a second goroutine to race with. This mirrors the teacher's
// tsp.bbEngine, which keeps its own search counters (steps, foundAny) as
// plain struct fields rather than reaching for sync/atomic.
package diag

import "time"

// KernelCounters tracks the numerical events a single geomedian.Kernel
// instance reports while iterating: fixed-point events (iterate
// coincided with a neighbour) and precision errors (a non-finite
// intermediate forced the update to be skipped), plus, for
// Brimberg-Love, the number of individual coordinates that hit a
// per-coordinate singularity.
type KernelCounters struct {
	// FixedPoints counts steps where Weiszfeld reverted to the current
	// iterate because its update was non-finite (the iterate coincided
	// with a neighbour), or where Brimberg-Love found y coinciding with a
	// neighbour and returned that neighbour. Ostresh does not use it; see
	// TruncatedSteps.
	FixedPoints int64

	// PrecisionErrors counts steps where a non-finite intermediate
	// forced the update to be skipped for that step.
	PrecisionErrors int64

	// SingularCoords counts individual per-coordinate singularities
	// handled by Brimberg-Love's coordinate-separable iteration.
	SingularCoords int64

	// TruncatedSteps counts steps where the gradient was singular but a
	// bounded descent step was still taken (Ostresh's unit-ball
	// truncation), as opposed to FixedPoints, which counts steps the
	// kernel skipped outright.
	TruncatedSteps int64
}

// PruneCounters tracks pruning activity at one enumerator depth.
type PruneCounters struct {
	// BSDPrunes counts topologies discarded by bottleneck-Steiner-distance pruning.
	BSDPrunes int64

	// SSPrunes counts topologies discarded by smallest-sphere pruning.
	SSPrunes int64

	// PruneTime accumulates wall-clock time spent evaluating pruning
	// tests at this depth.
	PruneTime time.Duration
}

// Counters is the full diagnostics snapshot SPEC_FULL.md §6 enumerates.
type Counters struct {
	// EnumeratedNodes counts every insertion the enumerator keeps: each
	// partial or full topology that survives pruning and is returned by
	// Next. Pruned insertions and the initial seed are not counted.
	EnumeratedNodes int64

	// PerDepth[d] holds prune counters for insertion depth d (0-indexed
	// by number of terminals already inserted beyond the seed triangle).
	PerDepth []PruneCounters

	// RMTIterations counts whole-tree relaxation passes performed by rmt.Optimizer.Find.
	RMTIterations int64

	// BestUpdates counts how many times the branch-and-bound driver
	// improved its incumbent.
	BestUpdates int64

	// Kernel holds per-kernel-name numerical event counts.
	Kernel map[string]*KernelCounters

	// TotalSearchTime is the wall-clock time spent in smt.Find.
	TotalSearchTime time.Duration

	// MSTInitTime is not set by any code in this module and stays zero.
	// The MST that gpenum builds for its BSD matrix is timed under
	// BSDSSInitTime instead.
	MSTInitTime time.Duration

	// BSDSSInitTime is the wall-clock time spent computing the BSD
	// matrix and SS vector before enumeration begins.
	BSDSSInitTime time.Duration

	// SortTime is the wall-clock time spent ordering terminals via the
	// configured TerminalSorter.
	SortTime time.Duration

	// SelfTime accumulates the whole wall-clock time of every
	// rmt.Optimizer.Find call, for any kernel and space. Under a
	// hyper-ellipsoid, the wrapped Euclidean kernel's own time is not
	// subtracted from it.
	SelfTime time.Duration
}

// New returns a zeroed Counters ready to accumulate diagnostics.
func New() *Counters {
	return &Counters{Kernel: make(map[string]*KernelCounters)}
}

// ForKernel returns the KernelCounters for the named kernel, creating it
// on first use. The name is the kernel's own Name() (e.g. "weiszfeld").
func (c *Counters) ForKernel(name string) *KernelCounters {
	kc, ok := c.Kernel[name]
	if !ok {
		kc = &KernelCounters{}
		c.Kernel[name] = kc
	}

	return kc
}

// AtDepth returns the PruneCounters for insertion depth d, growing
// PerDepth as needed. Depths are visited in increasing order during a
// single enumeration, but AtDepth tolerates out-of-order growth so
// callers never need to pre-size the slice.
func (c *Counters) AtDepth(d int) *PruneCounters {
	for len(c.PerDepth) <= d {
		c.PerDepth = append(c.PerDepth, PruneCounters{})
	}

	return &c.PerDepth[d]
}
