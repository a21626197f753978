package geomedian

import (
	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
)

// Weiszfeld is the classical Euclidean geometric-median fixed-point
// iteration: x_next = (sum_i n_i/d_i) / (sum_i 1/d_i), where d_i is the
// Euclidean distance from the current iterate to neighbour n_i.
//
// Grounded on original_source/src/algorithms/geo_median/iterative/weiszfeld.rs.
// The original counts a "fixed point" event whenever the freshly computed
// iterate IS finite (i.e. on ordinary, successful steps) — SPEC_FULL.md's
// Open Question #2 flags this as inverted from the documented intent, and
// the original's own FixedPointData is never consulted for convergence, so
// this kernel instead counts a fixed point only on the degenerate path: a
// non-finite result, where the iterate is reverted to the previous value.
type Weiszfeld struct{}

// NewWeiszfeld returns a ready-to-use Weiszfeld kernel. It holds no state.
func NewWeiszfeld() *Weiszfeld { return &Weiszfeld{} }

// Name implements Kernel.
func (Weiszfeld) Name() string { return "weiszfeld" }

// Init moves y to the centroid of its neighbours if y coincides with any
// of them, since the fixed-point update is singular at zero distance.
func (Weiszfeld) Init(y *point.Point, neighbors []*point.Point, sp space.Space) error {
	if err := checkNeighbors(y, neighbors); err != nil {
		return err
	}
	if coincidesWithAny(y, neighbors, sp) {
		c := centroid(neighbors)
		copy(y.Coords, c.Coords)
	}

	return nil
}

// Step implements Kernel.
func (w Weiszfeld) Step(dst, y *point.Point, neighbors []*point.Point, sp space.Space, counters *diag.KernelCounters) error {
	if err := checkNeighbors(y, neighbors); err != nil {
		return err
	}

	dim := y.Dim()
	numer := make([]scalar.Real, dim)
	var denom scalar.Real
	for _, n := range neighbors {
		d := sp.Dist(y, n)
		inv := scalar.Recip(d)
		for k := 0; k < dim; k++ {
			numer[k] += n.Coords[k] * inv
		}
		denom += inv
	}

	finite := true
	for k := 0; k < dim; k++ {
		x := numer[k] / denom
		if !scalar.IsFinite(x) {
			finite = false
			break
		}
		numer[k] = x
	}

	if !finite {
		if counters != nil {
			counters.FixedPoints++
		}
		copy(dst.Coords, y.Coords)

		return nil
	}

	copy(dst.Coords, numer)

	return nil
}
