package geomedian

import (
	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
)

// Ostresh is Weiszfeld's method hardened against the classical
// "landing on a neighbour" singularity: when the gradient of the sum of
// distances becomes singular at y, the step is truncated to a bounded
// descent direction instead of dividing by a vanishing distance.
//
// Grounded on original_source/src/algorithms/geo_median/iterative/ostresh.rs.
type Ostresh struct{}

// NewOstresh returns a ready-to-use Ostresh kernel.
func NewOstresh() *Ostresh { return &Ostresh{} }

// Name implements Kernel.
func (Ostresh) Name() string { return "ostresh" }

// Init mirrors Weiszfeld.Init: relocate y to the neighbours' centroid if
// it coincides with any of them.
func (Ostresh) Init(y *point.Point, neighbors []*point.Point, sp space.Space) error {
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
func (o Ostresh) Step(dst, y *point.Point, neighbors []*point.Point, sp space.Space, counters *diag.KernelCounters) error {
	if err := checkNeighbors(y, neighbors); err != nil {
		return err
	}

	dim := y.Dim()
	g := make([]scalar.Real, dim)
	var s scalar.Real
	singular := false

	for _, n := range neighbors {
		d := sp.Dist(y, n)
		inv := scalar.Recip(d)

		gadd := make([]scalar.Real, dim)
		finiteAdd := true
		for k := 0; k < dim; k++ {
			gadd[k] = (y.Coords[k] - n.Coords[k]) * inv
			if !scalar.IsFinite(gadd[k]) {
				finiteAdd = false
			}
		}
		if !finiteAdd || !scalar.IsFinite(s+inv) {
			singular = true
			continue
		}
		for k := 0; k < dim; k++ {
			g[k] += gadd[k]
		}
		s += inv
	}

	if singular {
		if counters != nil {
			counters.TruncatedSteps++
		}
		// Truncate the accumulated gradient by the unit ball: if its
		// norm is at most 1, the singular neighbour dominates and the
		// step collapses to zero; otherwise shorten it by one unit along
		// its own direction (g - g/||g||).
		norm := scalar.Zero
		for k := 0; k < dim; k++ {
			norm += g[k] * g[k]
		}
		norm = scalar.Sqrt(norm)
		if norm <= scalar.One {
			for k := 0; k < dim; k++ {
				g[k] = scalar.Zero
			}
		} else {
			inv := scalar.Recip(norm)
			for k := 0; k < dim; k++ {
				g[k] -= g[k] * inv
			}
		}
	}

	finite := true
	result := make([]scalar.Real, dim)
	for k := 0; k < dim; k++ {
		result[k] = y.Coords[k] - g[k]/s
		if !scalar.IsFinite(result[k]) {
			finite = false
		}
	}

	if !finite {
		if counters != nil {
			counters.PrecisionErrors++
		}
		copy(dst.Coords, y.Coords)

		return nil
	}

	copy(dst.Coords, result)

	return nil
}
