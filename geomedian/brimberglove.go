package geomedian

import (
	"errors"
	"fmt"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
)

// ErrInvalidP indicates BrimbergLove was constructed with p outside its
// valid range [1, 2].
var ErrInvalidP = errors.New("geomedian: brimberg-love requires 1 <= p <= 2")

// BrimbergLove is a coordinate-separable fixed-point iteration for the
// geometric median under an L_p norm with 1 <= p <= 2. Unlike Weiszfeld
// and Ostresh, which operate on the whole vector at once, each
// coordinate is updated from its own weighted average, with per-axis
// weights a_k = |y_k-t_k|^(p-2) * dist(y,t)^(1-p) blending every
// neighbour t.
//
// Grounded on original_source/src/algorithms/geo_median/iterative/brimberglove.rs.
type BrimbergLove struct {
	p scalar.Real
}

// NewBrimbergLove constructs a BrimbergLove kernel for order p. Returns
// ErrInvalidP outside [1, 2].
func NewBrimbergLove(p scalar.Real) (*BrimbergLove, error) {
	if p < 1 || p > 2 {
		return nil, fmt.Errorf("geomedian.NewBrimbergLove(%v): %w", p, ErrInvalidP)
	}

	return &BrimbergLove{p: p}, nil
}

// Name implements Kernel.
func (b *BrimbergLove) Name() string { return "brimberglove" }

// Init relocates y to the neighbours' centroid if it coincides with any
// of them, since per-axis weights are singular at zero distance.
func (b *BrimbergLove) Init(y *point.Point, neighbors []*point.Point, sp space.Space) error {
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
func (b *BrimbergLove) Step(dst, y *point.Point, neighbors []*point.Point, sp space.Space, counters *diag.KernelCounters) error {
	if err := checkNeighbors(y, neighbors); err != nil {
		return err
	}

	dim := y.Dim()
	numer := make([]scalar.Real, dim)
	denom := make([]scalar.Real, dim)
	singularVal := make([]scalar.Real, dim)
	singular := make([]bool, dim)

	for _, t := range neighbors {
		d := sp.Dist(y, t)
		dpow := scalar.Pow(d, scalar.One-b.p)
		if !scalar.IsFinite(dpow) {
			// The whole point coincides with t under this norm: the
			// median collapses to that neighbour regardless of the
			// others' contribution.
			if counters != nil {
				counters.FixedPoints++
			}
			copy(dst.Coords, t.Coords)

			return nil
		}

		for k := 0; k < dim; k++ {
			if singular[k] {
				continue
			}
			a := scalar.Pow(scalar.Abs(y.Coords[k]-t.Coords[k]), b.p-2) * dpow
			if !scalar.IsFinite(a) {
				singular[k] = true
				singularVal[k] = t.Coords[k]
				if counters != nil {
					counters.SingularCoords++
				}
				continue
			}
			numer[k] += t.Coords[k] * a
			denom[k] += a
		}
	}

	for k := 0; k < dim; k++ {
		if singular[k] {
			dst.Coords[k] = singularVal[k]
		} else {
			dst.Coords[k] = numer[k] / denom[k]
		}
	}

	return nil
}
