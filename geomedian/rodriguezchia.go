package geomedian

import (
	"errors"
	"fmt"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
)

// ErrInvalidOrder indicates RodriguezChia was constructed with p <= 2;
// Brimberg-Love already covers 1 <= p <= 2, so this kernel restricts
// itself to the range it was derived for.
var ErrInvalidOrder = errors.New("geomedian: rodriguez-chia requires p > 2")

// hsmooth is the hyperbolic smoothing of |c|: sqrt(c*c + eps). As eps
// shrinks to 0 it converges to the true absolute value while remaining
// smooth (and hence differentiable) at c == 0, the device both
// Rodriguez-Chia/Valero-Franco and the original Chia-Franco solver use
// to avoid the |.|^(p-2) singularity of BrimbergLove at p > 2.
func hsmooth(c, eps scalar.Real) scalar.Real {
	return scalar.Sqrt(c*c + eps)
}

// RodriguezChia is a hyperbolic-smoothing Weiszfeld-type iteration for
// the geometric median under an L_p norm with p > 2, due to
// Rodriguez-Chia and Valero-Franco. At each step it computes a Newton-
// like correction (gamma, lambda) of a Weiszfeld-style update and walks
// a shrinking epsilon schedule towards the true L_p median.
//
// Grounded on original_source/src/algorithms/geo_median/iterative/chiafranco.rs
// (named ChiaFranco there; renamed for the authors of the underlying
// hyperbolic-smoothing method per SPEC_FULL.md §4.1).
type RodriguezChia struct {
	p       scalar.Real
	epsilon scalar.Real
	// schedule computes the epsilon to use at step s (0-indexed), nil
	// meaning the fixed RodriguezChia.epsilon is used throughout.
	schedule func(step int) scalar.Real
	step     int
}

// NewRodriguezChia constructs a fixed-epsilon kernel. Returns
// ErrInvalidOrder when p <= 2.
func NewRodriguezChia(p, epsilon scalar.Real) (*RodriguezChia, error) {
	if p <= 2 {
		return nil, fmt.Errorf("geomedian.NewRodriguezChia(%v): %w", p, ErrInvalidOrder)
	}

	return &RodriguezChia{p: p, epsilon: epsilon}, nil
}

// NewRodriguezChiaSchedule constructs a kernel whose epsilon shrinks
// across successive Step calls according to schedule(step). The error
// bound of the resulting iterate relative to the true L_p median is
// ErrorBound(treeLen, p, epsilon) for whatever epsilon the schedule settled
// on at the final step.
func NewRodriguezChiaSchedule(p scalar.Real, schedule func(step int) scalar.Real) (*RodriguezChia, error) {
	if p <= 2 {
		return nil, fmt.Errorf("geomedian.NewRodriguezChiaSchedule(%v): %w", p, ErrInvalidOrder)
	}

	return &RodriguezChia{p: p, schedule: schedule}, nil
}

// ErrorBound returns the a-priori bound on the distance between a fixed
// point of this iteration and the true L_p geometric median, for a tree
// of total length treeLen and smoothing parameter epsilon:
// treeLen * 2^(1/p) * sqrt(epsilon).
func ErrorBound(treeLen, p, epsilon scalar.Real) scalar.Real {
	return treeLen * scalar.Pow(2, scalar.Recip(p)) * scalar.Sqrt(epsilon)
}

// Name implements Kernel.
func (k *RodriguezChia) Name() string { return "rodriguezchia" }

// Init relocates y to the neighbours' centroid if it coincides with any
// of them, and resets the epsilon schedule step counter.
func (k *RodriguezChia) Init(y *point.Point, neighbors []*point.Point, sp space.Space) error {
	if err := checkNeighbors(y, neighbors); err != nil {
		return err
	}
	k.step = 0
	if coincidesWithAny(y, neighbors, sp) {
		c := centroid(neighbors)
		copy(y.Coords, c.Coords)
	}

	return nil
}

func (k *RodriguezChia) eps() scalar.Real {
	if k.schedule != nil {
		return k.schedule(k.step)
	}

	return k.epsilon
}

// ykComponent computes the weighted-average update of coordinate k for
// the interpolation parameter lambda, per chiafranco.rs's `yk`: each
// neighbour t contributes common = h(y_k-t_k,eps)^(p-2) / ||h(y-t,eps)||^(p-1),
// blending (1-lambda)*y_k + lambda*t_k.
func (k *RodriguezChia) ykComponent(y []scalar.Real, neighborPts []*point.Point, kIdx int, lambda, eps scalar.Real) scalar.Real {
	var numer, denom scalar.Real
	for _, t := range neighborPts {
		var normSum scalar.Real
		for d := range y {
			normSum += scalar.Pow(hsmooth(y[d]-t.Coords[d], eps), 2)
		}
		normterm := scalar.Pow(scalar.Sqrt(normSum), k.p-1)
		common := scalar.Pow(hsmooth(y[kIdx]-t.Coords[kIdx], eps), k.p-2) / normterm
		denom += common
		numer += common * ((1-lambda)*y[kIdx] + lambda*t.Coords[kIdx])
	}

	return numer / denom
}

// Step implements Kernel.
func (k *RodriguezChia) Step(dst, y *point.Point, neighbors []*point.Point, sp space.Space, counters *diag.KernelCounters) error {
	if err := checkNeighbors(y, neighbors); err != nil {
		return err
	}

	eps := k.eps()
	k.step++
	dim := y.Dim()

	gamma := make([]scalar.Real, dim)
	for kk := 0; kk < dim; kk++ {
		gamma[kk] = k.ykComponent(y.Coords, neighbors, kk, scalar.One, eps)
	}

	var psi0, psif scalar.Real
	for kk := 0; kk < dim; kk++ {
		square := (gamma[kk] - y.Coords[kk]) * (gamma[kk] - y.Coords[kk])
		for _, t := range neighbors {
			var normSum scalar.Real
			for d := 0; d < dim; d++ {
				normSum += scalar.Pow(hsmooth(y.Coords[d]-t.Coords[d], eps), 2)
			}
			normterm := scalar.Pow(scalar.Sqrt(normSum), k.p-1)

			psi0 += square * (hsmooth(y.Coords[kk]-t.Coords[kk], eps) / normterm)

			shifted := y.Coords[kk] - t.Coords[kk] + (2/(k.p-1))*(gamma[kk]-y.Coords[kk])
			psif += square * (hsmooth(shifted, eps) / normterm)
		}
	}

	var lambda scalar.Real
	if k.p > 3 {
		denom := -k.p * (k.p - 1) * psif
		lambda = scalar.Min(2/(k.p-1), (-2*psi0*k.p)/denom)
	} else {
		var sumterm scalar.Real
		for _, t := range neighbors {
			var normSum scalar.Real
			for d := 0; d < dim; d++ {
				normSum += scalar.Pow(hsmooth(y.Coords[d]-t.Coords[d], eps), 2)
			}
			sumterm += scalar.Pow(scalar.Sqrt(normSum), 1-k.p)
		}

		var gammaNormSum scalar.Real
		for kk := 0; kk < dim; kk++ {
			gammaNormSum += scalar.Pow(hsmooth(gamma[kk]-y.Coords[kk], eps), 2)
		}
		normterm := scalar.Pow(scalar.Sqrt(gammaNormSum), k.p)

		denom := k.p*psi0 - k.p*k.p*psi0 - k.p*(k.p-1)*scalar.Pow(2/(k.p-1), k.p-2)*normterm*sumterm
		lambda = (-2 * psi0 * k.p) / denom
	}

	finite := scalar.IsFinite(lambda)
	result := make([]scalar.Real, dim)
	if finite {
		for kk := 0; kk < dim; kk++ {
			result[kk] = k.ykComponent(y.Coords, neighbors, kk, lambda, eps)
			if !scalar.IsFinite(result[kk]) {
				finite = false
				break
			}
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
