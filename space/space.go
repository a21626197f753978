// Package space implements the Minkowski norm/distance formulas the
// Steiner tree core is parameterized over: Euclidean, general L_p
// (1 <= p < Inf), L_Inf (Chebyshev), and a hyper-ellipsoid with per-axis
// scale factors. Every geomedian kernel and every length computation in
// steinertree/mst/rmt/gpenum goes through the Space interface, never a
// concrete type, so a new norm can be added without touching the solver.
package space

import (
	"errors"
	"fmt"

	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
)

// ErrInvalidP indicates an L_p space was constructed with p < 1.
var ErrInvalidP = errors.New("space: p must be >= 1")

// ErrScaleMismatch indicates a HyperEllipsoid was constructed with a
// scale slice whose length does not match the points it is later asked
// to measure.
var ErrScaleMismatch = errors.New("space: axis scale dimension mismatch")

// ErrNonPositiveScale indicates a HyperEllipsoid axis scale was <= 0.
var ErrNonPositiveScale = errors.New("space: axis scale must be > 0")

// Space computes the norm of a point and the distance between two
// points, both under a fixed metric. Implementations must be safe for
// repeated calls with arbitrary-dimension points of matching dimension;
// behavior on dimension mismatch is implementation-defined (NaN results
// are acceptable, since the core discriminates via scalar.IsFinite).
type Space interface {
	// Norm returns ||p|| under this space's metric.
	Norm(p *point.Point) scalar.Real

	// Dist returns the distance between p1 and p2 under this space's
	// metric. For every Space in this package, Dist(p1,p2) == Norm(p1-p2).
	Dist(p1, p2 *point.Point) scalar.Real
}

// diff computes p1-p2 into a freshly allocated point, used internally by
// Dist implementations that reduce to Norm of the difference.
func diff(p1, p2 *point.Point) *point.Point {
	d := point.New(0, make([]scalar.Real, len(p1.Coords)))
	_ = point.Sub(d, p1, p2)

	return d
}

// Euclidean is the L_2 norm: sqrt(sum x_k^2).
type Euclidean struct{}

// NewEuclidean constructs the Euclidean space. It takes no parameters;
// it is exported as a constructor (rather than a bare value) to match
// the other spaces' constructor shape and leave room for future options.
func NewEuclidean() Euclidean {
	return Euclidean{}
}

// Norm implements Space.
func (Euclidean) Norm(p *point.Point) scalar.Real {
	var sum scalar.Real
	for _, c := range p.Coords {
		sum += c * c
	}

	return scalar.Sqrt(sum)
}

// Dist implements Space.
func (e Euclidean) Dist(p1, p2 *point.Point) scalar.Real {
	return e.Norm(diff(p1, p2))
}

// Lp is the general L_p norm: (sum |x_k|^p)^(1/p), for 1 <= p < Inf.
type Lp struct {
	p scalar.Real
}

// NewLp constructs an L_p space. Returns ErrInvalidP when p < 1.
func NewLp(p scalar.Real) (Lp, error) {
	if p < 1 {
		return Lp{}, fmt.Errorf("space.NewLp(%v): %w", p, ErrInvalidP)
	}

	return Lp{p: p}, nil
}

// P returns the order of this L_p space.
func (s Lp) P() scalar.Real {
	return s.p
}

// Norm implements Space.
func (s Lp) Norm(p *point.Point) scalar.Real {
	var sum scalar.Real
	for _, c := range p.Coords {
		sum += scalar.Pow(scalar.Abs(c), s.p)
	}

	return scalar.Pow(sum, scalar.Recip(s.p))
}

// Dist implements Space.
func (s Lp) Dist(p1, p2 *point.Point) scalar.Real {
	return s.Norm(diff(p1, p2))
}

// LInf is the Chebyshev / L_infinity norm: max_k |x_k|.
type LInf struct{}

// NewLInf constructs the L_infinity space.
func NewLInf() LInf {
	return LInf{}
}

// Norm implements Space.
func (LInf) Norm(p *point.Point) scalar.Real {
	var m scalar.Real
	for i, c := range p.Coords {
		a := scalar.Abs(c)
		if i == 0 || a > m {
			m = a
		}
	}

	return m
}

// Dist implements Space.
func (s LInf) Dist(p1, p2 *point.Point) scalar.Real {
	return s.Norm(diff(p1, p2))
}

// HyperEllipsoid is a Euclidean space rescaled per axis by a_k > 0:
// ||x||_ellipsoid = sqrt(sum (x_k/a_k)^2). Per SPEC_FULL.md §4.7, the
// geometric-median solvers treat this as a pure coordinate-transform
// wrapper around a Euclidean kernel (see geomedian.HyperEllipsoidDecorator);
// this type only supplies the norm/distance formulas themselves.
type HyperEllipsoid struct {
	scales []scalar.Real
}

// NewHyperEllipsoid constructs a hyper-ellipsoid space with the given
// per-axis scale factors. Returns ErrNonPositiveScale if any a_k <= 0.
func NewHyperEllipsoid(scales []scalar.Real) (*HyperEllipsoid, error) {
	cp := make([]scalar.Real, len(scales))
	for i, a := range scales {
		if a <= 0 {
			return nil, fmt.Errorf("space.NewHyperEllipsoid: axis %d: %w", i, ErrNonPositiveScale)
		}
		cp[i] = a
	}

	return &HyperEllipsoid{scales: cp}, nil
}

// Scales returns the per-axis scale factors, in axis order.
func (h *HyperEllipsoid) Scales() []scalar.Real {
	out := make([]scalar.Real, len(h.scales))
	copy(out, h.scales)

	return out
}

// Norm implements Space.
func (h *HyperEllipsoid) Norm(p *point.Point) scalar.Real {
	if len(p.Coords) != len(h.scales) {
		return scalar.Sqrt(-1) // NaN: dimension mismatch signalled via IsFinite, not a panic.
	}
	var sum scalar.Real
	for i, c := range p.Coords {
		r := c / h.scales[i]
		sum += r * r
	}

	return scalar.Sqrt(sum)
}

// Dist implements Space.
func (h *HyperEllipsoid) Dist(p1, p2 *point.Point) scalar.Real {
	return h.Norm(diff(p1, p2))
}

// Rescale divides src's coordinates by this ellipsoid's axis scales,
// writing the Euclidean-equivalent point into dst. Unscale is its
// inverse. Both are used by geomedian.HyperEllipsoidDecorator to
// transform Steiner-point and neighbour coordinates into and out of the
// unit sphere around a wrapped Euclidean kernel, per SPEC_FULL.md §4.7.
func (h *HyperEllipsoid) Rescale(dst, src *point.Point) error {
	if len(src.Coords) != len(h.scales) {
		return fmt.Errorf("space.HyperEllipsoid.Rescale: %w", ErrScaleMismatch)
	}
	for i, c := range src.Coords {
		dst.Coords[i] = c / h.scales[i]
	}

	return nil
}

// Unscale multiplies src's coordinates by this ellipsoid's axis scales,
// writing the result into dst; it is the inverse of Rescale.
func (h *HyperEllipsoid) Unscale(dst, src *point.Point) error {
	if len(src.Coords) != len(h.scales) {
		return fmt.Errorf("space.HyperEllipsoid.Unscale: %w", ErrScaleMismatch)
	}
	for i, c := range src.Coords {
		dst.Coords[i] = c * h.scales[i]
	}

	return nil
}
