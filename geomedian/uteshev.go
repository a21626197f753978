package geomedian

import (
	"errors"
	"fmt"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
)

// ErrNotTriangle indicates Uteshev was called on a point with a number
// of neighbours other than three: the closed-form Fermat-point solution
// only applies to a degree-3 Steiner point.
var ErrNotTriangle = errors.New("geomedian: uteshev requires exactly 3 neighbours")

// Uteshev is the closed-form analytical solution for the Euclidean
// Fermat point of a triangle (a degree-3 Steiner point's three
// neighbours): if any angle of the neighbour triangle is >= 120 degrees
// the median coincides with that vertex, otherwise it is a weighted
// combination of the three neighbours with weights derived from the
// triangle's side lengths.
//
// Grounded on original_source/src/algorithms/geo_median/uteshev.rs.
type Uteshev struct{}

// NewUteshev returns a ready-to-use Uteshev kernel.
func NewUteshev() *Uteshev { return &Uteshev{} }

// Name implements Kernel.
func (Uteshev) Name() string { return "uteshev" }

// Init relocates y to the neighbours' centroid if it coincides with any
// of them.
func (Uteshev) Init(y *point.Point, neighbors []*point.Point, sp space.Space) error {
	if err := checkNeighbors(y, neighbors); err != nil {
		return err
	}
	if len(neighbors) != 3 {
		return ErrNotTriangle
	}
	if coincidesWithAny(y, neighbors, sp) {
		c := centroid(neighbors)
		copy(y.Coords, c.Coords)
	}

	return nil
}

// uteshevS returns twice the triangle's area from its side lengths
// (Heron's formula: 16*area^2 = (a+b+c)(-a+b+c)(a-b+c)(a+b-c)).
func uteshevS(xy, xz, yz scalar.Real) scalar.Real {
	return scalar.Real(0.5) * scalar.Sqrt((xy+xz+yz)*(-xy+xz+yz)*(xy-xz+yz)*(xy+xz-yz))
}

func uteshevCa(ab2, ac2, bc2, s scalar.Real) scalar.Real {
	return (ab2+ac2-bc2)*(scalar.Sqrt(3)/2) + s
}

// Step implements Kernel. The closed form depends only on the three
// neighbours' positions; y is read only for its dimension and as the
// per-coordinate fallback when a result is non-finite.
func (u Uteshev) Step(dst, y *point.Point, neighbors []*point.Point, sp space.Space, counters *diag.KernelCounters) error {
	if err := checkNeighbors(y, neighbors); err != nil {
		return err
	}
	if len(neighbors) != 3 {
		return fmt.Errorf("geomedian.Uteshev.Step: %w", ErrNotTriangle)
	}

	x, yy, z := neighbors[0], neighbors[1], neighbors[2]
	xy, xz, yz := sp.Dist(x, yy), sp.Dist(x, z), sp.Dist(yy, z)
	xy2, xz2, yz2 := xy*xy, xz*xz, yz*yz

	cosx := (xy2 + xz2 - yz2) / (2 * xy * xz)
	cosy := (xy2 + yz2 - xz2) / (2 * xy * yz)
	cosz := (xz2 + yz2 - xy2) / (2 * xz * yz)

	switch {
	case cosx <= -0.5:
		copy(dst.Coords, x.Coords)
		return nil
	case cosy <= -0.5:
		copy(dst.Coords, yy.Coords)
		return nil
	case cosz <= -0.5:
		copy(dst.Coords, z.Coords)
		return nil
	}

	s := uteshevS(xy, xz, yz)
	cxr := scalar.Recip(uteshevCa(xy2, xz2, yz2, s))
	cyr := scalar.Recip(uteshevCa(xy2, yz2, xz2, s))
	czr := scalar.Recip(uteshevCa(xz2, yz2, xy2, s))

	dim := x.Dim()
	// Any per-coordinate non-finite result falls back to y's current
	// value at that coordinate rather than reverting the whole point,
	// matching the original's per-coordinate "a.is_number()" guard
	// (there, pk aliases the node's own, not-yet-overwritten position).
	copy(dst.Coords, y.Coords)
	for k := 0; k < dim; k++ {
		a := x.Coords[k]*cxr + yy.Coords[k]*cyr + z.Coords[k]*czr
		if scalar.IsFinite(a) {
			dst.Coords[k] = a
		} else if counters != nil {
			counters.PrecisionErrors++
		}
	}

	mul := scalar.Recip(cxr + cyr + czr)
	for k := 0; k < dim; k++ {
		a := mul * dst.Coords[k]
		if scalar.IsFinite(a) {
			dst.Coords[k] = a
		} else if counters != nil {
			counters.PrecisionErrors++
		}
	}

	return nil
}
