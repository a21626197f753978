// Package point defines the coordinate-vector type shared by every
// geometric component of the Steiner tree core: terminals, Steiner points,
// and the intermediate iterates produced by the geomedian kernels.
//
// A Point is an ordered sequence of scalar.Real coordinates plus an
// integer identity assigned by the caller (steinertree assigns ids equal
// to a node's arena index; callers constructing terminal sets are free to
// assign whatever ids are meaningful to them). Two points with equal
// coordinates are equal regardless of id — Equal below compares
// coordinates only, matching the data model in SPEC_FULL.md §3.
package point

import (
	"errors"
	"fmt"

	"github.com/arbortree/gpsmt/scalar"
)

// ErrDimensionMismatch indicates two points participating in an operation
// have a different number of coordinates.
var ErrDimensionMismatch = errors.New("point: dimension mismatch")

// Point is a d-dimensional coordinate vector with an integer identity.
type Point struct {
	// ID is an arbitrary caller-assigned identity. It plays no role in
	// arithmetic or equality; it exists so collaborators (steinertree,
	// terminal sorters, diagnostics) can refer to a point stably.
	ID int

	// Coords holds the point's coordinates. Length is the dimension d.
	Coords []scalar.Real
}

// New constructs a Point with the given id and coordinates. The slice is
// used as-is (not copied); callers that need isolation should Clone.
func New(id int, coords []scalar.Real) *Point {
	return &Point{ID: id, Coords: coords}
}

// Dim returns the number of coordinates.
func (p *Point) Dim() int {
	return len(p.Coords)
}

// Clone returns a deep copy of p: a new Point with the same id and an
// independent copy of the coordinate slice.
func (p *Point) Clone() *Point {
	c := make([]scalar.Real, len(p.Coords))
	copy(c, p.Coords)

	return &Point{ID: p.ID, Coords: c}
}

// Zero sets every coordinate of p to scalar.Zero, in place.
func (p *Point) Zero() {
	for i := range p.Coords {
		p.Coords[i] = scalar.Zero
	}
}

// Equal reports whether p and q have identical coordinates (ignoring ID).
// Points of differing dimension are never equal.
func (p *Point) Equal(q *Point) bool {
	if len(p.Coords) != len(q.Coords) {
		return false
	}
	for i := range p.Coords {
		if p.Coords[i] != q.Coords[i] {
			return false
		}
	}

	return true
}

// checkDim returns ErrDimensionMismatch, wrapped with the offending op
// name, when p and q have different dimension.
func checkDim(op string, p, q *Point) error {
	if len(p.Coords) != len(q.Coords) {
		return fmt.Errorf("point.%s: %w (%d vs %d)", op, ErrDimensionMismatch, len(p.Coords), len(q.Coords))
	}

	return nil
}

// Modify applies fn component-wise to p and q, writing the result into
// dst. dst may alias p or q. All three must share the same dimension.
func Modify(dst, p, q *Point, fn func(a, b scalar.Real) scalar.Real) error {
	if err := checkDim("Modify", p, q); err != nil {
		return err
	}
	if err := checkDim("Modify", p, dst); err != nil {
		return err
	}
	for i := range p.Coords {
		dst.Coords[i] = fn(p.Coords[i], q.Coords[i])
	}

	return nil
}

// Add writes p+q into dst, component-wise.
func Add(dst, p, q *Point) error {
	return Modify(dst, p, q, func(a, b scalar.Real) scalar.Real { return a + b })
}

// Sub writes p-q into dst, component-wise.
func Sub(dst, p, q *Point) error {
	return Modify(dst, p, q, func(a, b scalar.Real) scalar.Real { return a - b })
}

// Mul writes p*q into dst, component-wise (Hadamard product).
func Mul(dst, p, q *Point) error {
	return Modify(dst, p, q, func(a, b scalar.Real) scalar.Real { return a * b })
}

// Div writes p/q into dst, component-wise. Division by a zero coordinate
// produces +/-Inf or NaN per IEEE 754; callers discriminate via
// scalar.IsFinite, not an error return.
func Div(dst, p, q *Point) error {
	return Modify(dst, p, q, func(a, b scalar.Real) scalar.Real { return a / b })
}

// Scale writes p*k into dst, for scalar k.
func Scale(dst, p *Point, k scalar.Real) error {
	if err := checkDim("Scale", p, dst); err != nil {
		return err
	}
	for i := range p.Coords {
		dst.Coords[i] = p.Coords[i] * k
	}

	return nil
}

// ScaleDiv writes p/k into dst, for scalar k.
func ScaleDiv(dst, p *Point, k scalar.Real) error {
	return Scale(dst, p, scalar.Recip(k))
}

// Neg writes -p into dst.
func Neg(dst, p *Point) error {
	return Scale(dst, p, -scalar.One)
}

// Normer is the minimal interface a metric space must satisfy to support
// Unit below. space.Space implements it structurally; point does not
// import space, to avoid a dependency cycle (space.Dist needs *Point).
type Normer interface {
	Norm(p *Point) scalar.Real
}

// Unit writes the unit-normalized (relative to sp) vector of p into dst.
// If p has zero norm under sp, dst is left as p/0 component-wise (i.e.
// the non-finite IEEE result), matching the field's own division
// semantics rather than silently substituting a sentinel vector.
func Unit(dst, p *Point, sp Normer) error {
	return ScaleDiv(dst, p, sp.Norm(p))
}
