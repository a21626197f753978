package geomedian

import (
	"errors"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
)

// ErrNotHyperEllipsoid indicates HyperEllipsoidDecorator.Init/Step was
// invoked with a space.Space that is not a *space.HyperEllipsoid.
var ErrNotHyperEllipsoid = errors.New("geomedian: space is not a hyper-ellipsoid")

// HyperEllipsoidDecorator adapts any Euclidean-space Kernel to operate
// under a hyper-ellipsoid metric, by dividing every coordinate by its
// axis scale, delegating to the wrapped kernel under the equivalent
// Euclidean space, then multiplying the result back by the axis scales.
// This is the generic reduction SPEC_FULL.md §4.7 describes for
// hyper-ellipsoid spaces: only the geomedian layer needs to know about
// the coordinate transform, every other component (steinertree, mst,
// gpenum) operates on the hyper-ellipsoid space directly.
//
// Grounded on original_source/src/algorithms/geo_median/mod.rs's
// GeoMedianEllipsoid decorator. This decorator keeps no timing of its
// own.
type HyperEllipsoidDecorator struct {
	wrapped Kernel
}

// NewHyperEllipsoidDecorator wraps a Euclidean-space kernel (e.g.
// Uteshev) to operate under a hyper-ellipsoid metric.
func NewHyperEllipsoidDecorator(wrapped Kernel) *HyperEllipsoidDecorator {
	return &HyperEllipsoidDecorator{wrapped: wrapped}
}

// Name implements Kernel.
func (d *HyperEllipsoidDecorator) Name() string { return "ellipsoid(" + d.wrapped.Name() + ")" }

// rescaleAll returns fresh points holding y and neighbors divided by the
// ellipsoid's axis scales, alongside the Euclidean space to delegate to.
func rescaleAll(he *space.HyperEllipsoid, y *point.Point, neighbors []*point.Point) (*point.Point, []*point.Point, error) {
	ry := point.New(y.ID, make([]scalar.Real, y.Dim()))
	if err := he.Rescale(ry, y); err != nil {
		return nil, nil, err
	}

	rn := make([]*point.Point, len(neighbors))
	for i, n := range neighbors {
		r := point.New(n.ID, make([]scalar.Real, n.Dim()))
		if err := he.Rescale(r, n); err != nil {
			return nil, nil, err
		}
		rn[i] = r
	}

	return ry, rn, nil
}

// Init implements Kernel.
func (d *HyperEllipsoidDecorator) Init(y *point.Point, neighbors []*point.Point, sp space.Space) error {
	he, ok := sp.(*space.HyperEllipsoid)
	if !ok {
		return ErrNotHyperEllipsoid
	}

	ry, rn, err := rescaleAll(he, y, neighbors)
	if err != nil {
		return err
	}

	eucl := space.NewEuclidean()
	if err := d.wrapped.Init(ry, rn, eucl); err != nil {
		return err
	}

	return he.Unscale(y, ry)
}

// Step implements Kernel. It only performs the coordinate transform and
// records no time; diag.Counters.SelfTime is accumulated by
// rmt.Optimizer.Find over its whole run, without subtracting the
// wrapped kernel's time.
func (d *HyperEllipsoidDecorator) Step(dst, y *point.Point, neighbors []*point.Point, sp space.Space, counters *diag.KernelCounters) error {
	he, ok := sp.(*space.HyperEllipsoid)
	if !ok {
		return ErrNotHyperEllipsoid
	}

	ry, rn, err := rescaleAll(he, y, neighbors)
	if err != nil {
		return err
	}

	rdst := point.New(dst.ID, make([]scalar.Real, dst.Dim()))
	eucl := space.NewEuclidean()

	if err := d.wrapped.Step(rdst, ry, rn, eucl, counters); err != nil {
		return err
	}

	return he.Unscale(dst, rdst)
}
