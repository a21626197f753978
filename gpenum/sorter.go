package gpenum

import (
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
)

// TerminalSorter reorders terms in place before enumeration begins. The
// chosen order only affects search performance (which terminals seed the
// initial triangle, and the order subsequent terminals are inserted in),
// never the set of topologies visited.
//
// Grounded on original_source/src/enumerator.rs's TerminalSorter trait
// and its two implementations, NoOrdering and FurthestSiteOrdering.
type TerminalSorter interface {
	// Name identifies the sorter for diagnostics and CLI flags.
	Name() string

	// Sort reorders terms in place.
	Sort(terms []*point.Point, sp space.Space)
}

// NoOrdering leaves terms in whatever order the caller supplied.
type NoOrdering struct{}

// Name implements TerminalSorter.
func (NoOrdering) Name() string { return "no ordering" }

// Sort implements TerminalSorter; it is a no-op.
func (NoOrdering) Sort(terms []*point.Point, sp space.Space) {}

// FurthestSiteOrdering moves the three terminals with the greatest
// pairwise total distance to positions 0, 1 and 2, then greedily fills
// each later position with the remaining terminal whose maximum
// distance to the terminals already placed is largest. Enumerator seeds
// its triangle from the last three terminals of this order and inserts
// the rest from the back, so these three far-apart terminals are the
// last ones inserted.
type FurthestSiteOrdering struct{}

// Name implements TerminalSorter.
func (FurthestSiteOrdering) Name() string { return "furthest site ordering" }

// Sort implements TerminalSorter.
func (FurthestSiteOrdering) Sort(terms []*point.Point, sp space.Space) {
	n := len(terms)
	if n < 3 {
		return
	}

	// Find the three terminals with maximum sum of pairwise distances.
	var best [3]int
	var max scalar.Real
	for i := 0; i < n-2; i++ {
		for j := i + 1; j < n-1; j++ {
			dij := sp.Dist(terms[i], terms[j])
			for k := j + 1; k < n; k++ {
				dik := sp.Dist(terms[i], terms[k])
				dkj := sp.Dist(terms[k], terms[j])
				sum := dij + dik + dkj
				if sum > max {
					max = sum
					best = [3]int{i, j, k}
				}
			}
		}
	}
	terms[0], terms[best[0]] = terms[best[0]], terms[0]
	terms[1], terms[best[1]] = terms[best[1]], terms[1]
	terms[2], terms[best[2]] = terms[best[2]], terms[2]

	// Greedily append the remaining terminals by maximum distance to any
	// already-placed terminal.
	for i := 3; i < n-1; i++ {
		sorted, rest := terms[:i], terms[i:]
		bestK, bestDist := 0, scalar.Zero
		for k, p := range rest {
			maxDist := scalar.Zero
			for _, a := range sorted {
				if d := sp.Dist(p, a); d > maxDist {
					maxDist = d
				}
			}
			if maxDist > bestDist {
				bestK, bestDist = k, maxDist
			}
		}
		terms[i], terms[i+bestK] = terms[i+bestK], terms[i]
	}
}
