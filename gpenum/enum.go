// Package gpenum implements the Gilbert-Pollak depth-first enumeration
// of full Steiner topologies over a terminal set, with bottleneck-
// Steiner-distance (BSD) and smallest-sphere (SS) pruning (SPEC_FULL.md
// §4.3, §4.4).
//
// The enumerator is a resumable explicit-stack state machine rather than
// recursion, grounded on original_source/src/enumerator.rs's GPState
// {Done, Start, Running} and its insert_on_edge/pop/backtrack trio. One
// call to Next advances the search by exactly one step (one successful
// insertion, possibly after backtracking past several exhausted
// branches), mirroring the original's Enumerator::next.
//
// Unlike the original, every terminal is present in the Tree from the
// start (steinertree.NewTree's fixed terminal prefix): terminals not yet
// "inserted" simply sit isolated (degree 0) until SplitEdge attaches
// them. This lets the enumerator reuse steinertree's SplitEdge/
// UnsplitEdge primitives directly instead of dynamically growing the
// node arena with fresh terminal nodes, at the cost that callers must
// detect a full topology via Tree.IsFullTopology (degree-based), not by
// comparing terminal counts — every intermediate tree already reports
// the full terminal count.
package gpenum

import (
	"errors"
	"fmt"
	"time"

	"github.com/arbortree/gpsmt/diag"
	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/steinertree"

	"github.com/arbortree/gpsmt/matrix"
)

// ErrNoTerminals indicates Init was called with zero terminals.
var ErrNoTerminals = errors.New("gpenum: at least one terminal is required")

type enumState int

const (
	stateDone enumState = iota
	stateStart
	stateRunning
)

// edgePair is one entry of the frontier edge list: an edge of the
// current tree eligible to be split by the next insertion.
type edgePair struct{ a, b int }

// Enumerator performs the depth-first Gilbert-Pollak search. It must be
// initialized with Init before the first call to Next.
type Enumerator struct {
	EnableBSD bool
	EnableSS  bool
	Sorter    TerminalSorter

	tree       *steinertree.Tree
	edges      []edgePair
	top        []int
	remaining  []int
	bsd        *matrix.Dense
	ss         []scalar.Real
	state      enumState
	totalExtra int // len(remaining) immediately after Init, for depth bookkeeping
}

// NewEnumerator constructs an Enumerator with both pruning tests enabled
// and the given terminal sorter. This matches the original's own
// default (GPEnumeration::default: bsd=true, ss=true, FurthestSiteOrdering).
func NewEnumerator(sorter TerminalSorter) *Enumerator {
	return &Enumerator{EnableBSD: true, EnableSS: true, Sorter: sorter}
}

// Tree returns the enumerator's current tree state. The returned value
// is owned by the Enumerator and mutates on the next Next call; callers
// that need to keep a topology must Clone it first.
func (e *Enumerator) Tree() *steinertree.Tree {
	return e.tree
}

// Init prepares the enumerator to search over terms under sp: it sorts
// a private copy of terms (per e.Sorter), assigns terminal ids 0..n-1 in
// the resulting order, precomputes the BSD matrix and SS vector if
// enabled, and seeds the initial tree (a bare terminal for n<2, a single
// edge for n==2, or a 3-terminal seed triangle with one Steiner point
// for n>=3).
func (e *Enumerator) Init(terms []*point.Point, sp space.Space, counters *diag.Counters) error {
	n := len(terms)
	if n == 0 {
		return ErrNoTerminals
	}

	sorted := make([]*point.Point, n)
	copy(sorted, terms)

	sortStart := time.Now()
	if e.Sorter != nil {
		e.Sorter.Sort(sorted, sp)
	}
	if counters != nil {
		counters.SortTime += time.Since(sortStart)
	}

	for i, p := range sorted {
		p.ID = i
	}

	// The SS pruning formula also multiplies by the bottleneck Steiner
	// distance, so the bsd matrix is needed whenever either test is on.
	start := time.Now()
	if e.EnableBSD || e.EnableSS {
		bsd, err := computeBSD(sorted, sp)
		if err != nil {
			return fmt.Errorf("gpenum.Init: %w", err)
		}
		e.bsd = bsd
	}
	if e.EnableSS {
		e.ss = computeSS(sorted, sp)
	}
	if counters != nil && (e.EnableBSD || e.EnableSS) {
		counters.BSDSSInitTime += time.Since(start)
	}

	e.tree = steinertree.NewTree(sorted)
	e.edges = nil
	e.top = nil
	e.remaining = nil
	e.totalExtra = 0
	if n >= 3 {
		e.totalExtra = n - 3
	}

	switch {
	case n < 2:
		e.state = stateStart
	case n == 2:
		if err := e.tree.AddEdge(0, 1); err != nil {
			return fmt.Errorf("gpenum.Init: %w", err)
		}
		e.state = stateStart
	default:
		a, b, c := n-3, n-2, n-1
		seedCoord := centroidOf(e.tree, a, b, c)
		s, err := e.tree.PushSteiner(seedCoord)
		if err != nil {
			return fmt.Errorf("gpenum.Init: %w", err)
		}
		for _, t := range []int{a, b, c} {
			if err := e.tree.AddEdge(t, s); err != nil {
				return fmt.Errorf("gpenum.Init: %w", err)
			}
		}
		e.edges = []edgePair{{a, s}, {b, s}, {c, s}}
		e.top = []int{0}
		e.remaining = make([]int, 0, n-3)
		for i := 0; i < n-3; i++ {
			e.remaining = append(e.remaining, i)
		}
		e.state = stateStart
	}

	return nil
}

// centroidOf returns the unweighted average coordinate of three tree
// nodes, the seed triangle's initial Steiner placement, mirroring
// original_source/src/steinertree.rs's Node::init.
func centroidOf(tree *steinertree.Tree, a, b, c int) *point.Point {
	na, _ := tree.Node(a)
	nb, _ := tree.Node(b)
	nc, _ := tree.Node(c)
	dim := na.P.Dim()
	out := make([]scalar.Real, dim)
	for k := 0; k < dim; k++ {
		out[k] = (na.P.Coords[k] + nb.P.Coords[k] + nc.P.Coords[k]) / 3
	}

	return point.New(0, out)
}

// Next advances the search by one step, returning false once every
// topology has been visited. counters, if non-nil, receives node and
// pruning diagnostics.
func (e *Enumerator) Next(sp space.Space, counters *diag.Counters) bool {
	if e.state == stateStart {
		if len(e.remaining) == 0 {
			e.state = stateDone
		} else {
			e.state = stateRunning
		}

		return true
	}

	if e.state == stateDone || !e.backtrack() {
		return false
	}

	for {
		edgeIdx := e.top[len(e.top)-1]
		ti, si := e.insertOnEdge(edgeIdx)
		e.top[len(e.top)-1]++
		e.top = append(e.top, 0)

		if e.pruneCheck(ti, si, sp, counters) {
			e.popInsertion()
			if !e.backtrack() {
				return false
			}
			continue
		}

		if counters != nil {
			counters.EnumeratedNodes++
		}

		return true
	}
}

// insertOnEdge inserts the next remaining terminal by splitting edges[ei],
// returning the inserted terminal's and new Steiner point's indices.
func (e *Enumerator) insertOnEdge(ei int) (ti, si int) {
	last := len(e.remaining) - 1
	ti = e.remaining[last]
	e.remaining = e.remaining[:last]

	a, b := e.edges[ei].a, e.edges[ei].b
	term, _ := e.tree.Node(ti)
	s, err := e.tree.SplitEdge(a, b, ti, term.P)
	if err != nil {
		panic(fmt.Errorf("gpenum: insertOnEdge: %w", err))
	}

	e.edges[ei] = edgePair{a, s}
	e.edges = append(e.edges, edgePair{ti, s}, edgePair{b, s})

	return ti, s
}

// popInsertion undoes the most recent (still pending-acceptance)
// insertion: restores the split edge and returns the inserted terminal
// to the remaining stack.
func (e *Enumerator) popInsertion() {
	e.top = e.top[:len(e.top)-1]
	ei := e.top[len(e.top)-1] - 1

	last := len(e.edges)
	bs := e.edges[last-1]
	tis := e.edges[last-2]
	e.edges = e.edges[:last-2]

	a := e.edges[ei].a
	b := bs.a
	ti := tis.a
	si := bs.b

	e.edges[ei] = edgePair{a, b}
	if err := e.tree.UnsplitEdge(a, b, ti, si); err != nil {
		panic(fmt.Errorf("gpenum: popInsertion: %w", err))
	}
	e.remaining = append(e.remaining, ti)
}

// backtrack undoes insertions until either a branch with an untried edge
// is found (returns true) or the whole search is exhausted (returns
// false, leaving state Done).
func (e *Enumerator) backtrack() bool {
	if len(e.remaining) == 0 {
		e.popInsertion()
	}

	for e.top[len(e.top)-1] == len(e.edges) {
		if len(e.top) == 1 {
			e.state = stateDone

			return false
		}
		e.popInsertion()
	}

	return true
}

// pruneCheck reports whether the topology formed by inserting terminal
// ti via Steiner point si should be discarded, per the BSD/SS admissible
// bounds. depth indexes diag.Counters.PerDepth.
func (e *Enumerator) pruneCheck(ti, si int, sp space.Space, counters *diag.Counters) bool {
	if !e.EnableBSD && !e.EnableSS {
		return false
	}

	start := time.Now()
	// depth counts insertions made beyond the seed triangle, 0-indexed;
	// it tracks the current search depth (not a monotonic call count),
	// so it falls back in step as backtracking restores terminals to
	// e.remaining.
	depth := e.totalExtra - len(e.remaining) - 1
	j := len(e.remaining)

	s, _ := e.tree.Node(si)
	t, _ := e.tree.Node(ti)

	var others []int
	for _, nb := range s.Neighbors {
		if nb != ti {
			others = append(others, nb)
		}
	}

	var leaves1, leaves2 []leaf
	if len(others) > 0 {
		collectLeaves(e.tree, others[0], si, 1, &leaves1)
	}
	if len(others) > 1 {
		collectLeaves(e.tree, others[1], si, 1, &leaves2)
	}

	check := func(p1, p2 *steinertree.Node, k int) bool {
		d := sp.Dist(p1.P, p2.P)
		bv, _ := e.bsd.At(p1.ID, p2.ID)
		if e.EnableBSD && d > scalar.Real(k+j+1)*bv {
			if counters != nil {
				counters.AtDepth(depth).BSDPrunes++
			}

			return true
		}
		if e.EnableSS && d > e.ss[p1.ID]+e.ss[p2.ID]+scalar.Real(k+j-1)*bv {
			if counters != nil {
				counters.AtDepth(depth).SSPrunes++
			}

			return true
		}

		return false
	}

	pruned := false
	// t hangs directly off s, so a leaf at depth d is d+1 edges from t.
	for _, l1 := range leaves1 {
		if check(l1.node, t, l1.depth+1) {
			pruned = true
			break
		}
	}
	if !pruned {
		for _, l2 := range leaves2 {
			if check(l2.node, t, l2.depth+1) {
				pruned = true
				break
			}
		}
	}
	if !pruned {
	outer:
		for _, l1 := range leaves1 {
			for _, l2 := range leaves2 {
				if check(l1.node, l2.node, l1.depth+l2.depth) {
					pruned = true
					break outer
				}
			}
		}
	}

	if counters != nil {
		counters.AtDepth(depth).PruneTime += time.Since(start)
	}

	return pruned
}
