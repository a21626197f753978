package steinertree

import (
	"fmt"

	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
)

// Node is a single vertex of a Tree: a coordinate point, a terminal
// flag, and an unordered list of neighbour indices. Node.ID always
// equals the node's current index in Tree.Nodes; pushes always append,
// pops are only ever allowed at the end, so ID never needs renumbering.
type Node struct {
	// ID equals this node's index in the owning Tree.Nodes slice.
	ID int

	// P is this node's coordinate.
	P *point.Point

	// IsTerminal is true for the fixed terminal prefix, false for
	// Steiner points appended during enumeration.
	IsTerminal bool

	// Neighbors holds the indices of adjacent nodes. Back-edge symmetry
	// (n in Neighbors(m) iff m in Neighbors(n)) is maintained by every
	// mutator in this file; it is never the caller's job to keep it.
	Neighbors []int
}

// Degree returns len(n.Neighbors).
func (n *Node) Degree() int {
	return len(n.Neighbors)
}

// hasNeighbor reports whether m is present in n.Neighbors, and at what
// slice position (for swap-remove).
func (n *Node) hasNeighbor(m int) (int, bool) {
	for i, x := range n.Neighbors {
		if x == m {
			return i, true
		}
	}

	return -1, false
}

// Tree is the mutable Steiner tree structure: an arena of Nodes plus the
// count of the fixed terminal prefix.
type Tree struct {
	// Nodes is the append-only node arena; index == Node.ID.
	Nodes []*Node

	// TerminalCount is the length of the terminal prefix. Terminals
	// occupy Nodes[0:TerminalCount]; everything after is a Steiner
	// point appended during enumeration.
	TerminalCount int
}

// NewTree constructs a Tree whose node arena holds exactly the given
// terminals, in order, as the terminal prefix, with no edges yet. Each
// terminal point is cloned so the Tree owns an independent copy.
func NewTree(terminals []*point.Point) *Tree {
	nodes := make([]*Node, len(terminals))
	for i, t := range terminals {
		c := t.Clone()
		c.ID = i
		nodes[i] = &Node{ID: i, P: c, IsTerminal: true}
	}

	return &Tree{Nodes: nodes, TerminalCount: len(terminals)}
}

// NodeCount returns the total number of nodes (terminals + Steiner
// points) currently in the tree.
func (t *Tree) NodeCount() int {
	return len(t.Nodes)
}

// SteinerCount returns the number of Steiner points currently appended.
func (t *Tree) SteinerCount() int {
	return len(t.Nodes) - t.TerminalCount
}

// Node returns the node at index i, or an error if i is out of range.
func (t *Tree) Node(i int) (*Node, error) {
	if i < 0 || i >= len(t.Nodes) {
		return nil, fmt.Errorf("steinertree.Node(%d): %w", i, ErrIndexOutOfRange)
	}

	return t.Nodes[i], nil
}

// Terminals returns the terminal prefix of the node arena.
func (t *Tree) Terminals() []*Node {
	return t.Nodes[:t.TerminalCount]
}

// SteinerPoints returns the Steiner points currently appended (the
// suffix of the node arena, after the terminal prefix).
func (t *Tree) SteinerPoints() []*Node {
	return t.Nodes[t.TerminalCount:]
}

// PushSteiner appends a new Steiner point with coordinate p (cloned)
// and no neighbours, returning its index. p must have the same
// dimension as the tree's existing points, if any.
func (t *Tree) PushSteiner(p *point.Point) (int, error) {
	if len(t.Nodes) > 0 && p.Dim() != t.Nodes[0].P.Dim() {
		return -1, fmt.Errorf("steinertree.PushSteiner: %w", ErrDimensionMismatch)
	}
	id := len(t.Nodes)
	c := p.Clone()
	c.ID = id
	t.Nodes = append(t.Nodes, &Node{ID: id, P: c, IsTerminal: false})

	return id, nil
}

// PopSteiner removes the last node of the arena. It must be a Steiner
// point (not a terminal), it must be the last index, and it must
// currently have no neighbours — callers perform RemoveEdge on all of
// its incident edges first. This is the exact inverse of PushSteiner.
func (t *Tree) PopSteiner() error {
	n := len(t.Nodes)
	if n == 0 {
		return fmt.Errorf("steinertree.PopSteiner: %w", ErrIndexOutOfRange)
	}
	last := t.Nodes[n-1]
	if last.IsTerminal {
		return fmt.Errorf("steinertree.PopSteiner: %w", ErrPopTerminal)
	}
	if len(last.Neighbors) != 0 {
		return fmt.Errorf("steinertree.PopSteiner: %w", ErrPopHasNeighbors)
	}
	t.Nodes = t.Nodes[:n-1]

	return nil
}

// AddEdge connects nodes a and b with an undirected edge, appending each
// to the other's Neighbors slice. Returns ErrAlreadyNeighbors if a and b
// are already adjacent.
func (t *Tree) AddEdge(a, b int) error {
	na, err := t.Node(a)
	if err != nil {
		return err
	}
	nb, err := t.Node(b)
	if err != nil {
		return err
	}
	if _, ok := na.hasNeighbor(b); ok {
		return fmt.Errorf("steinertree.AddEdge(%d,%d): %w", a, b, ErrAlreadyNeighbors)
	}
	na.Neighbors = append(na.Neighbors, b)
	nb.Neighbors = append(nb.Neighbors, a)

	return nil
}

// removeNeighbor deletes m from n.Neighbors via swap-remove (order
// among remaining neighbours is not preserved — this matches the
// round-trip law in SPEC_FULL.md §8, which allows "neighbour order up
// to swap-remove semantics").
func (n *Node) removeNeighbor(m int) bool {
	i, ok := n.hasNeighbor(m)
	if !ok {
		return false
	}
	last := len(n.Neighbors) - 1
	n.Neighbors[i] = n.Neighbors[last]
	n.Neighbors = n.Neighbors[:last]

	return true
}

// RemoveEdge severs the undirected edge between a and b. Returns
// ErrNotNeighbors if they were not adjacent.
func (t *Tree) RemoveEdge(a, b int) error {
	na, err := t.Node(a)
	if err != nil {
		return err
	}
	nb, err := t.Node(b)
	if err != nil {
		return err
	}
	if !na.removeNeighbor(b) {
		return fmt.Errorf("steinertree.RemoveEdge(%d,%d): %w", a, b, ErrNotNeighbors)
	}
	nb.removeNeighbor(a)

	return nil
}

// SplitEdge performs the core Gilbert-Pollak insertion surgery: removes
// the edge (a,b), appends a new Steiner point at steinerCoord, and
// reconnects a, the newly-inserted terminal t, and b to it. Returns the
// new Steiner point's index.
//
// Pre: (a,b) is currently an edge; term is a valid node index not already
// adjacent to a or b (ordinarily a terminal that was sitting isolated
// in the arena, about to receive its first edges).
func (t *Tree) SplitEdge(a, b, term int, steinerCoord *point.Point) (int, error) {
	if err := t.RemoveEdge(a, b); err != nil {
		return -1, fmt.Errorf("steinertree.SplitEdge: %w", err)
	}
	s, err := t.PushSteiner(steinerCoord)
	if err != nil {
		return -1, fmt.Errorf("steinertree.SplitEdge: %w", err)
	}
	if err := t.AddEdge(a, s); err != nil {
		return -1, fmt.Errorf("steinertree.SplitEdge: %w", err)
	}
	if err := t.AddEdge(term, s); err != nil {
		return -1, fmt.Errorf("steinertree.SplitEdge: %w", err)
	}
	if err := t.AddEdge(b, s); err != nil {
		return -1, fmt.Errorf("steinertree.SplitEdge: %w", err)
	}

	return s, nil
}

// UnsplitEdge is the exact inverse of SplitEdge: given the Steiner point
// s with neighbours exactly {a, term, b} (s must be the last node in the
// arena), it detaches s from all three, pops it, and restores the edge
// (a,b).
func (t *Tree) UnsplitEdge(a, b, term, s int) error {
	if s != len(t.Nodes)-1 {
		return fmt.Errorf("steinertree.UnsplitEdge: %w", ErrPopNotLast)
	}
	if err := t.RemoveEdge(a, s); err != nil {
		return fmt.Errorf("steinertree.UnsplitEdge: %w", err)
	}
	if err := t.RemoveEdge(term, s); err != nil {
		return fmt.Errorf("steinertree.UnsplitEdge: %w", err)
	}
	if err := t.RemoveEdge(b, s); err != nil {
		return fmt.Errorf("steinertree.UnsplitEdge: %w", err)
	}
	if err := t.PopSteiner(); err != nil {
		return fmt.Errorf("steinertree.UnsplitEdge: %w", err)
	}
	if err := t.AddEdge(a, b); err != nil {
		return fmt.Errorf("steinertree.UnsplitEdge: %w", err)
	}

	return nil
}

// Length returns the total edge length of the tree under sp: the sum of
// sp.Dist over every undirected edge, counted once. n=0 or n=1 nodes
// (no edges) have length 0, matching the boundary behaviors in
// SPEC_FULL.md §8.
func (t *Tree) Length(sp space.Space) scalar.Real {
	var total scalar.Real
	for _, n := range t.Nodes {
		for _, m := range n.Neighbors {
			if m > n.ID { // count each undirected edge exactly once
				total += sp.Dist(n.P, t.Nodes[m].P)
			}
		}
	}

	return total
}

// EdgeCount returns the number of undirected edges currently in the tree.
func (t *Tree) EdgeCount() int {
	count := 0
	for _, n := range t.Nodes {
		for _, m := range n.Neighbors {
			if m > n.ID {
				count++
			}
		}
	}

	return count
}

// IsFullTopology reports whether t is a full Steiner topology: terminals
// all have degree 1, Steiner points all have degree 3, and there are
// exactly TerminalCount-2 Steiner points (for TerminalCount >= 2; for
// TerminalCount < 2 no Steiner points are expected at all).
func (t *Tree) IsFullTopology() bool {
	if t.TerminalCount < 2 {
		return t.SteinerCount() == 0
	}
	for _, n := range t.Terminals() {
		if n.Degree() != 1 {
			return false
		}
	}
	for _, n := range t.SteinerPoints() {
		if n.Degree() != 3 {
			return false
		}
	}

	return t.SteinerCount() == t.TerminalCount-2
}

// Clone returns a deep copy of t: independent Node and Point values, and
// neighbour-index slices that are copies (the indices themselves are
// valid in the clone unchanged, since clones are never renumbered).
func (t *Tree) Clone() *Tree {
	nodes := make([]*Node, len(t.Nodes))
	for i, n := range t.Nodes {
		nb := make([]int, len(n.Neighbors))
		copy(nb, n.Neighbors)
		nodes[i] = &Node{ID: n.ID, P: n.P.Clone(), IsTerminal: n.IsTerminal, Neighbors: nb}
	}

	return &Tree{Nodes: nodes, TerminalCount: t.TerminalCount}
}
