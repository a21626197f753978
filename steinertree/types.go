// Package steinertree implements the mutable node+neighbour graph at the
// heart of the Steiner tree core: terminals and Steiner points live in a
// single append-only arena (Tree.Nodes), addressed by integer index
// rather than by pointer or string id, per the arena-indexed graph note
// in SPEC_FULL.md §9. Pushes append and pops remove only the last node,
// so indices stay stable.
//
// Unlike the teacher's core.Graph — built for concurrent external
// callers and guarded by separate sync.RWMutex locks over string-keyed
// maps — Tree carries no locking at all. SPEC_FULL.md §5 is explicit
// that the working tree is mutated strictly serially by the enumerator
// and the RMT optimizer, never concurrently, so the lock would protect
// against a caller that can never exist.
package steinertree

import "errors"

// Sentinel errors for steinertree operations.
var (
	// ErrIndexOutOfRange indicates a node index outside [0, len(Nodes)).
	ErrIndexOutOfRange = errors.New("steinertree: node index out of range")

	// ErrNotNeighbors indicates RemoveEdge was asked to sever a pair of
	// nodes that are not currently adjacent.
	ErrNotNeighbors = errors.New("steinertree: nodes are not adjacent")

	// ErrAlreadyNeighbors indicates AddEdge was asked to connect a pair
	// of nodes that are already adjacent (the tree invariant forbids
	// parallel edges).
	ErrAlreadyNeighbors = errors.New("steinertree: nodes are already adjacent")

	// ErrPopNotLast indicates UnsplitEdge was given a Steiner point that
	// is not the last element of the arena; only the last node may be
	// popped, per the index-stability invariant in SPEC_FULL.md §3.
	ErrPopNotLast = errors.New("steinertree: can only pop the last node")

	// ErrPopHasNeighbors indicates PopSteiner was called on a node that
	// still has neighbours; surgery must detach a node before popping it.
	ErrPopHasNeighbors = errors.New("steinertree: cannot pop a node with neighbours")

	// ErrPopTerminal indicates PopSteiner was called on a terminal node.
	// Terminals occupy the fixed prefix of the arena and are never popped.
	ErrPopTerminal = errors.New("steinertree: cannot pop a terminal node")

	// ErrDimensionMismatch indicates a new node's coordinate dimension
	// does not match the tree's existing points.
	ErrDimensionMismatch = errors.New("steinertree: coordinate dimension mismatch")

	// ErrInvalidTree is returned by CheckInvariants (debug builds only;
	// see invariants_debug.go) when a structural invariant is violated.
	ErrInvalidTree = errors.New("steinertree: invariant violated")
)
