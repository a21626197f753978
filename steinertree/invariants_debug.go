//go:build gpsmt_debug

package steinertree

import "fmt"

// CheckInvariants asserts the structural invariants from SPEC_FULL.md §8:
// back-edge symmetry, |E| == |V|-1 with connectivity, and id == index for
// every node. It is compiled only under the gpsmt_debug build tag
// (SPEC_FULL.md §7); release builds never pay for it. No package in
// this module calls it; it is available to callers and tests built with
// the tag.
func (t *Tree) CheckInvariants() error {
	for i, n := range t.Nodes {
		if n.ID != i {
			return fmt.Errorf("steinertree: node at index %d has ID %d: %w", i, n.ID, ErrInvalidTree)
		}
		for _, m := range n.Neighbors {
			if m < 0 || m >= len(t.Nodes) {
				return fmt.Errorf("steinertree: node %d has out-of-range neighbour %d: %w", i, m, ErrInvalidTree)
			}
			if _, ok := t.Nodes[m].hasNeighbor(i); !ok {
				return fmt.Errorf("steinertree: back-edge asymmetry between %d and %d: %w", i, m, ErrInvalidTree)
			}
		}
	}

	if len(t.Nodes) == 0 {
		return nil
	}

	edges := t.EdgeCount()
	if edges != len(t.Nodes)-1 {
		return fmt.Errorf("steinertree: |E|=%d, want |V|-1=%d: %w", edges, len(t.Nodes)-1, ErrInvalidTree)
	}

	visited := make([]bool, len(t.Nodes))
	stack := []int{0}
	visited[0] = true
	count := 1
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, m := range t.Nodes[cur].Neighbors {
			if !visited[m] {
				visited[m] = true
				count++
				stack = append(stack, m)
			}
		}
	}
	if count != len(t.Nodes) {
		return fmt.Errorf("steinertree: graph is disconnected (%d/%d reached): %w", count, len(t.Nodes), ErrInvalidTree)
	}

	return nil
}
