// Package report renders a solved steinertree.Tree as either a
// human-readable text summary or JSON, for cmd/gpsmt and for callers
// embedding the solver as a library.
//
// Grounded on tsp/example_test.go and core/example_test.go's own
// "print a solved result, line by line" convention (route index, then
// edges, then a total), generalized here to a Steiner tree's terminals,
// Steiner points, and edges.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/arbortree/gpsmt/scalar"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/steinertree"
)

// Render writes a deterministic text summary of tree to w: one line per
// terminal and Steiner point coordinate, one line per edge, and a final
// total length line.
func Render(w io.Writer, tree *steinertree.Tree, sp space.Space) error {
	if _, err := fmt.Fprintf(w, "terminals: %d, steiner points: %d, edges: %d\n",
		tree.TerminalCount, tree.SteinerCount(), tree.EdgeCount()); err != nil {
		return err
	}

	for _, n := range tree.Terminals() {
		if _, err := fmt.Fprintf(w, "  t%d: %v\n", n.ID, n.P.Coords); err != nil {
			return err
		}
	}
	for _, n := range tree.SteinerPoints() {
		if _, err := fmt.Fprintf(w, "  s%d: %v\n", n.ID, n.P.Coords); err != nil {
			return err
		}
	}

	for _, n := range tree.Nodes {
		for _, m := range n.Neighbors {
			if m > n.ID {
				if _, err := fmt.Fprintf(w, "  edge %d-%d: %.6f\n", n.ID, m, sp.Dist(n.P, tree.Nodes[m].P)); err != nil {
					return err
				}
			}
		}
	}

	_, err := fmt.Fprintf(w, "total length: %.6f\n", tree.Length(sp))

	return err
}

// jsonNode is the JSON rendering of a single tree node.
type jsonNode struct {
	ID         int           `json:"id"`
	Coords     []scalar.Real `json:"coords"`
	IsTerminal bool          `json:"isTerminal"`
}

// jsonEdge is the JSON rendering of a single undirected edge.
type jsonEdge struct {
	A      int         `json:"a"`
	B      int         `json:"b"`
	Length scalar.Real `json:"length"`
}

// jsonTree is the top-level JSON document RenderJSON produces.
type jsonTree struct {
	TerminalCount int         `json:"terminalCount"`
	SteinerCount  int         `json:"steinerCount"`
	Nodes         []jsonNode  `json:"nodes"`
	Edges         []jsonEdge  `json:"edges"`
	TotalLength   scalar.Real `json:"totalLength"`
}

// RenderJSON writes tree as an indented JSON document to w.
func RenderJSON(w io.Writer, tree *steinertree.Tree, sp space.Space) error {
	doc := jsonTree{
		TerminalCount: tree.TerminalCount,
		SteinerCount:  tree.SteinerCount(),
		TotalLength:   tree.Length(sp),
	}
	for _, n := range tree.Nodes {
		doc.Nodes = append(doc.Nodes, jsonNode{ID: n.ID, Coords: n.P.Coords, IsTerminal: n.IsTerminal})
		for _, m := range n.Neighbors {
			if m > n.ID {
				doc.Edges = append(doc.Edges, jsonEdge{A: n.ID, B: m, Length: sp.Dist(n.P, tree.Nodes[m].P)})
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}
