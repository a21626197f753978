package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arbortree/gpsmt/point"
	"github.com/arbortree/gpsmt/report"
	"github.com/arbortree/gpsmt/space"
	"github.com/arbortree/gpsmt/steinertree"
)

func line() *steinertree.Tree {
	tree := steinertree.NewTree([]*point.Point{
		point.New(0, []float64{0, 0}),
		point.New(1, []float64{1, 0}),
	})
	_ = tree.AddEdge(0, 1)

	return tree
}

func TestRenderIncludesTotalsAndEdges(t *testing.T) {
	sp := space.NewEuclidean()
	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, line(), sp))

	out := buf.String()
	require.Contains(t, out, "terminals: 2, steiner points: 0, edges: 1")
	require.Contains(t, out, "edge 0-1: 1.000000")
	require.Contains(t, out, "total length: 1.000000")
}

func TestRenderJSONRoundTripsStructure(t *testing.T) {
	sp := space.NewEuclidean()
	var buf bytes.Buffer
	require.NoError(t, report.RenderJSON(&buf, line(), sp))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, float64(2), doc["terminalCount"])
	require.Equal(t, float64(1), doc["totalLength"])
	edges, ok := doc["edges"].([]any)
	require.True(t, ok)
	require.Len(t, edges, 1)
}
