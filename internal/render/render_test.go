package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/layout"
	"github.com/icdkit/icdgraph/internal/model"
)

func renderedGraph() (*graph.Graph, layout.Positions) {
	g := graph.Build(nil, model.PredictionResult{
		ICDPredictions: []model.ICDPrediction{
			{Code: "410.71", Description: "d1", Probability: 0.9},
			{Code: "410.7", Description: "d2", Probability: 0.8},
		},
		Entities: model.EntitySet{Diseases: []string{"MI"}},
	})
	return g, layout.Compute(g, 1200, 800)
}

func TestForName(t *testing.T) {
	for _, name := range []string{"echarts", "graphology", "json"} {
		p, err := ForName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}

	_, err := ForName("dot")
	assert.Error(t, err)
}

func TestGraphology_RenderToFile(t *testing.T) {
	g, positions := renderedGraph()
	filename := filepath.Join(t.TempDir(), "out")

	require.NoError(t, Graphology{}.RenderToFile(g, positions, filename))

	data, err := os.ReadFile(filename + ".json")
	require.NoError(t, err)

	var serialized serializedGraph
	require.NoError(t, json.Unmarshal(data, &serialized))

	require.Len(t, serialized.Nodes, len(g.Nodes))
	require.Len(t, serialized.Edges, len(g.Edges))

	for i, n := range serialized.Nodes {
		assert.Equal(t, g.Nodes[i].ID, n.Key)
		assert.Equal(t, positions[n.Key].X, n.Attributes.X)
		assert.NotEmpty(t, n.Attributes.Color)
		assert.Greater(t, n.Attributes.Size, 0.0)
	}

	assert.Equal(t, "1", serialized.Edges[0].Key)
	for _, e := range serialized.Edges {
		assert.GreaterOrEqual(t, e.Attributes.Size, 1.0)
		assert.LessOrEqual(t, e.Attributes.Size, 5.0)
	}
}

func TestJSONDump_RenderToFile(t *testing.T) {
	g, positions := renderedGraph()
	filename := filepath.Join(t.TempDir(), "dump")

	require.NoError(t, JSONDump{}.RenderToFile(g, positions, filename))

	data, err := os.ReadFile(filename + ".json")
	require.NoError(t, err)

	var dump struct {
		Graph struct {
			Nodes []graph.Node `json:"nodes"`
			Edges []graph.Edge `json:"edges"`
		} `json:"graph"`
		Positions layout.Positions `json:"positions"`
	}
	require.NoError(t, json.Unmarshal(data, &dump))

	assert.Len(t, dump.Graph.Nodes, len(g.Nodes))
	assert.Len(t, dump.Graph.Edges, len(g.Edges))
	assert.Len(t, dump.Positions, len(positions))
}

func TestECharts_RenderToFile(t *testing.T) {
	g, positions := renderedGraph()
	filename := filepath.Join(t.TempDir(), "page")

	require.NoError(t, ECharts{}.RenderToFile(g, positions, filename))

	data, err := os.ReadFile(filename + ".html")
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "410.71")
	assert.Contains(t, html, "echarts")
}
