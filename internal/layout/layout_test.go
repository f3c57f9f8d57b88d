package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/model"
)

func testGraph() *graph.Graph {
	return graph.Build(nil, model.PredictionResult{
		ICDPredictions: []model.ICDPrediction{
			{Code: "410.71", Description: "d1", Probability: 0.9},
			{Code: "410.7", Description: "d2", Probability: 0.8},
			{Code: "428.0", Description: "d3", Probability: 0.7},
		},
		Entities: model.EntitySet{
			Diseases: []string{"MI"},
			Symptoms: []string{"chest pain", "dyspnea"},
		},
	})
}

func TestCompute_PositionForEveryNode(t *testing.T) {
	g := testGraph()
	positions := Compute(g, 1200, 800)

	require.Len(t, positions, len(g.Nodes))
	for _, n := range g.Nodes {
		_, ok := positions[n.ID]
		assert.True(t, ok, "missing position for %s", n.ID)
	}
}

func TestCompute_WithinBounds(t *testing.T) {
	width, height := 1200.0, 800.0
	positions := Compute(testGraph(), width, height)

	for id, p := range positions {
		assert.GreaterOrEqual(t, p.X, Margin, "node %s", id)
		assert.LessOrEqual(t, p.X, width-Margin, "node %s", id)
		assert.GreaterOrEqual(t, p.Y, Margin, "node %s", id)
		assert.LessOrEqual(t, p.Y, height-Margin, "node %s", id)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	a := Compute(testGraph(), 1200, 800)
	b := Compute(testGraph(), 1200, 800)
	assert.Equal(t, a, b)
}

func TestCompute_EmptyGraph(t *testing.T) {
	assert.Empty(t, Compute(nil, 1200, 800))
	assert.Empty(t, Compute(graph.New(), 1200, 800))
}

func TestCompute_DegenerateCanvas(t *testing.T) {
	g := testGraph()
	assert.Empty(t, Compute(g, 0, 0))
	assert.Empty(t, Compute(g, -100, 800))
	assert.Empty(t, Compute(g, 1200, 2*Margin-1))
}

func TestCompute_SingleNode(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "410", Type: graph.TypeICDCode})

	positions := Compute(g, 1200, 800)
	require.Len(t, positions, 1)
	assert.Equal(t, Point{X: 600, Y: 400}, positions["410"])
}

func TestCompute_DisconnectedNodesSpread(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "a", Type: graph.TypeICDCode})
	g.AddNode(graph.Node{ID: "b", Type: graph.TypeICDCode})
	g.AddNode(graph.Node{ID: "c", Type: graph.TypeICDCode})

	positions := Compute(g, 1200, 800)

	ids := []string{"a", "b", "c"}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			pi, pj := positions[ids[i]], positions[ids[j]]
			d := math.Hypot(pj.X-pi.X, pj.Y-pi.Y)
			assert.Greater(t, d, 1.0, "%s and %s overlap", ids[i], ids[j])
		}
	}
}

func TestCenterNode(t *testing.T) {
	g := testGraph()
	center := centerNode(g)

	degrees := g.Degrees()
	for _, n := range g.Nodes {
		assert.GreaterOrEqual(t, degrees[center], degrees[n.ID])
	}

	// Tie on zero degrees falls back to the first node.
	flat := graph.New()
	flat.AddNode(graph.Node{ID: "first"})
	flat.AddNode(graph.Node{ID: "second"})
	assert.Equal(t, "first", centerNode(flat))
}

func TestPlaceInitial_RingRadius(t *testing.T) {
	g := graph.New()
	g.AddNode(graph.Node{ID: "center"})
	g.AddNode(graph.Node{ID: "ring"})
	g.AddNode(graph.Node{ID: "other"})
	g.AddEdge(graph.Edge{Source: "center", Target: "ring", Weight: 1})
	g.AddEdge(graph.Edge{Source: "center", Target: "other", Weight: 1})

	positions := Positions{}
	placeInitial(g, "center", 1200, 800, positions)

	assert.Equal(t, Point{X: 600, Y: 400}, positions["center"])

	radius := 0.4 * 800
	for _, id := range []string{"ring", "other"} {
		p := positions[id]
		d := math.Hypot(p.X-600, p.Y-400)
		assert.InDelta(t, radius, d, 1e-9, "node %s off the ring", id)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 80.0, clamp(10, 80, 1120))
	assert.Equal(t, 1120.0, clamp(5000, 80, 1120))
	assert.Equal(t, 600.0, clamp(600, 80, 1120))
}
