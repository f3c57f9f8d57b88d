// Package encode maps node and edge attributes to draw parameters. Pure
// functions, no state; consumers are the render providers and the frontend.
package encode

import (
	"github.com/icdkit/icdgraph/internal/graph"
)

// NeutralColor is the fallback for unknown node types.
const NeutralColor = "#95a5a6"

var palette = map[string]string{
	graph.TypeICDCode:    "#e74c3c",
	"entity:diseases":    "#9b59b6",
	"entity:symptoms":    "#f39c12",
	"entity:procedures":  "#3498db",
	"entity:medications": "#2ecc71",
}

// NodeColor returns the palette color for a node type, falling back to a
// neutral gray for anything unrecognised.
func NodeColor(nodeType string) string {
	if c, ok := palette[nodeType]; ok {
		return c
	}
	return NeutralColor
}

// NodeRadius is fixed for entity nodes and scales with probability for ICD
// nodes, giving a 20-40 range.
func NodeRadius(n graph.Node) float64 {
	if !n.IsICD() {
		return 16
	}
	return 20 + n.Probability*20
}

const (
	minStroke = 1.0
	maxStroke = 5.0
)

// EdgeScale normalizes edge weights against the observed weight span of one
// graph, so stroke widths stay comparable within a render.
type EdgeScale struct {
	min, max float64
}

// NewEdgeScale observes the weight span of g. When all weights are equal (or
// there are no edges) it falls back to a [0.1, 1.0] span to avoid division by
// zero.
func NewEdgeScale(g *graph.Graph) EdgeScale {
	if g == nil || len(g.Edges) == 0 {
		return EdgeScale{min: 0.1, max: 1.0}
	}
	min, max := g.Edges[0].Weight, g.Edges[0].Weight
	for _, e := range g.Edges[1:] {
		if e.Weight < min {
			min = e.Weight
		}
		if e.Weight > max {
			max = e.Weight
		}
	}
	if min == max {
		return EdgeScale{min: 0.1, max: 1.0}
	}
	return EdgeScale{min: min, max: max}
}

// Width linearly interpolates a stroke width between 1 and 5 for a weight.
func (s EdgeScale) Width(weight float64) float64 {
	t := (weight - s.min) / (s.max - s.min)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return minStroke + t*(maxStroke-minStroke)
}
