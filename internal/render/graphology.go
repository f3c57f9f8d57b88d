package render

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/icdkit/icdgraph/internal/encode"
	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/layout"
)

type nodeAttributes struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Label string  `json:"label"`
	Color string  `json:"color"`
}

type serializedNode struct {
	Key        string         `json:"key"`
	Attributes nodeAttributes `json:"attributes"`
}

type edgeAttributes struct {
	Size float64 `json:"size"`
}

type serializedEdge struct {
	Key        string         `json:"key"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Attributes edgeAttributes `json:"attributes"`
}

type serializedGraph struct {
	Nodes []serializedNode `json:"nodes"`
	Edges []serializedEdge `json:"edges"`
}

// Graphology defines a Provider that renders graphology-format JSON, the
// format the web frontend's sigma.js renderer imports directly.
type Graphology struct{}

var _ Provider = Graphology{}

func NewGraphology() Graphology {
	return Graphology{}
}

func (Graphology) RenderToFile(g *graph.Graph, positions layout.Positions, filename string) error {
	filename = filename + ".json"

	scale := encode.NewEdgeScale(g)
	serialized := serializedGraph{
		Nodes: make([]serializedNode, 0, len(g.Nodes)),
		Edges: make([]serializedEdge, 0, len(g.Edges)),
	}

	for _, n := range g.Nodes {
		p := positions[n.ID]
		serialized.Nodes = append(serialized.Nodes, serializedNode{
			Key: n.ID,
			Attributes: nodeAttributes{
				X:     p.X,
				Y:     p.Y,
				Size:  encode.NodeRadius(n),
				Label: n.Label,
				Color: encode.NodeColor(n.Type),
			},
		})
	}

	for i, e := range g.Edges {
		serialized.Edges = append(serialized.Edges, serializedEdge{
			Key:        strconv.Itoa(i + 1),
			Source:     e.Source,
			Target:     e.Target,
			Attributes: edgeAttributes{Size: scale.Width(e.Weight)},
		})
	}

	marshalled, err := json.Marshal(serialized)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, marshalled, 0o644)
}
