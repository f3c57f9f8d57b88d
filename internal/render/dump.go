package render

import (
	"encoding/json"
	"os"

	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/layout"
)

// JSONDump defines a Provider that writes the raw graph, entity groups and
// positions as indented JSON. Meant for debugging and test fixtures, not for
// drawing.
type JSONDump struct{}

var _ Provider = JSONDump{}

func NewJSONDump() JSONDump {
	return JSONDump{}
}

type dumpFile struct {
	Graph     *graph.Graph     `json:"graph"`
	Positions layout.Positions `json:"positions"`
}

func (JSONDump) RenderToFile(g *graph.Graph, positions layout.Positions, filename string) error {
	filename = filename + ".json"

	data, err := json.MarshalIndent(dumpFile{Graph: g, Positions: positions}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}
