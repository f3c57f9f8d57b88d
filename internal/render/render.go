// Package render writes a built graph and its layout positions out for a draw
// surface: an echarts HTML page, graphology JSON for the web frontend, or a
// plain JSON dump for inspection tooling.
package render

import (
	"fmt"

	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/layout"
)

// Provider renders a positioned graph to a file. filename should be the
// desired file name without an extension. Not assumed to be thread-safe.
type Provider interface {
	RenderToFile(g *graph.Graph, positions layout.Positions, filename string) error
}

// ForName returns the provider registered under name.
func ForName(name string) (Provider, error) {
	switch name {
	case "echarts":
		return NewECharts(), nil
	case "graphology":
		return NewGraphology(), nil
	case "json":
		return NewJSONDump(), nil
	}
	return nil, fmt.Errorf("unknown render provider: %s", name)
}
