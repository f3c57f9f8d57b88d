package render

import (
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/icdkit/icdgraph/internal/encode"
	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/layout"
)

// ECharts defines a Provider that renders a go-echarts HTML file. Positions
// come from the layout engine, so the chart uses a fixed layout rather than
// echarts' own force simulation.
type ECharts struct{}

var _ Provider = ECharts{}

func NewECharts() ECharts {
	return ECharts{}
}

func (e ECharts) RenderToFile(g *graph.Graph, positions layout.Positions, filename string) error {
	filename = filename + ".html"

	scale := encode.NewEdgeScale(g)

	nodes := make([]opts.GraphNode, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		p := positions[n.ID]
		nodes = append(nodes, opts.GraphNode{
			Name:       n.ID,
			X:          float32(p.X),
			Y:          float32(p.Y),
			SymbolSize: encode.NodeRadius(n),
			ItemStyle:  &opts.ItemStyle{Color: encode.NodeColor(n.Type)},
		})
	}

	links := make([]opts.GraphLink, 0, len(g.Edges))
	for _, edge := range g.Edges {
		links = append(links, opts.GraphLink{
			Source: edge.Source,
			Target: edge.Target,
			Value:  float32(scale.Width(edge.Weight)),
		})
	}

	page := components.NewPage()
	page.AddCharts(graphBase(nodes, links))

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	return page.Render(io.MultiWriter(f))
}

func graphBase(nodes []opts.GraphNode, links []opts.GraphLink) *charts.Graph {
	chart := charts.NewGraph()
	chart.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "icdgraph results",
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	chart.AddSeries(
		"graph",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout:    "none",
				Draggable: opts.Bool(true),
				Roam:      opts.Bool(true),
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    "black",
			Position: "top",
		}),
	)
	return chart
}
