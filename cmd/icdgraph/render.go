package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/icdkit/icdgraph/internal/graph"
	"github.com/icdkit/icdgraph/internal/hierarchy"
	"github.com/icdkit/icdgraph/internal/layout"
	"github.com/icdkit/icdgraph/internal/model"
	"github.com/icdkit/icdgraph/internal/predict"
	"github.com/icdkit/icdgraph/internal/render"
)

var (
	renderProvider string
	renderCaseID   int64
	renderOut      string
	renderWidth    float64
	renderHeight   float64
)

func init() {
	renderCmd.Flags().StringVar(&renderProvider, "provider", "echarts", "Render provider: echarts, graphology or json")
	renderCmd.Flags().Int64Var(&renderCaseID, "case", 0, "Render a stored case instead of predicting")
	renderCmd.Flags().StringVar(&renderOut, "out", "icdgraphdata", "Output file name, without extension")
	renderCmd.Flags().Float64Var(&renderWidth, "width", 0, "Canvas width (default from config)")
	renderCmd.Flags().Float64Var(&renderHeight, "height", 0, "Canvas height (default from config)")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render [case text]",
	Short: "Build, lay out and render the knowledge graph for a case",
	RunE:  runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	provider, err := render.ForName(renderProvider)
	if err != nil {
		return err
	}

	var pred model.PredictionResult
	if renderCaseID != 0 {
		cases := mustOpenStore(cfg)
		defer cases.Close()
		stored, err := cases.GetCase(renderCaseID)
		if err != nil {
			return err
		}
		pred = stored.Result
	} else {
		caseText := ""
		if len(args) > 0 {
			caseText = args[0]
		}
		params := predict.Params{TopK: cfg.TopK, Threshold: cfg.Threshold}
		pred, err = newPredictor(cfg).Predict(context.Background(), caseText, cfg.DefaultModel, params)
		if err != nil {
			return err
		}
	}

	hier := hierarchy.NewManager()
	hier.Update(pred, cfg.DefaultModel, cfg.TopK, cfg.Threshold)
	external := hier.GraphForPredictions(pred.ICDPredictions, 3)

	g := graph.Build(external, pred)

	width, height := renderWidth, renderHeight
	if width <= 0 || height <= 0 {
		width, height = cfg.Canvas.Width, cfg.Canvas.Height
	}
	positions := layout.Compute(g, width, height)

	if err := provider.RenderToFile(g, positions, renderOut); err != nil {
		return err
	}

	color.Green("Rendered %d nodes and %d edges via %s", len(g.Nodes), len(g.Edges), renderProvider)
	fmt.Printf("Output written to %s\n", renderOut)
	return nil
}
