// Package main provides the icdgraph CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/icdkit/icdgraph/internal/config"
	"github.com/icdkit/icdgraph/internal/predict"
	"github.com/icdkit/icdgraph/internal/store"
)

// Version is set at build time via ldflags.
var Version = "dev"

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "icdgraph",
	Short: "Diagnostic-support dashboard for ICD auto-coding",
	Long: `icdgraph predicts ICD codes for clinical case text and renders the
resulting knowledge graph.

Core features:
  - Prediction via a model service or a built-in mock predictor
  - Knowledge-graph construction from predictions and extracted entities
  - Deterministic force-directed layout for arbitrary graph sizes
  - Renderers: echarts HTML, graphology JSON, raw JSON, PNG snapshots
  - SQLite case history and batch prediction over case files`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.Version = Version
}

func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return cfg
}

// newPredictor picks the HTTP client when a model service is configured, the
// mock otherwise.
func newPredictor(cfg config.Config) predict.Predictor {
	if cfg.PredictionURL != "" {
		return predict.NewClient(cfg.PredictionURL, cfg.HTTPTimeout.Duration)
	}
	return predict.NewMock()
}

func mustOpenStore(cfg config.Config) *store.Store {
	cases, err := store.Open(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: opening case store: %s\n", err)
		os.Exit(1)
	}
	return cases
}
