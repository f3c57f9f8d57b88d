package main

import (
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/icdkit/icdgraph/internal/batch"
	"github.com/icdkit/icdgraph/internal/lib"
	"github.com/icdkit/icdgraph/internal/predict"
)

var (
	batchWorkers  uint
	batchCooldown time.Duration
)

func init() {
	batchCmd.Flags().UintVar(&batchWorkers, "workers", 3, "Number of prediction workers")
	batchCmd.Flags().DurationVar(&batchCooldown, "cooldown", 200*time.Millisecond, "Pause between cases per worker")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch <case-file>...",
	Short: "Predict a set of case files and store the results",
	Long: `Predict a set of case files (txt, html or pdf) with a worker pool,
storing every result in the case store.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	cases := mustOpenStore(cfg)
	defer cases.Close()

	runner := batch.NewRunner(
		batch.Config{
			WorkerCount:    batchWorkers,
			WorkerCooldown: lib.DurationFrom(batchCooldown),
			Model:          cfg.DefaultModel,
			Params:         predict.Params{TopK: cfg.TopK, Threshold: cfg.Threshold},
		},
		newPredictor(cfg),
		cases,
	)

	runner.Run(context.Background(), args)
	succeeded, failed := runner.Wait()

	if failed > 0 {
		color.Yellow("Done: %d succeeded, %d failed", succeeded, failed)
	} else {
		color.Green("Done: %d succeeded", succeeded)
	}
	return nil
}
