package main

import (
	"context"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/icdkit/icdgraph/internal/snapshot"
)

var (
	snapshotOut     string
	snapshotWidth   int
	snapshotHeight  int
	snapshotTimeout time.Duration
)

func init() {
	snapshotCmd.Flags().StringVar(&snapshotOut, "out", "icdgraph.png", "PNG output path")
	snapshotCmd.Flags().IntVar(&snapshotWidth, "width", 1200, "Viewport width")
	snapshotCmd.Flags().IntVar(&snapshotHeight, "height", 800, "Viewport height")
	snapshotCmd.Flags().DurationVar(&snapshotTimeout, "timeout", 30*time.Second, "Chrome timeout")
	rootCmd.AddCommand(snapshotCmd)
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <rendered.html>",
	Short: "Capture a PNG of a rendered graph HTML file",
	Long: `Capture a PNG of a rendered graph HTML file using headless Chrome.

Render first, then snapshot:
  icdgraph render --provider echarts --out result
  icdgraph snapshot result.html --out result.png`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	err := snapshot.CapturePNG(
		context.Background(),
		args[0],
		snapshotOut,
		snapshotWidth,
		snapshotHeight,
		snapshotTimeout,
	)
	if err != nil {
		return err
	}
	color.Green("Snapshot written to %s", snapshotOut)
	return nil
}
