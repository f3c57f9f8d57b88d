package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/icdkit/icdgraph/internal/batch"
	"github.com/icdkit/icdgraph/internal/predict"
)

var (
	predictFile      string
	predictModel     string
	predictTopK      int
	predictThreshold float64
	predictSave      bool
)

func init() {
	predictCmd.Flags().StringVar(&predictFile, "file", "", "Read case text from a file (txt, html or pdf)")
	predictCmd.Flags().StringVar(&predictModel, "model", "", "Model name to request")
	predictCmd.Flags().IntVar(&predictTopK, "top-k", 10, "Number of codes to return")
	predictCmd.Flags().Float64Var(&predictThreshold, "threshold", 0.5, "Minimum probability")
	predictCmd.Flags().BoolVar(&predictSave, "save", false, "Save the case and result to the case store")
	rootCmd.AddCommand(predictCmd)
}

var predictCmd = &cobra.Command{
	Use:   "predict [case text]",
	Short: "Predict ICD codes for case text",
	Long: `Predict ICD codes for case text, given inline or via --file.

Examples:
  icdgraph predict "65 year old male with chest pain..."
  icdgraph predict --file case.pdf --save`,
	RunE: runPredict,
}

func runPredict(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	var caseText string
	switch {
	case predictFile != "":
		text, err := batch.ExtractText(predictFile)
		if err != nil {
			return fmt.Errorf("reading case file: %w", err)
		}
		caseText = text
	case len(args) > 0:
		caseText = args[0]
	default:
		return fmt.Errorf("provide case text or --file")
	}

	modelName := predictModel
	if modelName == "" {
		modelName = cfg.DefaultModel
	}
	params := predict.Params{TopK: predictTopK, Threshold: predictThreshold}

	result, err := newPredictor(cfg).Predict(context.Background(), caseText, modelName, params)
	if err != nil {
		return err
	}

	bold := color.New(color.Bold)
	bold.Printf("ICD predictions (%s, avg confidence %.3f):\n", modelName, result.AvgConfidence)
	for i, p := range result.ICDPredictions {
		fmt.Printf("  %2d. %-8s %.3f  %s\n", i+1, p.Code, p.Probability, p.Description)
	}

	bold.Println("Entities:")
	printEntityLine("diseases", result.Entities.Diseases)
	printEntityLine("symptoms", result.Entities.Symptoms)
	printEntityLine("procedures", result.Entities.Procedures)
	printEntityLine("medications", result.Entities.Medications)

	if predictSave {
		cases := mustOpenStore(cfg)
		defer cases.Close()

		title := caseText
		if len(title) > 60 {
			title = title[:60]
		}
		id, err := cases.SaveCase(title, caseText, result)
		if err != nil {
			return fmt.Errorf("saving case: %w", err)
		}
		color.Green("Saved as case %d", id)
	}

	return nil
}

func printEntityLine(category string, labels []string) {
	if len(labels) == 0 {
		return
	}
	fmt.Printf("  %-12s", category+":")
	for _, l := range labels {
		fmt.Printf(" [%s]", l)
	}
	fmt.Println()
}
