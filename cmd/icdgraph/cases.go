package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var casesLimit int

func init() {
	casesCmd.Flags().IntVar(&casesLimit, "limit", 20, "Maximum cases to list")
	casesCmd.AddCommand(casesDeleteCmd)
	rootCmd.AddCommand(casesCmd)
}

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List stored cases",
	RunE:  runCases,
}

func runCases(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	cases := mustOpenStore(cfg)
	defer cases.Close()

	list, err := cases.ListCases(casesLimit)
	if err != nil {
		return err
	}

	if len(list) == 0 {
		fmt.Println("No stored cases.")
		return nil
	}

	bold := color.New(color.Bold)
	bold.Printf("%-6s %-20s %-6s %s\n", "ID", "CREATED", "CODES", "TITLE")
	for _, c := range list {
		fmt.Printf("%-6d %-20s %-6d %s\n",
			c.ID,
			c.CreatedAt.Format("2006-01-02 15:04"),
			len(c.Result.ICDPredictions),
			c.Title,
		)
	}
	return nil
}

var casesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid case id: %s", args[0])
		}

		cfg := loadConfig()
		cases := mustOpenStore(cfg)
		defer cases.Close()

		if err := cases.DeleteCase(id); err != nil {
			return err
		}
		color.Green("Deleted case %d", id)
		return nil
	},
}
