package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/objpool/internal/scenario"
)

func init() {
	rootCmd.AddCommand(newListCmd())
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList()
		},
	}
}

type scenarioSummary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Steps       int    `json:"steps"`
}

func runList() error {
	all, err := scenario.Builtin()
	if err != nil {
		return err
	}

	summaries := make([]scenarioSummary, 0, len(all))
	for _, s := range all {
		summaries = append(summaries, scenarioSummary{Name: s.Name, Description: s.Description, Steps: len(s.Steps)})
	}
	if jsonOut {
		return printJSON(summaries)
	}

	for _, s := range summaries {
		printInfo("%-28s %s\n", s.Name, s.Description)
		printVerbose("%-28s %d steps\n", "", s.Steps)
	}
	return nil
}
