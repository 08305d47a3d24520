package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/objpool/internal/scenario"
)

func init() {
	cmd := newDemoCmd()
	addPoolFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo [name...]",
		Short: "Run the built-in scenarios",
		Long: `The demo command runs the scenarios embedded in objpoolctl: pool lifecycle,
the insertion table, reference counting, every garbage-collection layout of
three blocks, retrieval and a compaction round trip. With no arguments all of
them run; use "objpoolctl list" to see the names.

Example:
  objpoolctl demo
  objpoolctl demo "gc X -> X -> O" retrieval`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(args)
		},
	}
	return cmd
}

func runDemo(args []string) error {
	all, err := scenario.Builtin()
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return runScenarios(all)
	}

	selected := make([]scenario.Scenario, 0, len(args))
	for _, name := range args {
		s, ok := scenario.Find(all, name)
		if !ok {
			return fmt.Errorf("unknown scenario %q (see objpoolctl list)", name)
		}
		selected = append(selected, s)
	}
	return runScenarios(selected)
}
