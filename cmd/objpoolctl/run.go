package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/objpool/internal/scenario"
	"github.com/joshuapare/objpool/pool/printer"
)

func init() {
	cmd := newRunCmd()
	addPoolFlags(cmd)
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file.toml>...",
		Short: "Run scenario scripts",
		Long: `The run command loads one or more TOML scenario scripts and executes every
scenario in them against a fresh pool. The command fails if any expectation
in any scenario is not met.

Example:
  objpoolctl run workload.toml
  objpoolctl run --check --backing mmap a.toml b.toml
  objpoolctl run workload.toml --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

func runRun(args []string) error {
	var list []scenario.Scenario
	for _, path := range args {
		printVerbose("Loading %s\n", path)
		loaded, err := scenario.LoadFile(path)
		if err != nil {
			return err
		}
		list = append(list, loaded...)
	}
	return runScenarios(list)
}

// newRunner builds a runner from the pool flags. Traces go to stdout unless
// the output is JSON or quiet.
func newRunner() (*scenario.Runner, error) {
	backing, err := poolBacking()
	if err != nil {
		return nil, err
	}
	var out io.Writer = os.Stdout
	if quiet || jsonOut {
		out = io.Discard
	}
	return &scenario.Runner{
		Out:             out,
		Printer:         printer.DefaultOptions(),
		CheckInvariants: checkInv,
		Backing:         backing,
	}, nil
}

func runScenarios(list []scenario.Scenario) error {
	r, err := newRunner()
	if err != nil {
		return err
	}
	results := r.RunAll(list)

	failed := 0
	for _, res := range results {
		if !res.Passed() {
			failed++
		}
	}

	if jsonOut {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		printInfo("\n")
		for _, res := range results {
			status := "PASS"
			if !res.Passed() {
				status = "FAIL"
			}
			printInfo("%s  %s (%d steps)\n", status, res.Name, res.Steps)
			for _, f := range res.Failures {
				printInfo("      %s\n", f)
			}
		}
		printInfo("\n%d scenarios, %d failed\n", len(results), failed)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(results))
	}
	return nil
}
