package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/objpool/internal/logger"
	"github.com/joshuapare/objpool/pool/arena"
)

var (
	// Global flags
	verbose   bool
	quiet     bool
	jsonOut   bool
	logLevel  string
	logFormat string

	// Pool flags, shared by the commands that create pools
	backingName string
	checkInv    bool
)

var rootCmd = &cobra.Command{
	Use:   "objpoolctl",
	Short: "Drive and inspect handle-based object pools",
	Long: `objpoolctl runs scripted workloads against an objpool pool, replays the
built-in scenarios and stress-tests compaction with a random workload.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&logLevel, "log-level", "", "Log pool diagnostics to stderr at this level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}

// addPoolFlags registers the flags that configure pools created by cmd.
func addPoolFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&backingName, "backing", "heap", "Arena backing (heap, mmap)")
	cmd.Flags().BoolVar(&checkInv, "check", false, "Validate pool invariants after every operation")
}

func setupLogging() error {
	if logLevel == "" {
		return logger.Init(logger.Options{Enabled: false})
	}
	lvl, err := logger.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	return logger.Init(logger.Options{
		Enabled: true,
		Writer:  os.Stderr,
		Format:  logger.Format(logFormat),
		Level:   lvl,
	})
}

func poolBacking() (arena.Backing, error) {
	return arena.ParseBacking(backingName)
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
