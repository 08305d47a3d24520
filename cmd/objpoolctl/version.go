package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/joshuapare/objpool/pool/arena"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("objpoolctl %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  platform: %s/%s (mmap backing: %t)\n", runtime.GOOS, runtime.GOARCH, arena.MmapSupported)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
