// Package main provides the entry point for the hierpart CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/hierpart/cmd/hierpart/commands"
	"github.com/Sumatoshi-tech/hierpart/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "hierpart",
		Short: "Hierarchical partition trees and hierarchical mutual information",
		Long: `hierpart builds, inspects and compares hierarchical partition trees.

Commands:
  compare   Compute (normalized) hierarchical mutual information between two trees
  stats     Print structural statistics for a tree
  plot      Render depth and branching distributions as an HTML page
  convert   Transcode a tree between persistence formats
  mcp       Serve comparison and stats tools over the Model Context Protocol`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewCompareCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewPlotCommand())
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "hierpart %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
