// Package main provides the entry point for the indlovu sync tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yukhold/indlovu/cmd/indlovu/commands"
	"github.com/yukhold/indlovu/pkg/version"
)

func main() {
	// Load .env if present; the environment itself wins on conflicts.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "indlovu",
		Short: "indlovu - App Store analytics synchronization",
		Long: `Indlovu downloads App Store Connect analytics reports, pulls secondary
analytics from the events warehouse, writes a run summary, and republishes
everything into the tabular store.

Commands:
  sync      Run the full synchronization pipeline
  list      Inspect report requests, reports, and instances
  request   Manage analytics report requests
  download  Download a single report instance`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewSyncCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewRequestCommand())
	rootCmd.AddCommand(commands.NewDownloadCommand())
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
			fmt.Fprintf(os.Stdout, "indlovu %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
