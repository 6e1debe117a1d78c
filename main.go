package main

import (
	"fmt"
	"os"

	"github.com/helmcode/aomaas/cmd"
	"github.com/spf13/cobra"
)

var (
	version = "v0.1.0" // Overwritten at build time
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !cmd.IsReported(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aomaas",
		Short: "Autonomous open-source maintainer demo",
		Long: `aomaas sends a repository URL to a repository-analysis service and shows
the maintenance opportunities it finds, on the terminal or as a web demo page.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable automatic 'completion' command added by cobra
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddPersistentFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(
		cmd.NewAnalyzeCmd(),
		cmd.NewServeCmd(version),
		newVersionCmd(),
	)

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "aomaas version %s\n", version)
		},
	}
}
