package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/helmcode/aomaas/pkg/client"
	"github.com/helmcode/aomaas/pkg/controller"
	"github.com/helmcode/aomaas/pkg/formatter"
	"github.com/helmcode/aomaas/pkg/logger"
	"github.com/helmcode/aomaas/pkg/provider"
	"github.com/spf13/cobra"
)

var (
	analyzeEndpoint     string
	analyzeOutputFormat string
	analyzeTimeout      time.Duration
)

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze REPOSITORY_URL",
		Short: "Find maintenance opportunities in a repository",
		Long: `Send a repository URL to the analysis endpoint and show the maintenance
opportunities it suggests.

Examples:
  # Analyze a GitHub repository against a local demo server
  aomaas analyze https://github.com/fastapi/fastapi

  # Analyze a GitLab project on a remote endpoint, as JSON
  aomaas analyze https://gitlab.com/group/project --endpoint https://aomaas.example.com/api/v1/repositories/mine-opportunities -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringVar(&analyzeEndpoint, "endpoint", "", "Repository-analysis endpoint (overrides config)")
	cmd.Flags().StringVarP(&analyzeOutputFormat, "output", "o", "", "Output format (human, json, yaml)")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "Request timeout, 0 for none (overrides config)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if analyzeEndpoint != "" {
		cfg.Endpoint = analyzeEndpoint
	}
	if analyzeOutputFormat != "" {
		cfg.Output = analyzeOutputFormat
	}
	if cmd.Flags().Changed("timeout") {
		cfg.RequestTimeout = analyzeTimeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var repoURL string
	if len(args) > 0 {
		repoURL = args[0]
	}

	out := cmd.OutOrStdout()
	human := cfg.Output == "human"
	if human && repoURL != "" {
		printAnalyzeHeader(out, repoURL, cfg.Endpoint)
	}

	log := logger.New(cfg.LogLevel, logger.FormatText, os.Stderr)
	terminal := formatter.NewTerminal(out, cfg.Output)

	el := controller.Elements{
		Input:   controller.StaticInput(repoURL),
		Results: terminal,
	}
	if human {
		el.Indicator = formatter.NewSpinner(cmd.ErrOrStderr(), " Analyzing repository...")
	}

	ctrl := controller.New(el, client.New(cfg.Endpoint, cfg.RequestTimeout), log)
	if _, err := ctrl.Submit(cmd.Context()); err != nil {
		// The outcome is already on screen; only the exit status is left.
		return reported{err}
	}
	if err := terminal.Err(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if human {
		printSuccess(cmd.ErrOrStderr(), "Analysis complete")
	}
	return nil
}

func printAnalyzeHeader(w io.Writer, repoURL, endpoint string) {
	cyan := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(w)
	cyan.Fprintln(w, "🤖 AOMaaS Repository Analyzer")
	fmt.Fprintf(w, "📁 Repository: %s\n", repoURL)
	fmt.Fprintf(w, "🏷  Provider: %s\n", provider.Detect(repoURL))
	fmt.Fprintf(w, "🌐 Endpoint: %s\n", endpoint)
	fmt.Fprintln(w)
}
