package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/helmcode/aomaas/pkg/config"
	"github.com/spf13/cobra"
)

// Flags shared by every subcommand, bound on the root command.
var (
	configPath string
	logLevel   string
)

// AddPersistentFlags registers the global flags on root.
func AddPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Operator log level (debug, info, warn, error)")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func printSuccess(w io.Writer, msg string) {
	green := color.New(color.FgGreen)
	green.Fprintf(w, "✓ %s\n", msg)
}

// reported marks an error whose user-facing message has already been shown.
type reported struct{ err error }

func (r reported) Error() string { return r.err.Error() }
func (r reported) Unwrap() error { return r.err }

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var r reported
	return errors.As(err, &r)
}
