package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/helmcode/aomaas/pkg/client"
	"github.com/helmcode/aomaas/pkg/controller"
	"github.com/helmcode/aomaas/pkg/llm"
	"github.com/helmcode/aomaas/pkg/logger"
	"github.com/helmcode/aomaas/pkg/miner"
	"github.com/helmcode/aomaas/pkg/web"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveMiner    string
	serveProvider string
	serveModel    string
	serveUpstream string
)

func NewServeCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo page and a demo analysis backend",
		Long: `Serve the repository-analysis demo page over HTTP together with a demo
backend at /api/v1/repositories/mine-opportunities.

Examples:
  # Demo page with canned sample opportunities
  aomaas serve --addr :8080

  # Let an LLM suggest opportunities
  aomaas serve --miner llm --provider openai

  # Render the page against a real analysis backend
  aomaas serve --upstream https://aomaas.example.com/api/v1/repositories/mine-opportunities`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, version)
		},
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().StringVar(&serveMiner, "miner", "", "Demo backend miner (sample, llm)")
	cmd.Flags().StringVar(&serveProvider, "provider", "", fmt.Sprintf("LLM provider for --miner llm (%s)", llm.ProviderNames()))
	cmd.Flags().StringVar(&serveModel, "model", "", "LLM model to use (overrides default)")
	cmd.Flags().StringVar(&serveUpstream, "upstream", "", "Analysis endpoint the demo page posts to instead of the built-in miner")

	return cmd
}

func runServe(cmd *cobra.Command, version string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveMiner != "" {
		cfg.Miner.Kind = serveMiner
	}
	if serveProvider != "" {
		cfg.Miner.Provider = serveProvider
	}
	if serveModel != "" {
		cfg.Miner.Model = serveModel
	}
	if serveUpstream != "" {
		cfg.Server.Upstream = serveUpstream
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel, logger.FormatJSON, os.Stderr)

	m, err := miner.New(miner.Options{
		Kind: cfg.Miner.Kind,
		LLM: llm.Config{
			Provider: llm.Provider(cfg.Miner.Provider),
			Model:    cfg.Miner.Model,
			BaseURL:  cfg.Miner.BaseURL,
		},
		MaxOpportunities: cfg.Miner.MaxOpportunities,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize miner: %w", err)
	}

	var analyzer controller.Analyzer
	if cfg.Server.Upstream != "" {
		analyzer = client.New(cfg.Server.Upstream, cfg.RequestTimeout)
	}

	srv := &http.Server{
		Addr: cfg.Server.Addr,
		Handler: web.NewRouter(web.Options{
			Miner:          m,
			Analyzer:       analyzer,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         log,
			Version:        version,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.WithFields(logrus.Fields{
		"addr":     cfg.Server.Addr,
		"miner":    cfg.Miner.Kind,
		"upstream": cfg.Server.Upstream,
	}).Info("demo server listening")
	printSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Demo page available at %s", pageURL(cfg.Server.Addr)))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

func pageURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
