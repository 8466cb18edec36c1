// Package cmd defines and implements the CLI commands for the crawlkit
// executable.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crawlkit/crawlkit/internal/app"
	"github.com/crawlkit/crawlkit/internal/config"
)

var cfgFile string

// newApp is the application factory, a variable so tests can swap in a mock.
var newApp = func(ctx context.Context, cfg config.Config) (*app.App, error) {
	return app.New(ctx, cfg)
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawlkit",
		Short: "A policy-driven web crawl service.",
		Long: `crawlkit fetches, processes, and traverses web resources under
named traversal policies that control where content is fetched from, when it
is reprocessed, and how far discovery propagates.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults plus CRAWLKIT_* env)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newCrawlCmd())
	cmd.AddCommand(newFeedCmd())
	cmd.AddCommand(newPoliciesCmd())

	return cmd
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
