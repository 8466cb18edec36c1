package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newFeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "feed",
		Short: "Polls the event feed and crawls unseen events",
		Long: `Scans the configured event feed newest-first, filters out events
already recorded, enqueues the remainder as crawl roots, and runs the worker
pool until interrupted.`,
		RunE: runFeedCommand,
	}
}

func runFeedCommand(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Feed.URL == "" {
		return errors.New("feed.url is not configured")
	}

	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize application services: %w", err)
	}
	defer a.Close()

	jobID, err := a.Poller().Poll(ctx)
	if err != nil {
		return fmt.Errorf("poll feed: %w", err)
	}
	if jobID == "" {
		a.Logger().Info("feed holds nothing new")
		return nil
	}
	a.Logger().Info("feed crawl submitted", zap.String("job_id", jobID))

	a.Dispatcher().Run(ctx)
	return nil
}
