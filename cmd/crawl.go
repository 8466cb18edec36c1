package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crawlkit/crawlkit/internal/crawler"
	uuidgen "github.com/crawlkit/crawlkit/internal/id/uuid"
	"github.com/crawlkit/crawlkit/internal/policy/traversal"
)

func newCrawlCmd() *cobra.Command {
	var policyName string

	cmd := &cobra.Command{
		Use:   "crawl [urls...]",
		Short: "Enqueues URLs and runs the worker pool",
		Long: `Enqueues the given URLs as crawl roots under the selected policy
and runs the worker pool until interrupted. Discovered resources are queued
according to the policy's propagation rules.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrawlCommand(cmd, args, policyName)
		},
	}
	cmd.Flags().StringVar(&policyName, "policy", "", "traversal policy name (default from config)")
	return cmd
}

func runCrawlCommand(_ *cobra.Command, urls []string, policyName string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if policyName == "" {
		policyName = cfg.Crawler.DefaultPolicy
	}
	policy, ok := traversal.Lookup(policyName)
	if !ok {
		return fmt.Errorf("unknown policy %q (see 'crawlkit policies')", policyName)
	}

	ctx, cancel := signalContext()
	defer cancel()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize application services: %w", err)
	}
	defer a.Close()

	jobID, err := uuidgen.NewGenerator().NewID()
	if err != nil {
		return fmt.Errorf("generate job id: %w", err)
	}
	for _, url := range urls {
		item := crawler.QueueItem{
			JobID:  jobID,
			URL:    url,
			Kind:   crawler.ResourceKindRoot,
			Policy: policy.Clone(),
		}
		if err := a.Dispatcher().Enqueue(ctx, item); err != nil {
			return fmt.Errorf("enqueue %s: %w", url, err)
		}
	}
	a.Logger().Info("crawl submitted",
		zap.String("job_id", jobID),
		zap.String("policy", policyName),
		zap.Int("urls", len(urls)))

	a.Dispatcher().Run(ctx)
	if err := ctx.Err(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
