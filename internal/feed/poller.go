package feed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/crawlkit/crawlkit/internal/crawler"
	"github.com/crawlkit/crawlkit/internal/policy/traversal"
)

// Enqueuer accepts traversal work. Satisfied by the dispatcher.
type Enqueuer interface {
	Enqueue(ctx context.Context, item crawler.QueueItem) error
}

// Poller turns unseen feed events into queued crawl roots and records their
// etags so the next poll skips them.
type Poller struct {
	dedup  *Deduplicator
	store  crawler.EtagStore
	queue  Enqueuer
	idGen  crawler.IDGenerator
	policy traversal.Value
	logger *zap.Logger
}

// NewPoller constructs a Poller running feed crawls under the given policy.
func NewPoller(
	dedup *Deduplicator,
	store crawler.EtagStore,
	queue Enqueuer,
	idGen crawler.IDGenerator,
	policy traversal.Value,
	logger *zap.Logger,
) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		dedup:  dedup,
		store:  store,
		queue:  queue,
		idGen:  idGen,
		policy: policy,
		logger: logger,
	}
}

// Poll runs one dedup pass and enqueues every unseen event as a crawl root.
// It returns the job ID covering the enqueued events, or "" when the feed
// held nothing new.
func (p *Poller) Poll(ctx context.Context) (string, error) {
	events, err := p.dedup.Unseen(ctx)
	if err != nil {
		return "", fmt.Errorf("scan feed: %w", err)
	}
	if len(events) == 0 {
		p.logger.Debug("feed poll found nothing new")
		return "", nil
	}

	jobID, err := p.idGen.NewID()
	if err != nil {
		return "", fmt.Errorf("generate job id: %w", err)
	}

	for _, ev := range events {
		item := crawler.QueueItem{
			JobID:  jobID,
			URL:    ev.URL,
			Kind:   crawler.ResourceKindRoot,
			Policy: p.policy.Clone(),
		}
		if err := p.queue.Enqueue(ctx, item); err != nil {
			return "", fmt.Errorf("enqueue feed event %s: %w", ev.URL, err)
		}
		if err := p.store.SetEtag(ctx, ev.Type, ev.URL, ev.Etag); err != nil {
			return "", fmt.Errorf("record etag for %s: %w", ev.URL, err)
		}
	}

	p.logger.Info("feed poll enqueued events",
		zap.String("job_id", jobID),
		zap.Int("count", len(events)))
	return jobID, nil
}
