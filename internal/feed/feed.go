// Package feed filters a paginated event stream against previously stored
// etags, so only events not yet seen are handed to the crawl queue.
package feed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/crawlkit/crawlkit/internal/crawler"
)

// Provider serves event pages most-recent-first. An empty page signals the
// end of the stream.
type Provider interface {
	GetAll(ctx context.Context, page int) ([]crawler.FeedEvent, error)
}

// Deduplicator scans feed pages and filters out events whose etag is already
// recorded in the store.
type Deduplicator struct {
	provider Provider
	store    crawler.EtagStore
	logger   *zap.Logger
}

// New constructs a Deduplicator. A nil logger defaults to a no-op logger.
func New(provider Provider, store crawler.EtagStore, logger *zap.Logger) *Deduplicator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Deduplicator{
		provider: provider,
		store:    store,
		logger:   logger,
	}
}

// Unseen returns the events not previously seen, scanning pages newest-first.
// An event counts as seen when the store holds an etag for its URL equal to
// the event's etag. Pagination stops after the first page containing at
// least one seen event: the feed is ordered most-recent-first, so everything
// on later pages predates an event already recorded. Unseen events on that
// final page are still returned, including ones positioned after the first
// seen event.
func (d *Deduplicator) Unseen(ctx context.Context) ([]crawler.FeedEvent, error) {
	var unseen []crawler.FeedEvent
	for page := 0; ; page++ {
		events, err := d.provider.GetAll(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("get feed page %d: %w", page, err)
		}
		if len(events) == 0 {
			return unseen, nil
		}

		sawKnown := false
		for _, ev := range events {
			stored, found, err := d.store.Etag(ctx, ev.Type, ev.URL)
			if err != nil {
				return nil, fmt.Errorf("etag lookup for %s: %w", ev.URL, err)
			}
			if found && stored == ev.Etag {
				sawKnown = true
				continue
			}
			unseen = append(unseen, ev)
		}
		if sawKnown {
			d.logger.Debug("feed scan reached known events",
				zap.Int("page", page),
				zap.Int("unseen", len(unseen)))
			return unseen, nil
		}
	}
}
