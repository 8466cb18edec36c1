// Package worker implements the traversal pipeline execution loop.
package worker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/crawlkit/crawlkit/internal/crawler"
	"github.com/crawlkit/crawlkit/internal/metrics"
	"github.com/crawlkit/crawlkit/internal/policy/traversal"
)

// Config controls Worker behavior.
type Config struct {
	Topic       string
	BlobPrefix  string
	ContentType string
	// Version is the current processor version, compared against stored
	// documents under version-based freshness.
	Version int
	// MaxDepth bounds traversal depth; zero means unbounded.
	MaxDepth int
}

// Worker consumes queue items and executes the fetch/process/traverse
// pipeline, consulting the policy engine at each step.
type Worker struct {
	queue      crawler.Queue
	docs       crawler.DocumentStore
	blobs      crawler.BlobStore
	publisher  crawler.Publisher
	fetcher    crawler.Fetcher
	discoverer crawler.Discoverer
	hasher     crawler.Hasher
	clock      crawler.Clock
	engine     *traversal.Engine
	cfg        Config
	logger     *zap.Logger
}

// New constructs a Worker.
func New(
	queue crawler.Queue,
	docs crawler.DocumentStore,
	blobs crawler.BlobStore,
	publisher crawler.Publisher,
	fetcher crawler.Fetcher,
	discoverer crawler.Discoverer,
	hasher crawler.Hasher,
	clock crawler.Clock,
	cfg Config,
	logger *zap.Logger,
) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "text/html; charset=utf-8"
	}
	return &Worker{
		queue:      queue,
		docs:       docs,
		blobs:      blobs,
		publisher:  publisher,
		fetcher:    fetcher,
		discoverer: discoverer,
		hasher:     hasher,
		clock:      clock,
		engine:     traversal.NewEngine(clock),
		cfg:        cfg,
		logger:     logger,
	}
}

// Run blocks, consuming queue items until the context finishes.
func (w *Worker) Run(ctx context.Context) {
	for {
		item, err := w.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.logger.Error("queue dequeue failed", zap.Error(err))
			continue
		}
		w.processItem(ctx, item)
	}
}

func (w *Worker) processItem(ctx context.Context, item crawler.QueueItem) {
	form, err := item.Policy.ShortForm()
	if err != nil {
		w.failOnPolicy(item, err)
		return
	}
	logger := w.logger.With(
		zap.String("job_id", item.JobID),
		zap.String("url", item.URL),
		zap.String("policy", form),
	)

	source, err := w.engine.InitialFetch(item.Policy)
	if err != nil {
		w.failOnPolicy(item, err)
		return
	}
	doc, req, found, err := w.fetch(ctx, item.URL, source)
	if err != nil {
		logger.Error("fetch failed", zap.String("source", string(source)), zap.Error(err))
		return
	}
	if !found {
		fallback, err := w.engine.MissingFetch(item.Policy)
		if err != nil {
			w.failOnPolicy(item, err)
			return
		}
		if fallback == traversal.SourceNone {
			logger.Debug("no content at any permitted source")
			return
		}
		doc, req, found, err = w.fetch(ctx, item.URL, fallback)
		if err != nil {
			logger.Error("fallback fetch failed", zap.String("source", string(fallback)), zap.Error(err))
			return
		}
		if !found {
			logger.Debug("content missing after fallback")
			return
		}
	}

	process, err := w.engine.ShouldProcess(item.Policy, req, w.cfg.Version)
	if err != nil {
		w.failOnPolicy(item, err)
		return
	}

	if req.Origin == traversal.ContentOriginCache && !process && !w.engine.ShouldFetchExisting(item.Policy) {
		// The stored copy already matches the origin and nothing downstream
		// needs its body.
		logger.Debug("stored copy current, skipping")
		metrics.ObserveDecision("skip")
		return
	}

	if process {
		if err := w.processDocument(ctx, item, doc, form); err != nil {
			logger.Error("process failed", zap.Error(err))
			return
		}
		metrics.ObserveDecision("process")
	} else {
		metrics.ObserveDecision("skip")
	}

	if w.engine.ShouldTraverse(item.Policy) {
		w.traverse(ctx, item, doc, logger)
	}
}

// fetch retrieves content from the given source and assembles the request
// view consumed by the policy engine. found is false when the source holds
// no content for the URL.
func (w *Worker) fetch(ctx context.Context, url string, source traversal.Source) (crawler.Document, traversal.Request, bool, error) {
	metrics.ObserveFetch(string(source))

	switch source {
	case traversal.SourceStorage:
		stored, err := w.docs.Get(ctx, url)
		if errors.Is(err, crawler.ErrNotFound) {
			return crawler.Document{}, traversal.Request{}, false, nil
		}
		if err != nil {
			return crawler.Document{}, traversal.Request{}, false, fmt.Errorf("storage get: %w", err)
		}
		req := traversal.Request{
			Origin:   traversal.ContentOriginStorage,
			Document: stored.Info(),
		}
		return stored, req, true, nil

	case traversal.SourceOrigin:
		fetched, err := w.fetcher.Fetch(ctx, url)
		if errors.Is(err, crawler.ErrNotFound) {
			return crawler.Document{}, traversal.Request{}, false, nil
		}
		if err != nil {
			return crawler.Document{}, traversal.Request{}, false, fmt.Errorf("origin fetch: %w", err)
		}
		etag, err := w.hasher.Hash(fetched.Body)
		if err != nil {
			return crawler.Document{}, traversal.Request{}, false, fmt.Errorf("hash body: %w", err)
		}
		fetched.Metadata.Etag = etag

		// An unchanged digest against the stored copy stands in for a
		// conditional-fetch short-circuit: the origin still serves what we
		// already processed.
		req := traversal.Request{Origin: traversal.ContentOriginRemote}
		stored, err := w.docs.Get(ctx, url)
		if err == nil {
			req.Document = stored.Info()
			if stored.Metadata.Etag == etag {
				req.Origin = traversal.ContentOriginCache
			}
		} else if !errors.Is(err, crawler.ErrNotFound) {
			return crawler.Document{}, traversal.Request{}, false, fmt.Errorf("storage get: %w", err)
		}
		return fetched, req, true, nil

	default:
		return crawler.Document{}, traversal.Request{}, false, fmt.Errorf("unsupported fetch source %q", source)
	}
}

func (w *Worker) processDocument(ctx context.Context, item crawler.QueueItem, doc crawler.Document, form string) error {
	now := w.clock.Now()
	version := w.cfg.Version
	doc.URL = item.URL
	doc.Metadata.ProcessedAt = now
	doc.Metadata.Version = &version
	if doc.ContentType == "" {
		doc.ContentType = w.cfg.ContentType
	}

	blobURI := ""
	if w.blobs != nil && len(doc.Body) > 0 {
		path := fmt.Sprintf("%s/%s/%s.html", w.cfg.BlobPrefix, item.JobID, doc.Metadata.Etag)
		uri, err := w.blobs.PutObject(ctx, path, doc.ContentType, doc.Body)
		if err != nil {
			return fmt.Errorf("store blob: %w", err)
		}
		blobURI = uri
	}

	if err := w.docs.Put(ctx, doc); err != nil {
		return fmt.Errorf("store document: %w", err)
	}

	if w.publisher != nil {
		event := crawler.ProcessedEvent{
			JobID:       item.JobID,
			URL:         item.URL,
			Policy:      form,
			Etag:        doc.Metadata.Etag,
			BlobURI:     blobURI,
			Version:     version,
			ProcessedAt: now,
		}
		if _, err := w.publisher.Publish(ctx, w.cfg.Topic, event); err != nil {
			return fmt.Errorf("publish event: %w", err)
		}
	}
	return nil
}

func (w *Worker) traverse(ctx context.Context, item crawler.QueueItem, doc crawler.Document, logger *zap.Logger) {
	if w.cfg.MaxDepth > 0 && item.Depth >= w.cfg.MaxDepth {
		logger.Debug("max depth reached", zap.Int("depth", item.Depth))
		return
	}

	resources, err := w.discoverer.Discover(doc)
	if err != nil {
		logger.Error("discover failed", zap.Error(err))
		return
	}
	metrics.ObserveTraversal()

	for _, res := range resources {
		var (
			next traversal.Value
			ok   bool
		)
		switch res.Kind {
		case crawler.ResourceKindRoot:
			next, ok = traversal.PolicyForRoot(item.Policy)
		default:
			next, ok = traversal.PolicyForChild(item.Policy)
		}
		if !ok {
			metrics.ObservePropagationDrop(string(res.Kind))
			continue
		}
		child := crawler.QueueItem{
			JobID:  item.JobID,
			URL:    res.URL,
			Kind:   res.Kind,
			Policy: next,
			Depth:  item.Depth + 1,
		}
		if err := w.queue.Enqueue(ctx, child); err != nil {
			logger.Error("enqueue discovered resource failed", zap.String("child_url", res.URL), zap.Error(err))
			return
		}
		metrics.ObserveDiscovered(string(res.Kind))
	}
}

func (w *Worker) failOnPolicy(item crawler.QueueItem, err error) {
	metrics.ObservePolicyFault()
	w.logger.Error("malformed traversal policy",
		zap.String("job_id", item.JobID),
		zap.String("url", item.URL),
		zap.Error(err),
	)
}
