// Package app initializes and holds long-lived application services, acting
// as the dependency injection container for the crawl service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	gstorage "cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/crawlkit/crawlkit/internal/api"
	"github.com/crawlkit/crawlkit/internal/clock/system"
	"github.com/crawlkit/crawlkit/internal/config"
	"github.com/crawlkit/crawlkit/internal/crawler"
	"github.com/crawlkit/crawlkit/internal/discover"
	"github.com/crawlkit/crawlkit/internal/dispatcher"
	"github.com/crawlkit/crawlkit/internal/feed"
	collyfetcher "github.com/crawlkit/crawlkit/internal/fetcher/colly"
	"github.com/crawlkit/crawlkit/internal/hash/sha256"
	uuidgen "github.com/crawlkit/crawlkit/internal/id/uuid"
	"github.com/crawlkit/crawlkit/internal/logging"
	"github.com/crawlkit/crawlkit/internal/metrics"
	"github.com/crawlkit/crawlkit/internal/policy/ratelimit"
	"github.com/crawlkit/crawlkit/internal/policy/traversal"
	mempub "github.com/crawlkit/crawlkit/internal/publisher/memory"
	pubsubpub "github.com/crawlkit/crawlkit/internal/publisher/pubsub"
	memqueue "github.com/crawlkit/crawlkit/internal/queue/memory"
	"github.com/crawlkit/crawlkit/internal/storage/gcs"
	memstore "github.com/crawlkit/crawlkit/internal/storage/memory"
	"github.com/crawlkit/crawlkit/internal/storage/postgres"
	"github.com/crawlkit/crawlkit/internal/worker"
)

// App holds the shared, long-lived services for the application. It is
// initialized once at startup and fails fast when any critical dependency
// cannot be built.
type App struct {
	cfg        config.Config
	logger     *zap.Logger
	docs       crawler.DocumentStore
	etags      crawler.EtagStore
	blobs      crawler.BlobStore
	publisher  crawler.Publisher
	queue      crawler.Queue
	dispatcher *dispatcher.Dispatcher
	server     *api.Server
	poller     *feed.Poller

	closers []func()
}

// New builds the full service graph from configuration.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	metrics.Init()

	a := &App{cfg: cfg, logger: logger}

	if err := a.initStores(ctx); err != nil {
		return nil, err
	}
	if err := a.initBlobStore(ctx); err != nil {
		return nil, err
	}
	if err := a.initPublisher(ctx); err != nil {
		return nil, err
	}
	a.initPipeline()

	logger.Info("application services initialized",
		zap.String("storage", cfg.Storage.Provider),
		zap.Int("workers", cfg.Crawler.Concurrency))
	return a, nil
}

func (a *App) initStores(ctx context.Context) error {
	switch a.cfg.Storage.Provider {
	case "memory":
		a.docs = memstore.NewDocumentStore()
		a.etags = memstore.NewEtagStore()
	case "postgres":
		pgCfg := postgres.Config{
			DSN:      a.cfg.DB.DSN,
			MaxConns: int32(a.cfg.DB.MaxConns),
			MinConns: int32(a.cfg.DB.MinConns),
		}
		docs, err := postgres.NewDocumentStore(ctx, pgCfg)
		if err != nil {
			return fmt.Errorf("connect document store: %w", err)
		}
		a.closers = append(a.closers, docs.Close)
		etags, err := postgres.NewEtagStore(ctx, pgCfg)
		if err != nil {
			return fmt.Errorf("connect etag store: %w", err)
		}
		a.closers = append(a.closers, etags.Close)
		a.docs = docs
		a.etags = etags
	default:
		return fmt.Errorf("unknown storage provider %q", a.cfg.Storage.Provider)
	}
	return nil
}

func (a *App) initBlobStore(ctx context.Context) error {
	if a.cfg.Storage.GCSBucket == "" {
		a.blobs = memstore.NewBlobStore()
		return nil
	}
	client, err := gstorage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("build gcs client: %w", err)
	}
	a.closers = append(a.closers, func() { _ = client.Close() })
	blobs, err := gcs.New(client, gcs.Config{
		Bucket: a.cfg.Storage.GCSBucket,
		Prefix: a.cfg.Storage.Prefix,
	})
	if err != nil {
		return fmt.Errorf("build gcs blob store: %w", err)
	}
	a.blobs = blobs
	return nil
}

func (a *App) initPublisher(ctx context.Context) error {
	if a.cfg.PubSub.ProjectID == "" {
		a.publisher = mempub.New()
		return nil
	}
	pub, err := pubsubpub.New(ctx, a.cfg.PubSub.ProjectID, a.cfg.PubSub.TopicName)
	if err != nil {
		return fmt.Errorf("connect pubsub: %w", err)
	}
	a.closers = append(a.closers, func() { _ = pub.Close() })
	a.publisher = pub
	return nil
}

func (a *App) initPipeline() {
	a.queue = memqueue.NewQueue(a.cfg.Crawler.QueueDepth)

	limiter := ratelimit.New(ratelimit.Config{DefaultRPS: a.cfg.Crawler.RequestsPerSec})
	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent:     a.cfg.Crawler.UserAgent,
		RespectRobots: a.cfg.Crawler.RespectRobots,
		Timeout:       a.cfg.FetchTimeout(),
	}, limiter)

	workerCfg := worker.Config{
		Topic:       a.cfg.PubSub.TopicName,
		BlobPrefix:  a.cfg.Storage.Prefix,
		ContentType: a.cfg.Storage.ContentType,
		Version:     a.cfg.Processor.Version,
		MaxDepth:    a.cfg.Crawler.MaxDepth,
	}
	clk := system.New()
	hasher := sha256.New()
	html := discover.NewHTML()

	workers := make([]*worker.Worker, 0, a.cfg.Crawler.Concurrency)
	for i := 0; i < a.cfg.Crawler.Concurrency; i++ {
		workers = append(workers, worker.New(
			a.queue, a.docs, a.blobs, a.publisher, fetcher, html, hasher, clk,
			workerCfg, a.logger.Named("worker"),
		))
	}
	a.dispatcher = dispatcher.New(a.queue, workers)

	idGen := uuidgen.NewGenerator()
	a.server = api.NewServer(a.dispatcher, idGen, a.cfg, a.logger.Named("api"))

	if a.cfg.Feed.URL != "" {
		policy, _ := traversal.Lookup("events")
		dedup := feed.New(feed.NewHTTPProvider(a.cfg.Feed.URL, nil), a.etags, a.logger.Named("feed"))
		a.poller = feed.NewPoller(dedup, a.etags, a.dispatcher, idGen, policy, a.logger.Named("feed"))
	}
}

// Logger returns the shared zap logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Dispatcher returns the worker dispatcher for direct enqueueing.
func (a *App) Dispatcher() *dispatcher.Dispatcher {
	return a.dispatcher
}

// Poller returns the feed poller, or nil when no feed URL is configured.
func (a *App) Poller() *feed.Poller {
	return a.poller
}

// Run starts the worker pool and the HTTP server, blocking until the context
// finishes, then shuts both down.
func (a *App) Run(ctx context.Context) error {
	go a.dispatcher.Run(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           a.server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.Int("port", a.cfg.Server.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}

// Close gracefully shuts down all held services.
func (a *App) Close() {
	a.logger.Info("shutting down application services")
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.logger.Sync()
}
