package crawler

import (
	"context"
	"time"
)

// Fetcher retrieves a resource body from its origin.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Document, error)
}

// DocumentStore persists processed documents keyed by URL. Get returns
// ErrNotFound when no document is stored for the URL.
type DocumentStore interface {
	Get(ctx context.Context, url string) (Document, error)
	Put(ctx context.Context, doc Document) error
}

// EtagStore records per-resource etags for event-feed deduplication.
type EtagStore interface {
	Etag(ctx context.Context, eventType, url string) (string, bool, error)
	SetEtag(ctx context.Context, eventType, url, etag string) error
}

// BlobStore writes raw artifacts and returns a URI.
type BlobStore interface {
	PutObject(ctx context.Context, path string, contentType string, data []byte) (string, error)
}

// Publisher pushes processed-document events to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
}

// Queue provides enqueue/dequeue semantics for traversal work.
type Queue interface {
	Enqueue(ctx context.Context, item QueueItem) error
	Dequeue(ctx context.Context) (QueueItem, error)
}

// Discoverer extracts referenced resources from a document body.
type Discoverer interface {
	Discover(doc Document) ([]Resource, error)
}

// Hasher computes digests used as etags.
type Hasher interface {
	Hash(data []byte) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces job IDs (UUIDs).
type IDGenerator interface {
	NewID() (string, error)
}
