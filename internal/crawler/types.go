// Package crawler defines core types shared across subsystems.
package crawler

import (
	"errors"
	"time"

	"github.com/crawlkit/crawlkit/internal/policy/traversal"
)

// ErrNotFound is returned by fetchers and stores when a resource has no
// content at the consulted source. The worker reacts by consulting the
// policy's missing-fetch fallback.
var ErrNotFound = errors.New("resource not found")

// DocumentMetadata records processing state for a stored document.
type DocumentMetadata struct {
	// ProcessedAt is when the document was last processed.
	ProcessedAt time.Time `json:"processed_at"`
	// Version is the processor version recorded at processing time, nil for
	// documents never processed under a versioned policy.
	Version *int `json:"version,omitempty"`
	// Etag is the content digest recorded at processing time, used to detect
	// whether fetched content still matches the stored copy.
	Etag string `json:"etag,omitempty"`
}

// Document is one stored or freshly fetched resource body plus metadata.
type Document struct {
	URL         string           `json:"url"`
	ContentType string           `json:"content_type,omitempty"`
	Body        []byte           `json:"body,omitempty"`
	Metadata    DocumentMetadata `json:"metadata"`
}

// Info converts the stored metadata into the view the policy engine consumes.
func (d Document) Info() traversal.DocumentInfo {
	return traversal.DocumentInfo{
		ProcessedAt: d.Metadata.ProcessedAt,
		Version:     d.Metadata.Version,
	}
}

// ResourceKind distinguishes crawl-graph entry points from resources reached
// only by reference.
type ResourceKind string

// Resource kinds.
const (
	ResourceKindRoot  ResourceKind = "root"
	ResourceKindChild ResourceKind = "child"
)

// Resource is one reference discovered while processing a document.
type Resource struct {
	URL  string       `json:"url"`
	Kind ResourceKind `json:"kind"`
}

// QueueItem is one resource queued for traversal, carrying the policy that
// governs its fetch, processing, and propagation decisions.
type QueueItem struct {
	JobID   string          `json:"job_id"`
	URL     string          `json:"url"`
	Kind    ResourceKind    `json:"kind"`
	Policy  traversal.Value `json:"policy"`
	Depth   int             `json:"depth"`
	Attempt int             `json:"attempt"`
}

// ProcessedEvent is published after a document is (re)processed.
type ProcessedEvent struct {
	JobID       string    `json:"job_id"`
	URL         string    `json:"url"`
	Policy      string    `json:"policy"`
	Etag        string    `json:"etag"`
	BlobURI     string    `json:"blob_uri,omitempty"`
	Version     int       `json:"version"`
	ProcessedAt time.Time `json:"processed_at"`
}

// FeedEvent is one entry of a paginated event feed.
type FeedEvent struct {
	Type string `json:"type"`
	URL  string `json:"url"`
	Etag string `json:"etag"`
}
