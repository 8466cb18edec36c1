// Package memory provides in-memory stores for development/testing.
package memory

import (
	"context"
	"sync"

	"github.com/crawlkit/crawlkit/internal/crawler"
)

// DocumentStore keeps documents in a map keyed by URL.
type DocumentStore struct {
	mu   sync.RWMutex
	docs map[string]crawler.Document
}

// NewDocumentStore constructs a DocumentStore.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs: make(map[string]crawler.Document),
	}
}

// Get returns the stored document or crawler.ErrNotFound.
func (s *DocumentStore) Get(_ context.Context, url string) (crawler.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[url]
	if !ok {
		return crawler.Document{}, crawler.ErrNotFound
	}
	return doc, nil
}

// Put stores or replaces the document for its URL.
func (s *DocumentStore) Put(_ context.Context, doc crawler.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.URL] = doc
	return nil
}
