package memory

import (
	"context"
	"sync"
)

// EtagStore keeps etags in a map keyed by event type and URL.
type EtagStore struct {
	mu    sync.RWMutex
	etags map[string]string
}

// NewEtagStore constructs an EtagStore.
func NewEtagStore() *EtagStore {
	return &EtagStore{
		etags: make(map[string]string),
	}
}

func etagKey(eventType, url string) string {
	return eventType + "|" + url
}

// Etag returns the stored etag for the event type and URL, if any.
func (s *EtagStore) Etag(_ context.Context, eventType, url string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	etag, ok := s.etags[etagKey(eventType, url)]
	return etag, ok, nil
}

// SetEtag stores or replaces the etag for the event type and URL.
func (s *EtagStore) SetEtag(_ context.Context, eventType, url, etag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.etags[etagKey(eventType, url)] = etag
	return nil
}
