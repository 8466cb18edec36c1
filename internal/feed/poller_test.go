package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crawlkit/crawlkit/internal/crawler"
	"github.com/crawlkit/crawlkit/internal/policy/traversal"
)

type memEtagStore struct {
	etags map[string]string
}

func newMemEtagStore() *memEtagStore {
	return &memEtagStore{etags: make(map[string]string)}
}

func (s *memEtagStore) Etag(_ context.Context, eventType, url string) (string, bool, error) {
	etag, ok := s.etags[eventType+"|"+url]
	return etag, ok, nil
}

func (s *memEtagStore) SetEtag(_ context.Context, eventType, url, etag string) error {
	s.etags[eventType+"|"+url] = etag
	return nil
}

type captureEnqueuer struct {
	items []crawler.QueueItem
}

func (e *captureEnqueuer) Enqueue(_ context.Context, item crawler.QueueItem) error {
	e.items = append(e.items, item)
	return nil
}

type staticIDGen struct{ id string }

func (g staticIDGen) NewID() (string, error) { return g.id, nil }

type staticProvider struct {
	pages [][]crawler.FeedEvent
}

func (p *staticProvider) GetAll(_ context.Context, page int) ([]crawler.FeedEvent, error) {
	if page >= len(p.pages) {
		return nil, nil
	}
	return p.pages[page], nil
}

func TestPollerEnqueuesUnseenAndRecordsEtags(t *testing.T) {
	t.Parallel()

	store := newMemEtagStore()
	store.etags["article|https://example.com/old"] = "e-old"

	provider := &staticProvider{pages: [][]crawler.FeedEvent{{
		{Type: "article", URL: "https://example.com/new", Etag: "e-new"},
		{Type: "article", URL: "https://example.com/old", Etag: "e-old"},
	}}}

	queue := &captureEnqueuer{}
	policy, ok := traversal.Lookup("events")
	require.True(t, ok)

	poller := NewPoller(New(provider, store, nil), store, queue, staticIDGen{id: "job-f"}, policy, nil)
	jobID, err := poller.Poll(context.Background())
	require.NoError(t, err)
	require.Equal(t, "job-f", jobID)

	require.Len(t, queue.items, 1)
	require.Equal(t, "https://example.com/new", queue.items[0].URL)
	require.Equal(t, crawler.ResourceKindRoot, queue.items[0].Kind)

	etag, found, err := store.Etag(context.Background(), "article", "https://example.com/new")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "e-new", etag)
}

func TestPollerEmptyFeed(t *testing.T) {
	t.Parallel()

	store := newMemEtagStore()
	provider := &staticProvider{}
	queue := &captureEnqueuer{}
	policy, _ := traversal.Lookup("events")

	poller := NewPoller(New(provider, store, nil), store, queue, staticIDGen{id: "job-f"}, policy, nil)
	jobID, err := poller.Poll(context.Background())
	require.NoError(t, err)
	require.Empty(t, jobID)
	require.Empty(t, queue.items)
}

func TestHTTPProviderPagination(t *testing.T) {
	t.Parallel()

	pages := [][]crawler.FeedEvent{
		{{Type: "article", URL: "https://example.com/a", Etag: "e1"}},
		{},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.URL.Query().Get("page"))
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		if page >= len(pages) {
			_ = json.NewEncoder(w).Encode([]crawler.FeedEvent{})
			return
		}
		_ = json.NewEncoder(w).Encode(pages[page])
	}))
	defer srv.Close()

	provider := NewHTTPProvider(srv.URL, nil)

	events, err := provider.GetAll(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "https://example.com/a", events[0].URL)

	events, err = provider.GetAll(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestHTTPProviderNonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	provider := NewHTTPProvider(srv.URL, nil)
	_, err := provider.GetAll(context.Background(), 0)
	require.ErrorContains(t, err, "status 502")
}
