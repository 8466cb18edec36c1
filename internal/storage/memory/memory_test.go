package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crawlkit/crawlkit/internal/crawler"
)

func TestDocumentStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewDocumentStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "https://example.com")
	require.ErrorIs(t, err, crawler.ErrNotFound)

	version := 2
	doc := crawler.Document{
		URL:  "https://example.com",
		Body: []byte("<html></html>"),
		Metadata: crawler.DocumentMetadata{
			ProcessedAt: time.Unix(1700000000, 0).UTC(),
			Version:     &version,
			Etag:        "abc123",
		},
	}
	require.NoError(t, store.Put(ctx, doc))

	got, err := store.Get(ctx, doc.URL)
	require.NoError(t, err)
	require.Equal(t, doc, got)
}

func TestDocumentStoreReplacesExisting(t *testing.T) {
	t.Parallel()

	store := NewDocumentStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, crawler.Document{URL: "u", Body: []byte("old")}))
	require.NoError(t, store.Put(ctx, crawler.Document{URL: "u", Body: []byte("new")}))

	got, err := store.Get(ctx, "u")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got.Body)
}

func TestEtagStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewEtagStore()
	ctx := context.Background()

	_, found, err := store.Etag(ctx, "article", "https://example.com/a")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, store.SetEtag(ctx, "article", "https://example.com/a", "e1"))

	etag, found, err := store.Etag(ctx, "article", "https://example.com/a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "e1", etag)

	// Same URL under another event type is a distinct key.
	_, found, err = store.Etag(ctx, "release", "https://example.com/a")
	require.NoError(t, err)
	require.False(t, found)
}
