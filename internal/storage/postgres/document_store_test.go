package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/crawlkit/crawlkit/internal/crawler"
)

func TestDocumentStorePutUpsertsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewDocumentStoreWithPool(mock)
	require.NoError(t, err)

	now := time.Unix(1700000000, 0).UTC()
	version := 3
	doc := crawler.Document{
		URL:         "https://example.com/page",
		ContentType: "text/html",
		Body:        []byte("<html></html>"),
		Metadata: crawler.DocumentMetadata{
			ProcessedAt: now,
			Version:     &version,
			Etag:        "abc123",
		},
	}

	mock.ExpectExec("INSERT INTO documents").
		WithArgs(doc.URL, doc.ContentType, doc.Body, now, &version, "abc123").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Put(context.Background(), doc))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStoreGetReturnsRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewDocumentStoreWithPool(mock)
	require.NoError(t, err)

	now := time.Unix(1700000000, 0).UTC()
	version := 2
	rows := pgxmock.NewRows([]string{"content_type", "body", "processed_at", "version", "etag"}).
		AddRow("text/html", []byte("<html></html>"), now, &version, "abc123")

	mock.ExpectQuery("SELECT content_type, body, processed_at, version, etag FROM documents").
		WithArgs("https://example.com/page").
		WillReturnRows(rows)

	got, err := store.Get(context.Background(), "https://example.com/page")
	require.NoError(t, err)
	require.Equal(t, "https://example.com/page", got.URL)
	require.Equal(t, []byte("<html></html>"), got.Body)
	require.Equal(t, now, got.Metadata.ProcessedAt)
	require.NotNil(t, got.Metadata.Version)
	require.Equal(t, 2, *got.Metadata.Version)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentStoreGetMissingMapsToNotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewDocumentStoreWithPool(mock)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT content_type, body, processed_at, version, etag FROM documents").
		WithArgs("https://example.com/missing").
		WillReturnRows(pgxmock.NewRows([]string{"content_type", "body", "processed_at", "version", "etag"}))

	_, err = store.Get(context.Background(), "https://example.com/missing")
	require.ErrorIs(t, err, crawler.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEtagStoreRoundTrip(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewEtagStoreWithPool(mock)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO etags").
		WithArgs("article", "https://example.com/a", "e1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.SetEtag(context.Background(), "article", "https://example.com/a", "e1"))

	mock.ExpectQuery("SELECT etag FROM etags").
		WithArgs("article", "https://example.com/a").
		WillReturnRows(pgxmock.NewRows([]string{"etag"}).AddRow("e1"))

	etag, found, err := store.Etag(context.Background(), "article", "https://example.com/a")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "e1", etag)

	mock.ExpectQuery("SELECT etag FROM etags").
		WithArgs("article", "https://example.com/b").
		WillReturnRows(pgxmock.NewRows([]string{"etag"}))

	_, found, err = store.Etag(context.Background(), "article", "https://example.com/b")
	require.NoError(t, err)
	require.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}
