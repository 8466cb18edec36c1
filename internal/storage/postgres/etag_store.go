package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/crawlkit/crawlkit/internal/crawler"
)

// EtagStore persists feed etags in the etags table, keyed by event type and
// URL.
type EtagStore struct {
	pool dbPool
}

// NewEtagStore creates a Postgres-backed EtagStore.
func NewEtagStore(ctx context.Context, cfg Config) (*EtagStore, error) {
	pool, err := newPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &EtagStore{pool: pool}, nil
}

// NewEtagStoreWithPool constructs a store from an existing pool (primarily
// for testing).
func NewEtagStoreWithPool(pool dbPool) (*EtagStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &EtagStore{pool: pool}, nil
}

var _ crawler.EtagStore = (*EtagStore)(nil)

// Etag returns the stored etag for the event type and URL, if any.
func (s *EtagStore) Etag(ctx context.Context, eventType, url string) (string, bool, error) {
	const query = `SELECT etag FROM etags WHERE event_type = $1 AND url = $2`

	var etag string
	err := s.pool.QueryRow(ctx, query, eventType, url).Scan(&etag)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select etag: %w", err)
	}
	return etag, true, nil
}

// SetEtag inserts or replaces the etag for the event type and URL.
func (s *EtagStore) SetEtag(ctx context.Context, eventType, url, etag string) error {
	const query = `INSERT INTO etags (event_type, url, etag)
VALUES ($1, $2, $3)
ON CONFLICT (event_type, url) DO UPDATE SET etag = EXCLUDED.etag`

	if _, err := s.pool.Exec(ctx, query, eventType, url, etag); err != nil {
		return fmt.Errorf("upsert etag: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *EtagStore) Close() {
	s.pool.Close()
}
