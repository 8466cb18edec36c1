// Package postgres provides Postgres-backed persistence implementations.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crawlkit/crawlkit/internal/crawler"
)

// dbPool is the subset of pgxpool.Pool the stores use, extracted so tests
// can substitute a pgxmock pool.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Config controls the Postgres connection pool.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

func newPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

// DocumentStore persists documents in the documents table.
type DocumentStore struct {
	pool dbPool
}

// NewDocumentStore creates a Postgres-backed DocumentStore.
func NewDocumentStore(ctx context.Context, cfg Config) (*DocumentStore, error) {
	pool, err := newPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &DocumentStore{pool: pool}, nil
}

// NewDocumentStoreWithPool constructs a store from an existing pool
// (primarily for testing).
func NewDocumentStoreWithPool(pool dbPool) (*DocumentStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &DocumentStore{pool: pool}, nil
}

// Get returns the stored document or crawler.ErrNotFound.
func (s *DocumentStore) Get(ctx context.Context, url string) (crawler.Document, error) {
	const query = `SELECT content_type, body, processed_at, version, etag FROM documents WHERE url = $1`

	doc := crawler.Document{URL: url}
	row := s.pool.QueryRow(ctx, query, url)
	err := row.Scan(&doc.ContentType, &doc.Body, &doc.Metadata.ProcessedAt, &doc.Metadata.Version, &doc.Metadata.Etag)
	if errors.Is(err, pgx.ErrNoRows) {
		return crawler.Document{}, crawler.ErrNotFound
	}
	if err != nil {
		return crawler.Document{}, fmt.Errorf("select document: %w", err)
	}
	return doc, nil
}

// Put inserts or replaces the document row for its URL.
func (s *DocumentStore) Put(ctx context.Context, doc crawler.Document) error {
	const query = `INSERT INTO documents (url, content_type, body, processed_at, version, etag)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (url) DO UPDATE SET
	content_type = EXCLUDED.content_type,
	body = EXCLUDED.body,
	processed_at = EXCLUDED.processed_at,
	version = EXCLUDED.version,
	etag = EXCLUDED.etag`

	_, err := s.pool.Exec(ctx, query,
		doc.URL,
		doc.ContentType,
		doc.Body,
		doc.Metadata.ProcessedAt,
		doc.Metadata.Version,
		doc.Metadata.Etag,
	)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *DocumentStore) Close() {
	s.pool.Close()
}
