package store

import (
	"context"
	"fmt"

	"github.com/andy/invoicepro/internal/db"
)

// Well-known blob keys
const (
	DocumentKey = "invoice:document"
	StylesKey   = "invoice:styles"
)

// BlobStore persists named records. Each Put overwrites the prior value
// entirely; there is no merging or versioning. Get returns (nil, nil) when
// the key has never been written.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type blobStore struct {
	db *db.DB
}

// NewBlobStore creates a blob store backed by the encrypted database
func NewBlobStore(database *db.DB) BlobStore {
	return &blobStore{db: database}
}

func (s *blobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM blobs WHERE key = ?", key,
	).Scan(&value)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read blob %q: %w", key, err)
	}
	return value, nil
}

func (s *blobStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write blob %q: %w", key, err)
	}
	return nil
}

func (s *blobStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM blobs WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", key, err)
	}
	return nil
}
