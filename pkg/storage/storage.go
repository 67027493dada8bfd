package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"teacher-eval/backend/config"
)

// ErrObjectNotFound the key does not exist in the store
var ErrObjectNotFound = errors.New("storage: object not found")

// ErrInvalidKey the key is empty or escapes the store root
var ErrInvalidKey = errors.New("storage: invalid key")

// Store keeps witness files. Keys are slash separated and relative.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// New builds the store selected by storage.driver
func New(ctx context.Context, cfg *config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.StorageDriverLocal:
		return NewLocalStore(cfg.LocalDir)
	case config.StorageDriverS3:
		return NewS3Store(ctx, &cfg.S3)
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
