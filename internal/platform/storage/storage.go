// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storage persists uploaded files behind a backend-neutral API.

Three backends are available and selected by STORAGE_BACKEND:

  - local: a directory on the API host (default)
  - minio: any S3-compatible object store
  - gcs:   Google Cloud Storage

Object keys are flat names generated by the file service; backends never see
client-supplied paths.
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/donghun712/wsd-term-proj/internal/platform/config"
)

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("storage: object not found")

// ObjectStorage defines common object operations across backends.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
}

// Storage wraps an ObjectStorage backend with a stable API.
type Storage struct {
	backend ObjectStorage
}

// NewStorage constructs a Storage wrapper for the provided backend.
func NewStorage(backend ObjectStorage) *Storage {
	return &Storage{backend: backend}
}

// New builds the backend named in cfg and makes sure its bucket exists.
func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var (
		backend ObjectStorage
		err     error
	)

	switch cfg.StorageBackend {
	case config.StorageMinio:
		backend, err = NewMinioClient(cfg.Minio)
	case config.StorageGCS:
		backend, err = NewGCSClient(ctx, cfg.GCS)
	default:
		backend, err = NewLocalStorage(cfg.UploadDir)
	}
	if err != nil {
		return nil, fmt.Errorf("storage_%s_init_failed: %w", cfg.StorageBackend, err)
	}

	if err := backend.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("storage_%s_ensure_bucket_failed: %w", cfg.StorageBackend, err)
	}

	return NewStorage(backend), nil
}

// EnsureBucket ensures the configured bucket exists.
func (s *Storage) EnsureBucket(ctx context.Context) error {
	return s.backend.EnsureBucket(ctx)
}

// Put uploads an object to the configured bucket.
func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return s.backend.Put(ctx, key, r, size, contentType)
}

// Get opens a reader for an object. Missing keys yield [ErrObjectNotFound].
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return s.backend.Get(ctx, key)
}

// Delete removes an object from the configured bucket.
func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

// Bucket returns the configured bucket name.
func (s *Storage) Bucket() string {
	return s.backend.Bucket()
}
