// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donghun712/wsd-term-proj/internal/platform/config"
	"github.com/donghun712/wsd-term-proj/internal/platform/storage"
)

func newLocal(t *testing.T) *storage.Storage {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "uploads")

	store, err := storage.New(context.Background(), &config.Config{
		StorageBackend: config.StorageLocal,
		UploadDir:      dir,
	})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
	return store
}

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newLocal(t)

	require.NoError(t, store.Put(ctx, "a.txt", strings.NewReader("hello"), 5, "text/plain"))

	reader, err := store.Get(ctx, "a.txt")
	require.NoError(t, err)
	body, err := io.ReadAll(reader)
	require.NoError(t, reader.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	require.NoError(t, store.Delete(ctx, "a.txt"))
	_, err = store.Get(ctx, "a.txt")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)

	// Deleting twice is fine.
	assert.NoError(t, store.Delete(ctx, "a.txt"))
}

func TestLocalStorage_RejectsPaths(t *testing.T) {
	ctx := context.Background()
	store := newLocal(t)

	for _, key := range []string{"", ".", "..", "../etc/passwd", "sub/a.txt"} {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, storage.ErrObjectNotFound, key)
	}

	assert.Error(t, store.Put(ctx, "../escape.txt", strings.NewReader("x"), 1, ""))
}

func TestNew_MinioRequiresEndpoint(t *testing.T) {
	_, err := storage.New(context.Background(), &config.Config{
		StorageBackend: config.StorageMinio,
		Minio:          config.MinioConfig{Bucket: "b"},
	})
	assert.ErrorContains(t, err, "minio endpoint is required")
}
