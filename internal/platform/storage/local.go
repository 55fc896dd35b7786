// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage keeps objects as plain files under a single directory.
type LocalStorage struct {
	root string
}

// NewLocalStorage constructs a LocalStorage rooted at dir.
func NewLocalStorage(dir string) (*LocalStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload directory is required")
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &LocalStorage{root: root}, nil
}

// EnsureBucket creates the upload directory when missing.
func (l *LocalStorage) EnsureBucket(_ context.Context) error {
	return os.MkdirAll(l.root, 0o755)
}

/*
Put writes r to <root>/<key>.

Description: Data lands in a temp file first and is renamed into place, so a
failed or partial upload never becomes visible under its final name.
*/
func (l *LocalStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	target, err := l.resolve(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(l.root, ".upload-*")
	if err != nil {
		return fmt.Errorf("local_storage_create_failed: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("local_storage_write_failed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("local_storage_close_failed: %w", err)
	}

	return os.Rename(tmp.Name(), target)
}

// Get opens <root>/<key> for reading.
func (l *LocalStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	target, err := l.resolve(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(target)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("local_storage_open_failed: %w", err)
	}
	return file, nil
}

// Delete removes <root>/<key>. Deleting a missing object is not an error.
func (l *LocalStorage) Delete(_ context.Context, key string) error {
	target, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Bucket returns the absolute upload directory.
func (l *LocalStorage) Bucket() string {
	return l.root
}

// resolve maps key to a path that is guaranteed to sit directly inside root.
func (l *LocalStorage) resolve(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", ErrObjectNotFound
	}
	return filepath.Join(l.root, key), nil
}
