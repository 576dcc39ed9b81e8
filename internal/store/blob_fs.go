// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/MKhiriev/love-health/internal/logger"
)

// fileBlobStorage is the [BlobStorage] used when no S3 endpoint is
// configured. Each bucket is a sub-directory of root; objects are written to
// a temporary file first and renamed into place.
type fileBlobStorage struct {
	root    string
	baseURL string
	buckets []string
	logger  *logger.Logger
}

// NewFileBlobStorage constructs a filesystem-backed [BlobStorage] rooted at
// root. Object URLs are baseURL + "/" + bucket + "/" + name.
func NewFileBlobStorage(root, baseURL string, buckets []string, logger *logger.Logger) BlobStorage {
	logger.Debug().Str("root", root).Msg("creating file blob storage")
	return &fileBlobStorage{
		root:    root,
		baseURL: baseURL,
		buckets: buckets,
		logger:  logger,
	}
}

func (s *fileBlobStorage) EnsureBuckets(_ context.Context) error {
	for _, bucket := range s.buckets {
		if err := os.MkdirAll(filepath.Join(s.root, bucket), 0o755); err != nil {
			return fmt.Errorf("%w: %w", ErrBlobStorage, err)
		}
	}
	return nil
}

func (s *fileBlobStorage) Put(ctx context.Context, bucket, name, _ string, body io.Reader, _ int64) (string, error) {
	log := logger.FromContext(ctx)

	if err := checkObjectName(bucket, name); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		log.Err(err).Str("func", "*fileBlobStorage.Put").Msg("error creating temp file")
		return "", fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}
	defer os.Remove(tmp.Name())

	if _, err = io.Copy(tmp, body); err != nil {
		tmp.Close()
		log.Err(err).Str("func", "*fileBlobStorage.Put").Msg("error writing object")
		return "", fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}

	if err = os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		log.Err(err).Str("func", "*fileBlobStorage.Put").Msg("error moving object into place")
		return "", fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}

	return objectURL(s.baseURL, bucket, name), nil
}

func (s *fileBlobStorage) Get(_ context.Context, bucket, name string) (io.ReadCloser, error) {
	if err := checkObjectName(bucket, name); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.root, bucket, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}
	return f, nil
}

func (s *fileBlobStorage) Delete(_ context.Context, bucket, name string) error {
	if err := checkObjectName(bucket, name); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.root, bucket, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}
	return nil
}
