// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/logger"
)

// publicReadPolicy grants anonymous GetObject on every object of a bucket.
const publicReadPolicy = `{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`

// minioBlobStorage stores objects in an S3-compatible service.
type minioBlobStorage struct {
	client        *minio.Client
	baseURL       string
	publicBucket  string
	privateBucket string
	logger        *logger.Logger
}

// NewMinioBlobStorage constructs an S3-compatible [BlobStorage]. Objects are
// addressed as <PublicURL or endpoint>/<bucket>/<name>.
func NewMinioBlobStorage(cfg config.Blob, log *logger.Logger) (BlobStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Err(err).Str("func", "NewMinioBlobStorage").Msg("error creating minio client")
		return nil, fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}

	baseURL := cfg.PublicURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = scheme + "://" + cfg.Endpoint
	}

	return &minioBlobStorage{
		client:        client,
		baseURL:       baseURL,
		publicBucket:  cfg.PublicBucket,
		privateBucket: cfg.PrivateBucket,
		logger:        log,
	}, nil
}

// EnsureBuckets creates both buckets when missing and makes the public one
// anonymously readable.
func (s *minioBlobStorage) EnsureBuckets(ctx context.Context) error {
	for _, bucket := range []string{s.publicBucket, s.privateBucket} {
		if bucket == "" {
			continue
		}

		exists, err := s.client.BucketExists(ctx, bucket)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBlobStorage, err)
		}
		if !exists {
			if err = s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
				s.logger.Err(err).Str("func", "*minioBlobStorage.EnsureBuckets").Str("bucket", bucket).Msg("error creating bucket")
				return fmt.Errorf("%w: %w", ErrBlobStorage, err)
			}
			s.logger.Info().Str("bucket", bucket).Msg("bucket created")
		}
	}

	if s.publicBucket != "" {
		if err := s.client.SetBucketPolicy(ctx, s.publicBucket, fmt.Sprintf(publicReadPolicy, s.publicBucket)); err != nil {
			return fmt.Errorf("%w: %w", ErrBlobStorage, err)
		}
	}

	return nil
}

func (s *minioBlobStorage) Put(ctx context.Context, bucket, name, contentType string, body io.Reader, size int64) (string, error) {
	if err := checkObjectName(bucket, name); err != nil {
		return "", err
	}

	_, err := s.client.PutObject(ctx, bucket, name, body, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*minioBlobStorage.Put").Str("bucket", bucket).Msg("error uploading object")
		return "", fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}

	return objectURL(s.baseURL, bucket, name), nil
}

func (s *minioBlobStorage) Get(ctx context.Context, bucket, name string) (io.ReadCloser, error) {
	if err := checkObjectName(bucket, name); err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}
	// GetObject is lazy; Stat surfaces a missing key.
	if _, err = obj.Stat(); err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}
	return obj, nil
}

func (s *minioBlobStorage) Delete(ctx context.Context, bucket, name string) error {
	if err := checkObjectName(bucket, name); err != nil {
		return err
	}

	if err := s.client.RemoveObject(ctx, bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%w: %w", ErrBlobStorage, err)
	}
	return nil
}
