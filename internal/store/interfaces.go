// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"io"
	"time"

	"github.com/MKhiriev/love-health/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the data-access contract of the users aggregate: the
// users row, its 1:1 profile row and the community counters.
type UserRepository interface {
	CreateWithProfile(ctx context.Context, user, profile Fields) (models.UserWithProfile, error)
	UpdateWithProfile(ctx context.Context, id int64, user, profile Fields) (models.UserWithProfile, error)
	GetWithProfile(ctx context.Context, id int64) (models.UserWithProfile, error)

	FindByID(ctx context.Context, id int64, includeDeleted bool) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByPhone(ctx context.Context, phone string) (models.User, error)

	List(ctx context.Context, q Query) ([]models.User, error)
	Count(ctx context.Context, includeDeleted bool) (int64, error)
	Update(ctx context.Context, id int64, fields Fields) (Result, error)
	SoftDelete(ctx context.Context, id int64) (Result, error)
	Restore(ctx context.Context, id int64) (Result, error)

	CommunityStats(ctx context.Context, id int64) (models.CommunityStats, error)
}

// TokenRevocationStore remembers revoked token ids until they would have
// expired anyway.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	Close() error
}

// BlobStorage stores uploaded files in named buckets.
type BlobStorage interface {
	// EnsureBuckets creates the configured buckets when missing.
	EnsureBuckets(ctx context.Context) error
	// Put stores the object and returns its public URL.
	Put(ctx context.Context, bucket, name, contentType string, body io.Reader, size int64) (string, error)
	Get(ctx context.Context, bucket, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, bucket, name string) error
}

// Pinger reports database reachability.
type Pinger interface {
	PingContext(ctx context.Context) error
}
