// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/logger"
)

// defaultLocalBlobURL is where the HTTP layer serves the filesystem store.
const defaultLocalBlobURL = "/files"

// Storages bundles every persistence backend the services depend on.
type Storages struct {
	DB             *DB
	UserRepository UserRepository
	Revocation     TokenRevocationStore
	Blob           BlobStorage

	// MemoryRevocation is set when revocations are kept in-process; its
	// expired entries are evicted by a background worker.
	MemoryRevocation *MemoryRevocationStore
}

// NewStorages opens the database, applies migrations when configured and
// selects the revocation and blob backends: Redis when an address is set
// (otherwise in-process), S3 when an endpoint is set (otherwise the local
// filesystem).
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating storages...")

	db, err := NewDB(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error connecting database: %w", err)
	}

	if cfg.DB.AutoMigrate {
		if err = db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("error applying migrations: %w", err)
		}
		log.Info().Str("dialect", string(db.Dialect())).Msg("migrations applied")
	}

	storages := &Storages{
		DB:             db,
		UserRepository: NewUserRepository(db, log),
	}

	if cfg.Redis.Address != "" {
		storages.Revocation, err = NewRedisRevocationStore(ctx, cfg.Redis, log)
		if err != nil {
			db.Close()
			return nil, err
		}
	} else {
		storages.MemoryRevocation = NewMemoryRevocationStore()
		storages.Revocation = storages.MemoryRevocation
	}

	if cfg.Blob.Endpoint != "" {
		storages.Blob, err = NewMinioBlobStorage(cfg.Blob, log)
	} else {
		baseURL := cfg.Blob.PublicURL
		if baseURL == "" {
			baseURL = defaultLocalBlobURL
		}
		storages.Blob = NewFileBlobStorage(cfg.Blob.LocalDir, baseURL, []string{cfg.Blob.PublicBucket, cfg.Blob.PrivateBucket}, log)
	}
	if err == nil {
		err = storages.Blob.EnsureBuckets(ctx)
	}
	if err != nil {
		storages.Close()
		return nil, fmt.Errorf("error preparing blob storage: %w", err)
	}

	return storages, nil
}

// Close releases the database pool and the revocation store.
func (s *Storages) Close() error {
	var errs []error
	if s.Revocation != nil {
		errs = append(errs, s.Revocation.Close())
	}
	if s.DB != nil {
		errs = append(errs, s.DB.Close())
	}
	return errors.Join(errs...)
}
