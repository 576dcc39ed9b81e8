// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/logger"
)

const revokedKeyPrefix = "revoked:"

// redisRevocationStore keeps revoked token ids as expiring Redis keys.
type redisRevocationStore struct {
	client *redis.Client
}

// NewRedisRevocationStore connects to Redis and verifies the connection.
func NewRedisRevocationStore(ctx context.Context, cfg config.Redis, log *logger.Logger) (TokenRevocationStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisRevocationStore").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("%w: %w", ErrRevocationStore, err)
	}
	log.Info().Str("func", "NewRedisRevocationStore").Msg("connected to redis successfully")

	return newRedisRevocationStore(client), nil
}

func newRedisRevocationStore(client *redis.Client) *redisRevocationStore {
	return &redisRevocationStore{client: client}
}

func (s *redisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisRevocationStore.Revoke").Msg("error revoking token")
		return fmt.Errorf("%w: %w", ErrRevocationStore, err)
	}
	return nil
}

func (s *redisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisRevocationStore.IsRevoked").Msg("error checking token")
		return false, fmt.Errorf("%w: %w", ErrRevocationStore, err)
	}
	return n > 0, nil
}

func (s *redisRevocationStore) Close() error {
	return s.client.Close()
}
