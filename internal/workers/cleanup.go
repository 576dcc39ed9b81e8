// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/limiter"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/store"
)

// cleanupWorker periodically evicts idle login limiters and expired
// in-process token revocations.
type cleanupWorker struct {
	limiter    *limiter.KeyedLimiter
	revocation *store.MemoryRevocationStore
	interval   time.Duration
	idleTTL    time.Duration
	logger     *logger.Logger
}

// NewCleanupWorker builds the cleanup worker. revocation may be nil when
// revocations are kept in Redis.
func NewCleanupWorker(l *limiter.KeyedLimiter, revocation *store.MemoryRevocationStore, cfg config.Workers, log *logger.Logger) Worker {
	return &cleanupWorker{
		limiter:    l,
		revocation: revocation,
		interval:   cfg.LimiterCleanupInterval,
		idleTTL:    cfg.LimiterIdleTTL,
		logger:     log,
	}
}

func (w *cleanupWorker) Run(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Warn().Str("func", "*cleanupWorker.Run").Msg("cleanup interval is not positive, worker disabled")
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str("func", "*cleanupWorker.Run").Msg("cleanup worker stopped")
			return
		case <-ticker.C:
			w.cleanup()
		}
	}
}

func (w *cleanupWorker) cleanup() {
	limiters := w.limiter.Cleanup(w.idleTTL)

	revocations := 0
	if w.revocation != nil {
		revocations = w.revocation.Cleanup()
	}

	if limiters > 0 || revocations > 0 {
		w.logger.Debug().
			Str("func", "*cleanupWorker.cleanup").
			Int("limiters", limiters).
			Int("revocations", revocations).
			Msg("evicted stale entries")
	}
}
