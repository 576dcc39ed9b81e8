// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/store"
)

type appInfoService struct {
	appVersion string
	db         store.Pinger

	logger *logger.Logger
}

func NewAppInfoService(db store.Pinger, cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		db:         db,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// Health pings the database.
func (s *appInfoService) Health(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appInfoService.Health").Msg("database ping failed")
		return err
	}
	return nil
}
