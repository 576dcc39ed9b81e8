// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/store"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	AdminService   AdminService
	AppInfoService AppInfoService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(storages.DB, cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, storages.Revocation, cfg.App, logger),
		UserService:    NewUserService(storages.UserRepository, storages.Blob, cfg, logger),
		AdminService:   NewAdminService(storages.UserRepository, logger),
		AppInfoService: appInfoService,
	}, nil
}
