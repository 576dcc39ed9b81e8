// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/limiter"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/metrics"
	"github.com/MKhiriev/love-health/internal/service"
	"github.com/MKhiriev/love-health/internal/validators"
)

// Handler serves the REST API on top of the service layer.
type Handler struct {
	services  *service.Services
	validator validators.Validator

	// loginLimiter throttles login attempts per identifier and client address.
	loginLimiter *limiter.KeyedLimiter
	metrics      *metrics.Metrics

	// production hides internal error details from clients.
	production     bool
	corsOrigins    []string
	requestTimeout time.Duration
	maxUploadSize  int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, loginLimiter *limiter.KeyedLimiter, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		validator:      validators.NewRequestValidator(),
		loginLimiter:   loginLimiter,
		metrics:        m,
		production:     cfg.App.IsProduction(),
		corsOrigins:    cfg.Server.CORSOrigins,
		requestTimeout: cfg.Server.RequestTimeout,
		maxUploadSize:  cfg.Server.MaxUploadSize,
		logger:         logger,
	}
}
