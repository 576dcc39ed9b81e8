// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/handler/http"
	"github.com/MKhiriev/love-health/internal/limiter"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/metrics"
	"github.com/MKhiriev/love-health/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers creates the transport handlers enabled by cfg.
func NewHandlers(services *service.Services, loginLimiter *limiter.KeyedLimiter, m *metrics.Metrics, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, loginLimiter, m, cfg, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
