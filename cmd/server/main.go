// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"os"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/handler"
	"github.com/MKhiriev/love-health/internal/limiter"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/metrics"
	"github.com/MKhiriev/love-health/internal/server"
	"github.com/MKhiriev/love-health/internal/service"
	"github.com/MKhiriev/love-health/internal/store"
	"github.com/MKhiriev/love-health/internal/workers"
	"github.com/MKhiriev/love-health/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	buildInfo.Print(os.Stdout)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("love-health").Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == config.DefaultVersion && buildInfo.HasVersion() {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	log := logger.NewLoggerForEnv("love-health", cfg.App.Env)
	log.Debug().Str("env", cfg.App.Env).Str("http_address", cfg.Server.HTTPAddress).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	loginLimiter := limiter.NewKeyedLimiter(cfg.Server.LoginRate, cfg.Server.LoginBurst)
	m := metrics.New()

	handlers, err := handler.NewHandlers(services, loginLimiter, m, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg := workers.NewWorkers(workers.NewCleanupWorker(loginLimiter, storages.MemoryRevocation, cfg.Workers, log))

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Err(err).Msg("server stopped with error")
	}
}
