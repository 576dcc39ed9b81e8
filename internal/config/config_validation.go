// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"
)

// validate checks that the final merged [StructuredConfig] can be used at
// startup. A zero-value config is accepted so partial builders stay testable.
func (cfg *StructuredConfig) validate() error {
	if cfg.isZero() {
		return nil
	}

	var errs []error

	switch cfg.App.Env {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("%w: unknown env %q", ErrInvalidAppConfigs, cfg.App.Env))
	}
	if cfg.App.TokenSignKey == "" {
		errs = append(errs, fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs))
	}
	if cfg.App.TokenDuration <= 0 {
		errs = append(errs, fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs))
	}
	if cfg.App.BcryptCost < 4 || cfg.App.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("%w: bcrypt cost out of range", ErrInvalidAppConfigs))
	}

	dsn := cfg.Storage.DB.DSN
	if dsn == "" {
		errs = append(errs, fmt.Errorf("%w: empty database DSN", ErrInvalidStorageConfigs))
	} else if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") && !strings.HasPrefix(dsn, "sqlite:") {
		errs = append(errs, fmt.Errorf("%w: unsupported database DSN scheme", ErrInvalidStorageConfigs))
	}
	if cfg.Storage.Blob.Endpoint != "" && (cfg.Storage.Blob.AccessKey == "" || cfg.Storage.Blob.SecretKey == "") {
		errs = append(errs, fmt.Errorf("%w: blob endpoint requires access and secret keys", ErrInvalidStorageConfigs))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, fmt.Errorf("%w: empty HTTP address", ErrInvalidServerConfigs))
	}
	if cfg.Server.LoginRate <= 0 || cfg.Server.LoginBurst <= 0 {
		errs = append(errs, fmt.Errorf("%w: login rate and burst must be positive", ErrInvalidServerConfigs))
	}

	if cfg.Workers.LimiterCleanupInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: limiter cleanup interval must be positive", ErrInvalidWorkerConfigs))
	}

	return errors.Join(errs...)
}

func (cfg *StructuredConfig) isZero() bool {
	return cfg.App == (App{}) &&
		cfg.Storage == (Storage{}) &&
		cfg.Server.HTTPAddress == "" && len(cfg.Server.CORSOrigins) == 0 && cfg.Server.LoginRate == 0 &&
		cfg.Workers == (Workers{}) &&
		cfg.JSONFilePath == ""
}
