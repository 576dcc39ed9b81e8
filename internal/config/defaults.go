// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// DefaultVersion is reported when neither VERSION nor a build version is set.
const DefaultVersion = "dev"

// defaults returns the values used for every field no other source sets.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:                   EnvDevelopment,
			TokenIssuer:           "love-health",
			TokenDuration:         24 * time.Hour,
			RememberTokenDuration: 7 * 24 * time.Hour,
			BcryptCost:            10,
			Version:               DefaultVersion,
		},
		Storage: Storage{
			DB: DB{
				MaxOpenConns:    10,
				MaxIdleConns:    4,
				ConnMaxLifetime: 30 * time.Minute,
			},
			Blob: Blob{
				PublicBucket:  "love-health-public",
				PrivateBucket: "love-health-private",
				LocalDir:      "./uploads",
			},
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			LoginRate:       1,
			LoginBurst:      5,
			MaxUploadSize:   5 << 20,
		},
		Workers: Workers{
			LimiterCleanupInterval: time.Minute,
			LimiterIdleTTL:         10 * time.Minute,
		},
	}
}
