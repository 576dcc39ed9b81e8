// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Success(t *testing.T) {
	svc, err := NewAppInfoService(mock.NewMockPinger(gomock.NewController(t)), config.App{Version: "1.0.0"}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(mock.NewMockPinger(gomock.NewController(t)), config.App{}, logger.Nop())

	assert.Nil(t, svc)
	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

// ─────────────────────────────────────────────
// GetAppVersion
// ─────────────────────────────────────────────

func TestGetAppVersion_ReturnsConfiguredVersion(t *testing.T) {
	svc, err := NewAppInfoService(mock.NewMockPinger(gomock.NewController(t)), config.App{Version: "v1.2.3-beta+build.42"}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3-beta+build.42", svc.GetAppVersion(context.Background()))
}

func TestGetAppVersion_CancelledContext_StillReturnsVersion(t *testing.T) {
	svc, err := NewAppInfoService(mock.NewMockPinger(gomock.NewController(t)), config.App{Version: "1.0.0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}

// ─────────────────────────────────────────────
// Health
// ─────────────────────────────────────────────

func TestHealth(t *testing.T) {
	pingErr := errors.New("connection refused")

	tests := []struct {
		name    string
		pingErr error
	}{
		{"database up", nil},
		{"database down", pingErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinger := mock.NewMockPinger(gomock.NewController(t))
			pinger.EXPECT().PingContext(gomock.Any()).Return(tt.pingErr)

			svc, err := NewAppInfoService(pinger, config.App{Version: "1.0.0"}, logger.Nop())
			require.NoError(t, err)

			err = svc.Health(context.Background())

			if tt.pingErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, pingErr)
		})
	}
}
