// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/love-health/internal/config"
	"github.com/MKhiriev/love-health/internal/limiter"
	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/internal/metrics"
	"github.com/MKhiriev/love-health/internal/mock"
	"github.com/MKhiriev/love-health/internal/service"
	"github.com/MKhiriev/love-health/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testToken = "test-token"

// testDeps exposes the mocked services behind a test Handler.
type testDeps struct {
	auth    *mock.MockAuthService
	user    *mock.MockUserService
	admin   *mock.MockAdminService
	info    *mock.MockAppInfoService
	metrics *metrics.Metrics
}

func testConfig() config.StructuredConfig {
	var cfg config.StructuredConfig
	cfg.App.Env = config.EnvTest
	cfg.Server.CORSOrigins = []string{"https://app.example.com"}
	cfg.Server.RequestTimeout = 5 * time.Second
	cfg.Server.MaxUploadSize = 1 << 10
	return cfg
}

func newTestHandlerWithConfig(t *testing.T, cfg config.StructuredConfig) (*Handler, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)

	deps := testDeps{
		auth:    mock.NewMockAuthService(ctrl),
		user:    mock.NewMockUserService(ctrl),
		admin:   mock.NewMockAdminService(ctrl),
		info:    mock.NewMockAppInfoService(ctrl),
		metrics: metrics.New(),
	}
	services := &service.Services{
		AuthService:    deps.auth,
		UserService:    deps.user,
		AdminService:   deps.admin,
		AppInfoService: deps.info,
	}

	h := NewHandler(services, limiter.NewKeyedLimiter(1, 3), deps.metrics, cfg, logger.Nop())
	return h, deps
}

func newTestHandler(t *testing.T) (*Handler, testDeps) {
	t.Helper()
	return newTestHandlerWithConfig(t, testConfig())
}

// serve runs req through the full router.
func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// authorize makes req carry testToken and expects it to resolve to principal.
func authorize(deps testDeps, req *http.Request, principal models.Principal) models.Token {
	req.Header.Set("Authorization", "Bearer "+testToken)
	token := models.Token{SignedString: testToken, UserID: principal.ID}
	token.ID = "jti-1"
	principal.TokenID = token.ID
	deps.auth.EXPECT().Authenticate(gomock.Any(), testToken).Return(principal, token, nil)
	return token
}

// decodeEnvelope parses the envelope and, when data is non-nil, its payload.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) models.Envelope {
	t.Helper()
	var raw struct {
		models.Envelope
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw), "body: %s", rr.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(raw.Data, data))
	}
	return raw.Envelope
}

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler(t *testing.T) {
	cfg := testConfig()
	cfg.App.Env = config.EnvProduction

	h, deps := newTestHandlerWithConfig(t, cfg)

	require.NotNil(t, h)
	assert.True(t, h.production)
	assert.Equal(t, []string{"https://app.example.com"}, h.corsOrigins)
	assert.Equal(t, 5*time.Second, h.requestTimeout)
	assert.Equal(t, int64(1<<10), h.maxUploadSize)
	assert.Same(t, deps.metrics, h.metrics)
	assert.NotNil(t, h.validator)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1, _ := newTestHandler(t)
	h2, _ := newTestHandler(t)

	assert.NotSame(t, h1, h2)
}
