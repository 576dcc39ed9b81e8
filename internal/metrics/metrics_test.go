// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandler_LabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.InstrumentHandler)
	r.Get("/api/v1/users/public/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Method(http.MethodGet, "/metrics", m.Handler())

	for _, path := range []string{"/api/v1/users/public/1", "/api/v1/users/public/2"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/users/public/{id}", "404"))
	assert.Equal(t, float64(2), got)
	assert.Zero(t, testutil.ToFloat64(m.inFlight))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "love_health_http_requests_total")
}

func TestInstrumentHandler_DefaultsToOK(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.InstrumentHandler)
	r.Get("/empty", func(w http.ResponseWriter, r *http.Request) {})
	r.Get("/body", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/empty", "/body"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/empty", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/body", "200")))
}

func TestObserveLogin(t *testing.T) {
	m := New()

	m.ObserveLogin(LoginSuccess)
	m.ObserveLogin(LoginFailure)
	m.ObserveLogin(LoginFailure)
	m.ObserveRegistration()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.logins.WithLabelValues(LoginSuccess)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.logins.WithLabelValues(LoginFailure)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.registrations))
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotSame(t, New().Registry(), New().Registry())
}
