// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/love-health/internal/logger"
	"github.com/MKhiriev/love-health/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, serverURL string) *httpAPIClient {
	t.Helper()
	c, err := NewHTTPAPIClient(serverURL, 5*time.Second, logger.Nop())
	require.NoError(t, err)
	return c.(*httpAPIClient)
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, message string, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(models.Envelope{
		Code:    status,
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	}))
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"host and port", "localhost:8080", "http://localhost:8080", false},
		{"with scheme", "https://api.example.com/", "https://api.example.com", false},
		{"surrounding spaces", "  http://127.0.0.1:80  ", "http://127.0.0.1:80", false},
		{"empty", "", "", true},
		{"scheme only", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPAPIClient_InvalidAddress(t *testing.T) {
	_, err := NewHTTPAPIClient("", time.Second, logger.Nop())
	assert.Error(t, err)
}

// ── auth ────────────────────────────────────────────────────────────────────

func TestRegister_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/users/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req.Username)

		writeEnvelope(t, w, http.StatusCreated, "registered", models.AuthResponse{
			User:  models.UserWithProfile{User: models.User{ID: 7, Username: "alice"}},
			Token: "jwt-token",
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	got, err := c.Register(context.Background(), models.RegisterRequest{Username: "alice", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.User.ID)
	assert.Equal(t, "jwt-token", c.Token())
}

func TestLogin_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"wrong password", http.StatusUnauthorized, ErrUnauthorized},
		{"disabled", http.StatusForbidden, ErrForbidden},
		{"throttled", http.StatusTooManyRequests, ErrTooManyRequests},
		{"server error", http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeEnvelope(t, w, tt.status, "rejected by server", nil)
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL)
			_, err := c.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "x"})

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "rejected by server")
			assert.Empty(t, c.Token())
		})
	}
}

func TestLogout_ForgetsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/logout", r.URL.Path)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, "logged out", nil)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("jwt-token")

	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token())
}

// ── profile ─────────────────────────────────────────────────────────────────

func TestProfile_SendsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer jwt-token", r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusOK, "ok", models.ProfileResponse{
			User: models.UserWithProfile{User: models.User{ID: 1, Username: "alice"}},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("jwt-token")

	got, err := c.Profile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestProfile_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		writeEnvelope(t, w, http.StatusUnauthorized, "empty authorization header", nil)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Profile(context.Background())

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateProfile_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		writeEnvelope(t, w, http.StatusConflict, "user already exists", nil)
	}))
	defer srv.Close()

	email := "taken@example.com"
	_, err := newTestClient(t, srv.URL).UpdateProfile(context.Background(), models.UpdateProfileRequest{Email: &email})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestUploadAvatar_SendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "me.png", header.Filename)
		assert.Equal(t, "\x89PNG", string(data))

		writeEnvelope(t, w, http.StatusOK, "avatar uploaded", models.AvatarResponse{Avatar: "/files/public/me.png"})
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SetToken("jwt-token")

	url, err := c.UploadAvatar(context.Background(), "me.png", strings.NewReader("\x89PNG"))

	require.NoError(t, err)
	assert.Equal(t, "/files/public/me.png", url)
}

func TestPublicProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/public/42", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, "ok", models.PublicProfileResponse{
			User: models.UserWithProfile{User: models.User{ID: 42}},
		})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).PublicProfile(context.Background(), 42)

	require.NoError(t, err)
	assert.Equal(t, int64(42), got.User.ID)
	assert.False(t, got.IsSelf)
}

// ── admin ───────────────────────────────────────────────────────────────────

func TestListUsers_SendsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/list", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "true", r.URL.Query().Get("with_deleted"))
		writeEnvelope(t, w, http.StatusOK, "ok", models.UserListResponse{
			Users:      []models.User{{ID: 1}},
			Pagination: models.NewPagination(6, 2, 5),
		})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).ListUsers(context.Background(), models.ListUsersRequest{Page: 2, Limit: 5, WithDeleted: true})

	require.NoError(t, err)
	assert.Len(t, got.Users, 1)
	assert.Equal(t, uint64(2), got.Pagination.TotalPages)
}

func TestRestoreUser_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/users/9/restore", r.URL.Path)
		writeEnvelope(t, w, http.StatusNotFound, "user not found", nil)
	}))
	defer srv.Close()

	err := newTestClient(t, srv.URL).RestoreUser(context.Background(), 9)

	assert.ErrorIs(t, err, ErrNotFound)
}

// ── misc ────────────────────────────────────────────────────────────────────

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, "ok", models.VersionResponse{Version: "1.2.3"})
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Version(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.2.3", got)
}

func TestSend_NonEnvelopeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Version(context.Background())

	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestMapHTTPError_PlainTextBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Version(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 502: bad gateway")
}
